package config

import "time"

// Config holds runtime settings for the classifieds CLI.
type Config struct {
	APIBaseURL     string        `env:"CLASSIFIEDS_API_URL"`
	DBPath         string        `env:"CLASSIFIEDS_DB_PATH"`
	LogLevel       string        `env:"CLASSIFIEDS_LOG_LEVEL"`
	RequestTimeout time.Duration `env:"CLASSIFIEDS_REQUEST_TIMEOUT"`
	RateLimit      float64       `env:"CLASSIFIEDS_RATE_LIMIT"`
	RateBurst      int           `env:"CLASSIFIEDS_RATE_BURST"`
	ExportDir      string        `env:"CLASSIFIEDS_EXPORT_DIR"`
	DownloadDir    string        `env:"CLASSIFIEDS_DOWNLOAD_DIR"`
}

// LoadDefaults populates c with defaults. Requests have no timeout and are
// not paced unless configured.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.DBPath = "classifieds.db"
	c.LogLevel = "info"
	c.RequestTimeout = 0
	c.RateLimit = 0
	c.RateBurst = 1
	c.ExportDir = "exports"
	c.DownloadDir = "downloads"
}

// LoadConfig applies defaults, environment, JSON and flags in that order.
// Invalid input panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
