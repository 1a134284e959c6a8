package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/classifieds/internal/flagx"
	"github.com/dmitrijs2005/classifieds/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Absent fields
// keep the value from earlier sources.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_url"`
	DBPath         *string         `json:"db_path"`
	LogLevel       *string         `json:"log_level"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	RateLimit      *float64        `json:"rate_limit"`
	RateBurst      *int            `json:"rate_burst"`
	ExportDir      *string         `json:"export_dir"`
	DownloadDir    *string         `json:"download_dir"`
}

// parseJson overlays Config with the file named by -c/-config. Read or
// decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set(&cfg.APIBaseURL, jc.APIBaseURL)
	set(&cfg.DBPath, jc.DBPath)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.RateLimit, jc.RateLimit)
	set(&cfg.RateBurst, jc.RateBurst)
	set(&cfg.ExportDir, jc.ExportDir)
	set(&cfg.DownloadDir, jc.DownloadDir)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
