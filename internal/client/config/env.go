package config

import (
	"errors"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// dotenvFile is read relative to the working directory when present.
var dotenvFile = ".env"

// parseEnv overlays Config with CLASSIFIEDS_* environment variables. A .env
// file, if any, seeds variables that are not already set. Unset variables
// leave the current values alone.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
