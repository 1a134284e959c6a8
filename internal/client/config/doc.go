// Package config loads runtime configuration for the classifieds CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment, optionally seeded from a .env file in the working
//     directory (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags).
//
// Later sources override earlier ones.
//
// Environment
//
//	CLASSIFIEDS_API_URL          backend origin
//	CLASSIFIEDS_DB_PATH          SQLite file holding the session
//	CLASSIFIEDS_LOG_LEVEL        debug, info, warn or error
//	CLASSIFIEDS_REQUEST_TIMEOUT  Go duration, 0 disables the timeout
//	CLASSIFIEDS_RATE_LIMIT       requests per second, 0 disables pacing
//	CLASSIFIEDS_RATE_BURST       burst size for pacing
//	CLASSIFIEDS_EXPORT_DIR       directory for admin exports
//	CLASSIFIEDS_DOWNLOAD_DIR     directory for downloaded images
//
// Supported flags
//
//	-a string   backend origin
//	-d string   session database path
//	-l string   log level
//	-t int      request timeout (seconds)
//	-r float    rate limit (requests per second)
//
// # JSON schema
//
//	{
//	  "api_url": "http://127.0.0.1:8000",
//	  "db_path": "classifieds.db",
//	  "log_level": "info",
//	  "request_timeout": "30s",
//	  "rate_limit": 5,
//	  "rate_burst": 2,
//	  "export_dir": "exports",
//	  "download_dir": "downloads"
//	}
package config
