package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/classifieds/internal/flagx"
)

// parseFlags overlays Config with command-line flags. Only the flags below
// are looked at, so the REPL can keep its own arguments:
//
//	-a string   backend origin
//	-d string   session database path
//	-l string   log level
//	-t int      request timeout in seconds
//	-r float    rate limit in requests per second
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend origin, e.g. http://127.0.0.1:8000")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local session database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.Float64Var(&cfg.RateLimit, "r", cfg.RateLimit, "max requests per second (0 = unlimited)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout in seconds (0 = none)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Sub-second timeouts from earlier sources survive unless -t is given.
	if flagx.Visited(fs, "t") {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}
}
