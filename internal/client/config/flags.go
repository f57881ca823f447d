package config

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/flagx"
)

var errBadTimeout = errors.New("request timeout must be positive")

// parseFlags overlays cfg with command-line flags. Only the flags listed here
// are looked at; the rest of os.Args is left to other parsers.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-l"}, "-n")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "base URL of the rentkeeper API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	nonInteractive := fs.Bool("n", !cfg.Interactive, "non-interactive run, skip the session check")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	if *timeout <= 0 {
		panic(errBadTimeout)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.Interactive = !*nonInteractive
}
