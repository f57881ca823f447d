// Package config loads runtime configuration for the rentkeeper terminal
// client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the rentkeeper API
//	-t int      per-request timeout (seconds)
//	-n          non-interactive run: skip the startup session check
//	-l string   log level (debug, info, warn, error)
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "api_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "interactive": true,
//	  "log_level": "info"
//	}
package config
