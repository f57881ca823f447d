package config

import "time"

// Config holds runtime settings for the terminal client.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	Interactive    bool
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.Interactive = true
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then the config file (if any), then flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
