package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/rentkeeper/internal/flagx"
	"github.com/dmitrijs2005/rentkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of Config. Absent keys leave the current
// value alone.
type FileConfig struct {
	APIURL         string         `json:"api_url" yaml:"api_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	Interactive    *bool          `json:"interactive" yaml:"interactive"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics when
// the file cannot be read or decoded.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.APIURL != "" {
		cfg.APIURL = fc.APIURL
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.Interactive != nil {
		cfg.Interactive = *fc.Interactive
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
