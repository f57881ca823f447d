package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.APIURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.True(t, c.Interactive)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name:     "all flags",
			args:     []string{"-a", "http://api:9000", "-t", "3", "-n", "-l", "debug"},
			expected: &Config{APIURL: "http://api:9000", RequestTimeout: 3 * time.Second, Interactive: false, LogLevel: "debug"},
		},
		{
			name:     "unknown flags ignored",
			args:     []string{"-x", "1", "-a=http://h:1", "-c", "cfg.json"},
			expected: &Config{APIURL: "http://h:1", RequestTimeout: 10 * time.Second, Interactive: true, LogLevel: "warn"},
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, expectPanic: true},
		{name: "zero timeout", args: []string{"-t", "0"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			cfg := defaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg) })
			if diff := cmp.Diff(tt.expected, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "client.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"api_url":"http://json:1","request_timeout":"2s","interactive":false}`), 0o600))

	yamlPath := filepath.Join(dir, "client.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("api_url: http://yaml:2\nlog_level: debug\n"), 0o600))

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{ not json`), 0o600))

	t.Run("json", func(t *testing.T) {
		withArgs(t, "-config", jsonPath)
		cfg := defaults()
		parseFile(cfg)

		want := &Config{APIURL: "http://json:1", RequestTimeout: 2 * time.Second, Interactive: false, LogLevel: "warn"}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("yaml keeps unset values", func(t *testing.T) {
		withArgs(t, "-c", yamlPath)
		cfg := defaults()
		parseFile(cfg)

		want := &Config{APIURL: "http://yaml:2", RequestTimeout: 10 * time.Second, Interactive: true, LogLevel: "debug"}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("no file", func(t *testing.T) {
		withArgs(t)
		cfg := defaults()
		parseFile(cfg)
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("missing file panics", func(t *testing.T) {
		withArgs(t, "-c", filepath.Join(dir, "nope.json"))
		require.Panics(t, func() { parseFile(defaults()) })
	})

	t.Run("invalid json panics", func(t *testing.T) {
		withArgs(t, "-c", badPath)
		require.Panics(t, func() { parseFile(defaults()) })
	})
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_url":"http://file:1","log_level":"info"}`), 0o600))

	withArgs(t, "-c", path, "-a", "http://flag:2")
	cfg := LoadConfig()

	assert.Equal(t, "http://flag:2", cfg.APIURL)
	assert.Equal(t, "info", cfg.LogLevel)
}
