package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded before reading the environment when it exists. Real
// environment variables win over its entries.
var envFile = ".env"

// parseEnv overlays cfg with RK_* environment variables. Malformed numbers
// and booleans panic, like malformed flags.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(envFile)

	setString(&cfg.ListenAddr, "RK_LISTEN_ADDR")
	setString(&cfg.DatabaseDSN, "RK_DATABASE_DSN")
	setString(&cfg.SecretKey, "RK_SECRET_KEY")
	setString(&cfg.RedisAddr, "RK_REDIS_ADDR")
	setString(&cfg.RedisPassword, "RK_REDIS_PASSWORD")
	setString(&cfg.LogLevel, "RK_LOG_LEVEL")
	setString(&cfg.LogFormat, "RK_LOG_FORMAT")

	if v, ok := os.LookupEnv("RK_TOKEN_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.TokenValidityDuration = d
	}
	setBool(&cfg.RunMigrations, "RK_RUN_MIGRATIONS")
	setBool(&cfg.CookieSecure, "RK_COOKIE_SECURE")

	if v, ok := os.LookupEnv("RK_AUTH_RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(err)
		}
		cfg.AuthRateLimit = f
	}
	if v, ok := os.LookupEnv("RK_AUTH_RATE_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.AuthRateBurst = n
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(err)
	}
	*dst = b
}
