package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const defaultSessionSecret = "india-hotel-booking-secret-key"

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	DBDriver       string
	DBDSN          string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CacheTTL       time.Duration
	SessionSecret  string
	RequestTimeout time.Duration
}

// Load reads the environment, after an optional .env in the working directory.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}
	return FromEnv()
}

func FromEnv() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer; using default")
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		DBDriver:       env("DB_DRIVER", "sqlite"),
		DBDSN:          env("DB_DSN", "file:hotel_booking.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		SessionSecret:  env("SESSION_SECRET", defaultSessionSecret),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
	}
	if c.SessionSecret == defaultSessionSecret && c.AppEnv != "dev" && c.AppEnv != "development" {
		log.Warn().Msg("SESSION_SECRET is the built-in default")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
