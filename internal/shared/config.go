package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	APIBase    string
	APILogging bool
	APITimeout time.Duration
	APIRPS     int

	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string

	CacheTTL     time.Duration
	SessionTTL   time.Duration
	CookieSecure bool
	DefaultLang  string

	WarmHotelIDs []int64
	WarmWorkers  int
}

// Load reads the environment, after an optional .env file (ENV_FILE, default
// ".env"). Real environment variables win over the file.
func Load() Config {
	file := env("ENV_FILE", ".env")
	if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", file).Msg("env file not loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		LogLevel:     env("LOG_LEVEL", "info"),
		HTTPAddr:     env("HTTP_ADDR", ":8081"),
		MetricsAddr:  env("METRICS_ADDR", ""),
		APIBase:      env("API_BASE_URL", env("VITE_API_URL", env("VITE_API_BASE_URL", "http://localhost:8080"))),
		APILogging:   boolEnv("API_LOGGING", false),
		APITimeout:   time.Duration(atoi("API_TIMEOUT", 30000)) * time.Millisecond,
		APIRPS:       atoi("API_RPS", 20),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotelos?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 60)) * time.Second,
		SessionTTL:   time.Duration(atoi("SESSION_TTL_SECONDS", 300)) * time.Second,
		CookieSecure: boolEnv("COOKIE_SECURE", false),
		DefaultLang:  env("DEFAULT_LANG", "en"),
		WarmHotelIDs: ids(os.Getenv("WARM_HOTEL_IDS")),
		WarmWorkers:  atoi("WARM_WORKERS", 4),
	}
	if c.APIRPS <= 0 {
		c.APIRPS = 20
	}
	if c.WarmWorkers <= 0 {
		c.WarmWorkers = 1
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolEnv(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// ids parses a comma separated id list, skipping anything malformed.
func ids(s string) []int64 {
	var out []int64
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n <= 0 {
			log.Warn().Str("value", p).Msg("ignoring bad hotel id")
			continue
		}
		out = append(out, n)
	}
	return out
}
