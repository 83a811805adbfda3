package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	applog "stockroom/internal/log"
)

type Config struct {
	Port            string
	Engine          string // fiber | chi
	DBDriver        string // sqlite | postgres
	DBDSN           string
	LogFile         string
	LogLevel        string
	BodyLimit       int
	RateLimit       int // requests per minute per IP, 0 disables
	SeedDemo        bool
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	n, err := strconv.Atoi(getenv(key, ""))
	if err != nil {
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	b, err := strconv.ParseBool(getenv(key, ""))
	if err != nil {
		return def
	}
	return b
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		applog.L().Warn().Err(err).Msg("config: could not parse .env")
	}

	engine := strings.ToLower(getenv("HTTP_ENGINE", "fiber"))
	if engine != "chi" {
		engine = "fiber"
	}
	driver := strings.ToLower(getenv("DB_DRIVER", "sqlite"))
	dsn := getenv("DB_DSN", "")
	if dsn == "" && driver == "sqlite" {
		dsn = "stockroom.db" // sqlite file in project root
	}

	var origins []string
	for _, o := range strings.Split(getenv("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	cfg := Config{
		Port:            getenv("PORT", "8080"),
		Engine:          engine,
		DBDriver:        driver,
		DBDSN:           dsn,
		LogFile:         getenv("LOG_FILE", ""),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		BodyLimit:       atoienv("BODY_LIMIT", 1<<20),
		RateLimit:       atoienv("RATE_LIMIT", 0),
		SeedDemo:        boolenv("SEED_DEMO", false),
		ShutdownTimeout: time.Duration(atoienv("SHUTDOWN_TIMEOUT", 10)) * time.Second,
		CORSOrigins:     origins,
	}
	applog.L().Info().
		Str("port", cfg.Port).
		Str("engine", cfg.Engine).
		Str("db_driver", cfg.DBDriver).
		Str("log_file", cfg.LogFile).
		Int("rate_limit", cfg.RateLimit).
		Bool("seed_demo", cfg.SeedDemo).
		Msg("config loaded")
	return cfg
}
