package config_test

import (
	"os"
	"testing"
	"time"

	"stockroom/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env here
	for _, k := range []string{"PORT", "HTTP_ENGINE", "DB_DRIVER", "DB_DSN", "BODY_LIMIT", "RATE_LIMIT", "SEED_DEMO", "SHUTDOWN_TIMEOUT", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := config.Load()
	if cfg.Port != "8080" || cfg.Engine != "fiber" || cfg.DBDriver != "sqlite" || cfg.DBDSN != "stockroom.db" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.BodyLimit != 1<<20 || cfg.RateLimit != 0 || cfg.SeedDemo || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_ENGINE", "CHI")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://localhost/stockroom?sslmode=disable")
	t.Setenv("RATE_LIMIT", "120")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("BODY_LIMIT", "not-a-number")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := config.Load()
	if cfg.Engine != "chi" || cfg.DBDriver != "postgres" || cfg.RateLimit != 120 || !cfg.SeedDemo {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
	if cfg.BodyLimit != 1<<20 {
		t.Fatalf("bad BODY_LIMIT should fall back, got %d", cfg.BodyLimit)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestLoadUnknownEngineFallsBack(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_ENGINE", "gin")
	if cfg := config.Load(); cfg.Engine != "fiber" {
		t.Fatalf("want fiber, got %s", cfg.Engine)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
