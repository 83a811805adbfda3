package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stockroom/internal/config"
	"stockroom/internal/http/chiapi"
	"stockroom/internal/http/handlers"
	"stockroom/internal/http/respond"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
)

func main() {
	cfg := config.Load()
	applog.SetLevel(cfg.LogLevel)

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.L().Warn().Err(err).Str("file", cfg.LogFile).Msg("could not open log file")
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.SetOutput(out)

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		applog.L().Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("open db")
	}
	defer db.Close()
	if cfg.SeedDemo {
		if err := repos.SeedIfEmpty(db); err != nil {
			applog.L().Fatal().Err(err).Msg("seed db")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port
	if cfg.Engine == "chi" {
		err = serveChi(ctx, cfg, db, addr)
	} else {
		err = serveFiber(ctx, cfg, db, addr, out)
	}
	if err != nil {
		applog.L().Fatal().Err(err).Str("engine", cfg.Engine).Msg("server stopped")
	}
	applog.L().Info().Msg("shutdown complete")
}

func newFiberApp(cfg config.Config, db *sqlx.DB, accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: true,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = cfg.BodyLimit

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{Output: accessLog}))
	app.Use(helmet.New())
	if cfg.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.limit.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(respond.Message("rate limit exceeded, retry soon", ""))
			},
		}))
	}

	// ---------- App handlers ----------
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	handlers.NewDeps(db).Register(app)
	app.Use(handlers.NotFound)
	return app
}

func serveFiber(ctx context.Context, cfg config.Config, db *sqlx.DB, addr string, accessLog io.Writer) error {
	app := newFiberApp(cfg, db, accessLog)
	errc := make(chan error, 1)
	go func() {
		applog.L().Info().Str("addr", addr).Str("engine", "fiber").Msg("listening")
		errc <- app.Listen(addr)
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		applog.L().Warn().Msg("shutting down...")
		return app.ShutdownWithTimeout(cfg.ShutdownTimeout)
	}
}

func serveChi(ctx context.Context, cfg config.Config, db *sqlx.DB, addr string) error {
	srv := &http.Server{
		Addr: addr,
		Handler: chiapi.NewRouter(db, chiapi.Options{
			BodyLimit:   int64(cfg.BodyLimit),
			CORSOrigins: cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		applog.L().Info().Str("addr", addr).Str("engine", "chi").Msg("listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		applog.L().Warn().Msg("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
