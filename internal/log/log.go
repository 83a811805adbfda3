package log

import (
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// SetOutput replaces the sink. Lines are JSON objects, one per event.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(w).Level(logger.GetLevel()).With().Timestamp().Logger()
}

// SetLevel accepts zerolog level names; unknown names keep the current level.
func SetLevel(name string) {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(lvl)
}

// L returns the process logger for events not tied to a request.
func L() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// request is what both HTTP engines know about the current request.
type request struct {
	id, ip, method, path string
	status               int
}

func fromFiber(c *fiber.Ctx) *request {
	if c == nil {
		return nil
	}
	r := &request{ip: c.IP(), method: c.Method(), path: c.Path(), status: c.Response().StatusCode()}
	if rid, ok := c.Locals("requestid").(string); ok {
		r.id = rid
	}
	return r
}

func fromHTTP(req *http.Request, status int) *request {
	if req == nil {
		return nil
	}
	return &request{
		id:     middleware.GetReqID(req.Context()),
		ip:     req.RemoteAddr,
		method: req.Method,
		path:   req.URL.Path,
		status: status,
	}
}

func write(ev *zerolog.Event, r *request, action string, err error, fields map[string]any) {
	if r != nil {
		if r.id != "" {
			ev = ev.Str("req_id", r.id)
		}
		ev = ev.Str("ip", r.ip).Str("method", r.method).Str("path", r.path)
		if r.status != 0 {
			ev = ev.Int("status", r.status)
		}
	}
	ev = ev.Str("action", action)
	if err != nil {
		ev = ev.Err(err)
	}
	if len(fields) > 0 {
		ev = ev.Dict("fields", zerolog.Dict().Fields(fields))
	}
	ev.Send()
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(L().Info(), fromFiber(c), action, nil, fields)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(L().Info().Str("category", "audit"), fromFiber(c), action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(L().Warn(), fromFiber(c), action, nil, fields)
}

// Warn records a rejected request (client-side failure).
func Warn(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(L().Warn(), fromFiber(c), action, err, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(L().Error(), fromFiber(c), action, err, fields)
}

// net/http counterparts used by the chi engine.

func HTTPAudit(r *http.Request, status int, action string, fields map[string]any) {
	write(L().Info().Str("category", "audit"), fromHTTP(r, status), action, nil, fields)
}

func HTTPWarn(r *http.Request, status int, action string, err error, fields map[string]any) {
	write(L().Warn(), fromHTTP(r, status), action, err, fields)
}

func HTTPError(r *http.Request, status int, action string, err error, fields map[string]any) {
	write(L().Error(), fromHTTP(r, status), action, err, fields)
}
