// Package chiapi serves the same REST surface as the Fiber handlers on
// net/http with chi.
package chiapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/rs/cors"

	"stockroom/internal/http/respond"
	applog "stockroom/internal/log"
	"stockroom/internal/services"
)

type Options struct {
	BodyLimit   int64
	CORSOrigins []string
}

// Handler exposes store/product/stock endpoints.
type Handler struct {
	stores    *services.StoreService
	products  *services.ProductService
	stocks    *services.StockService
	bodyLimit int64
}

func NewHandler(db *sqlx.DB, opts Options) *Handler {
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = 1 << 20
	}
	return &Handler{
		stores:    services.NewStoreService(db),
		products:  services.NewProductService(db),
		stocks:    services.NewStockService(db),
		bodyLimit: opts.BodyLimit,
	}
}

// NewRouter builds the full middleware stack around the routes.
func NewRouter(db *sqlx.DB, opts Options) http.Handler {
	h := NewHandler(db, opts)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	h.RegisterRoutes(router)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, respond.Message("Not Found", ""))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, respond.Message("Method Not Allowed", ""))
	})

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/store", h.createStore)
	r.Get("/stores", h.listStores)
	r.Put("/store/{id}", h.updateStore)
	r.Delete("/store/{id}", h.deleteStore)

	r.Post("/product", h.createProduct)
	r.Get("/products", h.listProducts)
	r.Put("/product/{id}", h.updateProduct)
	r.Delete("/product/{id}", h.deleteProduct)

	r.Post("/stock", h.createStock)
	r.Get("/stocks", h.listStocks)
	r.Put("/stock/{id}", h.updateStock)
	r.Delete("/stock/{id}", h.deleteStock)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) ok(w http.ResponseWriter, r *http.Request, status int, action, message string, data any, fields map[string]any) {
	if action != "" {
		applog.HTTPAudit(r, status, action, fields)
	}
	writeJSON(w, status, respond.OK(message, data))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, action string, err error, fields map[string]any) {
	status, body := respond.Failure(err)
	if status >= http.StatusInternalServerError {
		applog.HTTPError(r, status, action, err, fields)
	} else {
		applog.HTTPWarn(r, status, action, err, fields)
	}
	writeJSON(w, status, body)
}

// readBody returns the raw body, answering 413 itself when it is too large.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.bodyLimit))
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		writeJSON(w, http.StatusRequestEntityTooLarge, respond.Message("Request Entity Too Large", ""))
		return nil, false
	case err != nil:
		writeJSON(w, http.StatusBadRequest, respond.Message("Bad request", err.Error()))
		return nil, false
	}
	return b, true
}

func query(r *http.Request) func(string) string {
	q := r.URL.Query()
	return q.Get
}
