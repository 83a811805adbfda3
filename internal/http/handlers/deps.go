package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"stockroom/internal/http/respond"
	applog "stockroom/internal/log"
	"stockroom/internal/services"
)

type Deps struct {
	StoreHandler   *StoreHandler
	ProductHandler *ProductHandler
	StockHandler   *StockHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	return &Deps{
		StoreHandler:   &StoreHandler{Stores: services.NewStoreService(db)},
		ProductHandler: &ProductHandler{Products: services.NewProductService(db)},
		StockHandler:   &StockHandler{Stocks: services.NewStockService(db)},
	}
}

// Register mounts the REST surface on r.
func (d *Deps) Register(r fiber.Router) {
	r.Post("/store", d.StoreHandler.Create)
	r.Get("/stores", d.StoreHandler.List)
	r.Put("/store/:id", d.StoreHandler.Update)
	r.Delete("/store/:id", d.StoreHandler.Delete)

	r.Post("/product", d.ProductHandler.Create)
	r.Get("/products", d.ProductHandler.List)
	r.Put("/product/:id", d.ProductHandler.Update)
	r.Delete("/product/:id", d.ProductHandler.Delete)

	r.Post("/stock", d.StockHandler.Create)
	r.Get("/stocks", d.StockHandler.List)
	r.Put("/stock/:id", d.StockHandler.Update)
	r.Delete("/stock/:id", d.StockHandler.Delete)
}

// ErrorHandler turns errors that escaped a handler into the failure envelope
// without leaking internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		c.Status(fe.Code)
		if fe.Code >= fiber.StatusInternalServerError {
			applog.Error(c, "server.error", err, nil)
		}
		return c.JSON(respond.Message(fe.Message, ""))
	}
	c.Status(fiber.StatusInternalServerError)
	applog.Error(c, "server.error", err, nil)
	return c.JSON(respond.Message("Something went wrong. Please try again.", ""))
}

// NotFound is the catch-all for unknown routes.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(respond.Message("Not Found", ""))
}
