package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type StockHandler struct {
	Stocks *services.StockService
}

// POST /stock
func (h *StockHandler) Create(c *fiber.Ctx) error {
	payload, err := validate.Object(c.Body())
	if err != nil {
		return fail(c, "stock.create.fail", err, nil)
	}
	in, err := validate.StockCreate(payload)
	if err != nil {
		return fail(c, "stock.create.fail", err, nil)
	}
	st, err := h.Stocks.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, "stock.create.fail", err, map[string]any{"store_id": in.StoreID, "product_id": in.ProductID})
	}
	return reply(c, fiber.StatusCreated, "stock.create", "Stock created successfully", st, map[string]any{"stock_id": st.ID, "store_id": st.StoreID, "product_id": st.ProductID})
}

// GET /stocks?product_name=&store_name=&max_price=&is_available=&category=
func (h *StockHandler) List(c *fiber.Ctx) error {
	f, err := validate.StockFilter(query(c))
	if err != nil {
		return fail(c, "stock.list.fail", err, nil)
	}
	stocks, err := h.Stocks.List(c.UserContext(), f)
	if err != nil {
		return fail(c, "stock.list.fail", err, nil)
	}
	return reply(c, fiber.StatusOK, "", "Stocks fetched successfully", stocks, nil)
}

// PUT /stock/:id
func (h *StockHandler) Update(c *fiber.Ctx) error {
	id, err := validate.ID("stock_id", c.Params("id"))
	if err != nil {
		return fail(c, "stock.update.fail", err, nil)
	}
	payload, err := validate.Object(c.Body())
	if err != nil {
		return fail(c, "stock.update.fail", err, nil)
	}
	patch, err := validate.StockUpdate(payload)
	if err != nil {
		return fail(c, "stock.update.fail", err, map[string]any{"stock_id": id})
	}
	st, err := h.Stocks.Update(c.UserContext(), id, patch)
	if err != nil {
		return fail(c, "stock.update.fail", err, map[string]any{"stock_id": id})
	}
	return reply(c, fiber.StatusOK, "stock.update", "Stock updated successfully", st, map[string]any{"stock_id": id})
}

// DELETE /stock/:id
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id, err := validate.ID("stock_id", c.Params("id"))
	if err != nil {
		return fail(c, "stock.delete.fail", err, nil)
	}
	res, err := h.Stocks.Delete(c.UserContext(), id)
	if err != nil {
		return fail(c, "stock.delete.fail", err, map[string]any{"stock_id": id})
	}
	return reply(c, fiber.StatusOK, "stock.delete", "Stock deleted successfully", res, map[string]any{"stock_id": id})
}
