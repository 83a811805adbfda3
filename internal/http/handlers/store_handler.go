package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type StoreHandler struct {
	Stores *services.StoreService
}

// POST /store
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	payload, err := validate.Object(c.Body())
	if err != nil {
		return fail(c, "store.create.fail", err, nil)
	}
	name, err := validate.Name(payload)
	if err != nil {
		return fail(c, "store.create.fail", err, nil)
	}
	s, err := h.Stores.Create(c.UserContext(), name)
	if err != nil {
		return fail(c, "store.create.fail", err, nil)
	}
	return reply(c, fiber.StatusCreated, "store.create", "Store created successfully", s, map[string]any{"store_id": s.ID, "name": s.Name})
}

// GET /stores?id=&name=
func (h *StoreHandler) List(c *fiber.Ctx) error {
	f, err := validate.NameFilter(query(c))
	if err != nil {
		return fail(c, "store.list.fail", err, nil)
	}
	stores, err := h.Stores.List(c.UserContext(), f)
	if err != nil {
		return fail(c, "store.list.fail", err, nil)
	}
	return reply(c, fiber.StatusOK, "", "Stores fetched successfully", stores, nil)
}

// PUT /store/:id
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	id, err := validate.ID("store_id", c.Params("id"))
	if err != nil {
		return fail(c, "store.update.fail", err, nil)
	}
	payload, err := validate.Object(c.Body())
	if err != nil {
		return fail(c, "store.update.fail", err, nil)
	}
	name, err := validate.Name(payload)
	if err != nil {
		return fail(c, "store.update.fail", err, map[string]any{"store_id": id})
	}
	s, err := h.Stores.Update(c.UserContext(), id, name)
	if err != nil {
		return fail(c, "store.update.fail", err, map[string]any{"store_id": id})
	}
	return reply(c, fiber.StatusOK, "store.update", "Store updated successfully", s, map[string]any{"store_id": id, "name": name})
}

// DELETE /store/:id
func (h *StoreHandler) Delete(c *fiber.Ctx) error {
	id, err := validate.ID("store_id", c.Params("id"))
	if err != nil {
		return fail(c, "store.delete.fail", err, nil)
	}
	res, err := h.Stores.Delete(c.UserContext(), id)
	if err != nil {
		return fail(c, "store.delete.fail", err, map[string]any{"store_id": id})
	}
	return reply(c, fiber.StatusOK, "store.delete", "Store deleted successfully", res, map[string]any{"store_id": id})
}
