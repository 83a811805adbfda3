package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type ProductHandler struct {
	Products *services.ProductService
}

// POST /product
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	payload, err := validate.Object(c.Body())
	if err != nil {
		return fail(c, "product.create.fail", err, nil)
	}
	name, err := validate.Name(payload)
	if err != nil {
		return fail(c, "product.create.fail", err, nil)
	}
	p, err := h.Products.Create(c.UserContext(), name)
	if err != nil {
		return fail(c, "product.create.fail", err, nil)
	}
	return reply(c, fiber.StatusCreated, "product.create", "Product created successfully", p, map[string]any{"product_id": p.ID, "name": p.Name})
}

// GET /products?id=&name=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f, err := validate.NameFilter(query(c))
	if err != nil {
		return fail(c, "product.list.fail", err, nil)
	}
	products, err := h.Products.List(c.UserContext(), f)
	if err != nil {
		return fail(c, "product.list.fail", err, nil)
	}
	return reply(c, fiber.StatusOK, "", "Products fetched successfully", products, nil)
}

// PUT /product/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := validate.ID("product_id", c.Params("id"))
	if err != nil {
		return fail(c, "product.update.fail", err, nil)
	}
	payload, err := validate.Object(c.Body())
	if err != nil {
		return fail(c, "product.update.fail", err, nil)
	}
	name, err := validate.Name(payload)
	if err != nil {
		return fail(c, "product.update.fail", err, map[string]any{"product_id": id})
	}
	p, err := h.Products.Update(c.UserContext(), id, name)
	if err != nil {
		return fail(c, "product.update.fail", err, map[string]any{"product_id": id})
	}
	return reply(c, fiber.StatusOK, "product.update", "Product updated successfully", p, map[string]any{"product_id": id, "name": name})
}

// DELETE /product/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := validate.ID("product_id", c.Params("id"))
	if err != nil {
		return fail(c, "product.delete.fail", err, nil)
	}
	res, err := h.Products.Delete(c.UserContext(), id)
	if err != nil {
		return fail(c, "product.delete.fail", err, map[string]any{"product_id": id})
	}
	return reply(c, fiber.StatusOK, "product.delete", "Product deleted successfully", res, map[string]any{"product_id": id})
}
