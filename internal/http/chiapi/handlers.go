package chiapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stockroom/internal/validate"
)

// ── Store ────────────────────────────────────────────────

func (h *Handler) createStore(w http.ResponseWriter, r *http.Request) {
	name, ok := h.name(w, r, "store.create.fail")
	if !ok {
		return
	}
	s, err := h.stores.Create(r.Context(), name)
	if err != nil {
		h.fail(w, r, "store.create.fail", err, nil)
		return
	}
	h.ok(w, r, http.StatusCreated, "store.create", "Store created successfully", s, map[string]any{"store_id": s.ID, "name": s.Name})
}

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	f, err := validate.NameFilter(query(r))
	if err != nil {
		h.fail(w, r, "store.list.fail", err, nil)
		return
	}
	stores, err := h.stores.List(r.Context(), f)
	if err != nil {
		h.fail(w, r, "store.list.fail", err, nil)
		return
	}
	h.ok(w, r, http.StatusOK, "", "Stores fetched successfully", stores, nil)
}

func (h *Handler) updateStore(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID("store_id", chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "store.update.fail", err, nil)
		return
	}
	name, ok := h.name(w, r, "store.update.fail")
	if !ok {
		return
	}
	s, err := h.stores.Update(r.Context(), id, name)
	if err != nil {
		h.fail(w, r, "store.update.fail", err, map[string]any{"store_id": id})
		return
	}
	h.ok(w, r, http.StatusOK, "store.update", "Store updated successfully", s, map[string]any{"store_id": id, "name": name})
}

func (h *Handler) deleteStore(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID("store_id", chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "store.delete.fail", err, nil)
		return
	}
	res, err := h.stores.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, "store.delete.fail", err, map[string]any{"store_id": id})
		return
	}
	h.ok(w, r, http.StatusOK, "store.delete", "Store deleted successfully", res, map[string]any{"store_id": id})
}

// ── Product ──────────────────────────────────────────────

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	name, ok := h.name(w, r, "product.create.fail")
	if !ok {
		return
	}
	p, err := h.products.Create(r.Context(), name)
	if err != nil {
		h.fail(w, r, "product.create.fail", err, nil)
		return
	}
	h.ok(w, r, http.StatusCreated, "product.create", "Product created successfully", p, map[string]any{"product_id": p.ID, "name": p.Name})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	f, err := validate.NameFilter(query(r))
	if err != nil {
		h.fail(w, r, "product.list.fail", err, nil)
		return
	}
	products, err := h.products.List(r.Context(), f)
	if err != nil {
		h.fail(w, r, "product.list.fail", err, nil)
		return
	}
	h.ok(w, r, http.StatusOK, "", "Products fetched successfully", products, nil)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID("product_id", chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "product.update.fail", err, nil)
		return
	}
	name, ok := h.name(w, r, "product.update.fail")
	if !ok {
		return
	}
	p, err := h.products.Update(r.Context(), id, name)
	if err != nil {
		h.fail(w, r, "product.update.fail", err, map[string]any{"product_id": id})
		return
	}
	h.ok(w, r, http.StatusOK, "product.update", "Product updated successfully", p, map[string]any{"product_id": id, "name": name})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID("product_id", chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "product.delete.fail", err, nil)
		return
	}
	res, err := h.products.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, "product.delete.fail", err, map[string]any{"product_id": id})
		return
	}
	h.ok(w, r, http.StatusOK, "product.delete", "Product deleted successfully", res, map[string]any{"product_id": id})
}

// ── Stock ────────────────────────────────────────────────

func (h *Handler) createStock(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.object(w, r, "stock.create.fail")
	if !ok {
		return
	}
	in, err := validate.StockCreate(payload)
	if err != nil {
		h.fail(w, r, "stock.create.fail", err, nil)
		return
	}
	st, err := h.stocks.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, "stock.create.fail", err, map[string]any{"store_id": in.StoreID, "product_id": in.ProductID})
		return
	}
	h.ok(w, r, http.StatusCreated, "stock.create", "Stock created successfully", st,
		map[string]any{"stock_id": st.ID, "store_id": st.StoreID, "product_id": st.ProductID})
}

func (h *Handler) listStocks(w http.ResponseWriter, r *http.Request) {
	f, err := validate.StockFilter(query(r))
	if err != nil {
		h.fail(w, r, "stock.list.fail", err, nil)
		return
	}
	stocks, err := h.stocks.List(r.Context(), f)
	if err != nil {
		h.fail(w, r, "stock.list.fail", err, nil)
		return
	}
	h.ok(w, r, http.StatusOK, "", "Stocks fetched successfully", stocks, nil)
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID("stock_id", chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "stock.update.fail", err, nil)
		return
	}
	payload, ok := h.object(w, r, "stock.update.fail")
	if !ok {
		return
	}
	patch, err := validate.StockUpdate(payload)
	if err != nil {
		h.fail(w, r, "stock.update.fail", err, map[string]any{"stock_id": id})
		return
	}
	st, err := h.stocks.Update(r.Context(), id, patch)
	if err != nil {
		h.fail(w, r, "stock.update.fail", err, map[string]any{"stock_id": id})
		return
	}
	h.ok(w, r, http.StatusOK, "stock.update", "Stock updated successfully", st, map[string]any{"stock_id": id})
}

func (h *Handler) deleteStock(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID("stock_id", chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "stock.delete.fail", err, nil)
		return
	}
	res, err := h.stocks.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, "stock.delete.fail", err, map[string]any{"stock_id": id})
		return
	}
	h.ok(w, r, http.StatusOK, "stock.delete", "Stock deleted successfully", res, map[string]any{"stock_id": id})
}

// ── helpers ──────────────────────────────────────────────

// object reads and decodes the body; on failure the response is already written.
func (h *Handler) object(w http.ResponseWriter, r *http.Request, action string) (map[string]any, bool) {
	b, ok := h.readBody(w, r)
	if !ok {
		return nil, false
	}
	payload, err := validate.Object(b)
	if err != nil {
		h.fail(w, r, action, err, nil)
		return nil, false
	}
	return payload, true
}

func (h *Handler) name(w http.ResponseWriter, r *http.Request, action string) (string, bool) {
	payload, ok := h.object(w, r, action)
	if !ok {
		return "", false
	}
	name, err := validate.Name(payload)
	if err != nil {
		h.fail(w, r, action, err, nil)
		return "", false
	}
	return name, true
}
