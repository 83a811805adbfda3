package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"stockroom/internal/http/handlers"
	"stockroom/internal/repos"
)

type detail struct {
	Type string   `json:"type"`
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
}

type apiResponse struct {
	Status  int
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Detail  []detail        `json:"detail"`
}

// Minimal app wired like cmd/stockroom
func newAPIApp(t *testing.T, mw ...fiber.Handler) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	for _, h := range mw {
		app.Use(h)
	}
	handlers.NewDeps(db).Register(app)
	app.Use(handlers.NotFound)
	return app, db
}

func call(t *testing.T, app *fiber.App, method, path, body string) apiResponse {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	out := apiResponse{Status: resp.StatusCode}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("%s %s: bad json %q: %v", method, path, raw, err)
	}
	return out
}

func TestStockLifecycle(t *testing.T) {
	app, _ := newAPIApp(t)

	r := call(t, app, "POST", "/store", `{"name":"Nike"}`)
	if r.Status != http.StatusCreated || r.Message != "Store created successfully" {
		t.Fatalf("create store: %+v", r)
	}
	if string(r.Data) != `{"id":1,"name":"Nike"}` {
		t.Fatalf("store data: %s", r.Data)
	}
	if r = call(t, app, "POST", "/product", `{"name":"Air Max"}`); r.Status != http.StatusCreated {
		t.Fatalf("create product: %+v", r)
	}

	r = call(t, app, "POST", "/stock",
		`{"store_id":1,"product_id":1,"price":300,"is_available":true,"category":"Tênis"}`)
	if r.Status != http.StatusCreated || r.Message != "Stock created successfully" {
		t.Fatalf("create stock: %+v", r)
	}
	var st struct {
		ID          int64   `json:"id"`
		Price       float64 `json:"price"`
		IsAvailable bool    `json:"is_available"`
		Category    string  `json:"category"`
		ProductName string  `json:"product_name"`
		StoreName   string  `json:"store_name"`
	}
	if err := json.Unmarshal(r.Data, &st); err != nil {
		t.Fatal(err)
	}
	if st.ID != 1 || st.ProductName != "Air Max" || st.StoreName != "Nike" {
		t.Fatalf("stock view: %+v", st)
	}

	r = call(t, app, "PUT", "/stock/1", `{"price":1000}`)
	if r.Status != http.StatusOK || r.Message != "Stock updated successfully" {
		t.Fatalf("update stock: %+v", r)
	}
	if err := json.Unmarshal(r.Data, &st); err != nil {
		t.Fatal(err)
	}
	if st.Price != 1000 || !st.IsAvailable || st.Category != "Tênis" {
		t.Fatalf("partial update lost fields: %+v", st)
	}

	r = call(t, app, "GET", "/stores?name=nik", "")
	if r.Status != http.StatusOK || r.Message != "Stores fetched successfully" {
		t.Fatalf("list stores: %+v", r)
	}
	var stores []struct {
		Name  string            `json:"name"`
		Stock []json.RawMessage `json:"stock"`
	}
	if err := json.Unmarshal(r.Data, &stores); err != nil {
		t.Fatal(err)
	}
	if len(stores) != 1 || len(stores[0].Stock) != 1 {
		t.Fatalf("store listing: %s", r.Data)
	}

	r = call(t, app, "DELETE", "/store/1", "")
	if r.Status != http.StatusOK || string(r.Data) != `{"store_id":1}` {
		t.Fatalf("delete store: %+v %s", r, r.Data)
	}
	r = call(t, app, "GET", "/stocks?store_name=Nike", "")
	if r.Status != http.StatusNotFound || r.Detail[0].Msg != "No matching stocks found" {
		t.Fatalf("stocks after store delete: %+v", r)
	}
}

func TestStockCreateRejectsNonIntegerStoreID(t *testing.T) {
	app, _ := newAPIApp(t)
	r := call(t, app, "POST", "/stock",
		`{"store_id":"abc","product_id":1,"price":300,"is_available":true,"category":"Tênis"}`)
	if r.Status != http.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d", r.Status)
	}
	if len(r.Detail) != 1 || r.Detail[0].Type != "int_type" || r.Detail[0].Loc[1] != "store_id" {
		t.Fatalf("unexpected detail %+v", r.Detail)
	}
}

func TestStatusMapping(t *testing.T) {
	app, _ := newAPIApp(t)
	call(t, app, "POST", "/store", `{"name":"Nike"}`)
	call(t, app, "POST", "/product", `{"name":"Air Max"}`)
	call(t, app, "POST", "/stock", `{"store_id":1,"product_id":1,"price":300,"is_available":true,"category":"Tênis"}`)

	cases := []struct {
		method, path, body string
		status             int
		msg                string
	}{
		{"PUT", "/stock/1", `{}`, http.StatusUnprocessableEntity, "Nothing to update"},
		{"PUT", "/stock/1", `{"unknown":1}`, http.StatusUnprocessableEntity, "Nothing to update"},
		{"PUT", "/stock/99", `{"price":5}`, http.StatusNotFound, "Stock not found"},
		{"DELETE", "/stock/99", "", http.StatusNotFound, "Stock not found"},
		{"PUT", "/store/7", `{"name":"X"}`, http.StatusNotFound, "Store not found"},
		{"DELETE", "/product/7", "", http.StatusNotFound, "Product not found"},
		{"GET", "/products?name=zzz", "", http.StatusNotFound, "Product not found"},
		{"POST", "/stock", `{"store_id":1,"product_id":2,"price":1,"is_available":true,"category":"x"}`, http.StatusNotFound, "Product not found"},
		{"POST", "/stock", `{"store_id":3,"product_id":2,"price":1,"is_available":true,"category":"x"}`, http.StatusNotFound, "Store not found"},
		{"PUT", "/stock/abc", `{"price":5}`, http.StatusUnprocessableEntity, msgInt},
		{"GET", "/stocks?max_price=cheap", "", http.StatusUnprocessableEntity, "Input should be a valid number"},
		{"POST", "/store", `{"name":`, http.StatusUnprocessableEntity, "JSON decode error"},
		{"POST", "/product", `{}`, http.StatusUnprocessableEntity, "Field required"},
		{"GET", "/nowhere", "", http.StatusNotFound, "Not Found"},
	}
	for _, tc := range cases {
		r := call(t, app, tc.method, tc.path, tc.body)
		if r.Status != tc.status {
			t.Fatalf("%s %s: want %d, got %d (%+v)", tc.method, tc.path, tc.status, r.Status, r.Detail)
		}
		if len(r.Detail) == 0 || r.Detail[0].Msg != tc.msg {
			t.Fatalf("%s %s: want msg %q, got %+v", tc.method, tc.path, tc.msg, r.Detail)
		}
	}
}

const msgInt = "Input should be a valid integer"

func TestStockDeleteReturnsID(t *testing.T) {
	app, _ := newAPIApp(t)
	call(t, app, "POST", "/store", `{"name":"Nike"}`)
	call(t, app, "POST", "/product", `{"name":"Air Max"}`)
	call(t, app, "POST", "/stock", `{"store_id":1,"product_id":1,"price":300,"is_available":true,"category":"Tênis"}`)

	r := call(t, app, "DELETE", "/stock/1", "")
	if r.Status != http.StatusOK || string(r.Data) != `{"stock_id":1}` {
		t.Fatalf("delete stock: %+v %s", r, r.Data)
	}
	r = call(t, app, "GET", "/products", "")
	if r.Status != http.StatusOK || string(r.Data) != `[{"id":1,"name":"Air Max","stock":[]}]` {
		t.Fatalf("product after stock delete: %s", r.Data)
	}
}
