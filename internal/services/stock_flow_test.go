package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fixture struct {
	stores   *services.StoreService
	products *services.ProductService
	stocks   *services.StockService
	db       *sqlx.DB
}

func newFixture(t *testing.T) fixture {
	db := memdb(t)
	return fixture{
		stores:   services.NewStoreService(db),
		products: services.NewProductService(db),
		stocks:   services.NewStockService(db),
		db:       db,
	}
}

// nikeAirMax creates Store "Nike", Product "Air Max" and one stock row between them.
func (f fixture) nikeAirMax(t *testing.T) domain.StockView {
	t.Helper()
	ctx := context.Background()
	s, err := f.stores.Create(ctx, "Nike")
	if err != nil {
		t.Fatal(err)
	}
	p, err := f.products.Create(ctx, "Air Max")
	if err != nil {
		t.Fatal(err)
	}
	st, err := f.stocks.Create(ctx, domain.StockInput{
		StoreID: s.ID, ProductID: p.ID, Price: 300, IsAvailable: true, Category: "Tênis",
	})
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func notFound(t *testing.T, err error, msg string) {
	t.Helper()
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFound %q, got %v", msg, err)
	}
	if nf.Msg != msg {
		t.Fatalf("want %q, got %q", msg, nf.Msg)
	}
}

func TestCreateStockProjectsNames(t *testing.T) {
	f := newFixture(t)
	st := f.nikeAirMax(t)
	if st.ID != 1 || st.StoreID != 1 || st.ProductID != 1 {
		t.Fatalf("unexpected ids %+v", st)
	}
	if st.ProductName != "Air Max" || st.StoreName != "Nike" {
		t.Fatalf("derived names missing: %+v", st)
	}
	if st.Price != 300 || !st.IsAvailable || st.Category != "Tênis" {
		t.Fatalf("unexpected fields: %+v", st)
	}
}

func TestCreateStockChecksStoreBeforeProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.stocks.Create(ctx, domain.StockInput{StoreID: 9, ProductID: 9, Price: 1, Category: "x"})
	notFound(t, err, "Store not found")

	if _, err := f.stores.Create(ctx, "Nike"); err != nil {
		t.Fatal(err)
	}
	_, err = f.stocks.Create(ctx, domain.StockInput{StoreID: 1, ProductID: 9, Price: 1, Category: "x"})
	notFound(t, err, "Product not found")

	_, err = f.stocks.List(ctx, domain.StockFilter{})
	notFound(t, err, "No matching stocks found")
}

func TestUpdateStockPartial(t *testing.T) {
	f := newFixture(t)
	f.nikeAirMax(t)
	ctx := context.Background()

	st, err := f.stocks.Update(ctx, 1, domain.StockPatch{Price: domain.Some(1000.0)})
	if err != nil {
		t.Fatal(err)
	}
	if st.Price != 1000 || !st.IsAvailable || st.Category != "Tênis" || st.StoreName != "Nike" {
		t.Fatalf("unexpected update result %+v", st)
	}

	if _, err := f.stocks.Update(ctx, 1, domain.StockPatch{}); !errors.Is(err, domain.ErrNothingToUpdate) {
		t.Fatalf("want ErrNothingToUpdate, got %v", err)
	}
	_, err = f.stocks.Update(ctx, 42, domain.StockPatch{IsAvailable: domain.Some(false)})
	notFound(t, err, "Stock not found")
}

func TestDeleteStoreCascadesStock(t *testing.T) {
	f := newFixture(t)
	f.nikeAirMax(t)
	ctx := context.Background()

	res, err := f.stores.Delete(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StoreID != 1 {
		t.Fatalf("unexpected delete result %+v", res)
	}
	_, err = f.stocks.List(ctx, domain.StockFilter{StoreName: "Nike"})
	notFound(t, err, "No matching stocks found")

	var orphans int
	if err := f.db.Get(&orphans, `SELECT COUNT(*) FROM stock`); err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Fatalf("want no stock rows, got %d", orphans)
	}

	// product survives with an empty stock list
	products, err := f.products.List(ctx, domain.NameFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0].Stock == nil || len(products[0].Stock) != 0 {
		t.Fatalf("unexpected products %+v", products)
	}

	_, err = f.stores.Delete(ctx, 1)
	notFound(t, err, "Store not found")
}

func TestDeleteProductCascadesStock(t *testing.T) {
	f := newFixture(t)
	f.nikeAirMax(t)
	ctx := context.Background()

	if _, err := f.products.Delete(ctx, 1); err != nil {
		t.Fatal(err)
	}
	stores, err := f.stores.List(ctx, domain.NameFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(stores[0].Stock) != 0 {
		t.Fatalf("store still lists stock: %+v", stores[0])
	}
}

func TestIDsNeverReused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.stores.Create(ctx, "A")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.stores.Delete(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	b, err := f.stores.Create(ctx, "B")
	if err != nil {
		t.Fatal(err)
	}
	if b.ID <= a.ID {
		t.Fatalf("id reused: first %d, second %d", a.ID, b.ID)
	}
}

func TestRenameStoreAndProduct(t *testing.T) {
	f := newFixture(t)
	f.nikeAirMax(t)
	ctx := context.Background()

	s, err := f.stores.Update(ctx, 1, "Nike Outlet")
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != 1 || s.Name != "Nike Outlet" {
		t.Fatalf("unexpected store %+v", s)
	}
	p, err := f.products.Update(ctx, 1, "Air Max 90")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Air Max 90" {
		t.Fatalf("unexpected product %+v", p)
	}
	stocks, err := f.stocks.List(ctx, domain.StockFilter{ProductName: "90"})
	if err != nil {
		t.Fatal(err)
	}
	if stocks[0].StoreName != "Nike Outlet" {
		t.Fatalf("rename not reflected: %+v", stocks[0])
	}

	_, err = f.products.Update(ctx, 5, "Ghost")
	notFound(t, err, "Product not found")
}
