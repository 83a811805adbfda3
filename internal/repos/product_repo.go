package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

type ProductRepo struct{ q sqlx.ExtContext }

func NewProductRepo(q sqlx.ExtContext) *ProductRepo { return &ProductRepo{q: q} }

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := sqlx.GetContext(ctx, r.q, &p, r.q.Rebind(`SELECT id, name FROM products WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.NotFound("Product not found")
	}
	if err != nil {
		return domain.Product{}, storageErr("products.get", err)
	}
	return p, nil
}

// List returns matching products in id order with their stock (and each
// stock's store) loaded. No match is NotFound.
func (r *ProductRepo) List(ctx context.Context, f domain.NameFilter) ([]domain.Product, error) {
	where := `1 = 1`
	args := []any{}
	if f.ID != nil {
		where += ` AND id = ?`
		args = append(args, *f.ID)
	}
	if f.Name != "" {
		where += ` AND LOWER(name) LIKE LOWER(?)`
		args = append(args, likeArg(f.Name))
	}

	var out []domain.Product
	if err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`
		SELECT id, name FROM products
		WHERE `+where+`
		ORDER BY id`), args...); err != nil {
		return nil, storageErr("products.list", err)
	}
	if len(out) == 0 {
		return nil, domain.NotFound("Product not found")
	}

	ids := make([]int64, 0, len(out))
	for _, p := range out {
		ids = append(ids, p.ID)
	}
	stock, err := NewStockRepo(r.q).ByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Stock = stock[out[i].ID]
	}
	return out, nil
}

func (r *ProductRepo) Create(ctx context.Context, name string) (domain.Product, error) {
	p := domain.Product{Name: name}
	if err := sqlx.GetContext(ctx, r.q, &p.ID, r.q.Rebind(`INSERT INTO products(name) VALUES(?) RETURNING id`), name); err != nil {
		return domain.Product{}, storageErr("products.create", err)
	}
	return p, nil
}

func (r *ProductRepo) Rename(ctx context.Context, id int64, name string) error {
	if _, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE products SET name = ? WHERE id = ?`), name, id); err != nil {
		return storageErr("products.rename", err)
	}
	return nil
}

// Delete removes the product row only; callers remove its stock first.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM products WHERE id = ?`), id); err != nil {
		return storageErr("products.delete", err)
	}
	return nil
}
