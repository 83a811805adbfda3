package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

type StoreRepo struct{ q sqlx.ExtContext }

func NewStoreRepo(q sqlx.ExtContext) *StoreRepo { return &StoreRepo{q: q} }

func (r *StoreRepo) Get(ctx context.Context, id int64) (domain.Store, error) {
	var s domain.Store
	err := sqlx.GetContext(ctx, r.q, &s, r.q.Rebind(`SELECT id, name FROM stores WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Store{}, domain.NotFound("Store not found")
	}
	if err != nil {
		return domain.Store{}, storageErr("stores.get", err)
	}
	return s, nil
}

// List returns matching stores in id order with their stock (and each stock's
// product) loaded. No match is NotFound.
func (r *StoreRepo) List(ctx context.Context, f domain.NameFilter) ([]domain.Store, error) {
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

	var out []domain.Store
	if err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`
		SELECT id, name FROM stores
		WHERE `+where+`
		ORDER BY id`), args...); err != nil {
		return nil, storageErr("stores.list", err)
	}
	if len(out) == 0 {
		return nil, domain.NotFound("Store not found")
	}

	ids := make([]int64, 0, len(out))
	for _, s := range out {
		ids = append(ids, s.ID)
	}
	stock, err := NewStockRepo(r.q).ByStores(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Stock = stock[out[i].ID]
	}
	return out, nil
}

func (r *StoreRepo) Create(ctx context.Context, name string) (domain.Store, error) {
	s := domain.Store{Name: name}
	if err := sqlx.GetContext(ctx, r.q, &s.ID, r.q.Rebind(`INSERT INTO stores(name) VALUES(?) RETURNING id`), name); err != nil {
		return domain.Store{}, storageErr("stores.create", err)
	}
	return s, nil
}

func (r *StoreRepo) Rename(ctx context.Context, id int64, name string) error {
	if _, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE stores SET name = ? WHERE id = ?`), name, id); err != nil {
		return storageErr("stores.rename", err)
	}
	return nil
}

// Delete removes the store row only; callers remove its stock first.
func (r *StoreRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM stores WHERE id = ?`), id); err != nil {
		return storageErr("stores.delete", err)
	}
	return nil
}
