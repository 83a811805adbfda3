package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

// StockRepo reads and writes stock rows through one session (a transaction
// or the pool). Every row is loaded with its store and product.
type StockRepo struct{ q sqlx.ExtContext }

func NewStockRepo(q sqlx.ExtContext) *StockRepo { return &StockRepo{q: q} }

const stockSelect = `
  SELECT
    k.id, k.store_id, k.product_id, k.price, k.is_available, k.category,
    s.id AS "store.id", s.name AS "store.name",
    p.id AS "product.id", p.name AS "product.name"
  FROM stock k
  JOIN stores s   ON s.id = k.store_id
  JOIN products p ON p.id = k.product_id`

func (r *StockRepo) Get(ctx context.Context, id int64) (domain.Stock, error) {
	var st domain.Stock
	err := sqlx.GetContext(ctx, r.q, &st, r.q.Rebind(stockSelect+` WHERE k.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Stock{}, domain.NotFound("Stock not found")
	}
	if err != nil {
		return domain.Stock{}, storageErr("stock.get", err)
	}
	return st, nil
}

// List applies every present filter (AND) in id order. No match is NotFound.
func (r *StockRepo) List(ctx context.Context, f domain.StockFilter) ([]domain.Stock, error) {
	where := []string{}
	args := []any{}
	if f.ProductName != "" {
		where = append(where, `LOWER(p.name) LIKE LOWER(?)`)
		args = append(args, likeArg(f.ProductName))
	}
	if f.StoreName != "" {
		where = append(where, `LOWER(s.name) LIKE LOWER(?)`)
		args = append(args, likeArg(f.StoreName))
	}
	if f.MaxPrice != nil {
		where = append(where, `k.price <= ?`)
		args = append(args, *f.MaxPrice)
	}
	if f.IsAvailable != nil {
		where = append(where, `k.is_available = ?`)
		args = append(args, *f.IsAvailable)
	}
	if f.Category != "" {
		where = append(where, `LOWER(k.category) LIKE LOWER(?)`)
		args = append(args, likeArg(f.Category))
	}

	q := stockSelect
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, ` AND `)
	}
	q += ` ORDER BY k.id`

	var out []domain.Stock
	if err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(q), args...); err != nil {
		return nil, storageErr("stock.list", err)
	}
	if len(out) == 0 {
		return nil, domain.NotFound("No matching stocks found")
	}
	return out, nil
}

// byParent eager-loads the stock of several stores or products in one query,
// grouped by parent id.
func (r *StockRepo) byParent(ctx context.Context, col string, ids []int64) (map[int64][]domain.Stock, error) {
	grouped := make(map[int64][]domain.Stock, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}
	query, args, err := sqlx.In(stockSelect+` WHERE k.`+col+` IN (?) ORDER BY k.id`, ids)
	if err != nil {
		return nil, storageErr("stock.by_"+col, err)
	}
	var rows []domain.Stock
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, storageErr("stock.by_"+col, err)
	}
	for _, st := range rows {
		key := st.StoreID
		if col == "product_id" {
			key = st.ProductID
		}
		grouped[key] = append(grouped[key], st)
	}
	return grouped, nil
}

func (r *StockRepo) ByStores(ctx context.Context, ids []int64) (map[int64][]domain.Stock, error) {
	return r.byParent(ctx, "store_id", ids)
}

func (r *StockRepo) ByProducts(ctx context.Context, ids []int64) (map[int64][]domain.Stock, error) {
	return r.byParent(ctx, "product_id", ids)
}

// Create inserts a stock row and returns its id. Parents are not checked here.
func (r *StockRepo) Create(ctx context.Context, in domain.StockInput) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, r.q, &id, r.q.Rebind(`
		INSERT INTO stock(store_id, product_id, price, is_available, category)
		VALUES(?, ?, ?, ?, ?)
		RETURNING id
	`), in.StoreID, in.ProductID, in.Price, in.IsAvailable, in.Category)
	if err != nil {
		return 0, storageErr("stock.create", err)
	}
	return id, nil
}

// Update writes only the fields set in the patch.
func (r *StockRepo) Update(ctx context.Context, id int64, p domain.StockPatch) error {
	sets := []string{}
	args := []any{}
	if p.Price.Set {
		sets = append(sets, `price = ?`)
		args = append(args, p.Price.Value)
	}
	if p.IsAvailable.Set {
		sets = append(sets, `is_available = ?`)
		args = append(args, p.IsAvailable.Value)
	}
	if p.Category.Set {
		sets = append(sets, `category = ?`)
		args = append(args, p.Category.Value)
	}
	if len(sets) == 0 {
		return domain.ErrNothingToUpdate
	}
	args = append(args, id)
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE stock SET `+strings.Join(sets, ", ")+` WHERE id = ?`), args...)
	if err != nil {
		return storageErr("stock.update", err)
	}
	return nil
}

func (r *StockRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM stock WHERE id = ?`), id); err != nil {
		return storageErr("stock.delete", err)
	}
	return nil
}

// DeleteByStore removes every stock row of a store and reports how many.
func (r *StockRepo) DeleteByStore(ctx context.Context, storeID int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM stock WHERE store_id = ?`), storeID)
	if err != nil {
		return 0, storageErr("stock.delete_by_store", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// DeleteByProduct removes every stock row of a product and reports how many.
func (r *StockRepo) DeleteByProduct(ctx context.Context, productID int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM stock WHERE product_id = ?`), productID)
	if err != nil {
		return 0, storageErr("stock.delete_by_product", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
