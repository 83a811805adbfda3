package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	applog "stockroom/internal/log"
)

// OpenDB connects with the given driver ("sqlite" or "postgres"), creates the
// schema if needed and returns the handle.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	var schema string
	switch driver {
	case "sqlite":
		schema = sqliteSchema
	case "postgres":
		schema = postgresSchema
	default:
		return nil, fmt.Errorf("unsupported DB driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// in-memory databases live per connection; sqlite serialises writers anyway
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const sqliteSchema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS stores(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS stock(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  store_id INTEGER NOT NULL REFERENCES stores(id),
  product_id INTEGER NOT NULL REFERENCES products(id),
  price REAL NOT NULL,
  is_available BOOLEAN NOT NULL,
  category TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stock_store   ON stock(store_id);
CREATE INDEX IF NOT EXISTS idx_stock_product ON stock(product_id);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS stores(
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products(
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS stock(
  id BIGSERIAL PRIMARY KEY,
  store_id BIGINT NOT NULL REFERENCES stores(id),
  product_id BIGINT NOT NULL REFERENCES products(id),
  price DOUBLE PRECISION NOT NULL,
  is_available BOOLEAN NOT NULL,
  category TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stock_store   ON stock(store_id);
CREATE INDEX IF NOT EXISTS idx_stock_product ON stock(product_id);
`

// SeedIfEmpty inserts the demo stores/products/stock when no store exists.
func SeedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM stores`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.L().Info().Msg("[seed] inserting demo stores/products/stock")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	storeIDs := map[string]int64{}
	for _, name := range []string{"Nike", "Adidas"} {
		var id int64
		if err := tx.Get(&id, tx.Rebind(`INSERT INTO stores(name) VALUES(?) RETURNING id`), name); err != nil {
			return err
		}
		storeIDs[name] = id
	}
	productIDs := map[string]int64{}
	for _, name := range []string{"Air Max", "Air Force", "Forum Low", "Forum Mid"} {
		var id int64
		if err := tx.Get(&id, tx.Rebind(`INSERT INTO products(name) VALUES(?) RETURNING id`), name); err != nil {
			return err
		}
		productIDs[name] = id
	}

	rows := []struct {
		store, product string
		price          float64
	}{
		{"Nike", "Air Max", 300},
		{"Nike", "Air Force", 800},
		{"Adidas", "Forum Low", 800},
		{"Adidas", "Forum Mid", 600},
	}
	for _, r := range rows {
		if _, err := tx.Exec(tx.Rebind(`
			INSERT INTO stock(store_id, product_id, price, is_available, category)
			VALUES(?, ?, ?, ?, ?)
		`), storeIDs[r.store], productIDs[r.product], r.price, true, "Tênis"); err != nil {
			return err
		}
	}
	return tx.Commit()
}
