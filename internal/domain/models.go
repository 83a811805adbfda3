package domain

// Store is a labeled store location. Stock is only populated by list queries.
type Store struct {
	ID    int64   `db:"id"`
	Name  string  `db:"name"`
	Stock []Stock `db:"-"`
}

// Product is a labeled catalog item. Stock is only populated by list queries.
type Product struct {
	ID    int64   `db:"id"`
	Name  string  `db:"name"`
	Stock []Stock `db:"-"`
}

// Stock links one store and one product. Store and Product are loaded with
// the row (columns aliased "store.*" / "product.*").
type Stock struct {
	ID          int64   `db:"id"`
	StoreID     int64   `db:"store_id"`
	ProductID   int64   `db:"product_id"`
	Price       float64 `db:"price"`
	IsAvailable bool    `db:"is_available"`
	Category    string  `db:"category"`
	Store       Store   `db:"store"`
	Product     Product `db:"product"`
}

// StockInput is a validated create-stock payload.
type StockInput struct {
	StoreID     int64
	ProductID   int64
	Price       float64
	IsAvailable bool
	Category    string
}

// Field is an optional value with an explicit presence flag.
type Field[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Field[T] { return Field[T]{Value: v, Set: true} }

// StockPatch is a validated partial update. Unset fields are left untouched.
type StockPatch struct {
	Price       Field[float64]
	IsAvailable Field[bool]
	Category    Field[string]
}

func (p StockPatch) Empty() bool {
	return !p.Price.Set && !p.IsAvailable.Set && !p.Category.Set
}

// NameFilter narrows store/product lists. Zero values mean "no filter".
type NameFilter struct {
	ID   *int64
	Name string
}

// StockFilter narrows stock lists; all present filters are ANDed.
type StockFilter struct {
	ProductName string
	StoreName   string
	MaxPrice    *float64
	IsAvailable *bool
	Category    string
}
