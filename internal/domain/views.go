package domain

// Wire shapes. Projections read the eager-loaded parents, so callers must
// fetch Stock rows with their Store and Product attached.

type StockView struct {
	ID          int64   `json:"id"`
	StoreID     int64   `json:"store_id"`
	ProductID   int64   `json:"product_id"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"is_available"`
	Category    string  `json:"category"`
	ProductName string  `json:"product_name"`
	StoreName   string  `json:"store_name"`
}

type StoreView struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Stock []StockView `json:"stock"`
}

type ProductView struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Stock []StockView `json:"stock"`
}

// Summary is returned by create/update of a store or product (no nested stock).
type Summary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type StoreDeleted struct {
	StoreID int64 `json:"store_id"`
}

type ProductDeleted struct {
	ProductID int64 `json:"product_id"`
}

type StockDeleted struct {
	StockID int64 `json:"stock_id"`
}

func ProjectStock(s Stock) StockView {
	return StockView{
		ID:          s.ID,
		StoreID:     s.StoreID,
		ProductID:   s.ProductID,
		Price:       s.Price,
		IsAvailable: s.IsAvailable,
		Category:    s.Category,
		ProductName: s.Product.Name,
		StoreName:   s.Store.Name,
	}
}

func projectStocks(rows []Stock) []StockView {
	out := make([]StockView, 0, len(rows))
	for _, s := range rows {
		out = append(out, ProjectStock(s))
	}
	return out
}

func ProjectStore(s Store) StoreView {
	return StoreView{ID: s.ID, Name: s.Name, Stock: projectStocks(s.Stock)}
}

func ProjectProduct(p Product) ProductView {
	return ProductView{ID: p.ID, Name: p.Name, Stock: projectStocks(p.Stock)}
}
