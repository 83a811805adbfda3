package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

// StockService runs every operation in its own transaction on DB.
type StockService struct {
	DB *sqlx.DB
}

func NewStockService(db *sqlx.DB) *StockService {
	return &StockService{DB: db}
}

// Create checks the store first, then the product, so a missing store wins
// when both are missing. Nothing is written unless both exist.
func (s *StockService) Create(ctx context.Context, in domain.StockInput) (domain.StockView, error) {
	var out domain.StockView
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		if _, err := repos.NewStoreRepo(tx).Get(ctx, in.StoreID); err != nil {
			return err
		}
		if _, err := repos.NewProductRepo(tx).Get(ctx, in.ProductID); err != nil {
			return err
		}
		stocks := repos.NewStockRepo(tx)
		id, err := stocks.Create(ctx, in)
		if err != nil {
			return err
		}
		st, err := stocks.Get(ctx, id)
		if err != nil {
			return err
		}
		out = domain.ProjectStock(st)
		return nil
	})
	return out, err
}

func (s *StockService) List(ctx context.Context, f domain.StockFilter) ([]domain.StockView, error) {
	var out []domain.StockView
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		rows, err := repos.NewStockRepo(tx).List(ctx, f)
		if err != nil {
			return err
		}
		out = make([]domain.StockView, 0, len(rows))
		for _, st := range rows {
			out = append(out, domain.ProjectStock(st))
		}
		return nil
	})
	return out, err
}

func (s *StockService) Delete(ctx context.Context, id int64) (domain.StockDeleted, error) {
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		stocks := repos.NewStockRepo(tx)
		if _, err := stocks.Get(ctx, id); err != nil {
			return err
		}
		return stocks.Delete(ctx, id)
	})
	if err != nil {
		return domain.StockDeleted{}, err
	}
	return domain.StockDeleted{StockID: id}, nil
}

// Update rejects an empty patch before looking the row up, then applies only
// the fields that were provided.
func (s *StockService) Update(ctx context.Context, id int64, p domain.StockPatch) (domain.StockView, error) {
	if p.Empty() {
		return domain.StockView{}, domain.ErrNothingToUpdate
	}
	var out domain.StockView
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		stocks := repos.NewStockRepo(tx)
		if _, err := stocks.Get(ctx, id); err != nil {
			return err
		}
		if err := stocks.Update(ctx, id, p); err != nil {
			return err
		}
		st, err := stocks.Get(ctx, id)
		if err != nil {
			return err
		}
		out = domain.ProjectStock(st)
		return nil
	})
	return out, err
}
