package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

type StoreService struct {
	DB *sqlx.DB
}

func NewStoreService(db *sqlx.DB) *StoreService {
	return &StoreService{DB: db}
}

func (s *StoreService) Create(ctx context.Context, name string) (domain.Summary, error) {
	var out domain.Summary
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		st, err := repos.NewStoreRepo(tx).Create(ctx, name)
		if err != nil {
			return err
		}
		out = domain.Summary{ID: st.ID, Name: st.Name}
		return nil
	})
	return out, err
}

func (s *StoreService) List(ctx context.Context, f domain.NameFilter) ([]domain.StoreView, error) {
	var out []domain.StoreView
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		stores, err := repos.NewStoreRepo(tx).List(ctx, f)
		if err != nil {
			return err
		}
		out = make([]domain.StoreView, 0, len(stores))
		for _, st := range stores {
			out = append(out, domain.ProjectStore(st))
		}
		return nil
	})
	return out, err
}

// Delete removes the store's stock rows first so no stock is left pointing
// at a missing store.
func (s *StoreService) Delete(ctx context.Context, id int64) (domain.StoreDeleted, error) {
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		stores := repos.NewStoreRepo(tx)
		if _, err := stores.Get(ctx, id); err != nil {
			return err
		}
		if _, err := repos.NewStockRepo(tx).DeleteByStore(ctx, id); err != nil {
			return err
		}
		return stores.Delete(ctx, id)
	})
	if err != nil {
		return domain.StoreDeleted{}, err
	}
	return domain.StoreDeleted{StoreID: id}, nil
}

func (s *StoreService) Update(ctx context.Context, id int64, name string) (domain.Summary, error) {
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		stores := repos.NewStoreRepo(tx)
		if _, err := stores.Get(ctx, id); err != nil {
			return err
		}
		return stores.Rename(ctx, id, name)
	})
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summary{ID: id, Name: name}, nil
}
