package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

type ProductService struct {
	DB *sqlx.DB
}

func NewProductService(db *sqlx.DB) *ProductService {
	return &ProductService{DB: db}
}

func (s *ProductService) Create(ctx context.Context, name string) (domain.Summary, error) {
	var out domain.Summary
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		p, err := repos.NewProductRepo(tx).Create(ctx, name)
		if err != nil {
			return err
		}
		out = domain.Summary{ID: p.ID, Name: p.Name}
		return nil
	})
	return out, err
}

func (s *ProductService) List(ctx context.Context, f domain.NameFilter) ([]domain.ProductView, error) {
	var out []domain.ProductView
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		products, err := repos.NewProductRepo(tx).List(ctx, f)
		if err != nil {
			return err
		}
		out = make([]domain.ProductView, 0, len(products))
		for _, p := range products {
			out = append(out, domain.ProjectProduct(p))
		}
		return nil
	})
	return out, err
}

// Delete removes the product's stock rows first so no stock is left pointing
// at a missing product.
func (s *ProductService) Delete(ctx context.Context, id int64) (domain.ProductDeleted, error) {
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		products := repos.NewProductRepo(tx)
		if _, err := products.Get(ctx, id); err != nil {
			return err
		}
		if _, err := repos.NewStockRepo(tx).DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return products.Delete(ctx, id)
	})
	if err != nil {
		return domain.ProductDeleted{}, err
	}
	return domain.ProductDeleted{ProductID: id}, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, name string) (domain.Summary, error) {
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		products := repos.NewProductRepo(tx)
		if _, err := products.Get(ctx, id); err != nil {
			return err
		}
		return products.Rename(ctx, id, name)
	})
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summary{ID: id, Name: name}, nil
}
