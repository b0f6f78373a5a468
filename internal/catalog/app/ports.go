package app

import (
	"context"

	"github.com/dekorshop/dekorshop/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	ListSorted(ctx context.Context, column string, desc bool) ([]domain.Product, error)
	Featured(ctx context.Context, minRating float64, limit int) ([]domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
}
