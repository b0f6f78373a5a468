package adapter

import (
	"context"
	"errors"

	catalogapp "github.com/dekorshop/dekorshop/internal/catalog/app"
	checkoutapp "github.com/dekorshop/dekorshop/internal/checkout/app"
)

// CatalogServiceReader adapts the catalog service to the checkout's
// narrow read interface.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (checkoutapp.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if errors.Is(err, catalogapp.ErrNotFound) {
		return checkoutapp.Product{}, checkoutapp.ErrProductGone
	}
	if err != nil {
		return checkoutapp.Product{}, err
	}

	return checkoutapp.Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	}, nil
}
