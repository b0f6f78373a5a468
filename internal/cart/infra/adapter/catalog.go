package adapter

import (
	"context"
	"errors"

	cartapp "github.com/dekorshop/dekorshop/internal/cart/app"
	cartdomain "github.com/dekorshop/dekorshop/internal/cart/domain"
	catalogapp "github.com/dekorshop/dekorshop/internal/catalog/app"
)

// CatalogProductSource adapts the catalog service to the cart's product
// lookup.
type CatalogProductSource struct {
	svc *catalogapp.Service
}

func NewCatalogProductSource(svc *catalogapp.Service) *CatalogProductSource {
	return &CatalogProductSource{svc: svc}
}

func (s *CatalogProductSource) CartProduct(ctx context.Context, productID string) (cartdomain.Product, error) {
	p, err := s.svc.GetProduct(ctx, productID)
	if errors.Is(err, catalogapp.ErrNotFound) || errors.Is(err, catalogapp.ErrInvalidInput) {
		return cartdomain.Product{}, cartapp.ErrUnknownProduct
	}
	if err != nil {
		return cartdomain.Product{}, err
	}

	return cartdomain.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Category: p.Category,
		Stock:    p.Stock,
	}, nil
}
