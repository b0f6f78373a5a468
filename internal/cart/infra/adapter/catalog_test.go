package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/dekorshop/dekorshop/internal/cart/app"
	catalogapp "github.com/dekorshop/dekorshop/internal/catalog/app"
	catalogdomain "github.com/dekorshop/dekorshop/internal/catalog/domain"
)

type fakeProductRepo struct {
	products map[string]catalogdomain.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p catalogdomain.Product) (catalogdomain.Product, error) {
	return p, nil
}

func (f *fakeProductRepo) Get(ctx context.Context, id string) (catalogdomain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return catalogdomain.Product{}, catalogapp.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p catalogdomain.Product) (catalogdomain.Product, error) {
	return p, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeProductRepo) List(ctx context.Context) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) ListByCategory(ctx context.Context, category string) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) ListSorted(ctx context.Context, column string, desc bool) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Featured(ctx context.Context, minRating float64, limit int) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Search(ctx context.Context, term string) ([]catalogdomain.Product, error) {
	return nil, nil
}

func TestCartProduct(t *testing.T) {
	ctx := context.Background()
	repo := &fakeProductRepo{products: map[string]catalogdomain.Product{
		"p1": {ID: "p1", Name: "Oak Side Table", Price: 1000, Category: "tables", Stock: 5},
	}}
	source := NewCatalogProductSource(catalogapp.NewService(repo))

	t.Run("known product copied", func(t *testing.T) {
		p, err := source.CartProduct(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
		assert.EqualValues(t, 1000, p.Price)
		assert.Equal(t, 5, p.Stock)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := source.CartProduct(ctx, "ghost")
		assert.ErrorIs(t, err, cartapp.ErrUnknownProduct)
	})

	t.Run("blank id", func(t *testing.T) {
		_, err := source.CartProduct(ctx, "  ")
		assert.ErrorIs(t, err, cartapp.ErrUnknownProduct)
	})
}
