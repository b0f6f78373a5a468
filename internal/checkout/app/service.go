package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	cartapp "github.com/dekorshop/dekorshop/internal/cart/app"
	cartdomain "github.com/dekorshop/dekorshop/internal/cart/domain"
	orderapp "github.com/dekorshop/dekorshop/internal/order/app"
	orderdomain "github.com/dekorshop/dekorshop/internal/order/domain"
)

// ErrProductGone marks a cart line whose product no longer exists in
// the catalog.
var ErrProductGone = errors.New("product no longer available")

// CartStore is the session cart the checkout reads and, on success,
// clears.
type CartStore interface {
	Items() []cartdomain.LineItem
	Clear(ctx context.Context)
}

// CatalogReader supplies fresh product data at submission time.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID    string
	Name  string
	Price int64
	Stock int
}

// OrderPlacer assembles and persists the final order.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req orderapp.PlaceOrderRequest) (orderdomain.Order, error)
}

type Service struct {
	catalog       CatalogReader
	orders        OrderPlacer
	shippingFee   int64
	maxConcurrent int
}

func NewService(catalog CatalogReader, orders OrderPlacer, shippingFee int64, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Service{
		catalog:       catalog,
		orders:        orders,
		shippingFee:   shippingFee,
		maxConcurrent: maxConcurrent,
	}
}

// Submit finalizes the cart: each line is re-read from the catalog for
// current price and stock, the order is assembled and persisted, and
// only then is the cart cleared. A failed submission leaves the cart
// untouched.
func (s *Service) Submit(ctx context.Context, cart CartStore, customer orderdomain.Customer, shipping orderdomain.Shipping) (orderdomain.Order, error) {
	snapshot := cart.Items()
	if len(snapshot) == 0 {
		return orderdomain.Order{}, &orderapp.ValidationError{Field: "items"}
	}

	items := make([]orderdomain.Item, len(snapshot))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range snapshot {
		g.Go(func() error {
			line := snapshot[idx]

			product, err := s.catalog.GetProduct(gctx, line.Product.ID)
			if err != nil {
				return fmt.Errorf("product %s: %w", line.Product.ID, err)
			}
			if line.Quantity > product.Stock {
				return fmt.Errorf("%s: %w", product.Name, cartapp.ErrStockExceeded)
			}

			items[idx] = orderdomain.Item{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  line.Quantity,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return orderdomain.Order{}, err
	}

	order, err := s.orders.PlaceOrder(ctx, orderapp.PlaceOrderRequest{
		Customer:    customer,
		Shipping:    shipping,
		Items:       items,
		ShippingFee: s.shippingFee,
	})
	if err != nil {
		return orderdomain.Order{}, err
	}

	// Clear only after the order is durably stored.
	cart.Clear(ctx)
	return order, nil
}
