package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/dekorshop/dekorshop/internal/cart/app"
	cartdomain "github.com/dekorshop/dekorshop/internal/cart/domain"
	orderapp "github.com/dekorshop/dekorshop/internal/order/app"
	orderdomain "github.com/dekorshop/dekorshop/internal/order/domain"
)

type fakeCart struct {
	items   []cartdomain.LineItem
	cleared bool
}

func (f *fakeCart) Items() []cartdomain.LineItem {
	out := make([]cartdomain.LineItem, len(f.items))
	copy(out, f.items)
	return out
}

func (f *fakeCart) Clear(ctx context.Context) { f.cleared = true; f.items = nil }

type fakeCatalog struct {
	products map[string]Product
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id string) (Product, error) {
	p, ok := f.products[id]
	if !ok {
		return Product{}, ErrProductGone
	}
	return p, nil
}

type fakeOrders struct {
	placed []orderapp.PlaceOrderRequest
	fail   error
}

func (f *fakeOrders) PlaceOrder(ctx context.Context, req orderapp.PlaceOrderRequest) (orderdomain.Order, error) {
	if f.fail != nil {
		return orderdomain.Order{}, f.fail
	}
	f.placed = append(f.placed, req)

	var subtotal int64
	for _, it := range req.Items {
		subtotal += it.UnitPrice * int64(it.Quantity)
	}
	return orderdomain.Order{
		ID:          "ORD1",
		Customer:    req.Customer,
		Shipping:    req.Shipping,
		Items:       req.Items,
		TotalAmount: subtotal + req.ShippingFee,
		Status:      orderdomain.StatusPending,
	}, nil
}

var (
	customer = orderdomain.Customer{FullName: "Kiss Anna", Email: "anna@example.com", Phone: "+36 30 123 4567"}
	shipping = orderdomain.Shipping{Street: "Fő utca 12", City: "Budapest", PostalCode: "1011"}
)

func cartWith(items ...cartdomain.LineItem) *fakeCart {
	return &fakeCart{items: items}
}

func line(id string, price int64, stock, qty int) cartdomain.LineItem {
	return cartdomain.LineItem{
		Product:  cartdomain.Product{ID: id, Name: "item " + id, Price: price, Stock: stock},
		Quantity: qty,
	}
}

func catalogFor(items ...cartdomain.LineItem) *fakeCatalog {
	products := map[string]Product{}
	for _, li := range items {
		products[li.Product.ID] = Product{
			ID:    li.Product.ID,
			Name:  li.Product.Name,
			Price: li.Product.Price,
			Stock: li.Product.Stock,
		}
	}
	return &fakeCatalog{products: products}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	a := line("a", 1000, 5, 2)
	b := line("b", 500, 2, 2)
	cart := cartWith(a, b)
	orders := &fakeOrders{}
	svc := NewService(catalogFor(a, b), orders, 1500, 4)

	order, err := svc.Submit(ctx, cart, customer, shipping)
	require.NoError(t, err)

	assert.EqualValues(t, 1000*2+500*2+1500, order.TotalAmount)
	assert.Equal(t, orderdomain.StatusPending, order.Status)
	assert.True(t, cart.cleared, "cart cleared after successful placement")

	require.Len(t, orders.placed, 1)
	require.Len(t, orders.placed[0].Items, 2)
	assert.Equal(t, "a", orders.placed[0].Items[0].ProductID, "line order preserved")
	assert.Equal(t, "b", orders.placed[0].Items[1].ProductID)
}

func TestSubmitEmptyCart(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrders{}
	svc := NewService(&fakeCatalog{products: map[string]Product{}}, orders, 1500, 4)

	_, err := svc.Submit(ctx, cartWith(), customer, shipping)

	var verr *orderapp.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)
	assert.Empty(t, orders.placed)
}

func TestSubmitUsesCurrentCatalogPriceAndStock(t *testing.T) {
	ctx := context.Background()

	stale := line("a", 1000, 5, 3)
	cart := cartWith(stale)

	t.Run("price refreshed", func(t *testing.T) {
		catalog := catalogFor(stale)
		p := catalog.products["a"]
		p.Price = 900 // price dropped since the item was added
		catalog.products["a"] = p

		orders := &fakeOrders{}
		svc := NewService(catalog, orders, 1500, 4)

		order, err := svc.Submit(ctx, cart, customer, shipping)
		require.NoError(t, err)
		assert.EqualValues(t, 900*3+1500, order.TotalAmount)
	})

	t.Run("insufficient stock rejected, cart kept", func(t *testing.T) {
		cart := cartWith(stale)
		catalog := catalogFor(stale)
		p := catalog.products["a"]
		p.Stock = 1
		catalog.products["a"] = p

		orders := &fakeOrders{}
		svc := NewService(catalog, orders, 1500, 4)

		_, err := svc.Submit(ctx, cart, customer, shipping)
		require.ErrorIs(t, err, cartapp.ErrStockExceeded)
		assert.False(t, cart.cleared)
		assert.Empty(t, orders.placed)
	})
}

func TestSubmitProductGone(t *testing.T) {
	ctx := context.Background()

	cart := cartWith(line("ghost", 1000, 5, 1))
	orders := &fakeOrders{}
	svc := NewService(&fakeCatalog{products: map[string]Product{}}, orders, 1500, 4)

	_, err := svc.Submit(ctx, cart, customer, shipping)
	require.ErrorIs(t, err, ErrProductGone)
	assert.False(t, cart.cleared)
}

func TestSubmitPlacementFailureKeepsCart(t *testing.T) {
	ctx := context.Background()

	a := line("a", 1000, 5, 1)
	cart := cartWith(a)
	orders := &fakeOrders{fail: &orderapp.ValidationError{Field: "email"}}
	svc := NewService(catalogFor(a), orders, 1500, 4)

	_, err := svc.Submit(ctx, cart, customer, shipping)
	require.Error(t, err)
	assert.False(t, cart.cleared, "failed placement must not lose the cart")
	assert.Len(t, cart.Items(), 1)
}
