package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekorshop/dekorshop/internal/order/app"
	"github.com/dekorshop/dekorshop/internal/order/domain"
	"github.com/dekorshop/dekorshop/pkg/kvstore"
	"github.com/dekorshop/dekorshop/pkg/sqlite"
)

func newRepo(t *testing.T) *OrderRepo {
	t.Helper()
	db, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewOrderRepo(kvstore.New(db))
}

func sampleOrder(id string) domain.Order {
	return domain.Order{
		ID:       id,
		Customer: domain.Customer{FullName: "Kiss Anna", Email: "anna@example.com", Phone: "+36 30 123 4567"},
		Shipping: domain.Shipping{Street: "Fő utca 12", City: "Budapest", PostalCode: "1011"},
		Items: []domain.Item{
			{ProductID: "a", Name: "Oak Side Table", UnitPrice: 1000, Quantity: 2, LineTotal: 2000},
		},
		TotalAmount: 3500,
		OrderDate:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Status:      domain.StatusPending,
	}
}

func TestInsertGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	order := sampleOrder("ORD1")
	require.NoError(t, repo.Insert(ctx, order))

	got, err := repo.Get(ctx, "ORD1")
	require.NoError(t, err)
	assert.Equal(t, order, got)

	_, err = repo.Get(ctx, "ORD2")
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.Insert(ctx, sampleOrder("ORD1")))
	assert.ErrorIs(t, repo.Insert(ctx, sampleOrder("ORD1")), app.ErrDuplicateID)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.Insert(ctx, sampleOrder("ORD1")))
	require.NoError(t, repo.Insert(ctx, sampleOrder("ORD2")))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD1", orders[0].ID)
	assert.Equal(t, "ORD2", orders[1].ID)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.Insert(ctx, sampleOrder("ORD1")))

	updated, err := repo.UpdateStatus(ctx, "ORD1", domain.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)

	got, err := repo.Get(ctx, "ORD1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, got.Status)

	_, err = repo.UpdateStatus(ctx, "ORD9", domain.StatusShipped)
	assert.ErrorIs(t, err, app.ErrNotFound)
}
