// Package kv persists orders as one JSON array under the "orders"
// storage key, mirroring the storefront's persisted state layout.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dekorshop/dekorshop/internal/order/app"
	"github.com/dekorshop/dekorshop/internal/order/domain"
)

const ordersKey = "orders"

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// OrderRepo serializes all access behind one mutex: every write is a
// read-modify-write of the whole order list.
type OrderRepo struct {
	mu      sync.Mutex
	storage Storage
}

func NewOrderRepo(storage Storage) *OrderRepo {
	return &OrderRepo{storage: storage}
}

func (r *OrderRepo) Insert(ctx context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return err
	}

	for _, o := range orders {
		if o.ID == order.ID {
			return app.ErrDuplicateID
		}
	}

	return r.save(ctx, append(orders, order))
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return domain.Order{}, err
	}

	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, app.ErrNotFound
}

func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return domain.Order{}, err
	}

	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		orders[i].Status = status
		if err := r.save(ctx, orders); err != nil {
			return domain.Order{}, err
		}
		return orders[i], nil
	}
	return domain.Order{}, app.ErrNotFound
}

func (r *OrderRepo) load(ctx context.Context) ([]domain.Order, error) {
	raw, ok, err := r.storage.Get(ctx, ordersKey)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if !ok {
		return []domain.Order{}, nil
	}

	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepo) save(ctx context.Context, orders []domain.Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := r.storage.Set(ctx, ordersKey, raw); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	return nil
}
