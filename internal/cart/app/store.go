package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/dekorshop/dekorshop/internal/cart/domain"
)

// ErrStockExceeded reports a quantity update beyond the product's stock.
// The cart is left unchanged.
var ErrStockExceeded = errors.New("quantity exceeds available stock")

// ErrUnknownProduct reports a product ID the catalog cannot resolve.
var ErrUnknownProduct = errors.New("unknown product")

// Observer receives the cart snapshot after every committed mutation.
// Observers run synchronously in subscription order and must not call
// back into the Store.
type Observer func(items []domain.LineItem)

type subscription struct {
	id int
	fn Observer
}

// Store owns the authoritative cart for one browsing session. Every
// mutation is persisted to Storage and then published to observers, so
// observers always see the state that was just written. All operations
// are serialized behind one mutex.
type Store struct {
	mu      sync.Mutex
	storage Storage
	key     string
	log     *slog.Logger

	items  []domain.LineItem
	subs   []subscription
	nextID int
}

// NewStore builds a Store bound to a storage key and restores any
// persisted snapshot. A missing or unreadable snapshot degrades to an
// empty cart with a logged diagnostic, never an error.
func NewStore(ctx context.Context, storage Storage, key string, log *slog.Logger) *Store {
	s := &Store{storage: storage, key: key, log: log}
	s.restore(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("cart restore failed, starting empty", slog.String("key", s.key), slog.Any("err", err))
		return
	}
	if !ok {
		return
	}

	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Warn("cart snapshot unreadable, starting empty", slog.String("key", s.key), slog.Any("err", err))
		return
	}
	s.items = items
}

// AddItem merges quantity into the line item for p, clamped so the
// result never exceeds p.Stock. A line item only exists with a
// quantity of at least one: a merge clamped below one (the product
// sold out since the last add) removes the line instead. The stored
// product copy is refreshed to p, the caller's latest catalog read.
func (s *Store) AddItem(ctx context.Context, p domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == p.ID {
			q := s.items[i].Quantity + quantity
			if q > p.Stock {
				q = p.Stock
			}
			if q < 1 {
				s.items = append(s.items[:i], s.items[i+1:]...)
				s.commit(ctx)
				return
			}
			s.items[i].Product = p
			s.items[i].Quantity = q
			s.commit(ctx)
			return
		}
	}

	if quantity > p.Stock {
		quantity = p.Stock
	}
	if quantity < 1 {
		// Out of stock, nothing to insert.
		return
	}

	s.items = append(s.items, domain.LineItem{Product: p, Quantity: quantity})
	s.commit(ctx)
}

// UpdateQuantity sets the quantity of an existing line item. A quantity
// below one removes the item. A quantity above the product's stock is
// rejected with ErrStockExceeded and the cart is left unchanged. An
// unknown product ID is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		s.RemoveItem(ctx, productID)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID != productID {
			continue
		}
		if quantity > s.items[i].Product.Stock {
			return ErrStockExceeded
		}
		s.items[i].Quantity = quantity
		s.commit(ctx)
		return nil
	}
	return nil
}

// RemoveItem deletes the line item for productID. Absent IDs are a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.commit(ctx)
			return
		}
	}
}

// Clear empties the cart and removes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.storage.Delete(ctx, s.key); err != nil {
		s.log.Warn("cart snapshot delete failed", slog.String("key", s.key), slog.Any("err", err))
	}
	s.notify()
}

// Items returns a defensive copy of the current line items in insertion
// order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Total is the sum of price*quantity across line items.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, li := range s.items {
		total += li.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities, not the number of line items.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, li := range s.items {
		count += li.Quantity
	}
	return count
}

// Subscribe registers an observer and immediately delivers the current
// snapshot. The returned func unsubscribes.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	fn(s.snapshot())
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.subs {
			if s.subs[i].id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// commit persists the cart then notifies observers. Persistence errors
// are logged and swallowed; the in-memory cart stays authoritative.
// Callers hold s.mu.
func (s *Store) commit(ctx context.Context) {
	raw, err := json.Marshal(s.snapshot())
	if err != nil {
		s.log.Error("cart snapshot marshal failed", slog.String("key", s.key), slog.Any("err", err))
	} else if err := s.storage.Set(ctx, s.key, raw); err != nil {
		s.log.Warn("cart persist failed", slog.String("key", s.key), slog.Any("err", err))
	}
	s.notify()
}

// notify delivers the current snapshot to observers in subscription
// order. Callers hold s.mu.
func (s *Store) notify() {
	for _, sub := range s.subs {
		sub.fn(s.snapshot())
	}
}

func (s *Store) snapshot() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}
