package app

import (
	"context"
	"log/slog"
	"sync"
)

// DefaultKey is the storage key of the anonymous session's cart.
const DefaultKey = "cart"

// Sessions hands out one Store per browsing session, created lazily and
// kept for the process lifetime so observers and state survive between
// requests.
type Sessions struct {
	mu      sync.Mutex
	storage Storage
	log     *slog.Logger
	stores  map[string]*Store
}

func NewSessions(storage Storage, log *slog.Logger) *Sessions {
	return &Sessions{
		storage: storage,
		log:     log,
		stores:  make(map[string]*Store),
	}
}

// For returns the cart store for sessionID, restoring it from storage on
// first use. An empty sessionID maps to the default cart key.
func (m *Sessions) For(ctx context.Context, sessionID string) *Store {
	key := DefaultKey
	if sessionID != "" {
		key = DefaultKey + ":" + sessionID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[key]; ok {
		return s
	}
	s := NewStore(ctx, m.storage, key, m.log)
	m.stores[key] = s
	return s
}
