// Package kv persists user profiles as one JSON array under the
// "users" key; the profile page's address lives in its own
// "user_address_data" slot.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dekorshop/dekorshop/internal/user/app"
	"github.com/dekorshop/dekorshop/internal/user/domain"
)

const (
	usersKey   = "users"
	addressKey = "user_address_data"
)

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// record is the stored shape: the profile plus its credential hash,
// which never leaves this package.
type record struct {
	domain.User
	PasswordHash string `json:"passwordHash"`
}

type UserRepo struct {
	mu      sync.Mutex
	storage Storage
	now     func() time.Time
}

func NewUserRepo(storage Storage) *UserRepo {
	return &UserRepo{storage: storage, now: time.Now}
}

func (r *UserRepo) Create(ctx context.Context, u domain.User, passwordHash string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return domain.User{}, err
	}

	for _, rec := range records {
		if strings.EqualFold(rec.Email, u.Email) {
			return domain.User{}, app.ErrEmailTaken
		}
	}

	u.ID = uuid.NewString()
	u.CreatedAt = r.now().UTC()
	u.UpdatedAt = u.CreatedAt

	records = append(records, record{User: u, PasswordHash: passwordHash})
	if err := r.save(ctx, records); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return domain.User{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec.User, nil
		}
	}
	return domain.User{}, app.ErrNotFound
}

// Credentials returns the profile and password hash for email, for the
// auth service's login path.
func (r *UserRepo) Credentials(ctx context.Context, email string) (domain.User, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return domain.User{}, "", err
	}
	for _, rec := range records {
		if strings.EqualFold(rec.Email, email) {
			return rec.User, rec.PasswordHash, nil
		}
	}
	return domain.User{}, "", app.ErrNotFound
}

func (r *UserRepo) Save(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return domain.User{}, err
	}
	for i := range records {
		if records[i].ID != u.ID {
			continue
		}
		u.CreatedAt = records[i].CreatedAt
		u.UpdatedAt = r.now().UTC()
		records[i].User = u
		if err := r.save(ctx, records); err != nil {
			return domain.User{}, err
		}
		return u, nil
	}
	return domain.User{}, app.ErrNotFound
}

func (r *UserRepo) SaveAddress(ctx context.Context, addr domain.Address) error {
	raw, err := json.Marshal(addr)
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}
	if err := r.storage.Set(ctx, addressKey, raw); err != nil {
		return fmt.Errorf("save address: %w", err)
	}
	return nil
}

func (r *UserRepo) LoadAddress(ctx context.Context) (domain.Address, bool, error) {
	raw, ok, err := r.storage.Get(ctx, addressKey)
	if err != nil {
		return domain.Address{}, false, fmt.Errorf("load address: %w", err)
	}
	if !ok {
		return domain.Address{}, false, nil
	}
	var addr domain.Address
	if err := json.Unmarshal(raw, &addr); err != nil {
		return domain.Address{}, false, fmt.Errorf("decode address: %w", err)
	}
	return addr, true, nil
}

func (r *UserRepo) load(ctx context.Context) ([]record, error) {
	raw, ok, err := r.storage.Get(ctx, usersKey)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if !ok {
		return []record{}, nil
	}
	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return records, nil
}

func (r *UserRepo) save(ctx context.Context, records []record) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := r.storage.Set(ctx, usersKey, raw); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
