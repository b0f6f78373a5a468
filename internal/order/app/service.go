package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dekorshop/dekorshop/internal/order/domain"
)

var (
	ErrNotFound    = errors.New("order not found")
	ErrDuplicateID = errors.New("duplicate order id")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid or missing field %q", e.Field)
}

type PlaceOrderRequest struct {
	Customer    domain.Customer
	Shipping    domain.Shipping
	Items       []domain.Item
	ShippingFee int64
}

// Service assembles validated, immutable orders out of cart snapshots.
type Service struct {
	repo OrderRepo
	now  func() time.Time

	mu     sync.Mutex
	lastID int64
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// PlaceOrder validates the request, computes the total, assigns an ID
// derived from the placement timestamp and persists the order in status
// pending. The caller clears its cart only after a nil error, so a
// failed placement never loses cart contents.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (domain.Order, error) {
	if err := validate(req); err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.Item, len(req.Items))
	var subtotal int64
	for i, it := range req.Items {
		it.LineTotal = it.UnitPrice * int64(it.Quantity)
		items[i] = it
		subtotal += it.LineTotal
	}

	placedAt := s.now().UTC()
	order := domain.Order{
		ID:          s.nextID(placedAt),
		Customer:    req.Customer,
		Shipping:    req.Shipping,
		Items:       items,
		TotalAmount: subtotal + req.ShippingFee,
		OrderDate:   placedAt,
		Status:      domain.StatusPending,
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		if errors.Is(err, ErrDuplicateID) {
			// The ID scheme is monotonic; a collision means the
			// uniqueness invariant itself is broken.
			return domain.Order{}, fmt.Errorf("order id collision for %s: %w", order.ID, err)
		}
		return domain.Order{}, fmt.Errorf("store order: %w", err)
	}

	return order, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, &ValidationError{Field: "status"}
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// nextID derives an order ID from the placement timestamp in
// milliseconds, bumped past the previous ID so two placements within
// the same millisecond stay distinct.
func (s *Service) nextID(placedAt time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := placedAt.UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return "ORD" + strconv.FormatInt(ms, 10)
}

// validate checks fields in the order the checkout form collects them:
// customer, then shipping, then the cart itself.
func validate(req PlaceOrderRequest) error {
	c, sh := req.Customer, req.Shipping
	switch {
	case strings.TrimSpace(c.FullName) == "":
		return &ValidationError{Field: "fullName"}
	case strings.TrimSpace(c.Email) == "" || !emailPattern.MatchString(c.Email):
		return &ValidationError{Field: "email"}
	case strings.TrimSpace(c.Phone) == "":
		return &ValidationError{Field: "phone"}
	case strings.TrimSpace(sh.Street) == "":
		return &ValidationError{Field: "street"}
	case strings.TrimSpace(sh.City) == "":
		return &ValidationError{Field: "city"}
	case strings.TrimSpace(sh.PostalCode) == "":
		return &ValidationError{Field: "postalCode"}
	case len(req.Items) == 0:
		return &ValidationError{Field: "items"}
	case req.ShippingFee < 0:
		return &ValidationError{Field: "shippingFee"}
	}

	for _, it := range req.Items {
		if it.Quantity <= 0 || it.UnitPrice < 0 {
			return &ValidationError{Field: "items"}
		}
	}
	return nil
}
