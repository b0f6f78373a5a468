package app

import (
	"context"
	"errors"
	"slices"

	"github.com/dekorshop/dekorshop/internal/user/domain"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Service struct {
	repo UserRepo
}

func NewService(repo UserRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetUser(ctx context.Context, id string) (domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) (domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	upd.Apply(&u)
	return s.repo.Save(ctx, u)
}

// SaveAddress stores addr on the profile and mirrors it into the
// standalone address slot the profile page reads.
func (s *Service) SaveAddress(ctx context.Context, userID string, addr domain.Address) (domain.User, error) {
	u, err := s.UpdateUser(ctx, userID, domain.UserUpdate{Address: &addr})
	if err != nil {
		return domain.User{}, err
	}
	if err := s.repo.SaveAddress(ctx, addr); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *Service) LoadAddress(ctx context.Context) (domain.Address, bool, error) {
	return s.repo.LoadAddress(ctx)
}

// AddToWishlist is idempotent: adding a present product changes nothing.
func (s *Service) AddToWishlist(ctx context.Context, userID, productID string) (domain.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if slices.Contains(u.Wishlist, productID) {
		return u, nil
	}
	u.Wishlist = append(u.Wishlist, productID)
	return s.repo.Save(ctx, u)
}

func (s *Service) RemoveFromWishlist(ctx context.Context, userID, productID string) (domain.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	before := len(u.Wishlist)
	u.Wishlist = slices.DeleteFunc(u.Wishlist, func(id string) bool { return id == productID })
	if len(u.Wishlist) == before {
		return u, nil
	}
	return s.repo.Save(ctx, u)
}

// AppendOrderHistory records an order ID on the profile, once.
func (s *Service) AppendOrderHistory(ctx context.Context, userID, orderID string) (domain.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if slices.Contains(u.OrderHistory, orderID) {
		return u, nil
	}
	u.OrderHistory = append(u.OrderHistory, orderID)
	return s.repo.Save(ctx, u)
}
