package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dekorshop/dekorshop/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	featuredMinRating = 4.0
	featuredLimit     = 5
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)

	if p.Name == "" || p.Price <= 0 || p.Stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateProduct(ctx context.Context, id string, upd domain.ProductUpdate) (domain.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	upd.Apply(&p)
	p.Name = strings.TrimSpace(p.Name)

	if p.Name == "" || p.Price <= 0 || p.Stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	return s.repo.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) UpdateStock(ctx context.Context, id string, stock int) (domain.Product, error) {
	if stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}
	return s.UpdateProduct(ctx, id, domain.ProductUpdate{Stock: &stock})
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if strings.TrimSpace(category) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCategory(ctx, category)
}

func (s *Service) ProductsByPrice(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListSorted(ctx, "price", false)
}

func (s *Service) ProductsByRating(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListSorted(ctx, "rating", true)
}

func (s *Service) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.Featured(ctx, featuredMinRating, featuredLimit)
}

func (s *Service) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.Search(ctx, term)
}
