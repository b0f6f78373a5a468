package app

import (
	"context"

	"github.com/dekorshop/dekorshop/internal/order/domain"
)

type OrderRepo interface {
	Insert(ctx context.Context, order domain.Order) error
	Get(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error)
}
