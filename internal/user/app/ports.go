package app

import (
	"context"

	"github.com/dekorshop/dekorshop/internal/user/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u domain.User, passwordHash string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Save(ctx context.Context, u domain.User) (domain.User, error)
	SaveAddress(ctx context.Context, addr domain.Address) error
	LoadAddress(ctx context.Context) (domain.Address, bool, error)
}
