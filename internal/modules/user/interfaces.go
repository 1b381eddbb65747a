package user

import (
	"context"

	"shareit/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Save(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmailExcludingID(ctx context.Context, email string, id int64) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}
