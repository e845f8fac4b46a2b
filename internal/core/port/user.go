package port

import (
	"context"

	"taskapp/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id int) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	UpdateToken(ctx context.Context, id int, token *string) error
}

type UserService interface {
	GetAllUsers(ctx context.Context) ([]domain.User, error)
}
