package ports

import (
	"context"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
)

// UserRepository defines persistence for registered users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.User, error)
	FindAllExcept(ctx context.Context, id string) ([]domain.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateProfilePic(ctx context.Context, id, url string) (*domain.User, error)
}
