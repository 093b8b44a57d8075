package ports

import (
	"context"

	"github.com/pathshala/pathshala-api/internal/core/domain"
)

// UserRepository defines the persistence contract for accounts. FindByID is
// the narrow lookup consumed by the admin gate.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ListByRole(ctx context.Context, role string) ([]domain.User, error)
}
