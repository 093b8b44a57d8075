package ports

import (
	"context"

	"github.com/pathshala/pathshala-api/internal/core/domain"
)

// AuthService implements account creation and session issuance. Both SignUp
// and SignIn return the signed session token alongside the account so the
// handler can attach the session cookie.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password, role string) (*domain.User, string, error)
	SignIn(ctx context.Context, email, password, clientIP string) (*domain.User, string, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}
