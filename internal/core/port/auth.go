package port

import (
	"context"

	"taskapp/internal/core/domain"
)

// TokenService issues and verifies session credentials. VerifyToken returns
// the user id embedded in the claims; every cryptographic, format or expiry
// failure surfaces as auth.ErrInvalidToken.
type TokenService interface {
	CreateToken(userID int) (string, error)
	VerifyToken(token string) (int, error)
}

type SessionService interface {
	SignUp(ctx context.Context, username, password string) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.User, error)
	Logout(ctx context.Context, user domain.User) error
}
