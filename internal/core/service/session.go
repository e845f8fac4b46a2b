package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
)

// SessionService drives the signup/login/logout state machine. Issuing a new
// credential always overwrites the stored one, so an account has at most one
// live session.
type SessionService struct {
	repo  port.UserRepository
	token port.TokenService
}

func NewSessionService(repo port.UserRepository, token port.TokenService) *SessionService {
	return &SessionService{repo: repo, token: token}
}

func (s *SessionService) SignUp(ctx context.Context, username, password string) (domain.User, error) {
	if err := util.ValidatePassword(password); err != nil {
		return domain.User{}, err
	}

	hash, err := util.HashPassword(password)

	if err != nil {
		slog.Error("Session#SignUp", "hash_password", err)
		return domain.User{}, domain.Internal(err)
	}

	// Uniqueness is enforced by the store's unique index; a duplicate
	// username surfaces as the wrapped driver error.
	user, err := s.repo.Create(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
	})

	if err != nil {
		return domain.User{}, domain.Internal(fmt.Errorf("creating user: %w", err))
	}

	return s.refreshToken(ctx, user)
}

func (s *SessionService) Login(ctx context.Context, username, password string) (domain.User, error) {
	if username == "" || password == "" {
		return domain.User{}, domain.BadRequest("Please enter all login details.")
	}

	user, err := s.repo.GetByUsername(ctx, username)

	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.NotFound("Username not found.")
	}

	if err != nil {
		return domain.User{}, domain.Internal(err)
	}

	ok, err := util.VerifyPassword(password, user.PasswordHash)

	if err != nil {
		slog.Error("Session#Login", "verify_password", err)
		return domain.User{}, domain.Internal(err)
	}

	if !ok {
		return domain.User{}, domain.Unauthorized("Wrong credentials.")
	}

	return s.refreshToken(ctx, user)
}

func (s *SessionService) Logout(ctx context.Context, user domain.User) error {
	if err := s.repo.UpdateToken(ctx, user.ID, nil); err != nil {
		return domain.Internal(err)
	}

	return nil
}

// refreshToken issues a new credential for the user and persists it,
// replacing whatever session was live before.
func (s *SessionService) refreshToken(ctx context.Context, user domain.User) (domain.User, error) {
	token, err := s.token.CreateToken(user.ID)

	if err != nil {
		slog.Error("Session#refreshToken", "create_token", err)
		return domain.User{}, domain.Internal(err)
	}

	if err := s.repo.UpdateToken(ctx, user.ID, &token); err != nil {
		return domain.User{}, domain.Internal(err)
	}

	user.Token = &token

	return user, nil
}
