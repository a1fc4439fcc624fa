package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/zerohunger/backend/internal/backend/domain"
	"github.com/zerohunger/backend/pkg/cryptox"
	"github.com/zerohunger/backend/pkg/slogx"
)

// Authenticate checks a password login for an active account. It does not
// record the login; callers apply their own admission rules first and then
// call RecordLogin. Every failure is ErrInvalidCredentials so callers cannot
// tell unknown accounts from bad passwords.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	u, err := s.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		l.Info("login failed", slog.String("reason", "unknown_email"))
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) && !errors.Is(err, cryptox.ErrUnusablePassword) {
			l.Error("stored password hash unreadable", slog.String("user_id", u.ID), slog.Any("error", err))
		}
		l.Info("login failed", slog.String("user_id", u.ID), slog.String("reason", "bad_password"))
		return domain.User{}, ErrInvalidCredentials
	}

	if !u.IsActive {
		l.Info("login failed", slog.String("user_id", u.ID), slog.String("reason", "inactive"))
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// RecordLogin stamps LastLogin on an account that has been let in.
func (s *AccountService) RecordLogin(ctx context.Context, u domain.User) (domain.User, error) {
	now := s.now().UTC()
	if err := s.Store.Users().UpdateLastLogin(ctx, u.ID, now); err != nil {
		return domain.User{}, err
	}
	u.LastLogin = &now
	u.UpdatedAt = now

	return u, nil
}
