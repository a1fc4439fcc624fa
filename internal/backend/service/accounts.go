package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/zerohunger/backend/internal/backend/domain"
	"github.com/zerohunger/backend/internal/backend/store"
	"github.com/zerohunger/backend/pkg/cryptox"
	"github.com/zerohunger/backend/pkg/idx"
	"github.com/zerohunger/backend/pkg/slogx"
)

const (
	DefaultListLimit = 25
	MaxListLimit     = 100
)

// AccountService creates and looks up user accounts.
type AccountService struct {
	Store store.Store

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateUser creates an account identified by email. The password is hashed
// before storage; an empty password leaves the account without a usable one.
// Flags not set in extra get the model defaults.
func (s *AccountService) CreateUser(
	ctx context.Context,
	email, username, password string,
	extra domain.ExtraFields,
) (domain.User, error) {
	return s.createUser(ctx, s.Store, email, username, password, extra)
}

// CreateSuperuser is CreateUser with staff, superuser and active defaulting
// to true. Explicit values in extra are kept as given.
func (s *AccountService) CreateSuperuser(
	ctx context.Context,
	email, username, password string,
	extra domain.ExtraFields,
) (domain.User, error) {
	setSuperuserDefaults(&extra)
	return s.CreateUser(ctx, email, username, password, extra)
}

func setSuperuserDefaults(extra *domain.ExtraFields) {
	domain.SetDefault(&extra.IsStaff, true)
	domain.SetDefault(&extra.IsSuperuser, true)
	domain.SetDefault(&extra.IsActive, true)
}

func (s *AccountService) createUser(
	ctx context.Context,
	st store.Store,
	email, username, password string,
	extra domain.ExtraFields,
) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if strings.TrimSpace(email) == "" {
		return domain.User{}, ErrEmailRequired
	}
	email = NormalizeEmail(email)

	hash, err := hashOrUnusable(password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		DateJoined:   now,
		UpdatedAt:    now,
	}
	extra.Apply(&u)

	if err := st.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		l.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	l.Info("user created",
		slog.String("user_id", u.ID),
		slog.String("email", u.Email),
		slog.Bool("is_staff", u.IsStaff),
		slog.Bool("is_superuser", u.IsSuperuser),
	)
	return u, nil
}

func hashOrUnusable(password string) (string, error) {
	if password == "" {
		return cryptox.MakeUnusablePassword()
	}
	return cryptox.HashPassword(password)
}

// GetUserByID fetches a user by id.
func (s *AccountService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if _, err := idx.Parse(id); err != nil {
		return domain.User{}, ErrUserNotFound
	}

	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// GetUserByEmail normalizes email before looking it up.
func (s *AccountService) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// ListUsers pages through accounts newest first. A non-positive limit means
// DefaultListLimit; larger than MaxListLimit is clamped.
func (s *AccountService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	limit = ClampLimit(limit)
	offset = max(offset, 0)

	users, err := s.Store.Users().ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Store.Users().CountUsers(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
