package service

import (
	"context"
	"log/slog"

	"github.com/zerohunger/backend/internal/backend/domain"
	"github.com/zerohunger/backend/internal/backend/store"
	"github.com/zerohunger/backend/pkg/slogx"
)

// EnsureSuperuser provisions the first superuser on an empty database. Once
// any account exists it returns ErrAlreadyBootstrapped and changes nothing.
func (s *AccountService) EnsureSuperuser(ctx context.Context, email, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	var created domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrAlreadyBootstrapped
		}

		var extra domain.ExtraFields
		setSuperuserDefaults(&extra)

		created, err = s.createUser(ctx, tx, email, username, password, extra)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	l.Info("superuser provisioned", slog.String("user_id", created.ID))
	return created, nil
}
