package user_service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/google/uuid"
)

// UserService reads identities owned by the auth system.
type UserService struct {
	store  db.Store
	logger *logging.Logger
}

func NewUserService(store db.Store, logger *logging.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

func (u *UserService) FindUserByID(ctx context.Context, id uuid.UUID) (*db.User, error) {
	user, err := u.store.GetUser(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewUserError(ErrUserNotFound, id.String())
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserService) FindUserByEmail(ctx context.Context, email string) (*db.User, error) {
	user, err := u.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewUserError(ErrUserNotFound, email)
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}
