package user_service

import (
	"context"
	"testing"

	"github.com/SwiftFiat/SwiftFiat-Ledger/db/dbtest"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindUser(t *testing.T) {
	store := dbtest.NewMemoryStore()
	svc := NewUserService(store, logging.NewLogger())
	ada := store.AddUser("ada@example.com")
	ctx := context.Background()

	byID, err := svc.FindUserByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, ada.Email, byID.Email)

	byEmail, err := svc.FindUserByEmail(ctx, " Ada@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, byEmail.ID)

	_, err = svc.FindUserByID(ctx, uuid.New())
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.FindUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}
