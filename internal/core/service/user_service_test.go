package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"toolfacturer-backend/internal/adapter/storage"
	"toolfacturer-backend/internal/domain"
	"toolfacturer-backend/internal/token"
)

func newUserService(t *testing.T) (*UserService, *storage.MemoryStore, *token.Service) {
	t.Helper()
	store := storage.NewMemoryStore()
	tokens := token.NewService("secret", time.Hour)
	return NewUserService(store, tokens), store, tokens
}

func TestUserService_UpsertIssuesTokenForEmail(t *testing.T) {
	svc, _, tokens := newUserService(t)

	res, err := svc.Upsert(context.Background(), "a@example.com", domain.UserFields{Name: "A"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Result.UpsertedCount)

	email, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", email)
}

func TestUserService_UpsertHashesPassword(t *testing.T) {
	svc, store, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "a@example.com", domain.UserFields{Password: "hunter2"})
	require.NoError(t, err)

	u, err := store.FindUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("hunter2")))
}

func TestUserService_UpsertRejectsBlankEmail(t *testing.T) {
	svc, _, _ := newUserService(t)
	_, err := svc.Upsert(context.Background(), "  ", domain.UserFields{})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestUserService_IsAdminReadsStoreEveryTime(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	admin, err := svc.IsAdmin(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, admin)

	_, err = svc.Upsert(ctx, "a@example.com", domain.UserFields{})
	require.NoError(t, err)
	admin, err = svc.IsAdmin(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, admin)

	_, err = svc.MakeAdmin(ctx, "a@example.com")
	require.NoError(t, err)
	admin, err = svc.IsAdmin(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, admin)
}
