package users_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
	"github.com/Dmitry-Bulhin/ya-note/internal/repository/sqlite/sqlitetest"
	"github.com/Dmitry-Bulhin/ya-note/internal/usecase/users"
)

func newUsecase(t *testing.T) *users.Usecase {
	t.Helper()

	_, repo := sqlitetest.New(t)

	uc, err := users.New(users.NewOptions(repo, users.WithHashCost(bcrypt.MinCost)))
	require.NoError(t, err)

	return uc
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := users.New(users.NewOptions(nil))
	assert.Error(t, err)

	_, repo := sqlitetest.New(t)
	_, err = users.New(users.NewOptions(repo, users.WithHashCost(1)))
	assert.Error(t, err)
}

func TestValidateUsername(t *testing.T) {
	for _, ok := range []string{"author", "Автор", "user.name@mail+tag-1_x"} {
		assert.NoError(t, users.ValidateUsername(ok), ok)
	}
	for _, bad := range []string{"", "with space", "slash/", strings.Repeat("a", entity.UsernameMaxLength+1)} {
		assert.ErrorIs(t, users.ValidateUsername(bad), entity.ErrInvalidUsername, bad)
	}
}

func TestSignupAndAuthenticate(t *testing.T) {
	uc := newUsecase(t)
	ctx := context.Background()

	created, err := uc.Signup(ctx, "author", "s3cret-pass")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, []byte("s3cret-pass"), created.PasswordHash)

	got, err := uc.Authenticate(ctx, "author", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = uc.Authenticate(ctx, "author", "wrong-pass")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	_, err = uc.Authenticate(ctx, "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	byID, err := uc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "author", byID.Username)
}

func TestSignupRejects(t *testing.T) {
	uc := newUsecase(t)
	ctx := context.Background()

	_, err := uc.Signup(ctx, "bad name", "long-enough")
	assert.ErrorIs(t, err, entity.ErrInvalidUsername)

	_, err = uc.Signup(ctx, "author", "short")
	assert.ErrorIs(t, err, entity.ErrWeakPassword)

	_, err = uc.Signup(ctx, "author", "long-enough")
	require.NoError(t, err)

	_, err = uc.Signup(ctx, "author", "another-one")
	assert.ErrorIs(t, err, entity.ErrUserExists)
}

func TestGetUserNotFound(t *testing.T) {
	uc := newUsecase(t)

	_, err := uc.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}
