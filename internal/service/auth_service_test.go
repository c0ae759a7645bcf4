package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/samueldk12/trainer/internal/config"
	"github.com/samueldk12/trainer/internal/repository/memory"
	"github.com/samueldk12/trainer/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAuthRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	auth := service.NewAuthService(store.Users, testSecret, time.Hour)

	name, email := gofakeit.Name(), gofakeit.Email()
	user, err := auth.Register(ctx, name, email, "s3cret!")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = auth.Register(ctx, "Other", email, "another1")
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)
	_, err = auth.Register(ctx, "Other", "not-an-email", "another1")
	assert.ErrorIs(t, err, service.ErrValidationFailed)
	_, err = auth.Register(ctx, "Other", "Other <other@example.com>", "another1")
	assert.ErrorIs(t, err, service.ErrValidationFailed, "a display name is not an address")
	_, err = auth.Register(ctx, "Other", gofakeit.Email(), "123")
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, _, err = auth.Login(ctx, email, "wrong")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	_, _, err = auth.Login(ctx, "nobody@example.com", "s3cret!")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)

	token, loggedIn, err := auth.Login(ctx, email, "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	identity, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, name, identity.Name)
}

func TestAuthParseToken_Rejects(t *testing.T) {
	auth := service.NewAuthService(memory.NewStore().Users, testSecret, time.Hour)

	_, err := auth.ParseToken("garbage")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	sign := func(secret string, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	valid := jwt.MapClaims{"uid": "u1", "iss": "trainer", "exp": time.Now().Add(time.Hour).Unix()}

	_, err = auth.ParseToken(sign("other-secret", valid))
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = auth.ParseToken(sign(testSecret, jwt.MapClaims{"uid": "u1", "iss": "trainer", "exp": time.Now().Add(-time.Minute).Unix()}))
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = auth.ParseToken(sign(testSecret, jwt.MapClaims{"uid": "u1", "iss": "elsewhere", "exp": time.Now().Add(time.Hour).Unix()}))
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	identity, err := auth.ParseToken(sign(testSecret, valid))
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
}

func TestAuthProvisionalUserCannotLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := service.ProvisionalIdentity(ctx, store.Users, config.ProvisionalConfig{Name: "Test User", Email: "user@test.com"})
	require.NoError(t, err)

	auth := service.NewAuthService(store.Users, testSecret, time.Hour)
	_, _, err = auth.Login(ctx, "user@test.com", "anything")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
}

func TestProvisionalIdentity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cfg := config.ProvisionalConfig{Name: "Test User", Email: "User@Test.com"}

	first, err := service.ProvisionalIdentity(ctx, store.Users, cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, first.UserID)
	assert.Equal(t, "user@test.com", first.Email)

	again, err := service.ProvisionalIdentity(ctx, store.Users, cfg)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	count, err := store.Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	user, err := store.Users.GetByID(ctx, first.UserID)
	require.NoError(t, err)
	assert.True(t, user.Provisional)
}
