package service

import (
	"context"
	"testing"
	"time"

	"devswipe/internal/auth"
	"devswipe/internal/cache"
	"devswipe/internal/models"
	"devswipe/internal/repository"
	"devswipe/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T, revoker auth.Revoker) (*AuthService, *auth.TokenManager) {
	t.Helper()
	db := testutil.NewTestDB(t)
	tokens := auth.NewTokenManager("test-secret-that-is-long-enough-123", "devswipe", "devswipe-app", time.Hour, revoker)
	svc := NewAuthService(repository.NewUserRepository(db), tokens)
	svc.bcryptCost = bcrypt.MinCost
	return svc, tokens
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Email:     "  Ada@Example.com ",
		Username:  "ada_l",
		Password:  "s3cretpass",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, tokens := newAuthService(t, nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	require.NotNil(t, resp.User.Profile)
	assert.NotEqual(t, "s3cretpass", resp.User.Password)

	claims, err := tokens.Verify(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email())

	login, err := svc.Login(ctx, LoginInput{Email: "ADA@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	me, err := svc.Me(ctx, claims.Email())
	require.NoError(t, err)
	assert.Equal(t, "ada_l", me.Username)
}

func TestAuthService_RegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()
	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	sameEmail := validRegistration()
	sameEmail.Username = "someone_else"
	_, err = svc.Register(ctx, sameEmail)
	assertCode(t, err, models.CodeConflict)

	sameUsername := validRegistration()
	sameUsername.Email = "other@example.com"
	sameUsername.Username = "ADA_L"
	_, err = svc.Register(ctx, sameUsername)
	assertCode(t, err, models.CodeConflict)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t, nil)

	tests := []struct {
		name   string
		mutate func(in *RegisterInput)
		field  string
	}{
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"short username", func(in *RegisterInput) { in.Username = "ab" }, "username"},
		{"username symbols", func(in *RegisterInput) { in.Username = "bad-name" }, "username"},
		{"short password", func(in *RegisterInput) { in.Password = "a1" }, "password"},
		{"password without digit", func(in *RegisterInput) { in.Password = "onlyletters" }, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegistration()
			tt.mutate(&in)
			_, err := svc.Register(context.Background(), in)
			assertCode(t, err, models.CodeValidation)
			appErr := err.(*models.AppError)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()
	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "wrongpass1"})
	_, unknownEmail := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "s3cretpass"})
	assertCode(t, wrongPassword, models.CodeUnauthorized)
	assertCode(t, unknownEmail, models.CodeUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	svc, tokens := newAuthService(t, cache.NewTokenRevoker(rdb))
	ctx := context.Background()

	resp, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	claims, err := tokens.Verify(ctx, resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))
	_, err = tokens.Verify(ctx, resp.Token)
	assert.ErrorIs(t, err, auth.ErrRevokedToken)
}
