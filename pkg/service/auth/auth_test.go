package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/minibank/minibank/infra/repository/memory"
	"github.com/minibank/minibank/pkg/config"
	"github.com/minibank/minibank/pkg/domain/user"
	authsvc "github.com/minibank/minibank/pkg/service/auth"
	"github.com/minibank/minibank/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newService(t *testing.T, expiry time.Duration) (*authsvc.Service, *memory.UserRepository) {
	t.Helper()
	repo := memory.NewUserRepository()
	cfg := config.JwtConfig{Secret: testSecret, Expiry: expiry, Leeway: 60 * time.Second}
	return authsvc.New(repo, cfg, slog.Default()), repo
}

func parseToken(t *testing.T, token string, leeway time.Duration) (*jwt.Token, error) {
	t.Helper()
	return jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithExpirationRequired(),
	)
}

func TestRegister(t *testing.T) {
	t.Parallel()
	svc, repo := newService(t, time.Hour)

	u, err := svc.Register(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.NotEqual(t, "pw1", u.HashedPassword)

	stored, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("pw1", stored.HashedPassword))
}

func TestRegister_EmailTaken(t *testing.T) {
	t.Parallel()
	svc, repo := newService(t, time.Hour)
	ctx := context.Background()

	first, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@x.com", "pw2")
	require.ErrorIs(t, err, user.ErrEmailTaken)

	// The first user's stored hash is unaffected.
	stored, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.HashedPassword, stored.HashedPassword)
	assert.True(t, utils.CheckPasswordHash("pw1", stored.HashedPassword))
}

func TestLogin_RoundTrip(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	parsed, err := parseToken(t, token, time.Minute)
	require.NoError(t, err)
	got, err := svc.CurrentUserID(parsed)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got)
}

// Unknown email and wrong password must be indistinguishable.
func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "a@x.com", "nope")
	_, unknownEmail := svc.Login(ctx, "nobody@x.com", "pw1")

	require.ErrorIs(t, wrongPassword, user.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, user.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestToken(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	token, err := svc.Token(ctx, u.ID)
	require.NoError(t, err)

	parsed, err := parseToken(t, token, time.Minute)
	require.NoError(t, err)
	got, err := svc.CurrentUserID(parsed)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got)
}

func TestToken_UserNotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, time.Hour)

	_, err := svc.Token(context.Background(), uuid.New())
	require.ErrorIs(t, err, user.ErrUserNotFound)
}

// A token expired beyond the leeway is rejected; one expired within the
// leeway still verifies.
func TestToken_ExpiryLeeway(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	justExpired, repo := newService(t, -30*time.Second)
	u, err := justExpired.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	token, err := justExpired.Token(ctx, u.ID)
	require.NoError(t, err)
	_, err = parseToken(t, token, 60*time.Second)
	require.NoError(t, err, "expiry within the leeway window must still verify")

	longExpired := authsvc.New(repo, config.JwtConfig{
		Secret: testSecret,
		Expiry: -2 * time.Minute,
		Leeway: 60 * time.Second,
	}, slog.Default())
	token, err = longExpired.Token(ctx, u.ID)
	require.NoError(t, err)
	_, err = parseToken(t, token, 60*time.Second)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestCurrentUserID_MalformedSub(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, time.Hour)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	parsed, err := parseToken(t, raw, time.Minute)
	require.NoError(t, err)
	_, err = svc.CurrentUserID(parsed)
	require.Error(t, err)
}
