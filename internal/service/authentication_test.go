package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"volunteer-hub/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	newTokenID = uuid.NewString
	SetSigningSecret("")
}

func TestHashPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	pwd := "secret"
	hash, err := HashPassword(pwd)
	require.NoError(t, err)
	require.NotEqual(t, pwd, hash)
	require.NoError(t, ComparePassword(hash, pwd))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, 10, cost)

	require.ErrorIs(t, ComparePassword(hash, "other"), bcrypt.ErrMismatchedHashAndPassword)

	_, err = HashPassword("")
	require.ErrorIs(t, err, ErrEmptyPassword)

	gen := errors.New("gen")
	bcryptGenerateFromPassword = func(_ []byte, _ int) ([]byte, error) {
		return nil, gen
	}
	_, err = HashPassword(pwd)
	require.ErrorIs(t, err, gen)
}

func TestAuthenticateUser(t *testing.T) {
	t.Cleanup(restoreGlobals)
	hash, _ := HashPassword("pw")
	u := model.User{PasswordHash: hash}
	require.NoError(t, AuthenticateUser(context.Background(), u, "pw"))
	require.ErrorIs(t, AuthenticateUser(context.Background(), u, "bad"), ErrInvalidCredentials)
	require.ErrorIs(t, AuthenticateUser(context.Background(), u, ""), ErrInvalidCredentials)
	require.ErrorIs(t, AuthenticateUser(context.Background(), model.User{}, "pw"), ErrInvalidCredentials)
}

func TestIssueAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	os.Unsetenv("JWT_SECRET")
	_, err := IssueAccessToken(model.User{}, time.Minute)
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s")
	newTokenID = func() string { return "jti-1" }
	tok, err := IssueAccessToken(model.User{UserID: 5, Role: model.RoleAdmin}, time.Minute)
	require.NoError(t, err)
	claims := &CustomClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("s"), nil })
	require.NoError(t, err)
	require.Equal(t, 5, claims.UserID)
	require.Equal(t, "5", claims.Subject)
	require.Equal(t, "jti-1", claims.ID)
	require.True(t, claims.IsAdmin())
}

func TestSetSigningSecret(t *testing.T) {
	t.Cleanup(restoreGlobals)
	os.Unsetenv("JWT_SECRET")
	SetSigningSecret("configured")
	tok, err := IssueAccessToken(model.User{UserID: 1, Role: model.RoleVolunteer}, time.Minute)
	require.NoError(t, err)
	claims, err := VerifyAccessToken(tok)
	require.NoError(t, err)
	require.False(t, claims.IsAdmin())
	require.True(t, claims.CanAccessUser(1))
	require.False(t, claims.CanAccessUser(2))
}

func TestVerifyAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	os.Unsetenv("JWT_SECRET")
	_, err := VerifyAccessToken("abc")
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s")
	_, err = VerifyAccessToken("invalid")
	require.Error(t, err)

	tokNone, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"foo": "bar"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = VerifyAccessToken(tokNone)
	require.Error(t, err)

	parseWithClaims = func(s string, c jwt.Claims, k jwt.Keyfunc, opts ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Claims: jwt.MapClaims{}, Valid: false}, nil
	}
	_, err = VerifyAccessToken("whatever")
	require.Error(t, err)

	parseWithClaims = jwt.ParseWithClaims
	tok, _ := IssueAccessToken(model.User{UserID: 3}, time.Minute)
	claims, err := VerifyAccessToken(tok)
	require.NoError(t, err)
	require.Equal(t, 3, claims.UserID)

	// 過期
	timeNow = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := IssueAccessToken(model.User{UserID: 3}, time.Hour)
	timeNow = time.Now
	_, err = VerifyAccessToken(old)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}
