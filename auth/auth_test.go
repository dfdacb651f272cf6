package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lmt-crm/config"
	"lmt-crm/models"
)

type stubIdentities struct {
	user *models.User
	hash string
}

func (s stubIdentities) FindByEmail(ctx context.Context, email string) (*models.User, string, error) {
	if s.user == nil || s.user.Email != email {
		return nil, "", errors.New("not found")
	}
	return s.user, s.hash, nil
}

func testService(t *testing.T) (*Service, *models.User) {
	t.Helper()
	hash, err := HashPassword("secret-pass")
	require.NoError(t, err)

	user := &models.User{
		ID:    "u1",
		Name:  "Priya",
		Email: "priya@letmetravel.in",
		Role:  models.RoleSales,
	}
	svc := NewService(stubIdentities{user: user, hash: hash}, config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "lmt-crm",
		ExpirationMinutes: 60,
	})
	return svc, user
}

func TestLoginAndParseRoundTrip(t *testing.T) {
	svc, user := testService(t)

	token, got, err := svc.Login(context.Background(), "priya@letmetravel.in", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Priya", claims.Name)
	assert.Equal(t, models.RoleSales, claims.Role)
	assert.Equal(t, "priya@letmetravel.in", claims.Subject)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := testService(t)
	_, _, err := svc.Login(context.Background(), "priya@letmetravel.in", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestLoginUnknownUserSameError(t *testing.T) {
	svc, _ := testService(t)
	_, _, unknownErr := svc.Login(context.Background(), "nobody@letmetravel.in", "secret-pass")
	_, _, wrongErr := svc.Login(context.Background(), "priya@letmetravel.in", "wrong")
	assert.Equal(t, unknownErr, wrongErr, "login probing must learn nothing")
}

func TestParseTokenRejectsTampering(t *testing.T) {
	svc, user := testService(t)
	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	_, err = svc.ParseToken(token + "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = svc.ParseToken("not-a-token")
	require.Error(t, err)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	svc, user := testService(t)
	other := NewService(stubIdentities{}, config.JWTConfig{
		Secret:            "different-secret",
		Issuer:            "lmt-crm",
		ExpirationMinutes: 60,
	})
	token, err := other.IssueToken(user)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsUnknownRole(t *testing.T) {
	svc, _ := testService(t)
	bogus := &models.User{ID: "u2", Name: "X", Email: "x@x", Role: models.Role("Intern")}
	token, err := svc.IssueToken(bogus)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.Error(t, err)
}
