package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"lmt-crm/config"
	"lmt-crm/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// IdentityProvider resolves a login email to a stored user record plus
// its password hash. The users repository implements it; tests
// substitute an in-memory map. The hash stays inside the auth check
// and is never attached to the returned user.
type IdentityProvider interface {
	FindByEmail(ctx context.Context, email string) (*models.User, string, error)
}

// Claims is the JWT payload for an agent session. Role travels in the
// token so capability checks never hit the database per request.
type Claims struct {
	UserID string      `json:"uid"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and validates agent session tokens.
type Service struct {
	identities IdentityProvider
	secret     []byte
	issuer     string
	ttl        time.Duration
}

func NewService(identities IdentityProvider, cfg config.JWTConfig) *Service {
	return &Service{
		identities: identities,
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		ttl:        time.Duration(cfg.ExpirationMinutes) * time.Minute,
	}
}

// Login verifies the password and returns a signed session token plus
// the user snapshot. Unknown user and wrong password collapse into the
// same error so login probing learns nothing.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, hash, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken signs a session token for the user.
func (s *Service) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a session token and returns its claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashPassword produces the bcrypt hash stored for a new user.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
