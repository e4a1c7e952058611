package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ochoaluis/gymkeeper/internal/domain"
)

// ErrBadCredentials is returned for any failed login attempt.
var ErrBadCredentials = errors.New("invalid username or password")

// AuthService issues JWTs for front-desk staff. Credentials come from
// configuration: the desk application has a single admin account per
// deployment, there is no user directory behind it.
type AuthService struct {
	adminUser     string
	adminPassword string
	jwtSecret     string
	tokenTTL      time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(adminUser, adminPassword, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		adminUser:     adminUser,
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
	}
}

// Login validates the credentials and returns a signed token.
func (s *AuthService) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if !userOK || !passOK {
		return "", ErrBadCredentials
	}

	now := time.Now().UTC()
	claims := domain.StaffClaims{
		Username: username,
		Roles:    []string{domain.RoleAdmin},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
