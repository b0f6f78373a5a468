package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	userapp "github.com/dekorshop/dekorshop/internal/user/app"
	userdomain "github.com/dekorshop/dekorshop/internal/user/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid registration input")
	ErrInvalidToken       = errors.New("invalid token")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLen = 6

// Users is the narrow slice of the user repository auth needs.
type Users interface {
	Create(ctx context.Context, u userdomain.User, passwordHash string) (userdomain.User, error)
	Credentials(ctx context.Context, email string) (userdomain.User, string, error)
}

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

type Service struct {
	users  Users
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(users Users, secret string, ttl time.Duration) *Service {
	return &Service{users: users, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Register creates a profile with a bcrypt-hashed password and returns
// it with a signed session token.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (userdomain.User, string, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) || len(password) < minPasswordLen {
		return userdomain.User{}, "", ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return userdomain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, userdomain.User{
		Email:       email,
		DisplayName: strings.TrimSpace(displayName),
	}, string(hash))
	if err != nil {
		return userdomain.User{}, "", err
	}

	token, err := s.issueToken(u)
	if err != nil {
		return userdomain.User{}, "", err
	}
	return u, token, nil
}

// Login verifies the password against the stored hash. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (userdomain.User, string, error) {
	u, hash, err := s.users.Credentials(ctx, strings.TrimSpace(email))
	if errors.Is(err, userapp.ErrNotFound) {
		return userdomain.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return userdomain.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return userdomain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return userdomain.User{}, "", err
	}
	return u, token, nil
}

// ParseToken validates the signature and expiry and returns the claims.
func (s *Service) ParseToken(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) issueToken(u userdomain.User) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email: u.Email,
		Admin: u.IsAdmin,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
