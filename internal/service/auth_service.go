// Package service holds the authentication business logic.
package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"portfolio-api/internal/auth"
	errs "portfolio-api/internal/errors"
	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

const bcryptCost = 10

// SignupInput carries the only fields a signup may set. Anything else in the
// request body is dropped before it reaches the database.
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// AuthService handles signup, login and logout.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	users  repository.UserRepository
	tokens auth.TokenStore
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens auth.TokenStore) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Signup creates a new user with a hashed password. Email uniqueness is
// enforced by the storage layer's unique index; a violation surfaces as a
// duplicate-key error.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	if in.Password != in.PasswordConfirm {
		return nil, errs.BadRequest("Password confirmation does not match!")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     in.Name,
		Email:    strings.ToLower(in.Email),
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns the user. A missing user and a
// wrong password yield the same indistinguishable failure.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.Unauthenticated("Incorrect email or password!")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errs.Unauthenticated("Incorrect email or password!")
	}
	return user, nil
}

// Logout revokes the session token until its natural expiry.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.tokens.Blacklist(ctx, claims.ID, ttl)
}
