package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/v2/bson"

	errs "portfolio-api/internal/errors"
	"portfolio-api/internal/model"
)

const (
	currentUserKey = "currentUser"
	tokenClaimsKey = "tokenClaims"
)

// UserFinder resolves the identity encoded in a verified token.
type UserFinder interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
}

// Middleware builds the ordered authentication chain: VerifyToken extracts
// and verifies the session token, ResolveUser loads the identity behind it,
// and RestrictTo enforces role-based access. RestrictTo must always be
// chained after ResolveUser.
type Middleware struct {
	secret []byte
	users  UserFinder
	tokens TokenStore
}

// NewMiddleware creates the authentication middleware chain.
func NewMiddleware(secret string, users UserFinder, tokens TokenStore) *Middleware {
	return &Middleware{
		secret: []byte(secret),
		users:  users,
		tokens: tokens,
	}
}

// VerifyToken reads a bearer token from the Authorization header, falling
// back to the jwt cookie, and verifies its signature and expiry. Requests
// without a valid token never reach the next handler.
func (m *Middleware) VerifyToken() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  m.secret,
		TokenLookup: "header:Authorization:Bearer ,cookie:jwt",
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// extraction failures mean no token was sent at all; parse
			// failures arrive wrapped in a TokenError
			var tokenErr *echojwt.TokenError
			if !errors.As(err, &tokenErr) {
				return errs.Unauthenticated("You are not logged in!")
			}
			if errors.Is(err, jwt.ErrTokenExpired) {
				return errs.Unauthenticated("Your token has expired. Please log in again!")
			}
			return errs.Unauthenticated("Invalid token. Please log in again!")
		},
	})
}

// ResolveUser looks up the identity encoded in the verified token and stores
// it on the request context. A revoked token or a deleted user both fail
// with 401.
func (m *Middleware) ResolveUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return errs.Unauthenticated("You are not logged in!")
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return errs.Unauthenticated("Invalid token. Please log in again!")
			}

			ctx := c.Request().Context()
			if m.tokens != nil && m.tokens.IsBlacklisted(ctx, claims.ID) {
				return errs.Unauthenticated("Invalid token. Please log in again!")
			}

			id, err := bson.ObjectIDFromHex(claims.UserID)
			if err != nil {
				return errs.Unauthenticated("Invalid token. Please log in again!")
			}
			user, err := m.users.FindByID(ctx, id)
			if err != nil {
				return err
			}
			if user == nil {
				return errs.Unauthenticated("The user of this token no longer exists!")
			}

			c.Set(currentUserKey, user)
			c.Set(tokenClaimsKey, claims)
			return next(c)
		}
	}
}

// RestrictTo fails with 403 unless the resolved identity's role is in the
// allow-list.
func (m *Middleware) RestrictTo(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return errs.Unauthenticated("You are not logged in!")
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return errs.Forbidden("You do not have permission to perform this action!")
		}
	}
}

// CurrentUser returns the identity resolved by ResolveUser, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(currentUserKey).(*model.User)
	return user
}

// TokenClaims returns the verified claims of the current request's token, or
// nil.
func TokenClaims(c echo.Context) *Claims {
	claims, _ := c.Get(tokenClaimsKey).(*Claims)
	return claims
}
