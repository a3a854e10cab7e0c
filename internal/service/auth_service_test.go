package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"portfolio-api/internal/auth"
	errs "portfolio-api/internal/errors"
	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, doc *model.User) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) FindAll(ctx context.Context, features *repository.Features) ([]model.User, error) {
	args := m.Called(ctx, features)
	if u := args.Get(0); u != nil {
		return u.([]model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) Replace(ctx context.Context, id bson.ObjectID, doc *model.User) (*model.User, error) {
	args := m.Called(ctx, id, doc)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) PopulateProjects(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockTokenStore struct {
	mock.Mock
}

func (m *mockTokenStore) Blacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *mockTokenStore) IsBlacklisted(ctx context.Context, tokenID string) bool {
	args := m.Called(ctx, tokenID)
	return args.Bool(0)
}

func TestAuthService_Signup(t *testing.T) {
	users := new(mockUserRepository)
	svc := NewAuthService(users, new(mockTokenStore))

	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	user, err := svc.Signup(context.Background(), SignupInput{
		Name:            "Jane Doe",
		Email:           "Jane@Example.COM",
		Password:        "hunter2hunter2",
		PasswordConfirm: "hunter2hunter2",
	})
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	// the stored password must be a verifiable hash, not the raw secret
	assert.NotEqual(t, "hunter2hunter2", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter2hunter2")))

	users.AssertExpectations(t)
}

func TestAuthService_Signup_ConfirmationMismatch(t *testing.T) {
	users := new(mockUserRepository)
	svc := NewAuthService(users, new(mockTokenStore))

	user, err := svc.Signup(context.Background(), SignupInput{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Password:        "hunter2hunter2",
		PasswordConfirm: "something-else",
	})
	assert.Nil(t, user)

	var appErr *errs.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, "Password confirmation does not match!", appErr.Message)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)
	stored := &model.User{Name: "Jane Doe", Email: "jane@example.com", Password: string(hash)}

	tests := []struct {
		name     string
		email    string
		password string
		found    *model.User
		wantErr  bool
	}{
		{
			name:     "valid credentials",
			email:    "jane@example.com",
			password: "hunter2hunter2",
			found:    stored,
		},
		{
			name:     "email is lowercased before lookup",
			email:    "JANE@Example.com",
			password: "hunter2hunter2",
			found:    stored,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "hunter2hunter2",
			found:    nil,
			wantErr:  true,
		},
		{
			name:     "wrong password",
			email:    "jane@example.com",
			password: "wrong-password",
			found:    stored,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepository)
			users.On("FindByEmail", mock.Anything, "jane@example.com").Return(tt.found, nil)
			users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
			svc := NewAuthService(users, new(mockTokenStore))

			user, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr {
				assert.Nil(t, user)
				var appErr *errs.AppError
				assert.ErrorAs(t, err, &appErr)
				assert.Equal(t, 401, appErr.StatusCode)

				// missing users and bad passwords must be indistinguishable
				assert.Equal(t, "Incorrect email or password!", appErr.Message)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, stored.Email, user.Email)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	tokens := new(mockTokenStore)
	svc := NewAuthService(new(mockUserRepository), tokens)

	expiry := time.Now().Add(time.Hour)
	claims := &auth.Claims{
		UserID: "652f1b2e8f1b2c3d4e5f6a7b",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "session-jti",
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	tokens.On("Blacklist", mock.Anything, "session-jti", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), claims))
	tokens.AssertExpectations(t)
}
