package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/config"
	errs "portfolio-api/internal/errors"
	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/service"
)

// Fields a user may change about themselves. Role and the soft-delete flag
// are admin-only.
var userSelfFields = []string{"name", "email", "photo", "intro", "education", "employmentHistory"}

var userAdminFields = []string{"name", "email", "photo", "role", "intro", "education", "employmentHistory", "active"}

// UserHandler handles the user resource and the authentication endpoints.
type UserHandler struct {
	cfg         *config.Config
	jwt         *auth.JWTService
	authService service.AuthService
	self        Resource[model.User]
	admin       Resource[model.User]
}

// NewUserHandler creates a new user handler.
func NewUserHandler(cfg *config.Config, jwtService *auth.JWTService, authService service.AuthService, users repository.UserRepository) *UserHandler {
	base := Resource[model.User]{
		Repo:    users,
		Mutable: userSelfFields,
		BeforeSave: func(u *model.User) {
			u.Email = normalizeEmail(u.Email)
		},
		AfterGet: func(ctx context.Context, u *model.User) error {
			return users.PopulateProjects(ctx, u)
		},
	}

	h := &UserHandler{
		cfg:         cfg,
		jwt:         jwtService,
		authService: authService,
		self:        base,
		admin:       base,
	}
	h.admin.Mutable = userAdminFields
	return h
}

// SignupRequest is the allow-listed signup body.
type SignupRequest struct {
	Name            string `json:"name" validate:"required,max=20"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup godoc
// @Summary Sign up a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /users/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return errs.BadRequest("Invalid request body!")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return err
	}
	return h.sendToken(c, user, http.StatusCreated)
}

// Login godoc
// @Summary Log in with email and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return errs.BadRequest("Invalid request body!")
	}
	if req.Email == "" || req.Password == "" {
		return errs.BadRequest("Please provide email and password!")
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.sendToken(c, user, http.StatusOK)
}

// Logout godoc
// @Summary Revoke the current session token
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /users/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	claims := auth.TokenClaims(c)
	if claims == nil {
		return errs.Unauthenticated("You are not logged in!")
	}
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
	})
	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	return h.self.GetAll(c)
}

// Get godoc
// @Summary Get a user with their projects
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	return h.self.GetOne(c)
}

// UpdateMe updates the authenticated user; role changes are excluded.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return errs.Unauthenticated("You are not logged in!")
	}
	c.SetParamNames("id")
	c.SetParamValues(user.ID.Hex())
	return h.self.UpdateOne(c)
}

// Update is the admin update; role changes are allowed.
func (h *UserHandler) Update(c echo.Context) error {
	return h.admin.UpdateOne(c)
}

// Delete removes a user record.
func (h *UserHandler) Delete(c echo.Context) error {
	return h.self.DeleteOne(c)
}

// Create rejects direct user creation; users sign up instead.
func (h *UserHandler) Create(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"status":  "error",
		"message": "This route is no longer used to create a new user. Please sign up instead!",
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// sendToken issues a session token, sets it as an http-only cookie and
// returns it alongside the user.
func (h *UserHandler) sendToken(c echo.Context, user *model.User, statusCode int) error {
	token, err := h.jwt.Sign(user.ID.Hex())
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(h.cfg.JWTCookieExpiresIn),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		Path:     "/",
	})

	return c.JSON(statusCode, echo.Map{
		"status": "success",
		"token":  token,
		"data":   user,
	})
}
