// Package router wires routes and middleware.
package router

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/config"
	errs "portfolio-api/internal/errors"
	"portfolio-api/internal/handler"
	"portfolio-api/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authMW *auth.Middleware,
	users *handler.UserHandler,
	projects *handler.ProjectHandler,
	skills *handler.SkillHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit("10K"))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errs.HTTPErrorHandler(cfg.Env)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	protect := []echo.MiddlewareFunc{authMW.VerifyToken(), authMW.ResolveUser()}
	adminOnly := append(append([]echo.MiddlewareFunc{}, protect...), authMW.RestrictTo(model.RoleAdmin))

	api := e.Group("/api/v1")

	u := api.Group("/users")
	u.POST("/signup", users.Signup)
	u.POST("/login", users.Login)
	u.POST("/logout", users.Logout, protect...)
	u.GET("", users.List)
	u.POST("", users.Create)
	u.GET("/:id", users.Get)
	u.PATCH("/me", users.UpdateMe, protect...)
	u.PATCH("/:id", users.Update, adminOnly...)
	u.DELETE("/:id", users.Delete, adminOnly...)

	p := api.Group("/projects")
	p.GET("", projects.GetAll)
	p.POST("", projects.CreateOne, protect...)
	p.GET("/:id", projects.GetOne)
	p.PATCH("/:id", projects.UpdateOne, protect...)
	p.DELETE("/:id", projects.DeleteOne, adminOnly...)

	s := api.Group("/skills")
	s.GET("", skills.GetAll)
	s.POST("", skills.CreateOne, protect...)
	s.GET("/:id", skills.GetOne)
	s.PATCH("/:id", skills.UpdateOne, protect...)
	s.DELETE("/:id", skills.DeleteOne, adminOnly...)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return errs.NotFound(fmt.Sprintf("Can't find %s on this server!", c.Request().URL.Path))
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
