package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// HTTPErrorHandler builds the central failure-handling boundary for Echo.
// In development it returns verbose diagnostic payloads to API paths; in any
// other environment only operational errors are surfaced verbatim and
// everything else collapses to a generic 500 message.
func HTTPErrorHandler(env string) echo.HTTPErrorHandler {
	verbose := env == "development"

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		appErr := Translate(err)

		if verbose && strings.HasPrefix(c.Request().URL.Path, "/api") {
			cause := appErr.Message
			if appErr.Err != nil {
				cause = appErr.Err.Error()
			}
			_ = c.JSON(appErr.StatusCode, echo.Map{
				"status":  appErr.Status,
				"error":   cause,
				"message": appErr.Message,
				"stack":   string(debug.Stack()),
			})
			return
		}

		if !appErr.Operational {
			appErr = Internal(appErr.Err)
		}
		_ = c.JSON(appErr.StatusCode, echo.Map{
			"status":  appErr.Status,
			"message": appErr.Message,
		})
	}
}

// Translate normalizes any error into an AppError, remapping the known
// low-level failure shapes (invalid identifier, duplicate unique key, schema
// validation, token verification) into operational errors.
func Translate(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return New(httpErr.Code, fmt.Sprintf("%v", httpErr.Message))
	}

	if errors.Is(err, ErrInvalidID) {
		return NotFound(err.Error())
	}

	if mongo.IsDuplicateKeyError(err) {
		return duplicateKeyError(err)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationError(validationErrs)
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return Unauthenticated("Your token has expired. Please log in again!")
	}
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenMalformed) {
		return Unauthenticated("Invalid token. Please log in again!")
	}

	return Internal(err)
}

func duplicateKeyError(err error) *AppError {
	if strings.Contains(err.Error(), "email") {
		return BadRequest("This email already exists in the database. If you forgot your password, please reset password!")
	}
	return BadRequest("Duplicate field value. Please use another value!")
}

func validationError(errs validator.ValidationErrors) *AppError {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, fieldErrorMessage(fe))
	}
	return Newf(http.StatusBadRequest, "Invalid input data. %s", strings.Join(messages, " "))
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", fe.Field())
	case "email":
		return "Invalid email!"
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s characters!", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters!", fe.Field(), fe.Param())
	case "eqfield":
		return "Password confirmation does not match!"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]!", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid!", fe.Field())
	}
}
