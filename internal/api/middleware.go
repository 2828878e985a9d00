package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Yandex-School/SplitBill-backend/internal/entity"
	"github.com/labstack/echo/v4"
)

// UserTicketHeader carries the opaque session token on every /v1 call.
const UserTicketHeader = "X-Ya-User-Ticket"

const userIDContextKey = "user_id"

// TokenValidator resolves a session ticket to a user id.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (int, error)
}

// SessionMiddleware guards /v1 routes: a missing or unresolvable ticket
// short-circuits with 401 before any handler runs. The resolved user id is
// stored on the echo context.
func SessionMiddleware(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(UserTicketHeader)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			userID, err := validator.ValidateToken(c.Request().Context(), token)
			if err != nil {
				return errorJSON(c, err)
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

// CurrentUserID returns the authenticated user id set by SessionMiddleware.
func CurrentUserID(c echo.Context) int {
	id, _ := c.Get(userIDContextKey).(int)
	return id
}

// errorJSON maps application errors onto their status codes and hides
// everything else behind a generic 500.
func errorJSON(c echo.Context, err error) error {
	var appErr *entity.Error
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Code, map[string]string{"error": appErr.Message})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
