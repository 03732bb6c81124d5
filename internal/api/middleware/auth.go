package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ashkelon/forum/internal/api/metrics"
	"github.com/ashkelon/forum/internal/core/domain"
	"github.com/ashkelon/forum/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextLogin = "login"
	ContextRoles = "roles"
)

// Auth verifies the Authorization header against the stored account and
// injects the login and role set into the echo context. The login is also
// attached to the request context for the services. With allowExpired the
// route stays reachable after the password validity period has elapsed.
func Auth(authn ports.Authenticator, allowExpired bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			account, err := authn.Authenticate(c.Request().Context(), header, allowExpired)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues(failureReason(err)).Inc()
				return err
			}

			c.Set(ContextLogin, account.Login)
			c.Set(ContextRoles, account.Roles)
			c.SetRequest(c.Request().WithContext(domain.WithActor(c.Request().Context(), account.Login)))
			return next(c)
		}
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrPasswordExpired):
		return "password_expired"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "invalid_token"
	default:
		return "error"
	}
}
