package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ashkelon/forum/internal/api/metrics"
	"github.com/ashkelon/forum/internal/core/domain"
)

// RBAC lets the request through when the authenticated account holds any of
// allowedRoles. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get(ContextRoles).(domain.RoleSet)
			for _, r := range allowedRoles {
				if roles.Has(r) {
					return next(c)
				}
			}
			metrics.PermissionDeniedTotal.Inc()
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
