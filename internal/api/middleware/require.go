package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greencode/platform/internal/api/metrics"
	"github.com/greencode/platform/internal/core/access"
	"github.com/greencode/platform/internal/core/domain"
)

// Require enforces a role-level permission using the access engine. It runs
// after Auth and reads the role claim from context. Deny is always a bare
// 403 with no detail.
func Require(engine *access.Engine, permission access.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(domain.Role)

			decision := engine.Decide(role, permission)
			metrics.AuthzDecisionsTotal.WithLabelValues(string(permission), decision.String()).Inc()

			if decision != access.Allow {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
