package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/greencode/platform/internal/api/metrics"
	"github.com/greencode/platform/internal/core/domain"
	"github.com/greencode/platform/internal/core/ports"
)

// Auth validates the bearer token and injects its claims into context.
// Every validation failure collapses to the same 401 body; the precise
// reason only reaches the metrics, never the caller.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			claims, err := tokens.ValidateAccess(parts[1])
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues(validationResult(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()

			c.Set("subject", claims.Subject)
			c.Set("role", claims.Role)
			c.Set("token_id", claims.TokenID)

			return next(c)
		}
	}
}

func validationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "signature_invalid"
	default:
		return "malformed"
	}
}
