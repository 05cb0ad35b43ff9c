package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greencode/platform/internal/core/domain"
	"github.com/greencode/platform/internal/core/ports"
)

// ctxCaller extracts the claims injected by the Auth middleware and performs
// a fast-fail check before any service call: both subject and role must be
// present (presence proves the middleware ran).
func ctxCaller(c echo.Context) (ports.Caller, error) {
	subject, _ := c.Get("subject").(string)
	role, _ := c.Get("role").(domain.Role)
	if subject == "" || role == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return ports.Caller{Subject: subject, Role: role}, nil
}
