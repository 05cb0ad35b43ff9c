package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/greencode/platform/internal/core/domain"
	"github.com/greencode/platform/internal/core/service"
)

func signToken(t *testing.T, secret string, issued, expires time.Time, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "7",
		"jti":  "tok-1",
		"iat":  issued.Unix(),
		"exp":  expires.Unix(),
		"role": role,
		"typ":  "access",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, token string) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(service.NewTokenService("secret", time.Hour, 24*time.Hour))
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, c
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	now := time.Now()
	token := signToken(t, "secret", now, now.Add(time.Hour), "USER")

	rec, called, c := runAuth(t, "Bearer "+token)
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get("subject") != "7" {
		t.Fatalf("subject not set")
	}
	if c.Get("role") != domain.RoleUser {
		t.Fatalf("role not set, got %v", c.Get("role"))
	}
	if c.Get("token_id") != "tok-1" {
		t.Fatalf("token_id not set")
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec, called, _ := runAuth(t, "")
	if called {
		t.Fatalf("next should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	rec, called, _ := runAuth(t, "Token abc")
	if called {
		t.Fatalf("next should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	now := time.Now()
	token := signToken(t, "secret", now.Add(-2*time.Hour), now.Add(-time.Hour), "USER")

	rec, called, _ := runAuth(t, "Bearer "+token)
	if called {
		t.Fatalf("next should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_WrongKeyAdminToken(t *testing.T) {
	// A forged ADMIN token signed with the wrong key must never pass.
	now := time.Now()
	token := signToken(t, "attacker-secret", now, now.Add(time.Hour), "ADMIN")

	rec, called, _ := runAuth(t, "Bearer "+token)
	if called {
		t.Fatalf("next should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	rec, called, _ := runAuth(t, "Bearer not-a-token")
	if called {
		t.Fatalf("next should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
