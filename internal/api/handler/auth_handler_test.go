package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/greencode/platform/internal/api"
	"github.com/greencode/platform/internal/api/handler"
	"github.com/greencode/platform/internal/core/domain"
	"github.com/greencode/platform/internal/core/ports"
)

type stubAuthService struct {
	loginErr   error
	refreshErr error
	user       *domain.User
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "taken" {
		return nil, domain.ErrUserExists
	}
	return &domain.User{ID: "1", Username: input.Username, Email: input.Email, Role: domain.RoleUser, Enabled: true}, nil
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*ports.TokenPair, *ports.IdentitySummary, error) {
	if s.loginErr != nil {
		return nil, nil, s.loginErr
	}
	return &ports.TokenPair{
			AccessToken:      "access",
			RefreshToken:     "refresh",
			AccessExpiresAt:  time.Now().Add(time.Hour),
			RefreshExpiresAt: time.Now().Add(24 * time.Hour),
		}, &ports.IdentitySummary{
			ID:       s.user.ID,
			Username: s.user.Username,
			Email:    s.user.Email,
			Role:     s.user.Role,
		}, nil
}

func (s *stubAuthService) Refresh(_ context.Context, _ string) (*ports.TokenPair, *ports.IdentitySummary, error) {
	if s.refreshErr != nil {
		return nil, nil, s.refreshErr
	}
	return &ports.TokenPair{AccessToken: "access2", RefreshToken: "refresh2"}, &ports.IdentitySummary{ID: s.user.ID, Role: s.user.Role}, nil
}

func invoke(t *testing.T, svc ports.AuthService, target, body string, fn func(h *handler.AuthHandler, c echo.Context) error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler.NewAuthHandler(svc)
	if err := fn(h, c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func alice() *domain.User {
	return &domain.User{ID: "7", Username: "alice", Email: "alice@example.com", Role: domain.RoleUser, Enabled: true}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{user: alice()}
	rec := invoke(t, svc, "/auth/login", `{"login":"alice","password":"correctpw"}`,
		func(h *handler.AuthHandler, c echo.Context) error { return h.Login(c) })

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"access_token":"access"`) {
		t.Fatalf("missing access token in response: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"id":"7"`) {
		t.Fatalf("missing identity in response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_FailuresAreIndistinguishable(t *testing.T) {
	// Unknown user, wrong password and disabled account must all produce the
	// byte-identical response.
	var bodies []string
	var codes []int
	for _, loginErr := range []error{domain.ErrUserNotFound, domain.ErrInvalidCredentials, domain.ErrUserDisabled} {
		svc := &stubAuthService{user: alice(), loginErr: loginErr}
		rec := invoke(t, svc, "/auth/login", `{"login":"whoever","password":"pw"}`,
			func(h *handler.AuthHandler, c echo.Context) error { return h.Login(c) })
		bodies = append(bodies, rec.Body.String())
		codes = append(codes, rec.Code)
	}

	for i := 1; i < len(bodies); i++ {
		if codes[i] != codes[0] || bodies[i] != bodies[0] {
			t.Fatalf("login failures leak their cause: %d %q vs %d %q", codes[0], bodies[0], codes[i], bodies[i])
		}
	}
	if codes[0] != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", codes[0])
	}
	if !strings.Contains(bodies[0], "authentication failed") {
		t.Fatalf("expected the generic message, got %q", bodies[0])
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	svc := &stubAuthService{user: alice()}
	rec := invoke(t, svc, "/auth/login", `{"login":"alice"}`,
		func(h *handler.AuthHandler, c echo.Context) error { return h.Login(c) })

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	svc := &stubAuthService{user: alice()}
	rec := invoke(t, svc, "/auth/register", `{"username":"carol","email":"carol@example.com","password":"longenough"}`,
		func(h *handler.AuthHandler, c echo.Context) error { return h.Register(c) })

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks password material: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	svc := &stubAuthService{user: alice()}
	rec := invoke(t, svc, "/auth/register", `{"username":"taken","email":"taken@example.com","password":"longenough"}`,
		func(h *handler.AuthHandler, c echo.Context) error { return h.Register(c) })

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	svc := &stubAuthService{user: alice()}
	rec := invoke(t, svc, "/auth/register", `{"username":"carol","email":"not-an-email","password":"longenough"}`,
		func(h *handler.AuthHandler, c echo.Context) error { return h.Register(c) })

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Refresh_FailureIsGeneric(t *testing.T) {
	svc := &stubAuthService{user: alice(), refreshErr: domain.ErrTokenExpired}
	rec := invoke(t, svc, "/auth/refresh", `{"refresh_token":"stale"}`,
		func(h *handler.AuthHandler, c echo.Context) error { return h.Refresh(c) })

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "authentication failed") {
		t.Fatalf("expected the generic message, got %q", rec.Body.String())
	}
}
