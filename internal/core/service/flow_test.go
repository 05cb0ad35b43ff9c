package service

import (
	"context"
	"testing"

	"github.com/greencode/platform/internal/core/access"
	"github.com/greencode/platform/internal/core/domain"
)

// Exercises the whole chain a request travels: credential check, token
// issuance, token validation and the access decision on the recovered role.
func TestLoginToDecisionFlow(t *testing.T) {
	svc, repo, tokens, _ := newAuthFixture(t)
	engine := access.NewEngine()
	seedUser(t, repo, "alice", "alice@example.com", "correctpw", domain.RoleUser, true)

	pair, _, err := svc.Login(context.Background(), "alice", "correctpw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := tokens.ValidateAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("access token does not validate: %v", err)
	}

	// A regular user may manage their own projects but not other identities.
	if got := engine.Decide(claims.Role, access.ProjectDeleteOwn); got != access.Allow {
		t.Fatalf("expected Allow for %s on %s, got %s", claims.Role, access.ProjectDeleteOwn, got)
	}
	if got := engine.Decide(claims.Role, access.IdentityDeleteAny); got != access.Deny {
		t.Fatalf("expected Deny for %s on %s, got %s", claims.Role, access.IdentityDeleteAny, got)
	}
}

func TestLoginToDecisionFlow_Admin(t *testing.T) {
	svc, repo, tokens, _ := newAuthFixture(t)
	engine := access.NewEngine()
	seedUser(t, repo, "root", "root@example.com", "correctpw", domain.RoleAdmin, true)

	pair, _, err := svc.Login(context.Background(), "root", "correctpw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := tokens.ValidateAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("access token does not validate: %v", err)
	}

	for _, p := range []access.Permission{
		access.ProjectUpdateAny,
		access.IdentityDeleteAny,
		access.ProjectRead,
	} {
		if got := engine.Decide(claims.Role, p); got != access.Allow {
			t.Fatalf("expected Allow for ADMIN on %s, got %s", p, got)
		}
	}
}
