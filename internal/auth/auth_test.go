//go:build unit

package auth

import (
	"testing"
	"time"

	"go-portfolio-app/internal/logger"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ComparePassword(hash, "s3cret"); err != nil {
		t.Errorf("expected password to match, got %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Error("expected mismatch for wrong password")
	}
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestTokenManager(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)

	token, expires, err := m.Issue("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Error("expected expiry in the future")
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Role != RoleAdmin || claims.Subject != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	other := NewTokenManager("other-secret", time.Minute)
	if _, err := other.Parse(token); err == nil {
		t.Error("expected signature check to fail with a different secret")
	}

	expired := NewTokenManager("test-secret", -time.Minute)
	old, _, err := expired.Issue("admin", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Parse(old); err == nil {
		t.Error("expected expired token to be rejected")
	}

	if NewTokenManager("", time.Minute) != nil {
		t.Error("expected nil manager without a secret")
	}
}

func TestDefaultPolicies(t *testing.T) {
	e, err := NewMemoryEnforcer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	SeedDefaultPolicies(e, logger.Nop())
	// Seeding twice must not duplicate anything.
	SeedDefaultPolicies(e, logger.Nop())

	tests := []struct {
		sub, obj, act string
		want          bool
	}{
		{RoleAdmin, "/api/admin/projects", "DELETE", true},
		{RoleAdmin, "/api/admin/newsletter", "GET", true},
		{RoleViewer, "/api/admin/skills", "GET", true},
		{RoleViewer, "/api/admin/skills", "POST", false},
		{RoleAnonymous, "/api/admin/projects", "GET", false},
	}
	for _, tt := range tests {
		got, err := e.Enforce(tt.sub, tt.obj, tt.act)
		if err != nil {
			t.Fatalf("enforce %v: %v", tt, err)
		}
		if got != tt.want {
			t.Errorf("Enforce(%s, %s, %s) = %v, want %v", tt.sub, tt.obj, tt.act, got, tt.want)
		}
	}
}
