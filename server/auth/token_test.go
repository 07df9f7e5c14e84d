package auth

import (
	"context"
	"testing"

	"github.com/mechtronglobal/backend/config"
)

func testAuthConfig() *config.Auth {
	return &config.Auth{
		JwtSecret:       "0123456789abcdef0123456789abcdef",
		TokenTTLMinutes: 60,
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"bearer", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"no token", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractBearerToken(tc.header); got != tc.want {
				t.Fatalf("ExtractBearerToken(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}

func TestIssueAndVerifyToken_RoundTrip(t *testing.T) {
	cfg := testAuthConfig()

	token, err := IssueToken(cfg, "admin")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims, err := VerifyToken(cfg, token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}

	if claims.Username != "admin" || claims.Subject != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Fatalf("expected expiry after issuance")
	}
}

func TestVerifyToken_RejectsWrongSecret(t *testing.T) {
	token, err := IssueToken(testAuthConfig(), "admin")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	other := &config.Auth{JwtSecret: "another-secret-another-secret!!!", TokenTTLMinutes: 60}
	if _, err := VerifyToken(other, token); err == nil {
		t.Fatalf("expected verification to fail with wrong secret")
	}
}

func TestVerifyToken_RejectsExpired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenTTLMinutes = -1

	token, err := IssueToken(cfg, "admin")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := VerifyToken(cfg, token); err == nil {
		t.Fatalf("expected verification to fail for expired token")
	}
}

func TestVerifyToken_RejectsGarbage(t *testing.T) {
	if _, err := VerifyToken(testAuthConfig(), "not.a.token"); err == nil {
		t.Fatalf("expected verification to fail for malformed token")
	}
}

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := &Claims{Username: "admin"}
	ctx := AddClaims(context.Background(), claims)

	if got := GetClaims(ctx); got != claims {
		t.Fatalf("expected stored claims back, got %+v", got)
	}
	if got := GetClaims(context.Background()); got != nil {
		t.Fatalf("expected nil claims from empty context, got %+v", got)
	}
}
