package auth

import (
	"strings"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if err := CheckPassword(hash, "super-secret"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	token, err := codec.Issue("u1", RoleHR, "hr@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != RoleHR || claims.Email != "hr@example.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected issuedAt and expiresAt to be set")
	}
	window := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if window != TokenTTL {
		t.Fatalf("expected %v validity window, got %v", TokenTTL, window)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenCodec("secret-a").Issue("u1", RoleAdmin, "a@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, err := NewTokenCodec("secret-b").Verify(token); err == nil {
		t.Fatal("expected verification to fail under a different secret")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	token, err := codec.Issue("u1", RoleEmployee, "e@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	// The final byte is excluded: its low base64 bits are padding, so a
	// substitution there can decode to the same signature.
	for i := 0; i < len(token)-1; i++ {
		if token[i] == '.' {
			continue
		}
		flipped := byte('x')
		if token[i] == 'x' {
			flipped = 'y'
		}
		tampered := token[:i] + string(flipped) + token[i+1:]
		if _, err := codec.Verify(tampered); err == nil {
			t.Fatalf("expected tampered token to be rejected (byte %d)", i)
		}
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d", strings.Repeat(".", 2)} {
		if _, err := codec.Verify(token); err == nil {
			t.Fatalf("expected malformed token %q to be rejected", token)
		}
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	codec.TTL = -time.Minute

	token, err := codec.Issue("u1", RoleHR, "hr@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, err := codec.Verify(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRole(t *testing.T) {
	for raw, want := range map[string]Role{
		"ADMIN":      RoleAdmin,
		"hr":         RoleHR,
		" employee ": RoleEmployee,
	} {
		got, err := ParseRole(raw)
		if err != nil {
			t.Fatalf("ParseRole(%q) error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q) = %q, want %q", raw, got, want)
		}
	}

	for _, raw := range []string{"", "MANAGER", "SYSTEM", "adm1n"} {
		if _, err := ParseRole(raw); err == nil {
			t.Fatalf("expected ParseRole(%q) to fail", raw)
		}
	}
}
