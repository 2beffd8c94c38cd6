package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrlite/internal/domain/auth"
)

func okHandler(t *testing.T, wantPrincipal bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetPrincipal(r.Context())
		if ok != wantPrincipal {
			t.Fatalf("principal bound = %v, want %v", ok, wantPrincipal)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthBindsPrincipal(t *testing.T) {
	codec := auth.NewTokenCodec("test-secret")
	token, err := codec.Issue("u1", auth.RoleHR, "hr@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	handler := RequireAuth(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := GetPrincipal(r.Context())
		if !ok {
			t.Fatal("expected principal in context")
		}
		if principal.UserID != "u1" || principal.Role != auth.RoleHR || principal.Email != "hr@example.com" {
			t.Fatalf("unexpected principal: %+v", principal)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAuthRejects(t *testing.T) {
	codec := auth.NewTokenCodec("test-secret")
	otherCodec := auth.NewTokenCodec("other-secret")

	goodToken, err := codec.Issue("u1", auth.RoleEmployee, "e@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	foreignToken, err := otherCodec.Issue("u1", auth.RoleEmployee, "e@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	expiredCodec := auth.NewTokenCodec("test-secret")
	expiredCodec.TTL = -time.Minute
	expiredToken, err := expiredCodec.Issue("u1", auth.RoleEmployee, "e@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + goodToken,
		"no token":       "Bearer",
		"garbage token":  "Bearer not-a-token",
		"tampered token": "Bearer " + goodToken[:len(goodToken)-2] + "xx",
		"foreign secret": "Bearer " + foreignToken,
		"expired token":  "Bearer " + expiredToken,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			handler := RequireAuth(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireAuthAcceptsCaseInsensitiveScheme(t *testing.T) {
	codec := auth.NewTokenCodec("test-secret")
	token, err := codec.Issue("u1", auth.RoleAdmin, "a@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	handler := RequireAuth(codec)(okHandler(t, true))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
