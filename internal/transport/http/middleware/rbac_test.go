package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hrlite/internal/domain/auth"
)

func requestWithRole(role auth.Role) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), ctxKeyPrincipal, Principal{UserID: "u1", Role: role, Email: "u1@example.com"})
	return req.WithContext(ctx)
}

// Exercises every (role, operation) pair of the access matrix: writes on
// departments, employees and leave decisions are ADMIN/HR, everything
// else only needs authentication.
func TestRequireRoleMatrix(t *testing.T) {
	adminOrHR := []auth.Role{auth.RoleAdmin, auth.RoleHR}

	operations := []struct {
		name    string
		allowed []auth.Role
	}{
		{"create department", adminOrHR},
		{"create employee", adminOrHR},
		{"delete employee", adminOrHR},
		{"set leave request status", adminOrHR},
		{"list departments", auth.AllRoles},
		{"list employees", auth.AllRoles},
		{"list leave requests", auth.AllRoles},
		{"submit leave request", auth.AllRoles},
	}

	for _, op := range operations {
		inSet := make(map[auth.Role]bool, len(op.allowed))
		for _, role := range op.allowed {
			inSet[role] = true
		}

		for _, role := range auth.AllRoles {
			t.Run(op.name+"/"+string(role), func(t *testing.T) {
				called := false
				handler := RequireRole(op.allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					called = true
					w.WriteHeader(http.StatusOK)
				}))

				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, requestWithRole(role))

				if inSet[role] {
					if !called || rec.Code != http.StatusOK {
						t.Fatalf("role %s must pass, got status %d", role, rec.Code)
					}
					return
				}
				if called {
					t.Fatalf("role %s must not reach the handler", role)
				}
				if rec.Code != http.StatusForbidden {
					t.Fatalf("role %s must get 403, got %d", role, rec.Code)
				}
			})
		}
	}
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	handler := RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %d", rec.Code)
	}
}
