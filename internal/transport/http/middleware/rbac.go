package middleware

import (
	"net/http"

	"hrlite/internal/domain/auth"
	"hrlite/internal/transport/http/api"
)

// RequireRole passes requests whose authenticated principal holds one of
// the allowed roles. A request with no principal is unauthenticated, not
// forbidden.
func RequireRole(allowed ...auth.Role) func(http.Handler) http.Handler {
	allowedSet := make(map[auth.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if _, ok := allowedSet[principal.Role]; !ok {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient role", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
