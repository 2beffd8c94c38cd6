package middleware

import (
	"context"
	"net/http"
	"strings"

	"hrlite/internal/domain/auth"
	"hrlite/internal/transport/http/api"
)

// Principal is the verified identity bound to a request by RequireAuth.
type Principal struct {
	UserID string
	Role   auth.Role
	Email  string
}

// RequireAuth rejects requests without a valid bearer token and binds
// the verified claims to the context. It is the first stage of the
// authorization gate; RequireRole assumes it already ran.
func RequireAuth(codec *auth.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				api.Fail(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token", GetRequestID(r.Context()))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyPrincipal, Principal{
				UserID: claims.UserID,
				Role:   claims.Role,
				Email:  claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetPrincipal(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return principal, ok
}
