package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	id "relet/pkg/domain"
	"relet/pkg/requestcontext"
)

// TokenValidator verifies a bearer token and returns the caller principal.
type TokenValidator interface {
	Validate(tokenString string) (id.Principal, error)
}

// Principal resolves the caller identity from the Authorization header and
// stores it in the request context. Requests without a token pass through
// anonymous: open endpoints accept anyone, and the oracle gate inside the
// policy rejects unauthenticated callers the same way it rejects strangers.
// A token that is present but invalid is a hard 401.
func Principal(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				unauthorized(w, "Authorization header is not a bearer token")
				return
			}

			principal, err := validator.Validate(token)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "rejected bearer token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := requestcontext.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
