package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"relet/pkg/requestcontext"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags each request with a correlation ID. A caller-supplied
// X-Request-ID is honored so IDs survive hops through the collaborators;
// otherwise a fresh UUID is minted. The ID is echoed on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
