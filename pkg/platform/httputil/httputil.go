package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "relet/pkg/domain-errors"
)

// Validatable is implemented by request types that parse and validate their
// own fields after JSON decoding.
type Validatable interface {
	Validate() error
}

// validatablePtr constrains PT to be a pointer to T that validates itself,
// so DecodeAndPrepare can allocate the value and call pointer methods.
type validatablePtr[T any] interface {
	*T
	Validatable
}

// ErrorResponse is the uniform error body. The numeric code is the contract
// callers branch on; the HTTP status is advisory.
type ErrorResponse struct {
	Code    int    `json:"error"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// WriteJSON serializes v with the given status. Encoding failures are
// swallowed; the status line has already gone out.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error onto the uniform error body.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	msg := err.Error()
	if code == dErrors.CodeInternal {
		// Never leak infrastructure detail to callers.
		msg = "internal error"
	}
	WriteJSON(w, dErrors.HTTPStatus(code), ErrorResponse{
		Code:    int(code),
		Kind:    code.String(),
		Message: msg,
	})
}

// DecodeAndPrepare decodes the request body into a fresh T and runs its
// Validate method. On any failure it writes the error response and returns
// ok=false; handlers just bail out.
func DecodeAndPrepare[T any, PT validatablePtr[T]](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (PT, bool) {
	var v T
	p := PT(&v)
	if err := json.NewDecoder(r.Body).Decode(p); err != nil {
		logger.WarnContext(ctx, "request body decode failed",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, dErrors.New(dErrors.CodeInvalidRules, "malformed request body"))
		return nil, false
	}
	if err := p.Validate(); err != nil {
		WriteError(w, err)
		return nil, false
	}
	return p, true
}
