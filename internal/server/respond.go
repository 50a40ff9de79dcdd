package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/jobboard/internal/shared"
)

const maxJSONBody = 1 << 20

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Detail returns the client-facing message for err. Errors that map to 500 never expose their text.
func Detail(err error) string {
	switch {
	case errors.Is(err, shared.ErrTokenExpired):
		return "Token expired"
	case errors.Is(err, shared.ErrTokenInvalid):
		return "Invalid token"
	case errors.Is(err, shared.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, shared.ErrUnauthorized):
		return trimKind(err, shared.ErrUnauthorized)
	case errors.Is(err, shared.ErrRateLimited):
		return "Too many requests. Please try again later."
	case errors.Is(err, shared.ErrValidation):
		return trimKind(err, shared.ErrValidation)
	case errors.Is(err, shared.ErrNotFound):
		if what := trimKind(err, shared.ErrNotFound); what != shared.ErrNotFound.Error() {
			return what + " not found"
		}
		return "not found"
	default:
		return "internal server error"
	}
}

// trimKind drops the "kind: " prefix a sentinel adds to err's message.
func trimKind(err, kind error) string {
	return strings.TrimPrefix(err.Error(), kind.Error()+": ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), map[string]string{"detail": Detail(err)})
}

// setRetryAfter writes the Retry-After header in whole seconds, rounded up.
func setRetryAfter(w http.ResponseWriter, wait time.Duration) {
	if wait <= 0 {
		return
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
}

// decodeJSON reads a JSON request body of at most one MiB into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body exceeds %d bytes", shared.ErrValidation, tooLarge.Limit)
		}
		return fmt.Errorf("%w: invalid JSON body", shared.ErrValidation)
	}
	return nil
}

// parseLimit reads the optional "limit" query parameter. Zero means the service default.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", shared.ErrValidation)
	}
	return n, nil
}
