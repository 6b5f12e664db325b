package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/gemini"
	"github.com/fwojciec/veritas/log"
)

// codes maps veritas error codes to HTTP status codes.
var codes = map[string]int{
	veritas.EINVALID:     http.StatusBadRequest,
	veritas.ENOTFOUND:    http.StatusNotFound,
	veritas.EUNAVAILABLE: http.StatusServiceUnavailable,
	veritas.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for a veritas error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error body. Internal errors are logged and
// replaced with a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := veritas.ErrorCode(err), veritas.ErrorMessage(err)

	// Transient upstream failures are reported as unavailable.
	var apiErr *gemini.APIError
	if errors.As(err, &apiErr) && apiErr.Retryable() {
		code, message = veritas.EUNAVAILABLE, "The model is unavailable. Please try again."
	}

	if code == veritas.EINTERNAL {
		log.Errorf("http error: %s %s: %s\n", r.Method, r.URL.Path, err)
	}

	writeJSON(w, ErrorStatusCode(code), errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("encoding response: %s\n", err)
	}
}

// decodeJSON decodes a request body into v. Malformed bodies and members of
// the wrong type are invalid input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return veritas.Errorf(veritas.EINVALID, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return veritas.Errorf(veritas.EINVALID, "invalid JSON body: %s", err)
	}
	return nil
}
