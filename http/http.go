// Package http provides the HTTP surfaces of the system: the gateway
// server, the provider server, and the client through which the gateway
// consumes the provider's retrieval primitives.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fwojciec/eldin"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	eldin.EINVALID:      http.StatusBadRequest,
	eldin.ENOTFOUND:     http.StatusNotFound,
	eldin.EUNAUTHORIZED: http.StatusUnauthorized,
	eldin.EUNAVAILABLE:  http.StatusServiceUnavailable,
	eldin.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error
// code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// FromErrorStatusCode returns the application error code for an HTTP
// status code.
func FromErrorStatusCode(code int) string {
	for k, v := range codes {
		if v == code {
			return k
		}
	}
	return eldin.EINTERNAL
}

// errorResponse is the wire shape of an error payload.
type errorResponse struct {
	Error string `json:"error"`
}

// Error writes an application error as a JSON response with the mapped
// status code. Internal details are never leaked to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := eldin.ErrorCode(err), eldin.ErrorMessage(err)

	if code == eldin.EINTERNAL {
		slog.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ErrorStatusCode(code))
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}

// respondJSON writes v as a JSON response body.
func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
