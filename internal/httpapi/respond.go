package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexanderramin/rosterdesk/internal/postgrest"
	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/service"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// statusFor maps a service error onto an HTTP status and the message shown
// to the client. Internal failures get a generic message.
func statusFor(err error) (int, string) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrConfirmationRequired):
		return http.StatusConflict, err.Error()
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, verr.Message
	case errors.Is(err, service.ErrNotLoggedIn):
		return http.StatusUnauthorized, "Not logged in"
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, postgrest.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, postgrest.ErrUnavailable):
		return http.StatusServiceUnavailable, "Data service unavailable"
	}
	return http.StatusInternalServerError, "Internal error"
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, msg)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
