package adapthttp

import (
	"errors"
	"net/http"

	"maonav/internal/app"
	"maonav/internal/domain"
	"maonav/internal/security"
)

const legacyHashMessage = "Cannot verify password. Please reset password via database."

// fail maps a service error to its status and writes the error envelope.
// Server-side failures are logged and reported without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errInvalidJSON), errors.Is(err, app.ErrMissingFields), errors.Is(err, app.ErrAdminExists):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, app.ErrUnauthorized), errors.Is(err, app.ErrAdminNotFound):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, app.ErrInvalidCurrentPassword):
		writeError(w, http.StatusForbidden, "Invalid current password")
	case errors.Is(err, domain.ErrDuplicate):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, security.ErrLegacyHash):
		writeError(w, http.StatusInternalServerError, legacyHashMessage)
	default:
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
