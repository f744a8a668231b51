package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"maonav/internal/app"
	"maonav/internal/domain"
)

type contextKey string

const identityContextKey contextKey = "identity"

// identityFrom returns the admin resolved by requireAdmin.
func identityFrom(ctx context.Context) *domain.Identity {
	who, _ := ctx.Value(identityContextKey).(*domain.Identity)
	return who
}

// requireAdmin resolves the bearer token to an identity or answers 401.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		who, err := s.auth.Authenticate(r.Context(), header)
		if errors.Is(err, app.ErrUnauthorized) {
			token, _ := app.BearerToken(header)
			s.log.Warn("authentication failed",
				"method", r.Method,
				"path", r.URL.Path,
				"reason", err.Error(),
				"token", redactToken(token),
			)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, who)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func redactToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}

// withCORS adds CORS headers to every response and answers preflights.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", s.corsOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Max-Age", "86400")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
