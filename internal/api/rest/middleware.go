package rest

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	zlog "github.com/rs/zerolog/log"
)

const (
	// UserEmailHeader carries the caller identity.
	UserEmailHeader = "X-User-Email"
	// AdminTokenHeader is the header name for admin authentication token.
	AdminTokenHeader = "X-Admin-Token"
)

type ctxKey int

const userEmailKey ctxKey = iota

// userEmail returns the caller identity set by requireUser.
func userEmail(ctx context.Context) string {
	email, _ := ctx.Value(userEmailKey).(string)
	return email
}

// requireUser rejects requests without a registered X-User-Email.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get(UserEmailHeader)
		if email == "" {
			writeError(w, http.StatusUnauthorized, "missing user context")
			return
		}
		if _, err := s.catalog.User(email); err != nil {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userEmailKey, email)))
	})
}

// requireAdmin accepts the configured admin token, or an X-User-Email of a
// registered user with the ADMIN role.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := r.Header.Get(AdminTokenHeader); token != "" {
			if s.adminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
				writeError(w, http.StatusUnauthorized, "invalid admin token")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		email := r.Header.Get(UserEmailHeader)
		if email == "" {
			writeError(w, http.StatusUnauthorized, "invalid admin token")
			return
		}
		if _, err := s.catalog.User(email); err != nil {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		if !s.catalog.IsAdmin(email) {
			writeError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userEmailKey, email)))
	})
}

// requestLogger logs one line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zlog.Debug().Msgf("http request: method=%s path=%s status=%d bytes=%d duration=%s request_id=%s",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}
