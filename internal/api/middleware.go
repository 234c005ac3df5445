package api

import (
	"net/http"
	"time"

	"work-tracker/internal/identity"
	"work-tracker/internal/logging"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the request id in and out of the service
const RequestIDHeader = "X-Request-ID"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestID reuses the caller's request id or generates one, and stores a
// logger tagged with it on the request context.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		logger := logging.WithRequestID(s.logger, id)
		next.ServeHTTP(w, r.WithContext(logging.IntoContext(r.Context(), logger)))
	})
}

// requestLogger logs every completed request
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		logEntry := logging.FromContext(r.Context(), s.logger)

		logEntry.Debugf("request started: %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(wrapped, r)

		logEntry.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      wrapped.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_ip":   r.RemoteAddr,
		}).Info("request completed")
	})
}

// recoverer turns a handler panic into a 500 envelope
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logging.FromContext(r.Context(), s.logger).WithField("panic", rec).Error("handler panicked")
				writeJSON(w, http.StatusInternalServerError, Response{
					Success: false,
					Error:   &ErrorInfo{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred. Please try again."},
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the bearer token into an actor. Requests without a
// valid token stop here with 401.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := identity.ExtractBearerToken(r.Header.Get("Authorization"))
		actor, err := s.auth.Resolve(r.Context(), token)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		logger := logging.FromContext(r.Context(), s.logger).WithField("user_id", actor.UserID)
		ctx := logging.IntoContext(identity.WithActor(r.Context(), actor), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
