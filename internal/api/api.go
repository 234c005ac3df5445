package api

import (
	"context"
	stderrors "errors"
	"net/http"

	"work-tracker/internal/config"
	"work-tracker/internal/domain"
	"work-tracker/internal/identity"
	"work-tracker/internal/metrics"
	"work-tracker/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Authenticator resolves a bearer token into the acting user
type Authenticator interface {
	Resolve(ctx context.Context, token string) (domain.Actor, error)
}

// Server is the HTTP transport over the service container
type Server struct {
	tasks      services.TaskService
	timeLogs   services.TimeLogService
	attendance services.AttendanceService

	auth    Authenticator
	metrics *metrics.Metrics
	logger  logrus.FieldLogger
	router  chi.Router
}

// NewServer builds the router. m may be nil, in which case /metrics is not served.
func NewServer(container *services.ServiceContainer, auth Authenticator, m *metrics.Metrics, logger logrus.FieldLogger) *Server {
	s := &Server{
		tasks:      container.TaskService,
		timeLogs:   container.TimeLogService,
		attendance: container.AttendanceService,
		auth:       auth,
		metrics:    m,
		logger:     logger.WithField("component", "http"),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID, s.requestLogger, s.recoverer, s.metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondOK(w, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", s.handle(s.createTask))
			r.Get("/{id}", s.handle(s.getTask))
			r.Put("/{id}", s.handle(s.updateTask))
			r.Put("/{id}/status", s.handle(s.setTaskStatus))
			r.Post("/{id}/check", s.handle(s.checkTask))
			r.Delete("/{id}", s.handle(s.deleteTask))
			r.Get("/{id}/time-logs", s.handle(s.listTaskTimeLogs))
		})
		r.Get("/projects/{id}/tasks", s.handle(s.listProjectTasks))

		r.Route("/me", func(r chi.Router) {
			r.Get("/tasks/assigned", s.handle(s.listAssignedTasks))
			r.Get("/tasks/reported", s.handle(s.listReportedTasks))
			r.Get("/tasks/checking", s.handle(s.listCheckingTasks))
		})

		r.Route("/time-logs", func(r chi.Router) {
			r.Post("/", s.handle(s.logTime))
			r.Patch("/{id}", s.handle(s.updateTimeLog))
			r.Delete("/{id}", s.handle(s.deleteTimeLog))
		})
		r.Get("/users/{id}/time-logs", s.handle(s.listUserTimeLogs))

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/clock-in", s.handle(s.clockIn))
			r.Post("/clock-out", s.handle(s.clockOut))
			r.Get("/status", s.handle(s.attendanceStatus))
			r.Get("/today", s.handle(s.attendanceToday))
			r.Get("/history", s.handle(s.attendanceHistory))
		})
		r.Get("/users/{id}/attendance/{year}/{month}", s.handle(s.monthlyAttendance))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   &ErrorInfo{Code: "NOT_FOUND", Message: "route not found"},
		})
	})
	return r
}

// actorHandler is an authenticated endpoint; a returned error becomes the response
type actorHandler func(w http.ResponseWriter, r *http.Request, actor domain.Actor) error

func (s *Server) handle(h actorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := identity.CurrentActor(r.Context())
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		if err := h(w, r, actor); err != nil {
			s.respondError(w, r, err)
		}
	}
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight requests
// for at most the configured shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", cfg.Addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
