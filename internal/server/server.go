// internal/server/server.go
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"portfolio-backend/internal/common/config"
	apphttp "portfolio-backend/internal/common/http"
	"portfolio-backend/internal/common/logger"
	"portfolio-backend/internal/inquiries"
	"portfolio-backend/internal/recommend"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/tracking"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Pinger is a dependency checked by /ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the handlers and checks the router mounts.
type Dependencies struct {
	Recommend *recommend.Handler
	Session   *session.Handler
	Tracking  *tracking.Handler
	Inquiries *inquiries.Handler
	// Checks maps a dependency name to its readiness check.
	Checks map[string]Pinger
	// Metrics serves /metrics; nil uses the default Prometheus registry.
	Metrics http.Handler
}

// NewRouter creates the API router with all routes configured.
func NewRouter(cfg *config.Config, deps Dependencies, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Instrument(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: cfg.CORS.AllowCredentials,
	}).Handler)
	r.Use(chimiddleware.Timeout(config.GetDuration(cfg.Server.RequestTimeout)))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		apphttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "Portfolio backend is running"})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		apphttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": cfg.App.Name})
	})
	r.Get("/ready", readyHandler(deps.Checks))

	metricsHandler := deps.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Method(http.MethodPost, "/recommend", deps.Recommend)

	r.Post("/login", deps.Session.Login)
	r.Get("/check-session", deps.Session.CheckSession)
	r.Post("/logout", deps.Session.Logout)

	r.Post("/track", deps.Tracking.Track)
	r.Get("/dashboard", deps.Tracking.Dashboard)

	r.Post("/project-initiations", deps.Inquiries.CreateProjectInitiation)
	r.Post("/meetings", deps.Inquiries.CreateMeeting)

	return r
}

func readyHandler(checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, p := range checks {
			if err := p.Ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not_ready"
		}
		apphttp.WriteJSON(w, status, map[string]interface{}{"status": state, "checks": results})
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to shutdownTimeout.
func Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"address": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server", map[string]interface{}{"timeout": shutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
