// internal/tracking/handler.go
package tracking

import (
	"bytes"
	"net/http"

	apphttp "portfolio-backend/internal/common/http"
	"portfolio-backend/internal/common/logger"
	"portfolio-backend/internal/common/metrics"
	"portfolio-backend/internal/session"
)

type Config struct {
	CookieName     string
	DashboardLimit int
	DashboardTitle string
}

type Handler struct {
	config *Config
	store  *Store
	logger logger.Logger
}

func NewHandler(config *Config, store *Store, log logger.Logger) *Handler {
	if config.DashboardLimit < 1 {
		config.DashboardLimit = 100
	}
	if config.DashboardTitle == "" {
		config.DashboardTitle = "Interaction Logs"
	}
	return &Handler{
		config: config,
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "tracking"}),
	}
}

// Track handles POST /track.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.WriteError(w, h.logger, err)
		return
	}

	in := Interaction{
		Timestamp: req.Timestamp,
		Path:      req.Path,
		UserToken: session.UserIdentifier(r, h.config.CookieName),
	}
	if err := h.store.Append(r.Context(), in); err != nil {
		apphttp.WriteError(w, h.logger, err)
		return
	}

	metrics.TrackedEventsTotal.Inc()
	h.logger.Info("interaction tracked", map[string]interface{}{
		"timestamp": in.Timestamp,
		"path":      in.Path,
		"user":      in.UserToken,
	})
	apphttp.WriteJSON(w, http.StatusOK, TrackResponse{Status: "tracked"})
}

// Dashboard handles GET /dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.Recent(r.Context(), h.config.DashboardLimit)
	if err != nil {
		apphttp.WriteError(w, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := RenderDashboard(&buf, h.config.DashboardTitle, rows); err != nil {
		apphttp.WriteError(w, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
