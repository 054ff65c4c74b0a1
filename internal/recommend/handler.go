// internal/recommend/handler.go
package recommend

import (
	"context"
	"net/http"
	"time"

	apphttp "portfolio-backend/internal/common/http"
	"portfolio-backend/internal/common/logger"
	"portfolio-backend/internal/common/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry is the observability surface the handler needs.
type Telemetry interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordRecommendation(ctx context.Context, duration time.Duration, outcome string)
}

type Handler struct {
	engine    *Engine
	telemetry Telemetry
	logger    logger.Logger
}

func NewHandler(engine *Engine, telemetry Telemetry, log logger.Logger) *Handler {
	return &Handler{
		engine:    engine,
		telemetry: telemetry,
		logger:    log.WithFields(map[string]interface{}{"component": "recommend"}),
	}
}

// ServeHTTP handles POST /recommend.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.WriteError(w, h.logger, err)
		return
	}

	rec := h.Execute(r.Context(), req.Message)
	apphttp.WriteJSON(w, http.StatusOK, Response{Response: rec.Text})
}

// Execute runs the engine with tracing, metrics and logging around it.
func (h *Handler) Execute(ctx context.Context, inquiry string) Recommendation {
	ctx, span := h.telemetry.StartSpan(ctx, "recommend")
	defer span.End()

	start := time.Now()
	rec := h.engine.Recommend(inquiry)
	h.telemetry.RecordRecommendation(ctx, time.Since(start), string(rec.Outcome))

	planTier := "none"
	if rec.Plan != nil {
		planTier = string(rec.Plan.Tier)
	}
	span.SetAttributes(
		attribute.String("recommend.outcome", string(rec.Outcome)),
		attribute.String("recommend.plan", planTier),
		attribute.Int("recommend.services", len(rec.Services)),
	)
	metrics.RecommendationsTotal.WithLabelValues(string(rec.Outcome), planTier).Inc()

	h.logger.Info("recommendation served", map[string]interface{}{
		"outcome":  rec.Outcome,
		"plan":     planTier,
		"services": rec.Services,
	})
	return rec
}
