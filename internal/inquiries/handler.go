// internal/inquiries/handler.go
package inquiries

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	apperrors "portfolio-backend/internal/common/errors"
	apphttp "portfolio-backend/internal/common/http"
	"portfolio-backend/internal/common/logger"
	"portfolio-backend/internal/common/validation"

	"github.com/google/uuid"
)

// Recorder counts stored submissions.
type Recorder interface {
	RecordInquiry(ctx context.Context, kind string)
}

type Config struct {
	NotifyTimeout time.Duration
}

type Handler struct {
	config   *Config
	store    *Store
	notifier Notifier
	recorder Recorder
	logger   logger.Logger
	now      func() time.Time
}

func NewHandler(config *Config, store *Store, notifier Notifier, recorder Recorder, log logger.Logger) *Handler {
	if config.NotifyTimeout == 0 {
		config.NotifyTimeout = 10 * time.Second
	}
	return &Handler{
		config:   config,
		store:    store,
		notifier: notifier,
		recorder: recorder,
		logger:   log.WithFields(map[string]interface{}{"component": "inquiries"}),
		now:      time.Now,
	}
}

// CreateProjectInitiation handles POST /project-initiations.
func (h *Handler) CreateProjectInitiation(w http.ResponseWriter, r *http.Request) {
	var req ProjectInitiationRequest
	if err := decodeValidated(r, projectInitiationSchema, &req); err != nil {
		apphttp.WriteError(w, h.logger, err)
		return
	}

	p := ProjectInitiation{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		BusinessType: strings.TrimSpace(req.BusinessType),
		Website:      strings.TrimSpace(req.Website),
		Requirements: strings.TrimSpace(req.Requirements),
		CreatedAt:    h.now().UTC(),
	}
	if err := h.store.InsertProjectInitiation(r.Context(), p); err != nil {
		apphttp.WriteError(w, h.logger, err)
		return
	}
	h.recorder.RecordInquiry(r.Context(), string(KindProjectInitiation))

	h.notify(r.Context(), p.ID, KindProjectInitiation, func(ctx context.Context) error {
		return h.notifier.NotifyProjectInitiation(ctx, p)
	})

	apphttp.WriteJSON(w, http.StatusCreated, CreatedResponse{ID: p.ID, Status: "received"})
}

// CreateMeeting handles POST /meetings.
func (h *Handler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req MeetingRequest
	if err := decodeValidated(r, meetingSchema, &req); err != nil {
		apphttp.WriteError(w, h.logger, err)
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		apphttp.WriteError(w, h.logger, apperrors.NewValidationFailedError("date: must be a calendar date in YYYY-MM-DD form"))
		return
	}

	m := Meeting{
		ID:        uuid.NewString(),
		Email:     strings.TrimSpace(req.Email),
		Date:      req.Date,
		Time:      strings.TrimSpace(req.Time),
		Goals:     strings.TrimSpace(req.Goals),
		CreatedAt: h.now().UTC(),
	}
	if err := h.store.InsertMeeting(r.Context(), m); err != nil {
		apphttp.WriteError(w, h.logger, err)
		return
	}
	h.recorder.RecordInquiry(r.Context(), string(KindMeeting))

	h.notify(r.Context(), m.ID, KindMeeting, func(ctx context.Context) error {
		return h.notifier.NotifyMeeting(ctx, m)
	})

	apphttp.WriteJSON(w, http.StatusCreated, CreatedResponse{ID: m.ID, Status: "received"})
}

// notify runs after the record is stored; a failure here is only logged.
func (h *Handler) notify(ctx context.Context, recordID string, kind Kind, send func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.config.NotifyTimeout)
	defer cancel()

	if err := send(ctx); err != nil {
		h.logger.Error("owner notification failed", map[string]interface{}{
			"recordId": recordID,
			"kind":     kind,
			"error":    err,
		})
	}
}

// decodeValidated checks the raw body against schema, then decodes it and
// applies the e-mail format check every submission shares.
func decodeValidated(r *http.Request, schema *validation.Schema, v interface{}) error {
	body, err := apphttp.ReadBody(r)
	if err != nil {
		return err
	}

	result, err := schema.ValidateBytes(body)
	if err != nil {
		return apperrors.NewInvalidRequestError(err)
	}

	var envelope struct {
		Email string `json:"email"`
	}
	if result.Valid {
		if err := json.Unmarshal(body, &envelope); err != nil {
			return apperrors.NewInvalidRequestError(err)
		}
		if !validation.ValidateEmail(strings.TrimSpace(envelope.Email)) {
			result.Add("email", "invalid email format", "FORMAT")
		}
	}
	if !result.Valid {
		return apperrors.NewValidationFailedError(strings.Join(result.GetErrorMessages(), "; ")).
			WithMetadata("errors", result.Errors)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.NewInvalidRequestError(err)
	}
	return nil
}
