// internal/common/http/respond.go
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"

	apperrors "portfolio-backend/internal/common/errors"
	"portfolio-backend/internal/common/logger"
)

// MaxBodyBytes caps request bodies read by DecodeJSON.
const MaxBodyBytes = 1 << 20

// WriteJSON writes v with the given status.
func WriteJSON(w nethttp.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError normalizes err to a StandardError and writes it with the
// mapped status. Server-side failures are logged.
func WriteError(w nethttp.ResponseWriter, log logger.Logger, err error) {
	stdErr := apperrors.As(err)
	status := apperrors.HTTPStatus(stdErr.Code)
	if status >= nethttp.StatusInternalServerError && log != nil {
		log.Error("request failed", map[string]interface{}{
			"code":    stdErr.Code,
			"details": stdErr.Details,
		})
	}
	WriteJSON(w, status, stdErr)
}

// DecodeJSON reads a single JSON value from the body into v. Any parse
// failure comes back as INVALID_REQUEST.
func DecodeJSON(r *nethttp.Request, v interface{}) error {
	body, err := ReadBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.NewInvalidRequestError(err)
	}
	return nil
}

// ReadBody returns the raw body, bounded by MaxBodyBytes.
func ReadBody(r *nethttp.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, apperrors.NewInvalidRequestError(errors.New("empty request body"))
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, apperrors.NewInvalidRequestError(err)
	}
	if len(body) > MaxBodyBytes {
		return nil, apperrors.NewInvalidRequestError(fmt.Errorf("request body exceeds %d bytes", MaxBodyBytes))
	}
	return body, nil
}
