package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// bufferPool reuses encode buffers across responses
var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode first so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and maps it onto a status code and a
// client-safe message
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "operation", op, "error", err)
	} else {
		log.Warn(LogMsgServiceError, "operation", op, "error", err)
	}

	resp := ErrorResponse{Error: msg}
	if status == http.StatusBadRequest {
		// Lists every unresolved name
		resp.Detail = err.Error()
	}
	respondJSON(w, status, resp)
}

// mapServiceError converts domain errors into HTTP responses
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnknownBaseItem):
		return http.StatusBadRequest, ErrMsgUnknownBaseItem
	case errors.Is(err, domain.ErrUnknownModifier):
		return http.StatusBadRequest, ErrMsgUnknownModifier
	case errors.Is(err, domain.ErrUnknownProperty):
		return http.StatusBadRequest, ErrMsgUnknownProperty
	case errors.Is(err, domain.ErrUnknownTier):
		return http.StatusBadRequest, ErrMsgUnknownTier
	case errors.Is(err, domain.ErrUnknownTarget):
		return http.StatusBadRequest, ErrMsgUnknownTarget
	case errors.Is(err, domain.ErrNoOptimizeTargets):
		return http.StatusBadRequest, ErrMsgNoOptimizeTargets
	case errors.Is(err, domain.ErrInvalidMaxModifiers):
		return http.StatusBadRequest, ErrMsgInvalidMaxMods
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, ErrMsgProfileNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrMsgSearchCancelled
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
