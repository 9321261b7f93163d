package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"listTracker/internal/logger"
	"listTracker/internal/service"
)

// handleServiceError maps the business-error taxonomy onto HTTP statuses and
// the uniform error body.
func handleServiceError(w http.ResponseWriter, err error) {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		logger.Error("HTTP: unexpected service error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: business error",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))
	if businessErr.Code == service.CodeInternal {
		logger.Error("HTTP: internal service error", businessErr.Err)
	}

	respondJSON(w, statusCode, errorBody{
		StatusCode: statusCode,
		Message:    businessErr.Message,
		Details:    businessErr.Details,
	})
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeForbidden:
		return http.StatusForbidden
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
