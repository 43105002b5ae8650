package handlers

import (
	"errors"
	"net/http"

	"taskDashboard/internal/logger"
	"taskDashboard/internal/service"

	"go.uber.org/zap"
)

func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	responseWithJSON(w, statusCode,
		toPayload("error", businessErr.Code),
		toPayload("message", businessErr.Message),
		toPayload("details", businessErr.Details),
	)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	case "UNKNOWN_ACTION":
		return http.StatusNotFound
	case "UNAVAILABLE":
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
