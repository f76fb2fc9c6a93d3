package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"gitlab-gateway/internal/api"
	"gitlab-gateway/internal/domain"
)

// writeDomainError maps the domain error taxonomy onto HTTP statuses and the
// error envelope. A rate-limit hint from upstream is forwarded as Retry-After.
func writeDomainError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		logger.Warn(op+": validation failed", zap.Error(err))
		api.WriteApiError(w, logger, validationErr.Error(), api.CodeValidation, http.StatusBadRequest)
		return
	}

	if errors.Is(err, domain.ErrTargetNotFound) {
		logger.Warn(op+": target not found", zap.Error(err))
		api.WriteApiError(w, logger, err.Error(), api.CodeTargetNotFound, http.StatusNotFound)
		return
	}

	if errors.Is(err, domain.ErrUserNotFound) {
		logger.Warn(op+": user not found", zap.Error(err))
		api.WriteApiError(w, logger, err.Error(), api.CodeUserNotFound, http.StatusNotFound)
		return
	}

	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		logger.Error(op+": upstream failure", zap.Error(err))
		if upstreamErr.RetryAfter > 0 {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(upstreamErr.RetryAfter.Seconds())))
		}
		api.WriteApiError(w, logger, upstreamErr.Error(), api.CodeUpstream, http.StatusBadGateway)
		return
	}

	logger.Error(op+": unexpected failure", zap.Error(err))
	api.WriteApiError(w, logger, "internal error", api.CodeUpstream, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
