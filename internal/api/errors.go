package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeTargetNotFound = "TARGET_NOT_FOUND"
	CodeUserNotFound   = "USER_NOT_FOUND"
	CodeUpstream       = "UPSTREAM_ERROR"
)

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func WriteApiError(w http.ResponseWriter, logger *zap.Logger, message string, code string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	e := apiError{}
	e.Error.Code = code
	e.Error.Message = message

	err := json.NewEncoder(w).Encode(e)
	if err != nil {
		logger.Error("WriteApiError: failed to encode response", zap.Error(err))
	}
}
