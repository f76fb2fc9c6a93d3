package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"gitlab-gateway/internal/api"
	"gitlab-gateway/internal/domain"
)

type PermissionSetter interface {
	SetPermission(ctx context.Context, username, target, role string) (*domain.Membership, error)
}

func SetPermission(svc PermissionSetter, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		var req api.PermissionRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Warn("SetPermission: failed to decode body", zap.Error(err))
			api.WriteApiError(w, logger, "failed to decode body", api.CodeValidation, http.StatusBadRequest)
			return
		}

		membership, err := svc.SetPermission(ctx, req.Username, req.Target, req.Role)
		if err != nil {
			writeDomainError(w, logger, "SetPermission", err)
			return
		}

		result := api.MembershipResult{
			TargetID:    membership.TargetID,
			TargetKind:  string(membership.TargetKind),
			UserID:      membership.UserID,
			AppliedRole: membership.Role.String(),
			Action:      membership.Action,
		}

		writeJSON(w, logger, http.StatusOK, result)

		logger.Info("SetPermission: successfully applied role",
			zap.String("username", req.Username),
			zap.String("target", req.Target),
			zap.String("role", result.AppliedRole),
			zap.String("action", result.Action),
		)
	}
}
