package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gitlab-gateway/internal/domain"
	"gitlab-gateway/internal/platform"
)

// PermissionService grants or changes a user's role on a group or project.
// The platform owns the membership state; nothing is kept here.
type PermissionService struct {
	client platform.Client
	logger *zap.Logger
}

func NewPermissionService(client platform.Client, logger *zap.Logger) *PermissionService {
	return &PermissionService{
		client: client,
		logger: logger,
	}
}

// SetPermission validates the request, resolves the target and user, and
// creates or updates the membership. Targets are resolved as a group first
// and as a project only when no group matches, so a path naming both always
// lands on the group.
func (s *PermissionService) SetPermission(ctx context.Context, username, target, role string) (*domain.Membership, error) {
	username = strings.TrimSpace(username)
	target = strings.TrimSpace(target)

	if username == "" {
		return nil, domain.NewValidationError("username", "username cannot be empty")
	}

	if target == "" {
		return nil, domain.NewValidationError("target", "target cannot be empty")
	}

	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveTarget(ctx, target)
	if err != nil {
		return nil, err
	}

	if resolved.Kind == domain.TargetProject && parsedRole == domain.RoleOwner {
		s.logger.Warn("owner role requested on a project", zap.String("target", target))
		return nil, domain.NewValidationError("role", "owner role is not supported for projects")
	}

	user, err := s.client.FindUser(ctx, username)
	if err != nil {
		return nil, err
	}

	member, err := s.client.GetMember(ctx, resolved, user.ID)
	switch {
	case err == nil:
		if member.AccessLevel == parsedRole {
			s.logger.Info("membership already at requested role",
				zap.String("username", username),
				zap.String("target", resolved.Path),
				zap.String("role", parsedRole.String()),
			)
			break
		}

		_, err = s.client.UpdateMember(ctx, resolved, user.ID, parsedRole)
		if err != nil {
			return nil, err
		}

	case errors.Is(err, domain.ErrMemberNotFound):
		_, err = s.client.AddMember(ctx, resolved, user.ID, parsedRole)
		if err != nil {
			return nil, err
		}

		return &domain.Membership{
			TargetID:   resolved.ID,
			TargetKind: resolved.Kind,
			UserID:     user.ID,
			Role:       parsedRole,
			Action:     domain.ActionCreated,
		}, nil

	default:
		return nil, err
	}

	return &domain.Membership{
		TargetID:   resolved.ID,
		TargetKind: resolved.Kind,
		UserID:     user.ID,
		Role:       parsedRole,
		Action:     domain.ActionUpdated,
	}, nil
}

// resolveTarget tries each resolver in order; the first success wins.
func (s *PermissionService) resolveTarget(ctx context.Context, target string) (*domain.Target, error) {
	resolvers := []func(context.Context, string) (*domain.Target, error){
		s.client.ResolveGroup,
		s.client.ResolveProject,
	}

	for _, resolve := range resolvers {
		resolved, err := resolve(ctx, target)
		if err == nil {
			return resolved, nil
		}

		if !errors.Is(err, domain.ErrTargetNotFound) {
			return nil, err
		}
	}

	s.logger.Warn(domain.ErrTargetNotFound.Error(), zap.String("target", target))
	return nil, fmt.Errorf("%w: %s", domain.ErrTargetNotFound, target)
}
