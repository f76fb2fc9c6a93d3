package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gitlab-gateway/internal/domain"
)

var (
	testGroup = &domain.Target{ID: 42, Kind: domain.TargetGroup, Path: "platform-team", Name: "Platform Team"}
	testUser  = &domain.User{ID: 7, Username: "alice", Name: "Alice"}
)

func notFoundTarget(ctx context.Context, path string) (*domain.Target, error) {
	return nil, fmt.Errorf("%w: %s", domain.ErrTargetNotFound, path)
}

func TestSetPermissionInvalidRole(t *testing.T) {
	client := &fakeClient{}
	svc := NewPermissionService(client, zap.NewNop())

	_, err := svc.SetPermission(context.Background(), "alice", "platform-team", "admin")

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, client.calls, "validation failure must not reach the platform")
}

func TestSetPermissionEmptyFields(t *testing.T) {
	client := &fakeClient{}
	svc := NewPermissionService(client, zap.NewNop())

	_, err := svc.SetPermission(context.Background(), "  ", "platform-team", "developer")
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.SetPermission(context.Background(), "alice", "", "developer")
	require.ErrorAs(t, err, &validationErr)

	assert.Empty(t, client.calls)
}

func TestSetPermissionTargetNotFound(t *testing.T) {
	client := &fakeClient{
		resolveGroupFn:   notFoundTarget,
		resolveProjectFn: notFoundTarget,
	}
	svc := NewPermissionService(client, zap.NewNop())

	_, err := svc.SetPermission(context.Background(), "alice", "nowhere", "developer")

	require.ErrorIs(t, err, domain.ErrTargetNotFound)
	assert.False(t, client.called("AddMember"), "no mutation on unresolved target")
	assert.False(t, client.called("UpdateMember"), "no mutation on unresolved target")
}

func TestSetPermissionCreatesMembership(t *testing.T) {
	var addedLevel domain.Role

	client := &fakeClient{
		resolveGroupFn: func(ctx context.Context, path string) (*domain.Target, error) {
			return testGroup, nil
		},
		findUserFn: func(ctx context.Context, username string) (*domain.User, error) {
			return testUser, nil
		},
		getMemberFn: func(ctx context.Context, target *domain.Target, userID int) (*domain.Member, error) {
			return nil, domain.ErrMemberNotFound
		},
		addMemberFn: func(ctx context.Context, target *domain.Target, userID int, level domain.Role) (*domain.Member, error) {
			addedLevel = level
			return &domain.Member{UserID: userID, AccessLevel: level}, nil
		},
	}
	svc := NewPermissionService(client, zap.NewNop())

	membership, err := svc.SetPermission(context.Background(), "alice", "platform-team", "developer")
	require.NoError(t, err)

	assert.Equal(t, domain.ActionCreated, membership.Action)
	assert.Equal(t, domain.RoleDeveloper, membership.Role)
	assert.Equal(t, domain.RoleDeveloper, addedLevel)
	assert.Equal(t, testGroup.ID, membership.TargetID)
	assert.Equal(t, testUser.ID, membership.UserID)
}

func TestSetPermissionUpdatesMembership(t *testing.T) {
	client := &fakeClient{
		resolveGroupFn: func(ctx context.Context, path string) (*domain.Target, error) {
			return testGroup, nil
		},
		findUserFn: func(ctx context.Context, username string) (*domain.User, error) {
			return testUser, nil
		},
		getMemberFn: func(ctx context.Context, target *domain.Target, userID int) (*domain.Member, error) {
			return &domain.Member{UserID: userID, AccessLevel: domain.RoleGuest}, nil
		},
		updateMemberFn: func(ctx context.Context, target *domain.Target, userID int, level domain.Role) (*domain.Member, error) {
			return &domain.Member{UserID: userID, AccessLevel: level}, nil
		},
	}
	svc := NewPermissionService(client, zap.NewNop())

	membership, err := svc.SetPermission(context.Background(), "alice", "platform-team", "maintainer")
	require.NoError(t, err)

	assert.Equal(t, domain.ActionUpdated, membership.Action)
	assert.True(t, client.called("UpdateMember"))
	assert.False(t, client.called("AddMember"))
}

func TestSetPermissionIdempotent(t *testing.T) {
	client := &fakeClient{
		resolveGroupFn: func(ctx context.Context, path string) (*domain.Target, error) {
			return testGroup, nil
		},
		findUserFn: func(ctx context.Context, username string) (*domain.User, error) {
			return testUser, nil
		},
		getMemberFn: func(ctx context.Context, target *domain.Target, userID int) (*domain.Member, error) {
			return &domain.Member{UserID: userID, AccessLevel: domain.RoleDeveloper}, nil
		},
	}
	svc := NewPermissionService(client, zap.NewNop())

	membership, err := svc.SetPermission(context.Background(), "alice", "platform-team", "developer")
	require.NoError(t, err)

	assert.Equal(t, domain.ActionUpdated, membership.Action)
	assert.False(t, client.called("UpdateMember"), "same role must be a no-op")
	assert.False(t, client.called("AddMember"))
}

func TestSetPermissionGroupPrecedesProject(t *testing.T) {
	client := &fakeClient{
		resolveGroupFn: func(ctx context.Context, path string) (*domain.Target, error) {
			return testGroup, nil
		},
		findUserFn: func(ctx context.Context, username string) (*domain.User, error) {
			return testUser, nil
		},
		getMemberFn: func(ctx context.Context, target *domain.Target, userID int) (*domain.Member, error) {
			return nil, domain.ErrMemberNotFound
		},
		addMemberFn: func(ctx context.Context, target *domain.Target, userID int, level domain.Role) (*domain.Member, error) {
			return &domain.Member{UserID: userID, AccessLevel: level}, nil
		},
	}
	svc := NewPermissionService(client, zap.NewNop())

	membership, err := svc.SetPermission(context.Background(), "alice", "platform-team", "developer")
	require.NoError(t, err)

	assert.Equal(t, domain.TargetGroup, membership.TargetKind)
	assert.False(t, client.called("ResolveProject"), "a matching group short-circuits project resolution")
}

func TestSetPermissionFallsBackToProject(t *testing.T) {
	project := &domain.Target{ID: 9, Kind: domain.TargetProject, Path: "team/app", Name: "app"}

	client := &fakeClient{
		resolveGroupFn: notFoundTarget,
		resolveProjectFn: func(ctx context.Context, path string) (*domain.Target, error) {
			return project, nil
		},
		findUserFn: func(ctx context.Context, username string) (*domain.User, error) {
			return testUser, nil
		},
		getMemberFn: func(ctx context.Context, target *domain.Target, userID int) (*domain.Member, error) {
			return nil, domain.ErrMemberNotFound
		},
		addMemberFn: func(ctx context.Context, target *domain.Target, userID int, level domain.Role) (*domain.Member, error) {
			return &domain.Member{UserID: userID, AccessLevel: level}, nil
		},
	}
	svc := NewPermissionService(client, zap.NewNop())

	membership, err := svc.SetPermission(context.Background(), "alice", "team/app", "developer")
	require.NoError(t, err)
	assert.Equal(t, domain.TargetProject, membership.TargetKind)
}

func TestSetPermissionOwnerOnProjectRejected(t *testing.T) {
	project := &domain.Target{ID: 9, Kind: domain.TargetProject, Path: "team/app", Name: "app"}

	client := &fakeClient{
		resolveGroupFn: notFoundTarget,
		resolveProjectFn: func(ctx context.Context, path string) (*domain.Target, error) {
			return project, nil
		},
	}
	svc := NewPermissionService(client, zap.NewNop())

	_, err := svc.SetPermission(context.Background(), "alice", "team/app", "owner")

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.False(t, client.called("FindUser"))
	assert.False(t, client.called("AddMember"))
}

func TestSetPermissionUserNotFound(t *testing.T) {
	client := &fakeClient{
		resolveGroupFn: func(ctx context.Context, path string) (*domain.Target, error) {
			return testGroup, nil
		},
		findUserFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, username)
		},
	}
	svc := NewPermissionService(client, zap.NewNop())

	_, err := svc.SetPermission(context.Background(), "ghost", "platform-team", "developer")

	require.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.False(t, client.called("AddMember"))
	assert.False(t, client.called("UpdateMember"))
}

func TestSetPermissionUpstreamFailureSurfaced(t *testing.T) {
	upstream := domain.NewUpstreamError(503, "service unavailable")

	client := &fakeClient{
		resolveGroupFn: func(ctx context.Context, path string) (*domain.Target, error) {
			return nil, upstream
		},
	}
	svc := NewPermissionService(client, zap.NewNop())

	_, err := svc.SetPermission(context.Background(), "alice", "platform-team", "developer")

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.False(t, client.called("ResolveProject"), "an upstream failure is not a resolution miss")
}
