package platform

import (
	"context"

	"gitlab-gateway/internal/domain"
)

// Client is the outbound port to the version-control platform. All state
// lives on the platform side; implementations hold nothing but connection
// configuration.
type Client interface {
	FindUser(ctx context.Context, username string) (*domain.User, error)
	ResolveGroup(ctx context.Context, path string) (*domain.Target, error)
	ResolveProject(ctx context.Context, path string) (*domain.Target, error)
	GetMember(ctx context.Context, target *domain.Target, userID int) (*domain.Member, error)
	AddMember(ctx context.Context, target *domain.Target, userID int, level domain.Role) (*domain.Member, error)
	UpdateMember(ctx context.Context, target *domain.Target, userID int, level domain.Role) (*domain.Member, error)
	ListItems(ctx context.Context, kind domain.ItemKind, window domain.YearWindow) ItemPager
}

// ItemPager yields one page of items per call. ok is false once the result
// set is exhausted; after an error the pager must not be used again.
type ItemPager interface {
	Next(ctx context.Context) (items []domain.Item, ok bool, err error)
}
