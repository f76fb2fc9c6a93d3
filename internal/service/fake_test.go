package service

import (
	"context"

	"gitlab-gateway/internal/domain"
	"gitlab-gateway/internal/platform"
)

// fakeClient records every call so tests can assert that validation failures
// never reach the platform and that no mutation happens on resolution errors.
type fakeClient struct {
	calls []string

	findUserFn       func(ctx context.Context, username string) (*domain.User, error)
	resolveGroupFn   func(ctx context.Context, path string) (*domain.Target, error)
	resolveProjectFn func(ctx context.Context, path string) (*domain.Target, error)
	getMemberFn      func(ctx context.Context, target *domain.Target, userID int) (*domain.Member, error)
	addMemberFn      func(ctx context.Context, target *domain.Target, userID int, level domain.Role) (*domain.Member, error)
	updateMemberFn   func(ctx context.Context, target *domain.Target, userID int, level domain.Role) (*domain.Member, error)
	listItemsFn      func(ctx context.Context, kind domain.ItemKind, window domain.YearWindow) platform.ItemPager
}

func (f *fakeClient) FindUser(ctx context.Context, username string) (*domain.User, error) {
	f.calls = append(f.calls, "FindUser")
	return f.findUserFn(ctx, username)
}

func (f *fakeClient) ResolveGroup(ctx context.Context, path string) (*domain.Target, error) {
	f.calls = append(f.calls, "ResolveGroup")
	return f.resolveGroupFn(ctx, path)
}

func (f *fakeClient) ResolveProject(ctx context.Context, path string) (*domain.Target, error) {
	f.calls = append(f.calls, "ResolveProject")
	return f.resolveProjectFn(ctx, path)
}

func (f *fakeClient) GetMember(ctx context.Context, target *domain.Target, userID int) (*domain.Member, error) {
	f.calls = append(f.calls, "GetMember")
	return f.getMemberFn(ctx, target, userID)
}

func (f *fakeClient) AddMember(ctx context.Context, target *domain.Target, userID int, level domain.Role) (*domain.Member, error) {
	f.calls = append(f.calls, "AddMember")
	return f.addMemberFn(ctx, target, userID, level)
}

func (f *fakeClient) UpdateMember(ctx context.Context, target *domain.Target, userID int, level domain.Role) (*domain.Member, error) {
	f.calls = append(f.calls, "UpdateMember")
	return f.updateMemberFn(ctx, target, userID, level)
}

func (f *fakeClient) ListItems(ctx context.Context, kind domain.ItemKind, window domain.YearWindow) platform.ItemPager {
	f.calls = append(f.calls, "ListItems")
	return f.listItemsFn(ctx, kind, window)
}

func (f *fakeClient) called(name string) bool {
	for _, call := range f.calls {
		if call == name {
			return true
		}
	}

	return false
}

// fakePager serves predefined pages and can fail at a given page index.
type fakePager struct {
	pages   [][]domain.Item
	failAt  int
	failErr error
	next    int
}

func (p *fakePager) Next(ctx context.Context) ([]domain.Item, bool, error) {
	if p.failErr != nil && p.next == p.failAt {
		return nil, false, p.failErr
	}

	if p.next >= len(p.pages) {
		return nil, false, nil
	}

	page := p.pages[p.next]
	p.next++

	return page, true, nil
}
