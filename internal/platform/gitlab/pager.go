package gitlab

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"gitlab-gateway/internal/domain"
	"gitlab-gateway/internal/platform"
)

// itemPager walks the paginated issue or merge-request listing one page per
// Next call, following GitLab's X-Next-Page header.
type itemPager struct {
	client *Client
	path   string
	kind   domain.ItemKind
	window domain.YearWindow
	page   int
	done   bool
}

func (c *Client) ListItems(ctx context.Context, kind domain.ItemKind, window domain.YearWindow) platform.ItemPager {
	path := "/api/v4/issues"
	if kind == domain.KindMergeRequest {
		path = "/api/v4/merge_requests"
	}

	return &itemPager{
		client: c,
		path:   path,
		kind:   kind,
		window: window,
		page:   1,
	}
}

func (p *itemPager) Next(ctx context.Context) ([]domain.Item, bool, error) {
	if p.done {
		return nil, false, nil
	}

	query := url.Values{}
	query.Set("scope", "all")
	query.Set("created_after", p.window.Start.Format(time.RFC3339))
	query.Set("created_before", p.window.End.Format(time.RFC3339))
	query.Set("per_page", strconv.Itoa(p.client.perPage))
	query.Set("page", strconv.Itoa(p.page))

	p.client.logger.Info("requesting item page", zap.String("kind", string(p.kind)), zap.Int("page", p.page))

	var wireItems []gitlabItem
	header, err := p.client.do(ctx, http.MethodGet, p.path, query, nil, &wireItems)
	if err != nil {
		p.done = true
		p.client.logger.Error("failed to fetch item page", zap.String("kind", string(p.kind)), zap.Int("page", p.page), zap.Error(err))
		return nil, false, err
	}

	if len(wireItems) == 0 {
		p.done = true
		return nil, false, nil
	}

	nextPage := header.Get("X-Next-Page")
	if nextPage == "" {
		p.done = true
	} else {
		next, err := strconv.Atoi(nextPage)
		if err != nil || next <= p.page {
			p.done = true
		} else {
			p.page = next
		}
	}

	items := make([]domain.Item, len(wireItems))
	for i, wireItem := range wireItems {
		items[i] = domain.Item{
			ID:        wireItem.ID,
			Title:     wireItem.Title,
			State:     wireItem.State,
			CreatedAt: wireItem.CreatedAt,
			WebURL:    wireItem.WebURL,
			Author:    wireItem.Author.Username,
		}
	}

	return items, true, nil
}
