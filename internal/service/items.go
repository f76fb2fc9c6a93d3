package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"gitlab-gateway/internal/domain"
	"gitlab-gateway/internal/platform"
)

// ItemsService lists issues or merge requests created in a calendar year.
type ItemsService struct {
	client platform.Client
	logger *zap.Logger
}

func NewItemsService(client platform.Client, logger *zap.Logger) *ItemsService {
	return &ItemsService{
		client: client,
		logger: logger,
	}
}

// ListItems validates the query and drains the paginated listing, keeping
// only items created inside the year window. The same item can show up via
// multiple scopes, so results are deduplicated by id. Any page failure fails
// the whole call; no partial result is returned.
func (s *ItemsService) ListItems(ctx context.Context, kind, year string) ([]domain.Item, error) {
	parsedKind, err := domain.ParseItemKind(kind)
	if err != nil {
		return nil, err
	}

	parsedYear, err := parseYear(year)
	if err != nil {
		return nil, err
	}

	window := domain.NewYearWindow(parsedYear)
	pager := s.client.ListItems(ctx, parsedKind, window)

	items := make([]domain.Item, 0)
	seen := make(map[int]struct{})

	for {
		page, ok, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}

		if !ok {
			break
		}

		for _, item := range page {
			if _, dup := seen[item.ID]; dup {
				continue
			}

			if !window.Contains(item.CreatedAt) {
				continue
			}

			seen[item.ID] = struct{}{}
			items = append(items, item)
		}
	}

	s.logger.Info("listed items",
		zap.String("kind", string(parsedKind)),
		zap.Int("year", parsedYear),
		zap.Int("count", len(items)),
	)
	return items, nil
}

// parseYear accepts exactly four digits.
func parseYear(year string) (int, error) {
	if len(year) != 4 {
		return 0, domain.NewValidationError("year", fmt.Sprintf("year must be a 4-digit number, got %q", year))
	}

	parsed, err := strconv.Atoi(year)
	if err != nil || parsed < 1000 {
		return 0, domain.NewValidationError("year", fmt.Sprintf("year must be a 4-digit number, got %q", year))
	}

	return parsed, nil
}
