package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"gitlab-gateway/internal/api"
	"gitlab-gateway/internal/domain"
)

type ItemLister interface {
	ListItems(ctx context.Context, kind, year string) ([]domain.Item, error)
}

func ListItems(svc ItemLister, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		kind := r.URL.Query().Get("type")
		year := r.URL.Query().Get("year")

		items, err := svc.ListItems(ctx, kind, year)
		if err != nil {
			writeDomainError(w, logger, "ListItems", err)
			return
		}

		summaries := make([]api.ItemSummary, len(items))
		for i, item := range items {
			summaries[i] = api.ItemSummary{
				ID:        item.ID,
				Title:     item.Title,
				State:     item.State,
				CreatedAt: item.CreatedAt,
				WebURL:    item.WebURL,
				Author:    item.Author,
			}
		}

		writeJSON(w, logger, http.StatusOK, summaries)

		logger.Info("ListItems: successfully listed items",
			zap.String("type", kind),
			zap.String("year", year),
			zap.Int("count", len(summaries)),
		)
	}
}
