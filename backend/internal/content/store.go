package content

import (
	"context"

	"github.com/Lombiq/NGM.Forum/shared/domain"
)

// Store executes queries against persisted content items.
// Implementations order by the query's keys and then by item id ascending,
// so equal keys come back in a stable order.
type Store interface {
	// Get returns errors.NotFound when id has no version matching version.
	Get(ctx context.Context, id domain.ContentItemId, version domain.VersionOptions) (domain.ContentItem, error)
	List(ctx context.Context, q Query) ([]domain.ContentItem, error)
	// Slice never fails for a skip past the end; it returns an empty slice.
	Slice(ctx context.Context, q Query, skip, count int) ([]domain.ContentItem, error)
	Count(ctx context.Context, q Query) (int, error)
}

// Project maps items into a typed view, dropping those the view rejects.
func Project[T any](items []domain.ContentItem, view func(domain.ContentItem) (T, bool)) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if v, ok := view(item); ok {
			out = append(out, v)
		}
	}
	return out
}
