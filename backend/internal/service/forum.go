package service

import (
	"context"
	"errors"

	"github.com/Lombiq/NGM.Forum/backend/internal/content"
	"github.com/Lombiq/NGM.Forum/shared/domain"
	internal_errors "github.com/Lombiq/NGM.Forum/shared/errors"
)

type ForumService interface {
	Get(ctx context.Context, id domain.ContentItemId, version domain.VersionOptions) (domain.Optional[domain.Forum], error)
}

type Forum struct {
	store     content.Store
	forumType domain.ContentType
}

func NewForum(store content.Store, forumType domain.ContentType) *Forum {
	return &Forum{store: store, forumType: forumType}
}

// Get resolves a forum by id. Items of another content type, or without a
// forum part, are reported as absent.
func (f *Forum) Get(ctx context.Context, id domain.ContentItemId, version domain.VersionOptions) (domain.Optional[domain.Forum], error) {
	item, err := f.store.Get(ctx, id, version)
	if err != nil {
		if errors.Is(err, internal_errors.NotFound) {
			return domain.None[domain.Forum](), nil
		}
		return domain.None[domain.Forum](), err
	}
	if item.ContentType != f.forumType {
		return domain.None[domain.Forum](), nil
	}
	forum, ok := domain.ForumFromItem(item)
	if !ok {
		return domain.None[domain.Forum](), nil
	}
	return domain.Some(forum), nil
}
