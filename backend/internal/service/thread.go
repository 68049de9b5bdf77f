package service

import (
	"context"
	"errors"

	"github.com/Lombiq/NGM.Forum/backend/internal/content"
	"github.com/Lombiq/NGM.Forum/shared/domain"
	internal_errors "github.com/Lombiq/NGM.Forum/shared/errors"
)

// to mock service in tests
type ThreadService interface {
	GetBySlug(ctx context.Context, forum domain.Forum, slug domain.Slug, version domain.VersionOptions) (domain.Optional[domain.Thread], error)
	Get(ctx context.Context, id domain.ContentItemId, version domain.VersionOptions) (domain.Optional[domain.ContentItem], error)
	ListByForum(ctx context.Context, forum domain.Forum) ([]domain.Thread, error)
	ListByForumVersion(ctx context.Context, forum domain.Forum, version domain.VersionOptions) ([]domain.Thread, error)
	PageByForum(ctx context.Context, forum domain.Forum, skip, count int) ([]domain.Thread, error)
	PageByForumModerated(ctx context.Context, forum domain.Forum, skip, count int, version domain.VersionOptions, moderation domain.ModerationOptions) ([]domain.Thread, error)
	CountByForum(ctx context.Context, forum domain.Forum, version domain.VersionOptions) (int, error)
}

// Thread is a read-only lookup facade over the threads of a forum.
// It holds no state besides its collaborators; store errors are returned as is.
type Thread struct {
	store      content.Store
	threadType domain.ContentType
}

func NewThread(store content.Store, threadType domain.ContentType) *Thread {
	return &Thread{store: store, threadType: threadType}
}

// GetBySlug returns the first thread of forum whose display alias ends with slug.
// The alias match is a suffix match so hierarchical prefixes such as
// "forum-name/" are tolerated.
func (t *Thread) GetBySlug(ctx context.Context, forum domain.Forum, slug domain.Slug, version domain.VersionOptions) (domain.Optional[domain.Thread], error) {
	if slug == "" {
		return domain.None[domain.Thread](), &internal_errors.ValidationError{Message: "slug must not be empty"}
	}
	// TODO: several aliases can share a suffix; pick by an explicit key (newest, shortest alias) once one is agreed on
	q := t.buildForumQuery(forum, version, domain.ModerationAll).
		Join(content.PartAutoroute).
		Where(content.EndsWith(content.FieldDisplayAlias, slug)).
		ForPart(content.PartThread)

	items, err := t.store.Slice(ctx, q, 0, 1)
	if err != nil {
		return domain.None[domain.Thread](), err
	}
	threads := content.Project(items, domain.ThreadFromItem)
	if len(threads) == 0 {
		return domain.None[domain.Thread](), nil
	}
	return domain.Some(threads[0]), nil
}

// Get fetches any content item by id. A missing item is an absent result.
func (t *Thread) Get(ctx context.Context, id domain.ContentItemId, version domain.VersionOptions) (domain.Optional[domain.ContentItem], error) {
	item, err := t.store.Get(ctx, id, version)
	if err != nil {
		if errors.Is(err, internal_errors.NotFound) {
			return domain.None[domain.ContentItem](), nil
		}
		return domain.None[domain.ContentItem](), err
	}
	return domain.Some(item), nil
}

// ListByForum returns every published thread of forum, newest first.
func (t *Thread) ListByForum(ctx context.Context, forum domain.Forum) ([]domain.Thread, error) {
	return t.ListByForumVersion(ctx, forum, domain.Published)
}

// ListByForumVersion returns every thread of forum at version, newest first.
// Stickiness is ignored here; only paged listings float sticky threads.
func (t *Thread) ListByForumVersion(ctx context.Context, forum domain.Forum, version domain.VersionOptions) ([]domain.Thread, error) {
	q := t.buildForumQuery(forum, version, domain.ModerationAll).
		OrderByDescending(content.FieldCreatedUtc).
		ForPart(content.PartThread)

	items, err := t.store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return content.Project(items, domain.ThreadFromItem), nil
}

func (t *Thread) PageByForum(ctx context.Context, forum domain.Forum, skip, count int) ([]domain.Thread, error) {
	return t.PageByForumModerated(ctx, forum, skip, count, domain.Published, domain.ModerationAll)
}

// PageByForumModerated returns a window of forum's threads with sticky threads
// first and newest first within each group. A skip past the end yields an
// empty page.
func (t *Thread) PageByForumModerated(ctx context.Context, forum domain.Forum, skip, count int, version domain.VersionOptions, moderation domain.ModerationOptions) ([]domain.Thread, error) {
	if skip < 0 || count < 0 {
		return nil, &internal_errors.ValidationError{Message: "skip and count must not be negative"}
	}
	q := t.buildForumQuery(forum, version, moderation).
		Join(content.PartThread).
		OrderByDescending(content.FieldIsSticky).
		Join(content.PartCommon).
		OrderByDescending(content.FieldCreatedUtc).
		ForPart(content.PartThread)

	items, err := t.store.Slice(ctx, q, skip, count)
	if err != nil {
		return nil, err
	}
	return content.Project(items, domain.ThreadFromItem), nil
}

// CountByForum counts forum's threads at version regardless of moderation.
func (t *Thread) CountByForum(ctx context.Context, forum domain.Forum, version domain.VersionOptions) (int, error) {
	q := t.buildForumQuery(forum, version, domain.ModerationAll).ForPart(content.PartThread)
	return t.store.Count(ctx, q)
}

// buildForumQuery selects threads at version contained in forum, keeping only
// the requested approval state unless moderation is ModerationAll. The
// returned query has the common part joined.
func (t *Thread) buildForumQuery(forum domain.Forum, version domain.VersionOptions, moderation domain.ModerationOptions) content.Query {
	q := content.NewQuery(version, t.threadType)

	if moderation != domain.ModerationAll {
		q = q.Join(content.PartModeration).
			Where(content.Eq(content.FieldApproved, moderation.IsApproved()))
	}

	return q.Join(content.PartCommon).
		Where(content.Eq(content.FieldContainer, forum.Id))
}
