package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Lombiq/NGM.Forum/backend/internal/content"
	"github.com/Lombiq/NGM.Forum/shared/domain"
	internal_errors "github.com/Lombiq/NGM.Forum/shared/errors"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (domain.ContentItem, error) {
	var (
		item                           domain.ContentItem
		common                         domain.CommonPart
		hasCommon, hasThread, hasForum bool
		container                      sql.NullInt64
		publishedUtc                   sql.NullTime
		alias, title                   sql.NullString
		approved                       sql.NullBool
		thread                         domain.ThreadPart
		forum                          domain.ForumPart
	)
	err := row.Scan(
		&item.Id, &item.ContentType, &item.Version.Number, &item.Version.Published, &item.Version.Latest,
		&hasCommon, &container, &common.Owner,
		&common.CreatedUtc, &common.ModifiedUtc, &publishedUtc,
		&alias,
		&approved,
		&title,
		&hasThread, &thread.IsSticky, &thread.IsClosed, &thread.ReplyCount,
		&hasForum, &forum.Description, &forum.ThreadCount, &forum.PostCount,
	)
	if err != nil {
		return domain.ContentItem{}, err
	}

	if hasCommon {
		if container.Valid {
			id := domain.ContentItemId(container.Int64)
			common.Container = &id
		}
		if publishedUtc.Valid {
			t := publishedUtc.Time.UTC()
			common.PublishedUtc = &t
		}
		common.CreatedUtc = common.CreatedUtc.UTC()
		common.ModifiedUtc = common.ModifiedUtc.UTC()
		item.Common = &common
	}
	if alias.Valid {
		item.Autoroute = &domain.AutoroutePart{DisplayAlias: alias.String}
	}
	if approved.Valid {
		item.Moderation = &domain.ModerationPart{Approved: approved.Bool}
	}
	if title.Valid {
		item.Title = &domain.TitlePart{Title: title.String}
	}
	if hasThread {
		item.Thread = &thread
	}
	if hasForum {
		item.Forum = &forum
	}
	return item, nil
}

func (s *Storage) Get(ctx context.Context, id domain.ContentItemId, version domain.VersionOptions) (domain.ContentItem, error) {
	query, args, err := compileGet(id, version)
	if err != nil {
		return domain.ContentItem{}, err
	}
	item, err := scanItem(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ContentItem{}, internal_errors.NotFound
		}
		return domain.ContentItem{}, fmt.Errorf("failed to fetch content item %d: %w", id, err)
	}
	return item, nil
}

func (s *Storage) List(ctx context.Context, q content.Query) ([]domain.ContentItem, error) {
	query, args, err := compileSelect(q, 0, -1)
	if err != nil {
		return nil, err
	}
	return s.queryItems(ctx, query, args)
}

func (s *Storage) Slice(ctx context.Context, q content.Query, skip, count int) ([]domain.ContentItem, error) {
	if skip < 0 || count < 0 {
		return nil, fmt.Errorf("invalid slice skip=%d count=%d", skip, count)
	}
	query, args, err := compileSelect(q, skip, count)
	if err != nil {
		return nil, err
	}
	return s.queryItems(ctx, query, args)
}

func (s *Storage) Count(ctx context.Context, q content.Query) (int, error) {
	query, args, err := compileCount(q)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count content items: %w", err)
	}
	return n, nil
}

func (s *Storage) queryItems(ctx context.Context, query string, args []any) ([]domain.ContentItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query content items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ContentItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return items, nil
}
