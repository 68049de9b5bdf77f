package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lombiq/NGM.Forum/shared/domain"
)

// Put stores one version of an item with its parts, replacing a version
// with the same number. Flagging it latest or published clears the flag on
// the item's other versions. Used to seed fixtures; the service never writes.
func (s *Storage) Put(ctx context.Context, item domain.ContentItem) error {
	if item.Id <= 0 || item.Version.Number < 1 {
		return fmt.Errorf("invalid content item id=%d version=%d", item.Id, item.Version.Number)
	}
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return putItem(ctx, tx, item)
	})
}

func putItem(ctx context.Context, q Querier, item domain.ContentItem) error {
	var contentType domain.ContentType
	err := q.QueryRowContext(ctx, `
        INSERT INTO content_items (id, content_type) VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
        RETURNING content_type
    `, item.Id, item.ContentType).Scan(&contentType)
	if err != nil {
		return fmt.Errorf("failed to upsert content item: %w", err)
	}
	if contentType != item.ContentType {
		return fmt.Errorf("content item %d already has type %q", item.Id, contentType)
	}

	if item.Version.Latest {
		if _, err := q.ExecContext(ctx,
			"UPDATE content_item_versions SET latest = FALSE WHERE content_item_id = $1 AND number <> $2",
			item.Id, item.Version.Number); err != nil {
			return fmt.Errorf("failed to clear latest flag: %w", err)
		}
	}
	if item.Version.Published {
		if _, err := q.ExecContext(ctx,
			"UPDATE content_item_versions SET published = FALSE WHERE content_item_id = $1 AND number <> $2",
			item.Id, item.Version.Number); err != nil {
			return fmt.Errorf("failed to clear published flag: %w", err)
		}
	}

	var versionId int64
	err = q.QueryRowContext(ctx, `
        INSERT INTO content_item_versions (content_item_id, number, published, latest)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (content_item_id, number)
        DO UPDATE SET published = EXCLUDED.published, latest = EXCLUDED.latest
        RETURNING id
    `, item.Id, item.Version.Number, item.Version.Published, item.Version.Latest).Scan(&versionId)
	if err != nil {
		return fmt.Errorf("failed to upsert content item version: %w", err)
	}

	for _, part := range partOrder {
		t := partTables[part]
		if _, err := q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE version_id = $1", t.table), versionId); err != nil {
			return fmt.Errorf("failed to clear %s: %w", t.table, err)
		}
	}

	if c := item.Common; c != nil {
		var container sql.NullInt64
		if c.Container != nil {
			container = sql.NullInt64{Int64: *c.Container, Valid: true}
		}
		var published sql.NullTime
		if c.PublishedUtc != nil {
			published = sql.NullTime{Time: *c.PublishedUtc, Valid: true}
		}
		if _, err := q.ExecContext(ctx, `
            INSERT INTO common_parts (version_id, container_id, owner, created_utc, modified_utc, published_utc)
            VALUES ($1, $2, $3, $4, $5, $6)
        `, versionId, container, c.Owner, c.CreatedUtc, c.ModifiedUtc, published); err != nil {
			return fmt.Errorf("failed to insert common part: %w", err)
		}
	}
	if a := item.Autoroute; a != nil {
		if _, err := q.ExecContext(ctx,
			"INSERT INTO autoroute_parts (version_id, display_alias) VALUES ($1, $2)",
			versionId, a.DisplayAlias); err != nil {
			return fmt.Errorf("failed to insert autoroute part: %w", err)
		}
	}
	if m := item.Moderation; m != nil {
		if _, err := q.ExecContext(ctx,
			"INSERT INTO moderation_parts (version_id, approved) VALUES ($1, $2)",
			versionId, m.Approved); err != nil {
			return fmt.Errorf("failed to insert moderation part: %w", err)
		}
	}
	if t := item.Title; t != nil {
		if _, err := q.ExecContext(ctx,
			"INSERT INTO title_parts (version_id, title) VALUES ($1, $2)",
			versionId, t.Title); err != nil {
			return fmt.Errorf("failed to insert title part: %w", err)
		}
	}
	if t := item.Thread; t != nil {
		if _, err := q.ExecContext(ctx,
			"INSERT INTO thread_parts (version_id, is_sticky, is_closed, reply_count) VALUES ($1, $2, $3, $4)",
			versionId, t.IsSticky, t.IsClosed, t.ReplyCount); err != nil {
			return fmt.Errorf("failed to insert thread part: %w", err)
		}
	}
	if f := item.Forum; f != nil {
		if _, err := q.ExecContext(ctx,
			"INSERT INTO forum_parts (version_id, description, thread_count, post_count) VALUES ($1, $2, $3, $4)",
			versionId, f.Description, f.ThreadCount, f.PostCount); err != nil {
			return fmt.Errorf("failed to insert forum part: %w", err)
		}
	}
	return nil
}
