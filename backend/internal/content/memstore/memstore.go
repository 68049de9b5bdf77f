// Package memstore is an in-memory content.Store. It evaluates queries in
// process and backs unit tests and local runs without a database.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Lombiq/NGM.Forum/backend/internal/content"
	"github.com/Lombiq/NGM.Forum/shared/domain"
	internal_errors "github.com/Lombiq/NGM.Forum/shared/errors"
)

type Store struct {
	mu    sync.RWMutex
	items map[domain.ContentItemId][]domain.ContentItem
}

var _ content.Store = (*Store)(nil)
var _ content.Writer = (*Store)(nil)

func New() *Store {
	return &Store{items: make(map[domain.ContentItemId][]domain.ContentItem)}
}

// Ping always succeeds unless ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Put stores one version of an item, replacing a version with the same number.
// When the new version is flagged latest or published, older versions lose the flag.
func (s *Store) Put(ctx context.Context, item domain.ContentItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item.Id <= 0 {
		return fmt.Errorf("content item id must be positive, got %d", item.Id)
	}
	if item.Version.Number < 1 {
		return fmt.Errorf("content item %d: version number must be positive, got %d", item.Id, item.Version.Number)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	versions := s.items[item.Id]
	if len(versions) > 0 && versions[0].ContentType != item.ContentType {
		return fmt.Errorf("content item %d already has type %q", item.Id, versions[0].ContentType)
	}
	for i := range versions {
		if item.Version.Latest {
			versions[i].Version.Latest = false
		}
		if item.Version.Published {
			versions[i].Version.Published = false
		}
	}
	stored := cloneItem(item)
	for i := range versions {
		if versions[i].Version.Number == item.Version.Number {
			versions[i] = stored
			s.items[item.Id] = versions
			return nil
		}
	}
	versions = append(versions, stored)
	sort.Slice(versions, func(i, j int) bool { return versions[i].Version.Number < versions[j].Version.Number })
	s.items[item.Id] = versions
	return nil
}

func (s *Store) Get(ctx context.Context, id domain.ContentItemId, version domain.VersionOptions) (domain.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.ContentItem{}, err
	}
	if err := version.Validate(); err != nil {
		return domain.ContentItem{}, err
	}
	// a single item cannot be fetched across all versions
	if version.Kind == domain.VersionAll {
		version = domain.Latest
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.items[id] {
		if version.Matches(v.Version) {
			return cloneItem(v), nil
		}
	}
	return domain.ContentItem{}, internal_errors.NotFound
}

func (s *Store) List(ctx context.Context, q content.Query) ([]domain.ContentItem, error) {
	return s.run(ctx, q)
}

func (s *Store) Slice(ctx context.Context, q content.Query, skip, count int) ([]domain.ContentItem, error) {
	if skip < 0 || count < 0 {
		return nil, fmt.Errorf("invalid slice skip=%d count=%d", skip, count)
	}
	items, err := s.run(ctx, q)
	if err != nil {
		return nil, err
	}
	if skip >= len(items) {
		return []domain.ContentItem{}, nil
	}
	// skip+count may overflow
	end := len(items)
	if count < end-skip {
		end = skip + count
	}
	return items[skip:end], nil
}

func (s *Store) Count(ctx context.Context, q content.Query) (int, error) {
	items, err := s.run(ctx, q)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *Store) run(ctx context.Context, q content.Query) ([]domain.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	matched := make([]domain.ContentItem, 0)
	for _, versions := range s.items {
		for _, v := range versions {
			if v.ContentType != q.ContentType || !q.Version.Matches(v.Version) {
				continue
			}
			if !matches(v, q) {
				continue
			}
			matched = append(matched, cloneItem(v))
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		for _, o := range q.Orders {
			c := compare(fieldValue(a, o.Part, o.Field), fieldValue(b, o.Part, o.Field))
			if c == 0 {
				continue
			}
			if o.Descending {
				return c > 0
			}
			return c < 0
		}
		if a.Id != b.Id {
			return a.Id < b.Id
		}
		return a.Version.Number < b.Version.Number
	})
	return matched, nil
}

func matches(item domain.ContentItem, q content.Query) bool {
	for _, part := range q.Joins {
		if !hasPart(item, part) {
			return false
		}
	}
	for _, p := range q.Filters {
		v := fieldValue(item, p.Part, p.Field)
		switch p.Op {
		case content.OpEq:
			if compare(v, p.Value) != 0 || v == nil {
				return false
			}
		case content.OpEndsWith:
			s, ok := v.(string)
			if !ok || !strings.HasSuffix(s, p.Value.(string)) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func hasPart(item domain.ContentItem, part content.Part) bool {
	switch part {
	case content.PartCommon:
		return item.Common != nil
	case content.PartAutoroute:
		return item.Autoroute != nil
	case content.PartModeration:
		return item.Moderation != nil
	case content.PartTitle:
		return item.Title != nil
	case content.PartThread:
		return item.Thread != nil
	case content.PartForum:
		return item.Forum != nil
	default:
		return false
	}
}

// fieldValue returns nil when the part or field is missing.
func fieldValue(item domain.ContentItem, part content.Part, field content.Field) any {
	switch {
	case part == content.PartCommon && item.Common != nil:
		switch field {
		case content.FieldContainer:
			if item.Common.Container == nil {
				return nil
			}
			return *item.Common.Container
		case content.FieldCreatedUtc:
			return item.Common.CreatedUtc
		}
	case part == content.PartAutoroute && item.Autoroute != nil && field == content.FieldDisplayAlias:
		return item.Autoroute.DisplayAlias
	case part == content.PartModeration && item.Moderation != nil && field == content.FieldApproved:
		return item.Moderation.Approved
	case part == content.PartTitle && item.Title != nil && field == content.FieldTitle:
		return item.Title.Title
	case part == content.PartThread && item.Thread != nil && field == content.FieldIsSticky:
		return item.Thread.IsSticky
	}
	return nil
}

// compare orders nil first, false before true, and otherwise by natural order.
func compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if ai, ok := toInt64(a); ok {
		if bi, ok := toInt64(b); ok {
			return cmpOrdered(ai, bi)
		}
	}
	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return -1
		}
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case string:
		bv, ok := b.(string)
		if !ok {
			return -1
		}
		return strings.Compare(av, bv)
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return -1
		}
		return av.Compare(bv)
	}
	return -1
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func cmpOrdered(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cloneItem(item domain.ContentItem) domain.ContentItem {
	if item.Common != nil {
		c := *item.Common
		if c.Container != nil {
			container := *c.Container
			c.Container = &container
		}
		if c.PublishedUtc != nil {
			published := *c.PublishedUtc
			c.PublishedUtc = &published
		}
		item.Common = &c
	}
	if item.Autoroute != nil {
		a := *item.Autoroute
		item.Autoroute = &a
	}
	if item.Moderation != nil {
		m := *item.Moderation
		item.Moderation = &m
	}
	if item.Title != nil {
		t := *item.Title
		item.Title = &t
	}
	if item.Thread != nil {
		t := *item.Thread
		item.Thread = &t
	}
	if item.Forum != nil {
		f := *item.Forum
		item.Forum = &f
	}
	return item
}
