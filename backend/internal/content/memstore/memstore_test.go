package memstore

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/Lombiq/NGM.Forum/backend/internal/content"
	"github.com/Lombiq/NGM.Forum/shared/domain"
	internal_errors "github.com/Lombiq/NGM.Forum/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func thread(id domain.ContentItemId, container domain.ContentItemId, alias string, version domain.VersionInfo) domain.ContentItem {
	return domain.ContentItem{
		Id:          id,
		ContentType: "Thread",
		Version:     version,
		Common:      &domain.CommonPart{Container: &container, CreatedUtc: created.Add(time.Duration(id) * time.Minute)},
		Autoroute:   &domain.AutoroutePart{DisplayAlias: alias},
		Thread:      &domain.ThreadPart{},
	}
}

var v1 = domain.VersionInfo{Number: 1, Published: true, Latest: true}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Put(ctx, thread(1, 10, "a/one", v1)))

	item, err := s.Get(ctx, 1, domain.Published)
	require.NoError(t, err)
	assert.Equal(t, "a/one", item.Autoroute.DisplayAlias)

	// returned items are copies
	item.Autoroute.DisplayAlias = "changed"
	*item.Common.Container = 99
	again, err := s.Get(ctx, 1, domain.Published)
	require.NoError(t, err)
	assert.Equal(t, "a/one", again.Autoroute.DisplayAlias)
	assert.Equal(t, domain.ContentItemId(10), *again.Common.Container)

	_, err = s.Get(ctx, 2, domain.Published)
	assert.ErrorIs(t, err, internal_errors.NotFound)

	_, err = s.Get(ctx, 1, domain.Number(-3))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, internal_errors.NotFound)
}

func TestPutVersions(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Put(ctx, thread(1, 10, "a/one", v1)))
	require.NoError(t, s.Put(ctx, thread(1, 10, "a/one-draft", domain.VersionInfo{Number: 2, Latest: true})))

	published, err := s.Get(ctx, 1, domain.Published)
	require.NoError(t, err)
	assert.Equal(t, 1, published.Version.Number)
	assert.False(t, published.Version.Latest, "new latest version takes the flag")

	latest, err := s.Get(ctx, 1, domain.Latest)
	require.NoError(t, err)
	assert.Equal(t, "a/one-draft", latest.Autoroute.DisplayAlias)

	draft, err := s.Get(ctx, 1, domain.Draft)
	require.NoError(t, err)
	assert.Equal(t, 2, draft.Version.Number)

	all, err := s.Get(ctx, 1, domain.AllVersions)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Version.Number, "all versions resolves to latest for a single item")

	// publishing v2 retires v1
	require.NoError(t, s.Put(ctx, thread(1, 10, "a/one-final", domain.VersionInfo{Number: 2, Published: true, Latest: true})))
	published, err = s.Get(ctx, 1, domain.Published)
	require.NoError(t, err)
	assert.Equal(t, "a/one-final", published.Autoroute.DisplayAlias)
	_, err = s.Get(ctx, 1, domain.Draft)
	assert.ErrorIs(t, err, internal_errors.NotFound)

	n, err := s.Count(ctx, content.NewQuery(domain.AllVersions, "Thread"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPutRejects(t *testing.T) {
	ctx := context.Background()
	s := New()
	assert.Error(t, s.Put(ctx, thread(0, 10, "x", v1)))
	assert.Error(t, s.Put(ctx, thread(1, 10, "x", domain.VersionInfo{})))

	require.NoError(t, s.Put(ctx, thread(1, 10, "x", v1)))
	forum := thread(1, 10, "x", domain.VersionInfo{Number: 2})
	forum.ContentType = "Forum"
	assert.Error(t, s.Put(ctx, forum), "content type is fixed per item")
}

func TestQueryEvaluation(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Put(ctx, thread(1, 10, "forum/alpha", v1)))
	require.NoError(t, s.Put(ctx, thread(2, 10, "forum/beta", v1)))
	require.NoError(t, s.Put(ctx, thread(3, 20, "other/alpha", v1)))
	noAlias := thread(4, 10, "", v1)
	noAlias.Autoroute = nil
	require.NoError(t, s.Put(ctx, noAlias))

	inForum := content.NewQuery(domain.Published, "Thread").
		Join(content.PartCommon).
		Where(content.Eq(content.FieldContainer, int64(10)))

	t.Run("Filter and default id order", func(t *testing.T) {
		items, err := s.List(ctx, inForum)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, domain.ContentItemId(1), items[0].Id)
		assert.Equal(t, domain.ContentItemId(2), items[1].Id)
		assert.Equal(t, domain.ContentItemId(4), items[2].Id)
	})

	t.Run("Join drops items without the part", func(t *testing.T) {
		n, err := s.Count(ctx, inForum.Join(content.PartAutoroute))
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("Suffix match", func(t *testing.T) {
		items, err := s.List(ctx, inForum.Join(content.PartAutoroute).Where(content.EndsWith(content.FieldDisplayAlias, "alpha")))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, domain.ContentItemId(1), items[0].Id)
	})

	t.Run("Descending order", func(t *testing.T) {
		items, err := s.List(ctx, inForum.OrderByDescending(content.FieldCreatedUtc))
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, domain.ContentItemId(4), items[0].Id)
		assert.Equal(t, domain.ContentItemId(1), items[2].Id)
	})

	t.Run("Slice", func(t *testing.T) {
		items, err := s.Slice(ctx, inForum, 1, 5)
		require.NoError(t, err)
		assert.Len(t, items, 2)

		items, err = s.Slice(ctx, inForum, 3, 5)
		require.NoError(t, err)
		assert.Empty(t, items)

		items, err = s.Slice(ctx, inForum, 2, math.MaxInt)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		_, err = s.Slice(ctx, inForum, -1, 5)
		assert.Error(t, err)
	})

	t.Run("Other content type", func(t *testing.T) {
		n, err := s.Count(ctx, content.NewQuery(domain.Published, "Forum"))
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("Invalid query", func(t *testing.T) {
		_, err := s.List(ctx, content.NewQuery(domain.Published, "Thread").OrderBy(content.FieldTitle))
		assert.Error(t, err)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.List(cancelled, inForum)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := New()
	q := content.NewQuery(domain.Published, "Thread").Join(content.PartCommon).OrderByDescending(content.FieldCreatedUtc)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(2)
		go func(id domain.ContentItemId) {
			defer wg.Done()
			assert.NoError(t, s.Put(ctx, thread(id, 10, "f/t", v1)))
		}(domain.ContentItemId(i))
		go func() {
			defer wg.Done()
			_, err := s.List(ctx, q)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := s.Count(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}
