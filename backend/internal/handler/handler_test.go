package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lombiq/NGM.Forum/shared/config"
	"github.com/Lombiq/NGM.Forum/shared/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockThreadService struct {
	MockGetBySlug            func(ctx context.Context, forum domain.Forum, slug domain.Slug, version domain.VersionOptions) (domain.Optional[domain.Thread], error)
	MockGet                  func(ctx context.Context, id domain.ContentItemId, version domain.VersionOptions) (domain.Optional[domain.ContentItem], error)
	MockListByForumVersion   func(ctx context.Context, forum domain.Forum, version domain.VersionOptions) ([]domain.Thread, error)
	MockPageByForumModerated func(ctx context.Context, forum domain.Forum, skip, count int, version domain.VersionOptions, moderation domain.ModerationOptions) ([]domain.Thread, error)
	MockCountByForum         func(ctx context.Context, forum domain.Forum, version domain.VersionOptions) (int, error)
}

func (m *MockThreadService) GetBySlug(ctx context.Context, forum domain.Forum, slug domain.Slug, version domain.VersionOptions) (domain.Optional[domain.Thread], error) {
	if m.MockGetBySlug != nil {
		return m.MockGetBySlug(ctx, forum, slug, version)
	}
	return domain.None[domain.Thread](), nil
}

func (m *MockThreadService) Get(ctx context.Context, id domain.ContentItemId, version domain.VersionOptions) (domain.Optional[domain.ContentItem], error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id, version)
	}
	return domain.None[domain.ContentItem](), nil
}

func (m *MockThreadService) ListByForum(ctx context.Context, forum domain.Forum) ([]domain.Thread, error) {
	return m.ListByForumVersion(ctx, forum, domain.Published)
}

func (m *MockThreadService) ListByForumVersion(ctx context.Context, forum domain.Forum, version domain.VersionOptions) ([]domain.Thread, error) {
	if m.MockListByForumVersion != nil {
		return m.MockListByForumVersion(ctx, forum, version)
	}
	return nil, nil
}

func (m *MockThreadService) PageByForum(ctx context.Context, forum domain.Forum, skip, count int) ([]domain.Thread, error) {
	return m.PageByForumModerated(ctx, forum, skip, count, domain.Published, domain.ModerationAll)
}

func (m *MockThreadService) PageByForumModerated(ctx context.Context, forum domain.Forum, skip, count int, version domain.VersionOptions, moderation domain.ModerationOptions) ([]domain.Thread, error) {
	if m.MockPageByForumModerated != nil {
		return m.MockPageByForumModerated(ctx, forum, skip, count, version, moderation)
	}
	return nil, nil
}

func (m *MockThreadService) CountByForum(ctx context.Context, forum domain.Forum, version domain.VersionOptions) (int, error) {
	if m.MockCountByForum != nil {
		return m.MockCountByForum(ctx, forum, version)
	}
	return 0, nil
}

type MockForumService struct {
	MockGet func(ctx context.Context, id domain.ContentItemId, version domain.VersionOptions) (domain.Optional[domain.Forum], error)
}

func (m *MockForumService) Get(ctx context.Context, id domain.ContentItemId, version domain.VersionOptions) (domain.Optional[domain.Forum], error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id, version)
	}
	return domain.Some(domain.Forum{Id: id, Title: "General", Alias: "general"}), nil
}

// --- Helpers ---

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{ThreadsPerPage: 2, MaxPageSize: 5}}
}

func newTestHandler(thread *MockThreadService, forum *MockForumService) *Handler {
	return New(thread, forum, testConfig(), &MockHealthChecker{})
}

func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/forums/{forum}/threads", h.ListThreads)
	r.Get("/v1/forums/{forum}/threads/count", h.CountThreads)
	r.Get("/v1/forums/{forum}/threads/slug/{slug}", h.GetThreadBySlug)
	r.Get("/v1/items/{id}", h.GetItem)
	return r
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

var created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestWriteJSON(t *testing.T) {
	t.Run("encodes value", func(t *testing.T) {
		rr := httptest.NewRecorder()
		writeJSON(rr, map[string]int{"count": 3})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"count": 3}`, rr.Body.String())
	})

	t.Run("unencodable value", func(t *testing.T) {
		rr := httptest.NewRecorder()
		writeJSON(rr, map[string]any{"fn": func() {}})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotEqual(t, "application/json", rr.Header().Get("Content-Type"))
	})
}

func TestNew(t *testing.T) {
	h := newTestHandler(&MockThreadService{}, &MockForumService{})
	require.NotNil(t, h)
	assert.Equal(t, 2, h.pager.PerPage)
	assert.Equal(t, 5, h.pager.MaxSize)
}
