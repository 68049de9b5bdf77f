package handler

import (
	"context"
	"net/http"

	"github.com/Lombiq/NGM.Forum/shared/api"
	"github.com/Lombiq/NGM.Forum/shared/domain"
	internal_errors "github.com/Lombiq/NGM.Forum/shared/errors"
	"github.com/Lombiq/NGM.Forum/shared/utils"
	"github.com/go-chi/chi/v5"
)

var errForumNotFound = &internal_errors.ErrorWithStatusCode{Message: "Forum not found", StatusCode: http.StatusNotFound}

// resolveForum loads the forum named by the {forum} route parameter.
func (h *Handler) resolveForum(ctx context.Context, r *http.Request, version domain.VersionOptions) (domain.Forum, error) {
	id, err := parseIdParam(r, "forum")
	if err != nil {
		return domain.Forum{}, &internal_errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}
	found, err := h.forum.Get(ctx, id, forumVersion(version))
	if err != nil {
		return domain.Forum{}, err
	}
	forum, ok := found.Get()
	if !ok {
		return domain.Forum{}, errForumNotFound
	}
	return forum, nil
}

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	query, err := parseListThreadsQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	version, err := domain.ParseVersionOptions(query.Version)
	if err != nil {
		http.Error(w, "invalid version: "+err.Error(), http.StatusBadRequest)
		return
	}
	moderation, err := domain.ParseModerationOptions(query.Moderation)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var skip, count int
	if query.Skip != nil {
		if skip, count, err = h.pager.Window(*query.Skip, query.Count); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	} else {
		query.Page = max(1, query.Page)
		if skip, count, err = h.pager.Page(query.Page); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}

	ctx := r.Context()
	forum, err := h.resolveForum(ctx, r, version)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	threads, err := h.thread.PageByForumModerated(ctx, forum, skip, count, version, moderation)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	total, err := h.thread.CountByForum(ctx, forum, version)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := api.ThreadListResponse{
		Forum:   api.NewForumResponse(forum),
		Threads: api.NewThreadResponses(threads),
		Skip:    skip,
		Count:   count,
		Total:   total,
	}
	if query.Skip == nil {
		response.Page = query.Page
		response.TotalPages = h.pager.TotalPages(total)
	}
	writeJSON(w, response)
}

func (h *Handler) CountThreads(w http.ResponseWriter, r *http.Request) {
	version, err := parseVersionParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	forum, err := h.resolveForum(ctx, r, version)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	count, err := h.thread.CountByForum(ctx, forum, version)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.ThreadCountResponse{Forum: forum.Id, Version: version.String(), Count: count})
}

func (h *Handler) GetThreadBySlug(w http.ResponseWriter, r *http.Request) {
	version, err := parseVersionParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	forum, err := h.resolveForum(ctx, r, version)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	found, err := h.thread.GetBySlug(ctx, forum, chi.URLParam(r, "slug"), version)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	thread, ok := found.Get()
	if !ok {
		http.Error(w, "Thread not found", http.StatusNotFound)
		return
	}
	writeJSON(w, api.NewThreadResponse(thread))
}
