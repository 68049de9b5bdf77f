package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Lombiq/NGM.Forum/shared/api"
	"github.com/Lombiq/NGM.Forum/shared/domain"
	"github.com/Lombiq/NGM.Forum/shared/utils"
	"github.com/go-chi/chi/v5"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int, error) {
	val, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}

func parseIdParam(r *http.Request, name string) (domain.ContentItemId, error) {
	val, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || val <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", name)
	}
	return domain.ContentItemId(val), nil
}

func parseVersionParam(r *http.Request) (domain.VersionOptions, error) {
	version, err := domain.ParseVersionOptions(r.URL.Query().Get("version"))
	if err != nil {
		return domain.VersionOptions{}, fmt.Errorf("invalid version: %w", err)
	}
	return version, nil
}

// parseListThreadsQuery reads and validates the listing query string.
func parseListThreadsQuery(r *http.Request) (api.ListThreadsQuery, error) {
	values := r.URL.Query()
	q := api.ListThreadsQuery{
		Version:    values.Get("version"),
		Moderation: values.Get("moderation"),
	}
	var err error
	if raw := values.Get("page"); raw != "" {
		if q.Page, err = parseIntParam(raw, "page"); err != nil {
			return q, err
		}
	}
	if raw := values.Get("skip"); raw != "" {
		skip, err := parseIntParam(raw, "skip")
		if err != nil {
			return q, err
		}
		q.Skip = &skip
	}
	if raw := values.Get("count"); raw != "" {
		if q.Count, err = parseIntParam(raw, "count"); err != nil {
			return q, err
		}
	}
	if q.Page != 0 && q.Skip != nil {
		return q, fmt.Errorf("page and skip are mutually exclusive")
	}
	return q, utils.ValidateStruct(q)
}

// forumVersion picks the forum version matching a thread version request:
// published threads live in published forums, anything else in the latest one.
func forumVersion(threads domain.VersionOptions) domain.VersionOptions {
	if threads.Kind == domain.VersionPublished {
		return domain.Published
	}
	return domain.Latest
}
