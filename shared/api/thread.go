package api

import (
	"time"

	"github.com/Lombiq/NGM.Forum/shared/domain"
	"github.com/microcosm-cc/bluemonday"
)

// titles come from authored content and are served as plain text
var plainText = bluemonday.StrictPolicy()

// Request DTOs

// ListThreadsQuery holds the query string of a thread listing.
// Either Page or Skip selects the window.
type ListThreadsQuery struct {
	Page       int    `validate:"omitempty,min=1"`
	Skip       *int   `validate:"omitempty,min=0"`
	Count      int    `validate:"omitempty,min=0"`
	Version    string `validate:"omitempty"`
	Moderation string `validate:"omitempty,oneof=all approved not_approved unapproved"`
}

// Response DTOs

type VersionResponse struct {
	Number    int  `json:"number"`
	Published bool `json:"published"`
	Latest    bool `json:"latest"`
}

type ThreadResponse struct {
	Id         int64           `json:"id"`
	Title      string          `json:"title"`
	Alias      string          `json:"alias"`
	Forum      int64           `json:"forum"`
	IsSticky   bool            `json:"is_sticky"`
	IsClosed   bool            `json:"is_closed"`
	Approved   bool            `json:"approved"`
	ReplyCount int             `json:"reply_count"`
	CreatedUtc time.Time       `json:"created_utc"`
	Version    VersionResponse `json:"version"`
}

type ForumResponse struct {
	Id          int64  `json:"id"`
	Title       string `json:"title"`
	Alias       string `json:"alias"`
	Description string `json:"description"`
}

type ThreadListResponse struct {
	Forum   ForumResponse    `json:"forum"`
	Threads []ThreadResponse `json:"threads"`
	Skip    int              `json:"skip"`
	Count   int              `json:"count"`
	// Total counts the forum's threads at the requested version, whatever the moderation filter.
	Total      int `json:"total"`
	Page       int `json:"page,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
}

type ThreadCountResponse struct {
	Forum   int64  `json:"forum"`
	Version string `json:"version"`
	Count   int    `json:"count"`
}

func NewVersionResponse(v domain.VersionInfo) VersionResponse {
	return VersionResponse{Number: v.Number, Published: v.Published, Latest: v.Latest}
}

func NewThreadResponse(t domain.Thread) ThreadResponse {
	return ThreadResponse{
		Id:         t.Id,
		Title:      plainText.Sanitize(t.Title),
		Alias:      t.Alias,
		Forum:      t.Forum,
		IsSticky:   t.IsSticky,
		IsClosed:   t.IsClosed,
		Approved:   t.Approved,
		ReplyCount: t.ReplyCount,
		CreatedUtc: t.CreatedUtc,
		Version:    NewVersionResponse(t.Version),
	}
}

func NewThreadResponses(threads []domain.Thread) []ThreadResponse {
	out := make([]ThreadResponse, len(threads))
	for i, t := range threads {
		out[i] = NewThreadResponse(t)
	}
	return out
}

func NewForumResponse(f domain.Forum) ForumResponse {
	return ForumResponse{
		Id:          f.Id,
		Title:       plainText.Sanitize(f.Title),
		Alias:       f.Alias,
		Description: plainText.Sanitize(f.Description),
	}
}
