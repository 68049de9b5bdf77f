package api

import (
	"time"

	"github.com/Lombiq/NGM.Forum/shared/domain"
)

// ContentItemResponse is the generic view of a content item; parts the item
// does not carry are omitted.
type ContentItemResponse struct {
	Id          int64           `json:"id"`
	ContentType string          `json:"content_type"`
	Version     VersionResponse `json:"version"`

	Container    *int64     `json:"container,omitempty"`
	Owner        string     `json:"owner,omitempty"`
	CreatedUtc   *time.Time `json:"created_utc,omitempty"`
	ModifiedUtc  *time.Time `json:"modified_utc,omitempty"`
	PublishedUtc *time.Time `json:"published_utc,omitempty"`
	Alias        *string    `json:"alias,omitempty"`
	Title        *string    `json:"title,omitempty"`
	Approved     *bool      `json:"approved,omitempty"`

	Thread *ThreadPartResponse `json:"thread,omitempty"`
	Forum  *ForumPartResponse  `json:"forum,omitempty"`
}

type ThreadPartResponse struct {
	IsSticky   bool `json:"is_sticky"`
	IsClosed   bool `json:"is_closed"`
	ReplyCount int  `json:"reply_count"`
}

type ForumPartResponse struct {
	Description string `json:"description"`
	ThreadCount int    `json:"thread_count"`
	PostCount   int    `json:"post_count"`
}

func NewContentItemResponse(item domain.ContentItem) ContentItemResponse {
	resp := ContentItemResponse{
		Id:          item.Id,
		ContentType: item.ContentType,
		Version:     NewVersionResponse(item.Version),
	}
	if c := item.Common; c != nil {
		resp.Container = c.Container
		resp.Owner = c.Owner
		resp.CreatedUtc = &c.CreatedUtc
		resp.ModifiedUtc = &c.ModifiedUtc
		resp.PublishedUtc = c.PublishedUtc
	}
	if a := item.Autoroute; a != nil {
		resp.Alias = &a.DisplayAlias
	}
	if t := item.Title; t != nil {
		title := plainText.Sanitize(t.Title)
		resp.Title = &title
	}
	if m := item.Moderation; m != nil {
		resp.Approved = &m.Approved
	}
	if t := item.Thread; t != nil {
		resp.Thread = &ThreadPartResponse{IsSticky: t.IsSticky, IsClosed: t.IsClosed, ReplyCount: t.ReplyCount}
	}
	if f := item.Forum; f != nil {
		resp.Forum = &ForumPartResponse{
			Description: plainText.Sanitize(f.Description),
			ThreadCount: f.ThreadCount,
			PostCount:   f.PostCount,
		}
	}
	return resp
}
