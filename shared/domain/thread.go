package domain

import (
	"time"
)

type Thread struct {
	Id         ContentItemId
	Title      ThreadTitle
	Alias      DisplayAlias
	Forum      ContentItemId
	IsSticky   bool
	IsClosed   bool
	Approved   bool
	ReplyCount int
	CreatedUtc time.Time
	Version    VersionInfo
}

// ThreadFromItem projects a content item onto its thread view.
// ok is false when the item carries no ThreadPart.
func ThreadFromItem(item ContentItem) (thread Thread, ok bool) {
	if item.Thread == nil {
		return Thread{}, false
	}
	thread = Thread{
		Id:         item.Id,
		IsSticky:   item.Thread.IsSticky,
		IsClosed:   item.Thread.IsClosed,
		ReplyCount: item.Thread.ReplyCount,
		Version:    item.Version,
		// items without a moderation part were never held back
		Approved: item.Moderation == nil || item.Moderation.Approved,
	}
	if item.Title != nil {
		thread.Title = item.Title.Title
	}
	if item.Autoroute != nil {
		thread.Alias = item.Autoroute.DisplayAlias
	}
	if item.Common != nil {
		thread.CreatedUtc = item.Common.CreatedUtc
		if item.Common.Container != nil {
			thread.Forum = *item.Common.Container
		}
	}
	return thread, true
}
