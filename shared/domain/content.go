package domain

import (
	"time"
)

// VersionInfo describes which revision of a content item a record holds.
type VersionInfo struct {
	Number    VersionNumber
	Published bool
	Latest    bool
}

// ContentItem is one version of a generic content record with the parts
// attached to that version. A nil part means the item does not carry it.
type ContentItem struct {
	Id          ContentItemId
	ContentType ContentType
	Version     VersionInfo

	Common     *CommonPart
	Autoroute  *AutoroutePart
	Moderation *ModerationPart
	Title      *TitlePart
	Thread     *ThreadPart
	Forum      *ForumPart
}

type CommonPart struct {
	Container    *ContentItemId
	Owner        string
	CreatedUtc   time.Time
	ModifiedUtc  time.Time
	PublishedUtc *time.Time
}

type AutoroutePart struct {
	DisplayAlias DisplayAlias
}

type ModerationPart struct {
	Approved bool
}

type TitlePart struct {
	Title string
}

type ThreadPart struct {
	IsSticky   bool
	IsClosed   bool
	ReplyCount int
}

type ForumPart struct {
	Description string
	ThreadCount int
	PostCount   int
}

// ContainedIn reports whether the item's common part points at container.
func (c ContentItem) ContainedIn(container ContentItemId) bool {
	return c.Common != nil && c.Common.Container != nil && *c.Common.Container == container
}
