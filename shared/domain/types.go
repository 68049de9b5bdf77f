package domain

type (
	ContentItemId = int64
	VersionNumber = int
	ContentType   = string

	DisplayAlias = string
	Slug         = string
	ThreadTitle  = string
	ForumTitle   = string
)
