package domain

type Forum struct {
	Id          ContentItemId
	Title       ForumTitle
	Alias       DisplayAlias
	Description string
	Version     VersionInfo
}

func ForumFromItem(item ContentItem) (forum Forum, ok bool) {
	if item.Forum == nil {
		return Forum{}, false
	}
	forum = Forum{
		Id:          item.Id,
		Description: item.Forum.Description,
		Version:     item.Version,
	}
	if item.Title != nil {
		forum.Title = item.Title.Title
	}
	if item.Autoroute != nil {
		forum.Alias = item.Autoroute.DisplayAlias
	}
	return forum, true
}
