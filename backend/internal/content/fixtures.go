package content

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Lombiq/NGM.Forum/shared/domain"
	"gopkg.in/yaml.v2"
)

// Fixture is the YAML form of one content item version.
type Fixture struct {
	Id        domain.ContentItemId `yaml:"id"`
	Type      domain.ContentType   `yaml:"type"`
	Version   domain.VersionNumber `yaml:"version"`
	Published bool                 `yaml:"published"`
	Latest    bool                 `yaml:"latest"`

	Container *domain.ContentItemId `yaml:"container"`
	Owner     string                `yaml:"owner"`
	Created   string                `yaml:"created"` // RFC 3339
	Title     *string               `yaml:"title"`
	Alias     *string               `yaml:"alias"`
	Approved  *bool                 `yaml:"approved"`

	Thread *struct {
		Sticky  bool `yaml:"sticky"`
		Closed  bool `yaml:"closed"`
		Replies int  `yaml:"replies"`
	} `yaml:"thread"`
	Forum *struct {
		Description string `yaml:"description"`
	} `yaml:"forum"`
}

type fixtureFile struct {
	Items []Fixture `yaml:"items"`
}

// Writer stores content item versions. Both stores implement it so
// fixtures can seed either of them.
type Writer interface {
	Put(ctx context.Context, item domain.ContentItem) error
}

// ReadFixtures parses a YAML fixture file.
func ReadFixtures(path string) ([]domain.ContentItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return ParseFixtures(raw)
}

func ParseFixtures(raw []byte) ([]domain.ContentItem, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	items := make([]domain.ContentItem, 0, len(file.Items))
	for i, f := range file.Items {
		item, err := f.Item()
		if err != nil {
			return nil, fmt.Errorf("fixture #%d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Seed writes items in order, stopping at the first failure.
func Seed(ctx context.Context, w Writer, items []domain.ContentItem) error {
	for _, item := range items {
		if err := w.Put(ctx, item); err != nil {
			return fmt.Errorf("failed to seed item %d v%d: %w", item.Id, item.Version.Number, err)
		}
	}
	return nil
}

// Item converts the fixture into a content item. Version defaults to 1.
func (f Fixture) Item() (domain.ContentItem, error) {
	item := domain.ContentItem{
		Id:          f.Id,
		ContentType: f.Type,
		Version: domain.VersionInfo{
			Number:    max(f.Version, 1),
			Published: f.Published,
			Latest:    f.Latest,
		},
	}
	created := time.Time{}
	if f.Created != "" {
		var err error
		if created, err = time.Parse(time.RFC3339, f.Created); err != nil {
			return domain.ContentItem{}, fmt.Errorf("bad created timestamp %q: %w", f.Created, err)
		}
	}
	item.Common = &domain.CommonPart{
		Container:   f.Container,
		Owner:       f.Owner,
		CreatedUtc:  created.UTC(),
		ModifiedUtc: created.UTC(),
	}
	if f.Title != nil {
		item.Title = &domain.TitlePart{Title: *f.Title}
	}
	if f.Alias != nil {
		item.Autoroute = &domain.AutoroutePart{DisplayAlias: *f.Alias}
	}
	if f.Approved != nil {
		item.Moderation = &domain.ModerationPart{Approved: *f.Approved}
	}
	if f.Thread != nil {
		item.Thread = &domain.ThreadPart{IsSticky: f.Thread.Sticky, IsClosed: f.Thread.Closed, ReplyCount: f.Thread.Replies}
	}
	if f.Forum != nil {
		item.Forum = &domain.ForumPart{Description: f.Forum.Description}
	}
	return item, nil
}
