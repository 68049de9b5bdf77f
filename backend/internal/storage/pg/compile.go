package pg

import (
	"fmt"
	"strings"

	"github.com/Lombiq/NGM.Forum/backend/internal/content"
	"github.com/Lombiq/NGM.Forum/shared/domain"
)

type partTable struct {
	table string
	alias string
}

var partTables = map[content.Part]partTable{
	content.PartCommon:     {"common_parts", "cp"},
	content.PartAutoroute:  {"autoroute_parts", "ap"},
	content.PartModeration: {"moderation_parts", "mp"},
	content.PartTitle:      {"title_parts", "tp"},
	content.PartThread:     {"thread_parts", "thp"},
	content.PartForum:      {"forum_parts", "fp"},
}

// hydration order of the part joins; every SELECT reads all of them
var partOrder = []content.Part{
	content.PartCommon,
	content.PartAutoroute,
	content.PartModeration,
	content.PartTitle,
	content.PartThread,
	content.PartForum,
}

const itemColumns = `
	i.id, i.content_type, v.number, v.published, v.latest,
	cp.version_id IS NOT NULL, cp.container_id, COALESCE(cp.owner, ''),
	COALESCE(cp.created_utc, 'epoch'), COALESCE(cp.modified_utc, 'epoch'), cp.published_utc,
	ap.display_alias,
	mp.approved,
	tp.title,
	thp.version_id IS NOT NULL, COALESCE(thp.is_sticky, FALSE), COALESCE(thp.is_closed, FALSE), COALESCE(thp.reply_count, 0),
	fp.version_id IS NOT NULL, COALESCE(fp.description, ''), COALESCE(fp.thread_count, 0), COALESCE(fp.post_count, 0)`

// statement accumulates SQL text and its positional arguments.
type statement struct {
	sb   strings.Builder
	args []any
}

func (s *statement) arg(v any) string {
	s.args = append(s.args, v)
	return fmt.Sprintf("$%d", len(s.args))
}

func (s *statement) write(parts ...string) {
	for _, p := range parts {
		s.sb.WriteString(p)
	}
}

func (s *statement) String() string {
	return s.sb.String()
}

// from writes the FROM clause. Parts the query joins become inner joins so
// items without them drop out; the rest are left joins for hydration only.
func (s *statement) from(joined func(content.Part) bool) {
	s.write(" FROM content_items i JOIN content_item_versions v ON v.content_item_id = i.id")
	for _, part := range partOrder {
		t := partTables[part]
		kind := " LEFT JOIN "
		if joined(part) {
			kind = " JOIN "
		}
		s.write(kind, t.table, " ", t.alias, " ON ", t.alias, ".version_id = v.id")
	}
}

func (s *statement) versionFilter(version domain.VersionOptions) error {
	switch version.Kind {
	case domain.VersionPublished:
		s.write("v.published")
	case domain.VersionLatest:
		s.write("v.latest")
	case domain.VersionDraft:
		s.write("v.latest AND NOT v.published")
	case domain.VersionAll:
		s.write("TRUE")
	case domain.VersionNumbered:
		s.write("v.number = ", s.arg(version.Number))
	default:
		return fmt.Errorf("unsupported version kind %d", version.Kind)
	}
	return nil
}

func column(part content.Part, field content.Field) (string, error) {
	t, ok := partTables[part]
	if !ok {
		return "", fmt.Errorf("no table for part %q", part)
	}
	return t.alias + "." + string(field), nil
}

func (s *statement) where(q content.Query) error {
	s.write(" WHERE i.content_type = ", s.arg(q.ContentType), " AND ")
	if err := s.versionFilter(q.Version); err != nil {
		return err
	}
	for _, p := range q.Filters {
		col, err := column(p.Part, p.Field)
		if err != nil {
			return err
		}
		switch p.Op {
		case content.OpEq:
			s.write(" AND ", col, " = ", s.arg(p.Value))
		case content.OpEndsWith:
			// suffix match as a prefix match on the reversed column,
			// which the reverse(display_alias) index can serve
			pattern := escapeLike(reverse(p.Value.(string))) + "%"
			s.write(" AND reverse(", col, ") LIKE ", s.arg(pattern), ` ESCAPE '\'`)
		default:
			return fmt.Errorf("unsupported predicate op %d", p.Op)
		}
	}
	return nil
}

func (s *statement) orderBy(q content.Query) error {
	s.write(" ORDER BY ")
	for _, o := range q.Orders {
		col, err := column(o.Part, o.Field)
		if err != nil {
			return err
		}
		// NULLs sort as the lowest value either way
		if o.Descending {
			s.write(col, " DESC NULLS LAST, ")
		} else {
			s.write(col, " ASC NULLS FIRST, ")
		}
	}
	s.write("i.id ASC, v.number ASC")
	return nil
}

// compileSelect builds the listing statement. A negative count means no limit.
func compileSelect(q content.Query, skip, count int) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}
	var s statement
	s.write("SELECT", itemColumns)
	s.from(q.Joined)
	if err := s.where(q); err != nil {
		return "", nil, err
	}
	if err := s.orderBy(q); err != nil {
		return "", nil, err
	}
	if count >= 0 {
		s.write(" LIMIT ", s.arg(count))
	}
	if skip > 0 {
		s.write(" OFFSET ", s.arg(skip))
	}
	return s.String(), s.args, nil
}

func compileCount(q content.Query) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}
	var s statement
	s.write("SELECT COUNT(*)")
	s.from(q.Joined)
	if err := s.where(q); err != nil {
		return "", nil, err
	}
	return s.String(), s.args, nil
}

// compileGet fetches one item by id. For AllVersions it behaves like Latest.
func compileGet(id domain.ContentItemId, version domain.VersionOptions) (string, []any, error) {
	if err := version.Validate(); err != nil {
		return "", nil, err
	}
	if version.Kind == domain.VersionAll {
		version = domain.Latest
	}
	var s statement
	s.write("SELECT", itemColumns)
	s.from(func(content.Part) bool { return false })
	s.write(" WHERE i.id = ", s.arg(id), " AND ")
	if err := s.versionFilter(version); err != nil {
		return "", nil, err
	}
	s.write(" ORDER BY v.number DESC LIMIT 1")
	return s.String(), s.args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
