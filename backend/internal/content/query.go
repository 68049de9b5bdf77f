// Package content defines the generic content store contract: an explicit
// query specification built fluently and the Store interface that executes it.
package content

import (
	"fmt"

	"github.com/Lombiq/NGM.Forum/shared/domain"
)

// Part names a record set attached to content items.
type Part string

const (
	PartCommon     Part = "common"
	PartAutoroute  Part = "autoroute"
	PartModeration Part = "moderation"
	PartTitle      Part = "title"
	PartThread     Part = "thread"
	PartForum      Part = "forum"
)

// Field is a column of a part record.
type Field string

const (
	FieldContainer    Field = "container_id"
	FieldCreatedUtc   Field = "created_utc"
	FieldDisplayAlias Field = "display_alias"
	FieldApproved     Field = "approved"
	FieldIsSticky     Field = "is_sticky"
	FieldTitle        Field = "title"
)

// fields lists the columns each part exposes to filters and sort keys.
var fields = map[Part][]Field{
	PartCommon:     {FieldContainer, FieldCreatedUtc},
	PartAutoroute:  {FieldDisplayAlias},
	PartModeration: {FieldApproved},
	PartTitle:      {FieldTitle},
	PartThread:     {FieldIsSticky},
	PartForum:      {},
}

func (p Part) hasField(f Field) bool {
	for _, known := range fields[p] {
		if known == f {
			return true
		}
	}
	return false
}

type Op int

const (
	OpEq Op = iota
	OpEndsWith
)

type Predicate struct {
	Part  Part
	Field Field
	Op    Op
	Value any
}

func Eq(field Field, value any) Predicate {
	return Predicate{Field: field, Op: OpEq, Value: value}
}

func EndsWith(field Field, suffix string) Predicate {
	return Predicate{Field: field, Op: OpEndsWith, Value: suffix}
}

type Order struct {
	Part       Part
	Field      Field
	Descending bool
}

// Query is an immutable query specification over one content type.
// Every builder method returns a modified copy.
type Query struct {
	Version     domain.VersionOptions
	ContentType domain.ContentType
	Joins       []Part
	Filters     []Predicate
	Orders      []Order
	Projection  Part

	current Part
	err     error
}

func NewQuery(version domain.VersionOptions, contentType domain.ContentType) Query {
	return Query{Version: version, ContentType: contentType}
}

func (q Query) clone() Query {
	q.Joins = append([]Part(nil), q.Joins...)
	q.Filters = append([]Predicate(nil), q.Filters...)
	q.Orders = append([]Order(nil), q.Orders...)
	return q
}

// Join requires items to carry part and makes it the target of the
// following Where and OrderBy calls.
func (q Query) Join(part Part) Query {
	q = q.clone()
	if _, ok := fields[part]; !ok && q.err == nil {
		q.err = fmt.Errorf("unknown part %q", part)
	}
	if !q.Joined(part) {
		q.Joins = append(q.Joins, part)
	}
	q.current = part
	return q
}

func (q Query) Where(p Predicate) Query {
	q = q.clone()
	p.Part = q.current
	q.setErr(q.checkField(p.Part, p.Field))
	if p.Op == OpEndsWith {
		if _, ok := p.Value.(string); !ok {
			q.setErr(fmt.Errorf("suffix match on %s.%s needs a string, got %T", p.Part, p.Field, p.Value))
		}
	}
	q.Filters = append(q.Filters, p)
	return q
}

func (q Query) OrderBy(field Field) Query {
	return q.order(field, false)
}

func (q Query) OrderByDescending(field Field) Query {
	return q.order(field, true)
}

func (q Query) order(field Field, desc bool) Query {
	q = q.clone()
	q.setErr(q.checkField(q.current, field))
	q.Orders = append(q.Orders, Order{Part: q.current, Field: field, Descending: desc})
	return q
}

// ForPart restricts results to items carrying part, the typed view the
// caller is going to project them into.
func (q Query) ForPart(part Part) Query {
	q = q.Join(part)
	q.Projection = part
	return q
}

func (q Query) Joined(part Part) bool {
	for _, p := range q.Joins {
		if p == part {
			return true
		}
	}
	return false
}

func (q *Query) setErr(err error) {
	if q.err == nil {
		q.err = err
	}
}

func (q Query) checkField(part Part, field Field) error {
	if part == "" {
		return fmt.Errorf("field %q used before any Join", field)
	}
	if !part.hasField(field) {
		return fmt.Errorf("part %q has no field %q", part, field)
	}
	return nil
}

// Validate reports the first construction error, if any.
func (q Query) Validate() error {
	if q.err != nil {
		return q.err
	}
	if q.ContentType == "" {
		return fmt.Errorf("query has no content type")
	}
	return q.Version.Validate()
}
