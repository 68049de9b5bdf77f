package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type VersionKind int

const (
	VersionPublished VersionKind = iota
	VersionLatest
	VersionDraft
	VersionAll
	VersionNumbered
)

// VersionOptions selects which revision of a content item to operate on.
// The zero value selects the published version.
type VersionOptions struct {
	Kind   VersionKind
	Number VersionNumber // only for VersionNumbered
}

var (
	Published   = VersionOptions{Kind: VersionPublished}
	Latest      = VersionOptions{Kind: VersionLatest}
	Draft       = VersionOptions{Kind: VersionDraft}
	AllVersions = VersionOptions{Kind: VersionAll}
)

func Number(n VersionNumber) VersionOptions {
	return VersionOptions{Kind: VersionNumbered, Number: n}
}

func (v VersionOptions) Validate() error {
	switch v.Kind {
	case VersionPublished, VersionLatest, VersionDraft, VersionAll:
		return nil
	case VersionNumbered:
		if v.Number < 1 {
			return fmt.Errorf("invalid version number %d", v.Number)
		}
		return nil
	default:
		return fmt.Errorf("unknown version kind %d", v.Kind)
	}
}

// Matches reports whether a stored version satisfies the selector.
func (v VersionOptions) Matches(info VersionInfo) bool {
	switch v.Kind {
	case VersionPublished:
		return info.Published
	case VersionLatest:
		return info.Latest
	case VersionDraft:
		return info.Latest && !info.Published
	case VersionAll:
		return true
	case VersionNumbered:
		return info.Number == v.Number
	default:
		return false
	}
}

func (v VersionOptions) String() string {
	switch v.Kind {
	case VersionPublished:
		return "published"
	case VersionLatest:
		return "latest"
	case VersionDraft:
		return "draft"
	case VersionAll:
		return "all"
	case VersionNumbered:
		return strconv.Itoa(v.Number)
	default:
		return fmt.Sprintf("VersionKind(%d)", v.Kind)
	}
}

// ParseVersionOptions accepts published, latest, draft, all or a version number.
// Empty input selects the published version.
func ParseVersionOptions(s string) (VersionOptions, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "published":
		return Published, nil
	case "latest":
		return Latest, nil
	case "draft":
		return Draft, nil
	case "all":
		return AllVersions, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return VersionOptions{}, fmt.Errorf("unknown version %q", s)
	}
	v := Number(n)
	if err := v.Validate(); err != nil {
		return VersionOptions{}, err
	}
	return v, nil
}
