package domain

import (
	"fmt"
	"strings"
)

// ModerationOptions is the approval filter applied to listings.
type ModerationOptions int

const (
	ModerationAll ModerationOptions = iota
	ModerationApproved
	ModerationNotApproved
)

// IsApproved returns the approval state the filter selects.
// Meaningless for ModerationAll.
func (m ModerationOptions) IsApproved() bool {
	return m == ModerationApproved
}

func (m ModerationOptions) String() string {
	switch m {
	case ModerationAll:
		return "all"
	case ModerationApproved:
		return "approved"
	case ModerationNotApproved:
		return "not_approved"
	default:
		return fmt.Sprintf("ModerationOptions(%d)", int(m))
	}
}

func ParseModerationOptions(s string) (ModerationOptions, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ModerationAll, nil
	case "approved":
		return ModerationApproved, nil
	case "not_approved", "unapproved":
		return ModerationNotApproved, nil
	default:
		return ModerationAll, fmt.Errorf("unknown moderation option %q", s)
	}
}
