package domain

import "context"

// RosterUnresolvedPolicy controls how the roster resolver renders a
// membership whose member id has no matching Member record (an inconsistent
// registration).
type RosterUnresolvedPolicy string

const (
	// RosterPlaceholder keeps the entry, using the membership's denormalized
	// account-name snapshot or a fixed placeholder when the snapshot is empty.
	RosterPlaceholder RosterUnresolvedPolicy = "placeholder"
	// RosterSkip drops the entry from the roster.
	RosterSkip RosterUnresolvedPolicy = "skip"
)

// RosterEntry is one display-ready participant of an event. MemberID routes
// cancel actions back to the (event, member) pair; Resolved is false when the
// participant has no Member record.
type RosterEntry struct {
	MemberID    string `json:"member_id"`
	AccountName string `json:"account_name"`
	Resolved    bool   `json:"resolved"`
}

// Roster is the resolved participant list for one event. UnresolvedMemberIDs
// lists participants with a membership but no Member record so callers can
// surface a registration notice without aborting the render.
type Roster struct {
	EventID             string         `json:"event_id"`
	Entries             []*RosterEntry `json:"entries"`
	UnresolvedMemberIDs []string       `json:"unresolved_member_ids"`
}

// RosterService resolves event memberships into display-ready rosters.
type RosterService interface {
	Resolve(ctx context.Context, eventID string) (*Roster, error)
}
