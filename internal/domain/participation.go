package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when an operation requiring an
// authenticated user is invoked without one. Callers should redirect to login.
var ErrNotAuthenticated = errors.New("not authenticated")

// PartialWriteError reports a join whose participant-set union succeeded but
// whose membership insert kept failing and could not be compensated. The two
// collections are inconsistent until reconciled; this must be surfaced
// distinctly from a clean failure.
type PartialWriteError struct {
	EventID     string
	MemberID    string
	Err         error // the membership insert failure
	RollbackErr error // nil if the compensating removal succeeded
}

func (e *PartialWriteError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("partial write on event %s for member %s: %v (rollback failed: %v)", e.EventID, e.MemberID, e.Err, e.RollbackErr)
	}
	return fmt.Sprintf("partial write on event %s for member %s: %v", e.EventID, e.MemberID, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// BuildParticipation derives the participation map (event id -> whether
// currentUserID has joined) from a membership snapshot. It is a pure function
// of its inputs: order-independent, repeatable, and tolerant of an empty or
// not-yet-loaded snapshot. An empty currentUserID yields an empty map.
func BuildParticipation(memberships []*Membership, currentUserID string) map[string]bool {
	participation := make(map[string]bool)
	if currentUserID == "" {
		return participation
	}
	for _, m := range memberships {
		if m.MemberID == currentUserID {
			participation[m.EventID] = true
		}
	}
	return participation
}

// CountParticipants derives per-event participant counts from a membership
// snapshot, independent of any particular user. Events with no memberships
// are simply absent from the map.
func CountParticipants(memberships []*Membership) map[string]int {
	counts := make(map[string]int)
	for _, m := range memberships {
		counts[m.EventID]++
	}
	return counts
}

// ParticipationService orchestrates the join/cancel workflow and assembles
// the derived participation view. currentUserID may be empty for anonymous
// reads; it must never be empty for Join or Cancel.
type ParticipationService interface {
	// ListEvents returns all events annotated with participant counts and,
	// when currentUserID is set, whether that user is participating.
	ListEvents(ctx context.Context, currentUserID string) ([]*EventWithParticipation, error)
	// Join registers the user for the event. Returns (membership, created,
	// err): created is false when the user had already joined (idempotent).
	Join(ctx context.Context, eventID, userID string) (*Membership, bool, error)
	// Cancel removes the user's membership and participant-set entry.
	Cancel(ctx context.Context, eventID, userID string) error
}
