package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyJoined is returned by MembershipRepository.Create when a
// membership for the same (event, member) pair already exists.
var ErrAlreadyJoined = errors.New("already joined")

// Membership links one member to one event they have joined. AccountName is a
// denormalized snapshot of the member's account name at join time. Memberships
// are created exactly once per (event, member) pair and never updated.
// swagger:model Membership
type Membership struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	MemberID    string    `json:"member_id"`
	AccountName string    `json:"account_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewMembership returns a new Membership. ID is typically set by the repository on create.
func NewMembership(eventID, memberID, accountName string, createdAt time.Time) *Membership {
	return &Membership{
		EventID:     eventID,
		MemberID:    memberID,
		AccountName: accountName,
		CreatedAt:   createdAt,
	}
}

// MembershipRepository defines storage operations for event memberships.
type MembershipRepository interface {
	Create(ctx context.Context, m *Membership) error
	GetByEventAndMember(ctx context.Context, eventID, memberID string) (*Membership, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Membership, error)
	ListAll(ctx context.Context) ([]*Membership, error)
	DeleteByEventAndMember(ctx context.Context, eventID, memberID string) error
	DeleteByEventID(ctx context.Context, eventID string) error
}
