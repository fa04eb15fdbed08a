package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for member registration preconditions.
var (
	// ErrNotRegistered is returned when an authenticated user has no Member
	// record. Callers should redirect the user to registration.
	ErrNotRegistered = errors.New("member not registered")
	// ErrAlreadyRegistered is returned when a user already has a Member record.
	ErrAlreadyRegistered = errors.New("member already registered")
)

// Member is a registered profile (account name) for an authenticated user.
// AuthorID is the owning user's id; joining events requires a Member record.
// swagger:model Member
type Member struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	AccountName string    `json:"account_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewMember returns a new Member. ID is typically set by the repository on create.
func NewMember(authorID, accountName string, createdAt, updatedAt time.Time) *Member {
	return &Member{
		AuthorID:    authorID,
		AccountName: accountName,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// MemberRepository defines the interface for member storage.
type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	GetByAuthorID(ctx context.Context, authorID string) (*Member, error)
	ListAll(ctx context.Context) ([]*Member, error)
}

// MemberService defines the business logic for member registration.
type MemberService interface {
	Register(ctx context.Context, authorID, accountName string) (*Member, error)
	GetByAuthorID(ctx context.Context, authorID string) (*Member, error)
}
