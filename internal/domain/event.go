package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared across repositories and services.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Event represents a schedulable court event that members can join.
// Participants is the denormalized participant set stored on the event record
// itself; it grows via set-union only, duplicates collapse.
// swagger:model Event
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	SiteRegion   string    `json:"site_region"`
	CourtCount   int       `json:"court_count"`
	Capacity     int       `json:"capacity"`
	CourtSurface string    `json:"court_surface"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title, siteRegion string, courtCount, capacity int, courtSurface string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:        title,
		SiteRegion:   siteRegion,
		CourtCount:   courtCount,
		Capacity:     capacity,
		CourtSurface: courtSurface,
		Participants: []string{},
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, eventID string, title, siteRegion *string, courtCount, capacity *int, courtSurface *string) (*Event, error)
	// AddParticipant adds userID to the event's participant set with union
	// semantics: adding an id already present is a no-op, not an error.
	AddParticipant(ctx context.Context, eventID, userID string) error
	RemoveParticipant(ctx context.Context, eventID, userID string) error
	Delete(ctx context.Context, id string) error
}

// EventWithParticipation is an event annotated with the derived view state
// for the requesting user.
type EventWithParticipation struct {
	Event            *Event `json:"event"`
	ParticipantCount int    `json:"participant_count"`
	IsParticipating  bool   `json:"is_participating"`
}

// EventService defines event management operations. Mutating operations
// require a registered member; callerID is the authenticated user id.
type EventService interface {
	CreateEvent(ctx context.Context, callerID string, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
	UpdateEvent(ctx context.Context, callerID, eventID string, title, siteRegion *string, courtCount, capacity *int, courtSurface *string) (*Event, error)
	// DeleteEvent removes the event and its memberships so no orphaned
	// membership records are left behind.
	DeleteEvent(ctx context.Context, callerID, eventID string) error
}
