package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"courtside/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	membershipRepo domain.MembershipRepository
	memberRepo     domain.MemberRepository
	contextTimeout time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	membershipRepo domain.MembershipRepository,
	memberRepo domain.MemberRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		membershipRepo: membershipRepo,
		memberRepo:     memberRepo,
		contextTimeout: timeout,
	}
}

// requireMember enforces the registration precondition on mutating event
// operations: the caller must be authenticated and have a Member record.
func (s *eventService) requireMember(ctx context.Context, callerID string) error {
	if callerID == "" {
		return domain.ErrNotAuthenticated
	}
	if _, err := s.memberRepo.GetByAuthorID(ctx, callerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotRegistered
		}
		return fmt.Errorf("get member: %w", err)
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, callerID string, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireMember(ctx, callerID); err != nil {
		return err
	}

	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return domain.ErrInvalidInput
	}
	if event.CourtCount < 1 || event.Capacity < 1 {
		return domain.ErrInvalidInput
	}
	if event.Participants == nil {
		event.Participants = []string{}
	}

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, callerID, eventID string, title, siteRegion *string, courtCount, capacity *int, courtSurface *string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireMember(ctx, callerID); err != nil {
		return nil, err
	}
	if title != nil && strings.TrimSpace(*title) == "" {
		return nil, domain.ErrInvalidInput
	}
	if courtCount != nil && *courtCount < 1 {
		return nil, domain.ErrInvalidInput
	}
	if capacity != nil && *capacity < 1 {
		return nil, domain.ErrInvalidInput
	}

	updated, err := s.eventRepo.Update(ctx, eventID, title, siteRegion, courtCount, capacity, courtSurface)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

// DeleteEvent removes the event's memberships before the event itself so a
// delete never leaves orphaned membership records behind.
func (s *eventService) DeleteEvent(ctx context.Context, callerID, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireMember(ctx, callerID); err != nil {
		return err
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	if err := s.membershipRepo.DeleteByEventID(ctx, eventID); err != nil {
		return fmt.Errorf("delete event memberships: %w", err)
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
