package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowchartsman/retry"

	"courtside/internal/domain"
)

type participationService struct {
	eventRepo      domain.EventRepository
	membershipRepo domain.MembershipRepository
	memberRepo     domain.MemberRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewParticipationService creates a ParticipationService with the given
// repositories. emailService may be nil to disable join confirmations.
func NewParticipationService(
	eventRepo domain.EventRepository,
	membershipRepo domain.MembershipRepository,
	memberRepo domain.MemberRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.ParticipationService {
	return &participationService{
		eventRepo:      eventRepo,
		membershipRepo: membershipRepo,
		memberRepo:     memberRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *participationService) ListEvents(ctx context.Context, currentUserID string) ([]*domain.EventWithParticipation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	memberships, err := s.membershipRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	participation := domain.BuildParticipation(memberships, currentUserID)
	counts := domain.CountParticipants(memberships)

	result := make([]*domain.EventWithParticipation, 0, len(events))
	for _, ev := range events {
		result = append(result, &domain.EventWithParticipation{
			Event:            ev,
			ParticipantCount: counts[ev.ID],
			IsParticipating:  participation[ev.ID],
		})
	}
	return result, nil
}

// Join runs the join workflow. Preconditions, in order: an authenticated
// user, a registered member, an existing event, no prior membership. On
// success it unions the user into the event's participant set and creates
// exactly one membership record. The membership insert is retried before
// giving up; if it never lands, the participant-set entry is removed again so
// the two collections stay consistent.
func (s *participationService) Join(ctx context.Context, eventID, userID string) (*domain.Membership, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return nil, false, domain.ErrNotAuthenticated
	}

	member, err := s.memberRepo.GetByAuthorID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotRegistered
		}
		return nil, false, fmt.Errorf("get member: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}

	// Check prior participation; make the join idempotent.
	if existing, err := s.membershipRepo.GetByEventAndMember(ctx, eventID, userID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get membership: %w", err)
	}

	if err := s.eventRepo.AddParticipant(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("add participant: %w", err)
	}

	m := domain.NewMembership(eventID, userID, member.AccountName, time.Now())
	retrier := retry.NewRetrier(3, 100*time.Millisecond, time.Second)
	err = retrier.RunContext(ctx, func(ctx context.Context) error {
		if err := s.membershipRepo.Create(ctx, m); err != nil {
			if errors.Is(err, domain.ErrAlreadyJoined) {
				return retry.Stop(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyJoined) {
			// Lost a race with a concurrent join by the same user; the
			// winner's record is the membership.
			existing, getErr := s.membershipRepo.GetByEventAndMember(ctx, eventID, userID)
			if getErr != nil {
				return nil, false, fmt.Errorf("get membership after race: %w", getErr)
			}
			return existing, false, nil
		}
		// The participant-set union already landed; compensate so the event
		// does not show a participant with no membership record.
		if rbErr := s.eventRepo.RemoveParticipant(ctx, eventID, userID); rbErr != nil && !errors.Is(rbErr, domain.ErrNotFound) {
			return nil, false, &domain.PartialWriteError{
				EventID:     eventID,
				MemberID:    userID,
				Err:         err,
				RollbackErr: rbErr,
			}
		}
		return nil, false, fmt.Errorf("create membership: %w", err)
	}

	// Confirmation email is best effort; the email service logs failures.
	if s.emailService != nil {
		if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
			_ = s.emailService.SendJoinConfirmation(ctx, &domain.JoinConfirmationEmailData{
				Email:       user.Email,
				AccountName: member.AccountName,
				EventTitle:  event.Title,
				SiteRegion:  event.SiteRegion,
			})
		}
	}

	return m, true, nil
}

func (s *participationService) Cancel(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return domain.ErrNotAuthenticated
	}

	if err := s.membershipRepo.DeleteByEventAndMember(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete membership: %w", err)
	}

	// Membership is gone; a failure here leaves the participant set stale.
	if err := s.eventRepo.RemoveParticipant(ctx, eventID, userID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return &domain.PartialWriteError{
			EventID:  eventID,
			MemberID: userID,
			Err:      err,
		}
	}
	return nil
}
