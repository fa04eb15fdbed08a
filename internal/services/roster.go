package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtside/internal/domain"
)

// unresolvedAccountName is rendered for a participant with neither a Member
// record nor a denormalized account-name snapshot.
const unresolvedAccountName = "(unregistered)"

type rosterService struct {
	eventRepo      domain.EventRepository
	membershipRepo domain.MembershipRepository
	memberRepo     domain.MemberRepository
	policy         domain.RosterUnresolvedPolicy
	contextTimeout time.Duration
}

// NewRosterService creates a RosterService. policy controls whether
// memberships without a resolvable member are skipped or rendered with a
// placeholder.
func NewRosterService(
	eventRepo domain.EventRepository,
	membershipRepo domain.MembershipRepository,
	memberRepo domain.MemberRepository,
	policy domain.RosterUnresolvedPolicy,
	timeout time.Duration,
) domain.RosterService {
	return &rosterService{
		eventRepo:      eventRepo,
		membershipRepo: membershipRepo,
		memberRepo:     memberRepo,
		policy:         policy,
		contextTimeout: timeout,
	}
}

// Resolve joins the event's memberships against the members collection in one
// batched lookup: members are indexed by owning user id once, then each
// membership maps to a display entry. A membership whose member id resolves
// to nothing is an inconsistent registration; it is flagged, never fatal.
func (s *rosterService) Resolve(ctx context.Context, eventID string) (*domain.Roster, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	memberships, err := s.membershipRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	members, err := s.memberRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	byAuthorID := make(map[string]*domain.Member, len(members))
	for _, m := range members {
		byAuthorID[m.AuthorID] = m
	}

	roster := &domain.Roster{
		EventID:             eventID,
		Entries:             make([]*domain.RosterEntry, 0, len(memberships)),
		UnresolvedMemberIDs: []string{},
	}
	for _, ms := range memberships {
		member, ok := byAuthorID[ms.MemberID]
		if ok {
			roster.Entries = append(roster.Entries, &domain.RosterEntry{
				MemberID:    ms.MemberID,
				AccountName: member.AccountName,
				Resolved:    true,
			})
			continue
		}
		roster.UnresolvedMemberIDs = append(roster.UnresolvedMemberIDs, ms.MemberID)
		if s.policy == domain.RosterSkip {
			continue
		}
		name := ms.AccountName
		if name == "" {
			name = unresolvedAccountName
		}
		roster.Entries = append(roster.Entries, &domain.RosterEntry{
			MemberID:    ms.MemberID,
			AccountName: name,
			Resolved:    false,
		})
	}
	return roster, nil
}
