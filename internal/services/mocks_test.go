package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"courtside/internal/domain"
)

// In-memory fakes for the repository interfaces. They keep real state so
// tests can assert on what was (or was not) written.

type mockEventRepo struct {
	events map[string]*domain.Event
	nextID int

	addParticipantErr    error
	removeParticipantErr error
	removeCalls          int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*domain.Event)}
}

func (r *mockEventRepo) Create(_ context.Context, event *domain.Event) error {
	r.nextID++
	event.ID = fmt.Sprintf("event-%d", r.nextID)
	r.events[event.ID] = event
	return nil
}

func (r *mockEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return event, nil
}

func (r *mockEventRepo) List(_ context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev)
	}
	slices.SortFunc(out, func(a, b *domain.Event) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *mockEventRepo) Update(_ context.Context, eventID string, title, siteRegion *string, courtCount, capacity *int, courtSurface *string) (*domain.Event, error) {
	event, ok := r.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if title != nil {
		event.Title = *title
	}
	if siteRegion != nil {
		event.SiteRegion = *siteRegion
	}
	if courtCount != nil {
		event.CourtCount = *courtCount
	}
	if capacity != nil {
		event.Capacity = *capacity
	}
	if courtSurface != nil {
		event.CourtSurface = *courtSurface
	}
	return event, nil
}

func (r *mockEventRepo) AddParticipant(_ context.Context, eventID, userID string) error {
	if r.addParticipantErr != nil {
		return r.addParticipantErr
	}
	event, ok := r.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	if slices.Contains(event.Participants, userID) {
		return nil
	}
	event.Participants = append(event.Participants, userID)
	return nil
}

func (r *mockEventRepo) RemoveParticipant(_ context.Context, eventID, userID string) error {
	r.removeCalls++
	if r.removeParticipantErr != nil {
		return r.removeParticipantErr
	}
	event, ok := r.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	i := slices.Index(event.Participants, userID)
	if i < 0 {
		return domain.ErrNotFound
	}
	event.Participants = slices.Delete(event.Participants, i, i+1)
	return nil
}

func (r *mockEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

type mockMembershipRepo struct {
	memberships []*domain.Membership
	nextID      int

	// createHook, when set, runs before the normal Create logic; returning a
	// non-nil error fails the call.
	createHook  func() error
	createCalls int
}

func (r *mockMembershipRepo) Create(_ context.Context, m *domain.Membership) error {
	r.createCalls++
	if r.createHook != nil {
		if err := r.createHook(); err != nil {
			return err
		}
	}
	for _, existing := range r.memberships {
		if existing.EventID == m.EventID && existing.MemberID == m.MemberID {
			return domain.ErrAlreadyJoined
		}
	}
	r.nextID++
	m.ID = fmt.Sprintf("membership-%d", r.nextID)
	r.memberships = append(r.memberships, m)
	return nil
}

func (r *mockMembershipRepo) GetByEventAndMember(_ context.Context, eventID, memberID string) (*domain.Membership, error) {
	for _, m := range r.memberships {
		if m.EventID == eventID && m.MemberID == memberID {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *mockMembershipRepo) ListByEventID(_ context.Context, eventID string) ([]*domain.Membership, error) {
	var out []*domain.Membership
	for _, m := range r.memberships {
		if m.EventID == eventID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *mockMembershipRepo) ListAll(_ context.Context) ([]*domain.Membership, error) {
	return slices.Clone(r.memberships), nil
}

func (r *mockMembershipRepo) DeleteByEventAndMember(_ context.Context, eventID, memberID string) error {
	for i, m := range r.memberships {
		if m.EventID == eventID && m.MemberID == memberID {
			r.memberships = slices.Delete(r.memberships, i, i+1)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *mockMembershipRepo) DeleteByEventID(_ context.Context, eventID string) error {
	r.memberships = slices.DeleteFunc(r.memberships, func(m *domain.Membership) bool {
		return m.EventID == eventID
	})
	return nil
}

type mockMemberRepo struct {
	members map[string]*domain.Member // keyed by author id
	nextID  int
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[string]*domain.Member)}
}

func (r *mockMemberRepo) register(authorID, accountName string) *domain.Member {
	m := domain.NewMember(authorID, accountName, time.Now(), time.Now())
	r.nextID++
	m.ID = fmt.Sprintf("member-%d", r.nextID)
	r.members[authorID] = m
	return m
}

func (r *mockMemberRepo) Create(_ context.Context, member *domain.Member) error {
	if _, ok := r.members[member.AuthorID]; ok {
		return domain.ErrAlreadyRegistered
	}
	r.nextID++
	member.ID = fmt.Sprintf("member-%d", r.nextID)
	r.members[member.AuthorID] = member
	return nil
}

func (r *mockMemberRepo) GetByAuthorID(_ context.Context, authorID string) (*domain.Member, error) {
	member, ok := r.members[authorID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return member, nil
}

func (r *mockMemberRepo) ListAll(_ context.Context) ([]*domain.Member, error) {
	out := make([]*domain.Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	return out, nil
}

type mockUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (r *mockUserRepo) add(id, email string) *domain.User {
	u := domain.NewUser(email, "", "", "", time.Now(), time.Now())
	u.ID = id
	r.users[id] = u
	return u
}

func (r *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *mockUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

type mockEmailService struct {
	sent []*domain.JoinConfirmationEmailData
}

func (s *mockEmailService) SendJoinConfirmation(_ context.Context, data *domain.JoinConfirmationEmailData) error {
	s.sent = append(s.sent, data)
	return nil
}
