package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"courtside/internal/domain"
)

type memberService struct {
	memberRepo     domain.MemberRepository
	contextTimeout time.Duration
}

func NewMemberService(memberRepo domain.MemberRepository, timeout time.Duration) domain.MemberService {
	return &memberService{
		memberRepo:     memberRepo,
		contextTimeout: timeout,
	}
}

func (s *memberService) Register(ctx context.Context, authorID, accountName string) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if authorID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	accountName = strings.TrimSpace(accountName)
	if accountName == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	member := domain.NewMember(authorID, accountName, now, now)
	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create member: %w", err)
	}
	return member, nil
}

func (s *memberService) GetByAuthorID(ctx context.Context, authorID string) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if authorID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	member, err := s.memberRepo.GetByAuthorID(ctx, authorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotRegistered
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}
