package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courtside/internal/delivery/http/middleware"
	"courtside/internal/domain"
)

type mockMemberService struct {
	member      *domain.Member
	registerErr error
	getErr      error
}

func (m *mockMemberService) Register(ctx context.Context, authorID, accountName string) (*domain.Member, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return m.member, nil
}

func (m *mockMemberService) GetByAuthorID(ctx context.Context, authorID string) (*domain.Member, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.member, nil
}

func TestMemberController_Register(t *testing.T) {
	svc := &mockMemberService{member: &domain.Member{ID: "m1", AuthorID: "u1", AccountName: "Alice"}}
	ctrl := NewMemberController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/members", strings.NewReader(`{"account_name":"Alice"}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))

	w := httptest.NewRecorder()
	ctrl.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
}

func TestMemberController_Register_AlreadyRegistered(t *testing.T) {
	svc := &mockMemberService{registerErr: domain.ErrAlreadyRegistered}
	ctrl := NewMemberController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/members", strings.NewReader(`{"account_name":"Alice"}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))

	w := httptest.NewRecorder()
	ctrl.Register(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestMemberController_Register_BlankName(t *testing.T) {
	ctrl := NewMemberController(testLogger(), &mockMemberService{})

	req := httptest.NewRequest(http.MethodPost, "/members", strings.NewReader(`{"account_name":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))

	w := httptest.NewRecorder()
	ctrl.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestMemberController_Me(t *testing.T) {
	svc := &mockMemberService{member: &domain.Member{ID: "m1", AuthorID: "u1", AccountName: "Alice"}}
	ctrl := NewMemberController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/members/me", nil)
	req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))

	w := httptest.NewRecorder()
	ctrl.Me(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestMemberController_Me_NotRegistered(t *testing.T) {
	svc := &mockMemberService{getErr: domain.ErrNotRegistered}
	ctrl := NewMemberController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/members/me", nil)
	req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))

	w := httptest.NewRecorder()
	ctrl.Me(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestMemberController_Me_Unauthorized(t *testing.T) {
	ctrl := NewMemberController(testLogger(), &mockMemberService{})

	req := httptest.NewRequest(http.MethodGet, "/members/me", nil)
	w := httptest.NewRecorder()
	ctrl.Me(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
