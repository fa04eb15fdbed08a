package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"courtside/internal/domain"
)

// uniqueViolation is the postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type membershipRepository struct {
	DB *sql.DB
}

func NewMembershipRepository(db *sql.DB) domain.MembershipRepository {
	return &membershipRepository{
		DB: db,
	}
}

// Create inserts the membership. The event_memberships table has a unique
// constraint on (event_id, member_id); a violation maps to ErrAlreadyJoined
// so a lost join race surfaces as the idempotent case, not a failure.
func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `
		INSERT INTO event_memberships (event_id, member_id, account_name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, m.EventID, m.MemberID, m.AccountName, m.CreatedAt).
		Scan(&m.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.ErrAlreadyJoined
		}
		return err
	}
	return nil
}

func (r *membershipRepository) GetByEventAndMember(ctx context.Context, eventID, memberID string) (*domain.Membership, error) {
	query := `
		SELECT id, event_id, member_id, account_name, created_at
		FROM event_memberships
		WHERE event_id = $1 AND member_id = $2
	`
	m := &domain.Membership{}
	err := r.DB.QueryRowContext(ctx, query, eventID, memberID).
		Scan(&m.ID, &m.EventID, &m.MemberID, &m.AccountName, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Membership, error) {
	query := `
		SELECT id, event_id, member_id, account_name, created_at
		FROM event_memberships
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMemberships(rows)
}

func (r *membershipRepository) ListAll(ctx context.Context) ([]*domain.Membership, error) {
	query := `
		SELECT id, event_id, member_id, account_name, created_at
		FROM event_memberships
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMemberships(rows)
}

func scanMemberships(rows *sql.Rows) ([]*domain.Membership, error) {
	memberships := make([]*domain.Membership, 0)
	for rows.Next() {
		m := &domain.Membership{}
		if err := rows.Scan(&m.ID, &m.EventID, &m.MemberID, &m.AccountName, &m.CreatedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *membershipRepository) DeleteByEventAndMember(ctx context.Context, eventID, memberID string) error {
	query := `DELETE FROM event_memberships WHERE event_id = $1 AND member_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, memberID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByEventID removes all memberships of an event. Deleting an event with
// no memberships is fine, so zero affected rows is not an error here.
func (r *membershipRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	query := `DELETE FROM event_memberships WHERE event_id = $1`
	_, err := r.DB.ExecContext(ctx, query, eventID)
	return err
}
