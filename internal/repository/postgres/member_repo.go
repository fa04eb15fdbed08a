package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"courtside/internal/domain"
)

type memberRepository struct {
	DB *sql.DB
}

func NewMemberRepository(db *sql.DB) domain.MemberRepository {
	return &memberRepository{
		DB: db,
	}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `
		INSERT INTO members (author_id, account_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, m.AuthorID, m.AccountName, m.CreatedAt, m.UpdatedAt).
		Scan(&m.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *memberRepository) GetByAuthorID(ctx context.Context, authorID string) (*domain.Member, error) {
	query := `
		SELECT id, author_id, account_name, created_at, updated_at
		FROM members
		WHERE author_id = $1
	`
	m := &domain.Member{}
	err := r.DB.QueryRowContext(ctx, query, authorID).
		Scan(&m.ID, &m.AuthorID, &m.AccountName, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) ListAll(ctx context.Context) ([]*domain.Member, error) {
	query := `
		SELECT id, author_id, account_name, created_at, updated_at
		FROM members
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := make([]*domain.Member, 0)
	for rows.Next() {
		m := &domain.Member{}
		if err := rows.Scan(&m.ID, &m.AuthorID, &m.AccountName, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
