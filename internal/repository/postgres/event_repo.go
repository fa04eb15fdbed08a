package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"courtside/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, site_region, court_count, capacity, court_surface, participants, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	participants := e.Participants
	if participants == nil {
		participants = []string{}
	}
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.SiteRegion, e.CourtCount, e.Capacity, e.CourtSurface,
		pq.Array(participants), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, site_region, court_count, capacity, court_surface, participants, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.SiteRegion, &e.CourtCount, &e.Capacity, &e.CourtSurface,
		pq.Array(&e.Participants), &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if e.Participants == nil {
		e.Participants = []string{}
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, title, site_region, court_count, capacity, court_surface, participants, created_at, updated_at
		FROM events
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(
			&e.ID, &e.Title, &e.SiteRegion, &e.CourtCount, &e.Capacity, &e.CourtSurface,
			pq.Array(&e.Participants), &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if e.Participants == nil {
			e.Participants = []string{}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, eventID string, title, siteRegion *string, courtCount, capacity *int, courtSurface *string) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *title)
		n++
	}
	if siteRegion != nil {
		setClauses = append(setClauses, fmt.Sprintf("site_region = $%d", n))
		args = append(args, *siteRegion)
		n++
	}
	if courtCount != nil {
		setClauses = append(setClauses, fmt.Sprintf("court_count = $%d", n))
		args = append(args, *courtCount)
		n++
	}
	if capacity != nil {
		setClauses = append(setClauses, fmt.Sprintf("capacity = $%d", n))
		args = append(args, *capacity)
		n++
	}
	if courtSurface != nil {
		setClauses = append(setClauses, fmt.Sprintf("court_surface = $%d", n))
		args = append(args, *courtSurface)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, eventID)
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING id, title, site_region, court_count, capacity, court_surface, participants, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.Title, &e.SiteRegion, &e.CourtCount, &e.Capacity, &e.CourtSurface,
		pq.Array(&e.Participants), &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if e.Participants == nil {
		e.Participants = []string{}
	}
	return e, nil
}

// AddParticipant appends userID to the participants array only when absent,
// giving the union semantics the join workflow relies on: appending an id
// already in the set affects zero rows and is not an error.
func (r *eventRepository) AddParticipant(ctx context.Context, eventID, userID string) error {
	query := `
		UPDATE events
		SET participants = array_append(participants, $2), updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(participants))
	`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Either the id is already in the set (union no-op) or the event is gone.
		var exists bool
		if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (r *eventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	query := `
		UPDATE events
		SET participants = array_remove(participants, $2), updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
