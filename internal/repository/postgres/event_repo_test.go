package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"courtside/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name:  "success",
			event: domain.NewEvent("Friday Night", "north", 2, 8, "hard", created, created),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, site_region, court_count, capacity, court_surface, participants, created_at, updated_at\)`).
					WithArgs("Friday Night", "north", 2, 8, "hard", "{}", created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("event-uuid-1"))
			},
			wantID: "event-uuid-1",
		},
		{
			name:  "db error",
			event: domain.NewEvent("Friday Night", "north", 2, 8, "hard", created, created),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	columns := []string{"id", "title", "site_region", "court_count", "capacity", "court_surface", "participants", "created_at", "updated_at"}

	tests := []struct {
		name             string
		id               string
		mock             func(mock sqlmock.Sqlmock)
		wantParticipants []string
		wantErr          error
	}{
		{
			name: "success",
			id:   "event-uuid-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, site_region, court_count, capacity, court_surface, participants, created_at, updated_at FROM events WHERE id = \$1`).
					WithArgs("event-uuid-1").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("event-uuid-1", "Friday Night", "north", 2, 8, "hard", "{alice,bob}", created, created))
			},
			wantParticipants: []string{"alice", "bob"},
		},
		{
			name: "empty participant set",
			id:   "event-uuid-2",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, site_region`).
					WithArgs("event-uuid-2").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("event-uuid-2", "Sunday Morning", "south", 1, 4, "clay", "{}", created, created))
			},
			wantParticipants: []string{},
		},
		{
			name: "not found",
			id:   "missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, site_region`).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			event, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.id, event.ID)
			require.Equal(t, tt.wantParticipants, event.Participants)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	columns := []string{"id", "title", "site_region", "court_count", "capacity", "court_surface", "participants", "created_at", "updated_at"}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, site_region, court_count, capacity, court_surface, participants, created_at, updated_at FROM events ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("event-uuid-1", "Friday Night", "north", 2, 8, "hard", "{alice}", created, created).
			AddRow("event-uuid-2", "Sunday Morning", "south", 1, 4, "clay", "{}", created, created))

	repo := NewEventRepository(db)
	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, []string{"alice"}, events[0].Participants)
	require.Equal(t, []string{}, events[1].Participants)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	columns := []string{"id", "title", "site_region", "court_count", "capacity", "court_surface", "participants", "created_at", "updated_at"}

	t.Run("partial update", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), title = \$1, capacity = \$2 WHERE id = \$3 RETURNING`).
			WithArgs("Saturday Morning", 12, "event-uuid-1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("event-uuid-1", "Saturday Morning", "north", 2, 12, "hard", "{}", created, created))

		repo := NewEventRepository(db)
		title := "Saturday Morning"
		capacity := 12
		event, err := repo.Update(ctx, "event-uuid-1", &title, nil, nil, &capacity, nil)
		require.NoError(t, err)
		require.Equal(t, "Saturday Morning", event.Title)
		require.Equal(t, 12, event.Capacity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no fields falls back to fetch", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, site_region`).
			WithArgs("event-uuid-1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("event-uuid-1", "Friday Night", "north", 2, 8, "hard", "{}", created, created))

		repo := NewEventRepository(db)
		event, err := repo.Update(ctx, "event-uuid-1", nil, nil, nil, nil, nil)
		require.NoError(t, err)
		require.Equal(t, "Friday Night", event.Title)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET`).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		title := "Saturday Morning"
		_, err = repo.Update(ctx, "missing", &title, nil, nil, nil, nil)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_AddParticipant(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "adds new participant",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events SET participants = array_append\(participants, \$2\), updated_at = NOW\(\) WHERE id = \$1 AND NOT \(\$2 = ANY\(participants\)\)`).
					WithArgs("event-uuid-1", "alice").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already present is a no-op",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events SET participants = array_append`).
					WithArgs("event-uuid-1", "alice").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM events WHERE id = \$1\)`).
					WithArgs("event-uuid-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
		},
		{
			name: "event gone",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events SET participants = array_append`).
					WithArgs("event-uuid-1", "alice").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM events WHERE id = \$1\)`).
					WithArgs("event-uuid-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.AddParticipant(ctx, "event-uuid-1", "alice")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_RemoveParticipant(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events SET participants = array_remove\(participants, \$2\), updated_at = NOW\(\) WHERE id = \$1`).
			WithArgs("event-uuid-1", "alice").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.RemoveParticipant(ctx, "event-uuid-1", "alice"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events SET participants = array_remove`).
			WithArgs("missing", "alice").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		require.ErrorIs(t, repo.RemoveParticipant(ctx, "missing", "alice"), domain.ErrNotFound)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("event-uuid-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.Delete(ctx, "event-uuid-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrNotFound)
	})
}
