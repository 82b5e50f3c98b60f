package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tribunatech/casevault/internal/errors"
	"github.com/tribunatech/casevault/internal/timeline/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestPostgreSQLTimelineRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts timeline with milestones document", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTimelineRepository(db)

		timeline := domain.NewTimeline(uuid.Must(uuid.NewV7()), "Dra. Ana Lima", time.Now())

		mock.ExpectExec("INSERT INTO case_timelines").
			WithArgs(timeline.ID, timeline.CaseID, timeline.CurrentStage, sqlmock.AnyArg(), 1).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(ctx, timeline)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("one timeline per case", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTimelineRepository(db)

		timeline := domain.NewTimeline(uuid.Must(uuid.NewV7()), "Dra. Ana Lima", time.Now())

		mock.ExpectExec("INSERT INTO case_timelines").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "case_timelines_case_id_key"`))

		err := repo.Create(ctx, timeline)
		assert.ErrorIs(t, err, domain.ErrTimelineAlreadyExists)
	})
}

func TestPostgreSQLTimelineRepository_GetByCaseID(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips the milestones document", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTimelineRepository(db)

		caseID := uuid.Must(uuid.NewV7())
		now := time.Now().UTC().Truncate(time.Second)
		milestones, err := json.Marshal([]domain.Milestone{
			{Stage: domain.StageIntake, Notes: "Caso registrado", UpdatedBy: "Dra. Ana Lima", Date: now},
			{Stage: domain.StageFiled, Notes: "Protocolo no TJSP", UpdatedBy: "Dra. Ana Lima", Date: now},
		})
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{
			"id", "case_id", "current_stage", "milestones", "version", "created_at", "updated_at",
		}).AddRow(uuid.Must(uuid.NewV7()), caseID, "FILED", milestones, 2, now, now)

		mock.ExpectQuery("SELECT (.+) FROM case_timelines WHERE case_id").
			WithArgs(caseID).
			WillReturnRows(rows)

		timeline, err := repo.GetByCaseID(ctx, caseID)
		require.NoError(t, err)

		assert.Equal(t, domain.StageFiled, timeline.CurrentStage)
		assert.Equal(t, 2, timeline.Version)
		assert.Equal(t, 37, timeline.ProgressPercent())
		require.Len(t, timeline.Milestones, 2)
		assert.Equal(t, "Protocolo no TJSP", timeline.Milestones[1].Notes)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTimelineRepository(db)
		caseID := uuid.Must(uuid.NewV7())

		mock.ExpectQuery("SELECT (.+) FROM case_timelines WHERE case_id").
			WithArgs(caseID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByCaseID(ctx, caseID)
		assert.ErrorIs(t, err, domain.ErrTimelineNotFound)
	})
}

func TestPostgreSQLTimelineRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("version-checked update increments version", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTimelineRepository(db)

		timeline := domain.NewTimeline(uuid.Must(uuid.NewV7()), "Dra. Ana Lima", time.Now())
		require.NoError(t, timeline.Advance(domain.StageAnalysis, "", "Dra. Ana Lima", time.Now()))

		mock.ExpectExec("UPDATE case_timelines").
			WithArgs(timeline.CurrentStage, sqlmock.AnyArg(), timeline.ID, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, timeline)
		assert.NoError(t, err)
		assert.Equal(t, 2, timeline.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLTimelineRepository(db)

		timeline := domain.NewTimeline(uuid.Must(uuid.NewV7()), "Dra. Ana Lima", time.Now())

		mock.ExpectExec("UPDATE case_timelines").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, timeline)
		assert.ErrorIs(t, err, domain.ErrStaleTimeline)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Equal(t, 1, timeline.Version, "version unchanged on failure")
	})
}
