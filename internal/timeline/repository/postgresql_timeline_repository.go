// Package repository provides data persistence implementations for case timelines.
//
// Milestones persist as a JSON document column; the stage state machine
// operates in memory and the optimistic version check happens at update time.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/database"
	"github.com/tribunatech/casevault/internal/timeline/domain"

	apperrors "github.com/tribunatech/casevault/internal/errors"
)

// PostgreSQLTimelineRepository handles timeline persistence for PostgreSQL.
type PostgreSQLTimelineRepository struct {
	db *sql.DB
}

// NewPostgreSQLTimelineRepository creates a new PostgreSQLTimelineRepository.
func NewPostgreSQLTimelineRepository(db *sql.DB) *PostgreSQLTimelineRepository {
	return &PostgreSQLTimelineRepository{db: db}
}

// Create inserts a new timeline with its initial milestones.
func (r *PostgreSQLTimelineRepository) Create(ctx context.Context, timeline *domain.Timeline) error {
	querier := database.GetTx(ctx, r.db)

	milestones, err := json.Marshal(timeline.Milestones)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal milestones")
	}

	query := `INSERT INTO case_timelines (id, case_id, current_stage, milestones, version, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query,
		timeline.ID, timeline.CaseID, timeline.CurrentStage, milestones, timeline.Version,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrTimelineAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create timeline")
	}
	return nil
}

// GetByCaseID retrieves the timeline of a case.
func (r *PostgreSQLTimelineRepository) GetByCaseID(ctx context.Context, caseID uuid.UUID) (*domain.Timeline, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, case_id, current_stage, milestones, version, created_at, updated_at
			  FROM case_timelines WHERE case_id = $1`

	var timeline domain.Timeline
	var milestones []byte

	err := querier.QueryRowContext(ctx, query, caseID).Scan(
		&timeline.ID, &timeline.CaseID, &timeline.CurrentStage,
		&milestones, &timeline.Version, &timeline.CreatedAt, &timeline.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTimelineNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get timeline by case id")
	}

	if err := json.Unmarshal(milestones, &timeline.Milestones); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal milestones")
	}

	return &timeline, nil
}

// Update persists the timeline's stage and milestones against the version it
// was loaded at. A concurrent update in between fails with ErrStaleTimeline;
// on success the in-memory version is incremented to match the row.
func (r *PostgreSQLTimelineRepository) Update(ctx context.Context, timeline *domain.Timeline) error {
	querier := database.GetTx(ctx, r.db)

	milestones, err := json.Marshal(timeline.Milestones)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal milestones")
	}

	query := `UPDATE case_timelines
			  SET current_stage = $1, milestones = $2, version = version + 1, updated_at = NOW()
			  WHERE id = $3 AND version = $4`

	result, err := querier.ExecContext(ctx, query,
		timeline.CurrentStage, milestones, timeline.ID, timeline.Version,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update timeline")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read update result")
	}
	if affected == 0 {
		return domain.ErrStaleTimeline
	}

	timeline.Version++
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
