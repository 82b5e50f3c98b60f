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

// MySQLTimelineRepository handles timeline persistence for MySQL.
type MySQLTimelineRepository struct {
	db *sql.DB
}

// NewMySQLTimelineRepository creates a new MySQLTimelineRepository.
func NewMySQLTimelineRepository(db *sql.DB) *MySQLTimelineRepository {
	return &MySQLTimelineRepository{db: db}
}

// Create inserts a new timeline with its initial milestones.
func (r *MySQLTimelineRepository) Create(ctx context.Context, timeline *domain.Timeline) error {
	querier := database.GetTx(ctx, r.db)

	milestones, err := json.Marshal(timeline.Milestones)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal milestones")
	}

	query := `INSERT INTO case_timelines (id, case_id, current_stage, milestones, version, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query,
		timeline.ID, timeline.CaseID, timeline.CurrentStage, milestones, timeline.Version,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrTimelineAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create timeline")
	}
	return nil
}

// GetByCaseID retrieves the timeline of a case.
func (r *MySQLTimelineRepository) GetByCaseID(ctx context.Context, caseID uuid.UUID) (*domain.Timeline, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, case_id, current_stage, milestones, version, created_at, updated_at
			  FROM case_timelines WHERE case_id = ?`

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

// Update persists the timeline against the version it was loaded at.
// A concurrent update in between fails with ErrStaleTimeline.
func (r *MySQLTimelineRepository) Update(ctx context.Context, timeline *domain.Timeline) error {
	querier := database.GetTx(ctx, r.db)

	milestones, err := json.Marshal(timeline.Milestones)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal milestones")
	}

	query := `UPDATE case_timelines
			  SET current_stage = ?, milestones = ?, version = version + 1, updated_at = NOW()
			  WHERE id = ? AND version = ?`

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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "error 1062") || strings.Contains(errMsg, "duplicate entry")
}
