package domain

import "github.com/tribunatech/casevault/internal/errors"

// Domain-specific errors for timeline operations.
var (
	// ErrTimelineNotFound indicates no timeline exists for the case.
	ErrTimelineNotFound = errors.Wrap(errors.ErrNotFound, "timeline not found")

	// ErrTimelineAlreadyExists indicates the case already has a timeline.
	ErrTimelineAlreadyExists = errors.Wrap(errors.ErrConflict, "timeline already exists for this case")

	// ErrUnknownStage indicates a stage code outside the catalog.
	ErrUnknownStage = errors.Wrap(errors.ErrInvalidInput, "unknown stage")

	// ErrInvalidTransition indicates an attempt to move the case backward in the journey.
	ErrInvalidTransition = errors.Wrap(errors.ErrInvalidInput, "stage transition would move the case backward")

	// ErrStaleTimeline indicates the timeline was modified concurrently; the
	// caller should reload and retry.
	ErrStaleTimeline = errors.Wrap(errors.ErrConflict, "timeline was modified concurrently")
)
