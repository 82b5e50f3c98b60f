package domain

import (
	"time"

	"github.com/google/uuid"
)

// Milestone is one append-only entry in the case journey. Milestones are
// never edited or removed once recorded.
type Milestone struct {
	Stage     Stage     `json:"stage"`
	Notes     string    `json:"notes"`
	UpdatedBy string    `json:"updated_by"`
	Date      time.Time `json:"date"`
}

// Timeline tracks the journey of a single case through the stage catalog.
//
// Version implements optimistic locking: every successful persist increments
// it, and a persist against a stale version fails with ErrStaleTimeline.
type Timeline struct {
	ID           uuid.UUID
	CaseID       uuid.UUID
	CurrentStage Stage
	Milestones   []Milestone
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTimeline creates a timeline at the start of the journey with its first
// milestone already recorded.
func NewTimeline(caseID uuid.UUID, updatedBy string, now time.Time) *Timeline {
	return &Timeline{
		ID:           uuid.Must(uuid.NewV7()),
		CaseID:       caseID,
		CurrentStage: StageIntake,
		Milestones: []Milestone{{
			Stage:     StageIntake,
			Notes:     "Caso registrado",
			UpdatedBy: updatedBy,
			Date:      now.UTC(),
		}},
		Version: 1,
	}
}

// Advance moves the case to the given stage and appends a milestone.
//
// Transitions are monotonic: the target stage's position must be at or after
// the current stage's position. Re-recording the current stage is allowed and
// appends a milestone without moving the case, so follow-up notes within a
// stage keep their history. Backward moves fail with ErrInvalidTransition and
// leave the timeline untouched.
func (t *Timeline) Advance(to Stage, notes, updatedBy string, now time.Time) error {
	toIdx := to.Index()
	if toIdx < 0 {
		return ErrUnknownStage
	}
	if toIdx < t.CurrentStage.Index() {
		return ErrInvalidTransition
	}

	t.Milestones = append(t.Milestones, Milestone{
		Stage:     to,
		Notes:     notes,
		UpdatedBy: updatedBy,
		Date:      now.UTC(),
	})
	t.CurrentStage = to

	return nil
}

// ProgressPercent returns the journey completion of the current stage.
func (t *Timeline) ProgressPercent() int {
	return t.CurrentStage.ProgressPercent()
}

// CompletedStages returns the stage codes of the recorded milestones in order.
func (t *Timeline) CompletedStages() []Stage {
	out := make([]Stage, 0, len(t.Milestones))
	for _, m := range t.Milestones {
		out = append(out, m.Stage)
	}
	return out
}
