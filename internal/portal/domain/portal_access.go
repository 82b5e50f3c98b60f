// Package domain contains the client portal access entities.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/errors"
	timelineDomain "github.com/tribunatech/casevault/internal/timeline/domain"
)

// PortalAccess grants a client token-based read access to one of their cases.
// Only the SHA-256 hash of the token is stored; the plain token is shown to
// staff exactly once at issue time.
type PortalAccess struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	CaseID         uuid.UUID
	TokenHash      string
	IsActive       bool
	CreatedAt      time.Time
	LastAccessedAt *time.Time
}

// PortalMilestone is a single journey entry as shown to the client.
type PortalMilestone struct {
	Stage      timelineDomain.Stage
	StageLabel string
	Notes      string
	Date       time.Time
}

// PortalDocument is a client-visible document listing entry. It carries no
// storage details beyond what the portal download path needs.
type PortalDocument struct {
	ID          uuid.UUID
	Title       string
	Description string
	ContentType string
	SizeBytes   int64
	UploadedAt  time.Time
}

// PortalView is the case projection served to an authenticated portal token.
// It intentionally contains no client identifiers and no protected attributes.
type PortalView struct {
	CaseTitle       string
	CurrentStage    timelineDomain.Stage
	StageLabel      string
	ProgressPercent int
	Milestones      []PortalMilestone
	Documents       []PortalDocument
}

// Domain-specific errors for the portal module.
var (
	// ErrInvalidToken indicates the presented token does not map to an active
	// access grant. It deliberately covers every failure mode so callers
	// cannot distinguish a revoked token from one that never existed.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid portal token")

	// ErrAccessAlreadyExists indicates an active grant already covers this
	// client and case pair.
	ErrAccessAlreadyExists = errors.Wrap(errors.ErrConflict, "portal access already exists")

	// ErrAccessNotFound indicates the requested access grant does not exist.
	ErrAccessNotFound = errors.Wrap(errors.ErrNotFound, "portal access not found")
)
