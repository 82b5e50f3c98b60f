// Package domain defines the legal case domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/tribunatech/casevault/internal/crypto/domain"
	"github.com/tribunatech/casevault/internal/errors"
)

// Area is the practice area of a case.
type Area string

const (
	AreaCivil       Area = "CIVIL"
	AreaBusiness    Area = "BUSINESS"
	AreaHealth      Area = "HEALTH"
	AreaThirdSector Area = "THIRD_SECTOR"
	AreaOther       Area = "OTHER"
)

// Status is the lifecycle status of a case.
type Status string

const (
	StatusAnalysis  Status = "ANALYSIS"
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusArchived  Status = "ARCHIVED"
)

// RiskLevel is the contingency risk classification of a case.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ParseArea converts a string into an Area.
func ParseArea(s string) (Area, error) {
	switch Area(s) {
	case AreaCivil, AreaBusiness, AreaHealth, AreaThirdSector, AreaOther:
		return Area(s), nil
	default:
		return "", ErrInvalidArea
	}
}

// ParseStatus converts a string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAnalysis, StatusActive, StatusSuspended, StatusArchived:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ParseRiskLevel converts a string into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskLevel(s), nil
	default:
		return "", ErrInvalidRiskLevel
	}
}

// Case represents a legal case belonging to a client.
//
// ProcessNumber is the court filing identifier and is a protected attribute:
// encrypted at rest and excluded from portal responses. ContingencyCents
// holds the provisioned contingency value in cents to avoid floating point
// drift on money.
type Case struct {
	ID               uuid.UUID
	ClientID         uuid.UUID
	Title            string
	Area             Area
	Status           Status
	ProcessNumber    cryptoDomain.ProtectedValue
	Description      string
	RiskLevel        RiskLevel
	ContingencyCents int64
	EntryDate        time.Time
	UpdatedAt        time.Time
}

// Domain-specific errors for case operations.
var (
	// ErrCaseNotFound indicates the requested case does not exist.
	ErrCaseNotFound = errors.Wrap(errors.ErrNotFound, "case not found")

	// ErrInvalidArea indicates a practice area outside the catalog.
	ErrInvalidArea = errors.Wrap(errors.ErrInvalidInput, "invalid practice area")

	// ErrInvalidStatus indicates a case status outside the catalog.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid case status")

	// ErrInvalidRiskLevel indicates a risk level outside the catalog.
	ErrInvalidRiskLevel = errors.Wrap(errors.ErrInvalidInput, "invalid risk level")
)
