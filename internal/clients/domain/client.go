// Package domain defines the core client domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/tribunatech/casevault/internal/crypto/domain"
	"github.com/tribunatech/casevault/internal/errors"
)

// ClientType distinguishes individual clients from companies.
type ClientType string

const (
	// ClientTypeIndividual is a natural person (CPF holder).
	ClientTypeIndividual ClientType = "PF"

	// ClientTypeCompany is a legal entity (CNPJ holder).
	ClientTypeCompany ClientType = "PJ"
)

// ParseClientType converts a string into a ClientType.
// Returns ErrInvalidClientType for unknown values.
func ParseClientType(s string) (ClientType, error) {
	switch ClientType(s) {
	case ClientTypeIndividual:
		return ClientTypeIndividual, nil
	case ClientTypeCompany:
		return ClientTypeCompany, nil
	default:
		return "", ErrInvalidClientType
	}
}

// Client represents a client of the practice.
//
// NationalID (CPF or CNPJ) and Phone are protected attributes: encrypted at
// rest, carried in memory as ProtectedValue, and never included in portal
// responses or log output. NationalID additionally carries a keyed lookup
// hash in storage so uniqueness can be enforced without deterministic
// encryption.
type Client struct {
	ID         uuid.UUID
	FullName   string
	ClientType ClientType
	NationalID cryptoDomain.ProtectedValue
	Phone      cryptoDomain.ProtectedValue
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Domain-specific errors for client operations.
var (
	// ErrClientNotFound indicates the requested client does not exist.
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrClientAlreadyExists indicates a client with the same national ID already exists.
	ErrClientAlreadyExists = errors.Wrap(errors.ErrConflict, "client with this national id already exists")

	// ErrInvalidClientType indicates the client type is not PF or PJ.
	ErrInvalidClientType = errors.Wrap(errors.ErrInvalidInput, "invalid client type")
)
