// Package domain contains the portal access audit entities.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/errors"
)

// Action identifies what a portal token or staff grant operation did.
type Action string

// Audited actions.
const (
	ActionTokenIssued    Action = "token_issued"
	ActionTokenRevoked   Action = "token_revoked"
	ActionTokenRejected  Action = "token_rejected"
	ActionViewTimeline   Action = "view_timeline"
	ActionViewDocuments  Action = "view_documents"
	ActionUploadDocument Action = "upload_document"
)

// AccessLog records one portal access decision. Records form a hash chain:
// each signature covers the record's fields plus the previous record's
// signature, so deleting or reordering rows breaks verification.
//
// TokenPrefix is the first characters of the token hash, never the token
// itself. CaseID is nil for rejections where no grant was resolved.
type AccessLog struct {
	ID          uuid.UUID
	TokenPrefix string
	CaseID      *uuid.UUID
	Action      Action
	Success     bool
	RemoteAddr  string
	Signature   []byte
	CreatedAt   time.Time
}

// Domain-specific errors for the audit module.
var (
	// ErrSignatureInvalid indicates an audit record whose signature does not
	// match its contents and chain position.
	ErrSignatureInvalid = errors.New("audit log signature invalid")

	// ErrInvalidSigningKey indicates the audit signing key is missing or has
	// the wrong size.
	ErrInvalidSigningKey = errors.New("audit signing key must be 32 bytes")
)
