// Package service implements the audit log chain signer.
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	auditDomain "github.com/tribunatech/casevault/internal/audit/domain"
)

// AuditSigner signs and verifies portal access log records. The signature of
// a record covers the previous record's signature, forming a tamper-evident
// chain from the first row.
type AuditSigner interface {
	Sign(signingKey []byte, log *auditDomain.AccessLog, prevSignature []byte) ([]byte, error)
	Verify(signingKey []byte, log *auditDomain.AccessLog, prevSignature []byte) error
}

type auditSigner struct{}

// NewAuditSigner creates a new HMAC-based audit log signer using HKDF-SHA256
// for key derivation and HMAC-SHA256 for signature generation.
func NewAuditSigner() AuditSigner {
	return &auditSigner{}
}

// deriveSigningKey uses HKDF-SHA256 to derive a 32-byte signing key from the
// configured audit key. Info parameter is versioned for future algorithm changes.
func (a *auditSigner) deriveSigningKey(rootKey []byte) ([]byte, error) {
	info := []byte("portal-access-log-signing-v1")
	hkdf := hkdf.New(sha256.New, rootKey, nil, info)

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(hkdf, signingKey); err != nil {
		return nil, err
	}

	return signingKey, nil
}

// canonicalizeLog converts an access log to its canonical byte representation.
// Variable-length fields are length-prefixed to prevent ambiguity.
func (a *auditSigner) canonicalizeLog(log *auditDomain.AccessLog, prevSignature []byte) []byte {
	buf := make([]byte, 0, 256)

	buf = append(buf, log.ID[:]...)

	if log.CaseID != nil {
		buf = appendLengthPrefixed(buf, log.CaseID[:])
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	buf = appendLengthPrefixed(buf, []byte(log.TokenPrefix))
	buf = appendLengthPrefixed(buf, []byte(string(log.Action)))

	if log.Success {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}

	buf = appendLengthPrefixed(buf, []byte(log.RemoteAddr))

	timeBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(timeBytes, uint64(log.CreatedAt.UnixNano()))
	buf = append(buf, timeBytes...)

	buf = appendLengthPrefixed(buf, prevSignature)

	return buf
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))
	buf = append(buf, length...)
	buf = append(buf, data...)
	return buf
}

// Sign generates the HMAC-SHA256 chain signature for the access log.
func (a *auditSigner) Sign(signingKey []byte, log *auditDomain.AccessLog, prevSignature []byte) ([]byte, error) {
	if len(signingKey) != 32 {
		return nil, auditDomain.ErrInvalidSigningKey
	}

	derived, err := a.deriveSigningKey(signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	defer zero(derived)

	mac := hmac.New(sha256.New, derived)
	mac.Write(a.canonicalizeLog(log, prevSignature))
	return mac.Sum(nil), nil
}

// Verify checks the access log signature against its contents and chain
// position. Returns ErrSignatureInvalid on mismatch.
func (a *auditSigner) Verify(signingKey []byte, log *auditDomain.AccessLog, prevSignature []byte) error {
	expected, err := a.Sign(signingKey, log, prevSignature)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(log.Signature, expected) {
		return auditDomain.ErrSignatureInvalid
	}

	return nil
}

// zero overwrites sensitive data in memory with zeros.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
