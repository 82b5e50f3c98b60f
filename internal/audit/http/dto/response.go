// Package dto provides data transfer objects for the audit HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/audit/domain"
)

// AccessLogResponse represents an audit record in staff API responses.
// Signature is base64 encoded.
type AccessLogResponse struct {
	ID          uuid.UUID  `json:"id"`
	TokenPrefix string     `json:"token_prefix"`
	CaseID      *uuid.UUID `json:"case_id,omitempty"`
	Action      string     `json:"action"`
	Success     bool       `json:"success"`
	RemoteAddr  string     `json:"remote_addr"`
	Signature   []byte     `json:"signature"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToAccessLogResponse maps an access log to the API response.
func ToAccessLogResponse(log *domain.AccessLog) AccessLogResponse {
	return AccessLogResponse{
		ID:          log.ID,
		TokenPrefix: log.TokenPrefix,
		CaseID:      log.CaseID,
		Action:      string(log.Action),
		Success:     log.Success,
		RemoteAddr:  log.RemoteAddr,
		Signature:   log.Signature,
		CreatedAt:   log.CreatedAt,
	}
}

// ListAccessLogsResponse represents a page of audit records.
type ListAccessLogsResponse struct {
	AccessLogs []AccessLogResponse `json:"access_logs"`
	Offset     int                 `json:"offset"`
	Limit      int                 `json:"limit"`
}

// ToListAccessLogsResponse maps access logs to the listing response.
func ToListAccessLogsResponse(logs []*domain.AccessLog, offset, limit int) ListAccessLogsResponse {
	out := make([]AccessLogResponse, 0, len(logs))
	for _, log := range logs {
		out = append(out, ToAccessLogResponse(log))
	}
	return ListAccessLogsResponse{AccessLogs: out, Offset: offset, Limit: limit}
}
