package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/portal/domain"
)

// IssueAccessResponse carries the plain token back to staff. This is the only
// place the token ever appears; it cannot be recovered afterwards.
type IssueAccessResponse struct {
	AccessID  uuid.UUID `json:"access_id"`
	ClientID  uuid.UUID `json:"client_id"`
	CaseID    uuid.UUID `json:"case_id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// ToIssueAccessResponse maps a grant and its plain token to the API response.
func ToIssueAccessResponse(access *domain.PortalAccess, token string) IssueAccessResponse {
	return IssueAccessResponse{
		AccessID:  access.ID,
		ClientID:  access.ClientID,
		CaseID:    access.CaseID,
		Token:     token,
		CreatedAt: access.CreatedAt,
	}
}

// PortalMilestoneResponse represents a journey entry in the client view.
type PortalMilestoneResponse struct {
	Stage      string    `json:"stage"`
	StageLabel string    `json:"stage_label"`
	Notes      string    `json:"notes,omitempty"`
	Date       time.Time `json:"date"`
}

// PortalDocumentResponse represents a client-visible document listing entry.
type PortalDocumentResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// PortalViewResponse is the case projection served to a portal token. It
// carries no client identifiers and no internal ids beyond document ids.
type PortalViewResponse struct {
	CaseTitle       string                    `json:"case_title"`
	CurrentStage    string                    `json:"current_stage"`
	StageLabel      string                    `json:"stage_label"`
	ProgressPercent int                       `json:"progress_percent"`
	Milestones      []PortalMilestoneResponse `json:"milestones"`
	Documents       []PortalDocumentResponse  `json:"documents"`
}

// ToPortalViewResponse maps the domain projection to the API response.
func ToPortalViewResponse(view *domain.PortalView) PortalViewResponse {
	return PortalViewResponse{
		CaseTitle:       view.CaseTitle,
		CurrentStage:    string(view.CurrentStage),
		StageLabel:      view.StageLabel,
		ProgressPercent: view.ProgressPercent,
		Milestones:      toMilestoneResponses(view.Milestones),
		Documents:       ToPortalDocumentResponses(view.Documents),
	}
}

func toMilestoneResponses(milestones []domain.PortalMilestone) []PortalMilestoneResponse {
	out := make([]PortalMilestoneResponse, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, PortalMilestoneResponse{
			Stage:      string(m.Stage),
			StageLabel: m.StageLabel,
			Notes:      m.Notes,
			Date:       m.Date,
		})
	}
	return out
}

// ToPortalDocumentResponses maps portal documents to the API response.
func ToPortalDocumentResponses(docs []domain.PortalDocument) []PortalDocumentResponse {
	out := make([]PortalDocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, PortalDocumentResponse{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			ContentType: d.ContentType,
			SizeBytes:   d.SizeBytes,
			UploadedAt:  d.UploadedAt,
		})
	}
	return out
}
