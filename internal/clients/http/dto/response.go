// Package dto provides data transfer objects for the client HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// ClientResponse represents the API response for a client.
//
// Protected attributes are returned to authenticated staff as plaintext; a
// value whose stored ciphertext no longer decrypts is returned as null so
// callers can tell "unreadable" apart from "empty".
type ClientResponse struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	ClientType string    `json:"client_type"`
	NationalID *string   `json:"national_id"`
	Phone      *string   `json:"phone"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListClientsResponse represents a paginated list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}
