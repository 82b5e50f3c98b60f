// Package dto provides data transfer objects for the client HTTP layer.
package dto

import (
	"github.com/tribunatech/casevault/internal/clients/domain"
	"github.com/tribunatech/casevault/internal/clients/usecase"
	cryptoDomain "github.com/tribunatech/casevault/internal/crypto/domain"
)

// ToCreateClientInput converts a CreateClientRequest DTO to the use case input.
func ToCreateClientInput(req CreateClientRequest) usecase.CreateClientInput {
	return usecase.CreateClientInput{
		FullName:   req.FullName,
		ClientType: req.ClientType,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		Email:      req.Email,
	}
}

// ToClientResponse converts a domain Client to a ClientResponse DTO.
func ToClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:         client.ID,
		FullName:   client.FullName,
		ClientType: string(client.ClientType),
		NationalID: protectedToPtr(client.NationalID),
		Phone:      protectedToPtr(client.Phone),
		Email:      client.Email,
		CreatedAt:  client.CreatedAt,
		UpdatedAt:  client.UpdatedAt,
	}
}

// ToListClientsResponse converts a page of clients to the list response DTO.
func ToListClientsResponse(clients []*domain.Client, offset, limit int) ListClientsResponse {
	items := make([]ClientResponse, 0, len(clients))
	for _, client := range clients {
		items = append(items, ToClientResponse(client))
	}
	return ListClientsResponse{
		Clients: items,
		Offset:  offset,
		Limit:   limit,
	}
}

// protectedToPtr maps a readable value to its plaintext and an unreadable one to nil.
func protectedToPtr(value cryptoDomain.ProtectedValue) *string {
	plaintext, ok := value.Plaintext()
	if !ok {
		return nil
	}
	return &plaintext
}
