// Package usecase implements the client business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/clients/domain"
	cryptoDomain "github.com/tribunatech/casevault/internal/crypto/domain"
	appValidation "github.com/tribunatech/casevault/internal/validation"
)

// CreateClientInput contains the input data for client registration.
// NationalID accepts the usual CPF/CNPJ punctuation; it is stripped before storage.
type CreateClientInput struct {
	FullName   string `json:"full_name"`
	ClientType string `json:"client_type"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// ClientUseCase defines the interface for client business logic operations.
type ClientUseCase interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	ListClients(ctx context.Context, offset, limit int) ([]*domain.Client, error)
}

// ClientRepository defines client repository operations.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.Client, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Client, error)
}

type clientUseCase struct {
	clientRepo ClientRepository
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(clientRepo ClientRepository) ClientUseCase {
	return &clientUseCase{clientRepo: clientRepo}
}

func (uc *clientUseCase) validateCreateClientInput(input CreateClientInput) error {
	nationalID := normalizeNationalID(input.NationalID)

	err := validation.ValidateStruct(&input,
		validation.Field(&input.FullName,
			validation.Required.Error("full_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("full_name must be between 1 and 255 characters"),
		),
		validation.Field(&input.ClientType,
			validation.Required.Error("client_type is required"),
			validation.In(string(domain.ClientTypeIndividual), string(domain.ClientTypeCompany)).
				Error("client_type must be PF or PJ"),
		),
		validation.Field(&input.Phone,
			validation.Required.Error("phone is required"),
			appValidation.NotBlank,
			validation.Length(8, 20).Error("phone must be between 8 and 20 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	// CPF has 11 digits, CNPJ has 14. Validated after punctuation stripping.
	err = validation.Validate(nationalID,
		validation.Required.Error("national_id is required"),
		appValidation.Digits,
		validation.Length(11, 14).Error("national_id must have 11 (CPF) or 14 (CNPJ) digits"),
	)
	return appValidation.WrapValidationError(err)
}

// CreateClient registers a new client with encrypted protected attributes.
// Returns ErrClientAlreadyExists when a client with the same national id exists.
func (uc *clientUseCase) CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	if err := uc.validateCreateClientInput(input); err != nil {
		return nil, err
	}

	clientType, err := domain.ParseClientType(input.ClientType)
	if err != nil {
		return nil, err
	}

	client := &domain.Client{
		ID:         uuid.Must(uuid.NewV7()),
		FullName:   strings.TrimSpace(input.FullName),
		ClientType: clientType,
		NationalID: cryptoDomain.NewProtectedValue(normalizeNationalID(input.NationalID)),
		Phone:      cryptoDomain.NewProtectedValue(strings.TrimSpace(input.Phone)),
		Email:      strings.TrimSpace(strings.ToLower(input.Email)),
	}

	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID.
func (uc *clientUseCase) GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return uc.clientRepo.GetByID(ctx, id)
}

// ListClients retrieves a page of clients.
func (uc *clientUseCase) ListClients(ctx context.Context, offset, limit int) ([]*domain.Client, error) {
	return uc.clientRepo.List(ctx, offset, limit)
}

// normalizeNationalID strips the usual CPF/CNPJ punctuation and whitespace,
// so "529.982.247-25" and "52998224725" store and hash identically.
func normalizeNationalID(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '-', '/', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
