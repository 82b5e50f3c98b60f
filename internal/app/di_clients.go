package app

import (
	"context"
	"fmt"

	clientsRepository "github.com/tribunatech/casevault/internal/clients/repository"
	clientsUsecase "github.com/tribunatech/casevault/internal/clients/usecase"
)

// ClientRepository returns the client repository based on the database driver.
func (c *Container) ClientRepository(ctx context.Context) (clientsUsecase.ClientRepository, error) {
	c.clientRepoInit.Do(func() {
		repo, err := c.initClientRepository(ctx)
		if err != nil {
			c.initErrors["clientRepo"] = err
			return
		}
		c.clientRepo = repo
	})
	if err, exists := c.initErrors["clientRepo"]; exists {
		return nil, err
	}
	return c.clientRepo, nil
}

func (c *Container) initClientRepository(ctx context.Context) (clientsUsecase.ClientRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for client repository: %w", err)
	}

	cipher, err := c.FieldCipher(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for client repository: %w", err)
	}

	hasher, err := c.LookupHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get lookup hasher for client repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return clientsRepository.NewMySQLClientRepository(db, cipher, hasher, c.Logger()), nil
	case "postgres":
		return clientsRepository.NewPostgreSQLClientRepository(db, cipher, hasher, c.Logger()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// ClientUseCase returns the client use case instance.
func (c *Container) ClientUseCase(ctx context.Context) (clientsUsecase.ClientUseCase, error) {
	c.clientUseCaseInit.Do(func() {
		repo, err := c.ClientRepository(ctx)
		if err != nil {
			c.initErrors["clientUseCase"] = err
			return
		}

		bm, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["clientUseCase"] = err
			return
		}

		c.clientUseCase = clientsUsecase.NewClientUseCaseWithMetrics(
			clientsUsecase.NewClientUseCase(repo), bm,
		)
	})
	if err, exists := c.initErrors["clientUseCase"]; exists {
		return nil, err
	}
	return c.clientUseCase, nil
}
