package app

import (
	"context"
	"fmt"

	portalRepository "github.com/tribunatech/casevault/internal/portal/repository"
	portalService "github.com/tribunatech/casevault/internal/portal/service"
	portalUsecase "github.com/tribunatech/casevault/internal/portal/usecase"
)

// TokenService returns the portal token service.
func (c *Container) TokenService() portalService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = portalService.NewTokenService()
	})
	return c.tokenService
}

// AccessRepository returns the portal access repository based on the database driver.
func (c *Container) AccessRepository() (portalUsecase.PortalAccessRepository, error) {
	c.accessRepoInit.Do(func() {
		repo, err := c.initAccessRepository()
		if err != nil {
			c.initErrors["accessRepo"] = err
			return
		}
		c.accessRepo = repo
	})
	if err, exists := c.initErrors["accessRepo"]; exists {
		return nil, err
	}
	return c.accessRepo, nil
}

func (c *Container) initAccessRepository() (portalUsecase.PortalAccessRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for portal access repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return portalRepository.NewMySQLPortalAccessRepository(db, c.Logger()), nil
	case "postgres":
		return portalRepository.NewPostgreSQLPortalAccessRepository(db, c.Logger()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// AccessUseCase returns the portal access grant use case instance.
func (c *Container) AccessUseCase(ctx context.Context) (portalUsecase.AccessUseCase, error) {
	c.accessUseCaseInit.Do(func() {
		useCase, err := c.initAccessUseCase(ctx)
		if err != nil {
			c.initErrors["accessUseCase"] = err
			return
		}
		c.accessUseCase = useCase
	})
	if err, exists := c.initErrors["accessUseCase"]; exists {
		return nil, err
	}
	return c.accessUseCase, nil
}

func (c *Container) initAccessUseCase(ctx context.Context) (portalUsecase.AccessUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for access use case: %w", err)
	}

	accessRepo, err := c.AccessRepository()
	if err != nil {
		return nil, err
	}

	caseRepo, err := c.CaseRepository(ctx)
	if err != nil {
		return nil, err
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, err
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	return portalUsecase.NewAccessUseCaseWithMetrics(
		portalUsecase.NewAccessUseCase(txManager, accessRepo, caseRepo, c.TokenService(), auditUseCase), bm,
	), nil
}

// PortalUseCase returns the client portal use case instance.
func (c *Container) PortalUseCase(ctx context.Context) (portalUsecase.PortalUseCase, error) {
	c.portalUseCaseInit.Do(func() {
		useCase, err := c.initPortalUseCase(ctx)
		if err != nil {
			c.initErrors["portalUseCase"] = err
			return
		}
		c.portalUseCase = useCase
	})
	if err, exists := c.initErrors["portalUseCase"]; exists {
		return nil, err
	}
	return c.portalUseCase, nil
}

func (c *Container) initPortalUseCase(ctx context.Context) (portalUsecase.PortalUseCase, error) {
	accessUseCase, err := c.AccessUseCase(ctx)
	if err != nil {
		return nil, err
	}

	caseRepo, err := c.CaseRepository(ctx)
	if err != nil {
		return nil, err
	}

	timelineRepo, err := c.TimelineRepository()
	if err != nil {
		return nil, err
	}

	documentUseCase, err := c.DocumentUseCase(ctx)
	if err != nil {
		return nil, err
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, err
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	return portalUsecase.NewPortalUseCaseWithMetrics(
		portalUsecase.NewPortalUseCase(accessUseCase, caseRepo, timelineRepo, documentUseCase, auditUseCase, c.TokenService()), bm,
	), nil
}
