package app

import (
	"context"
	"fmt"

	casesRepository "github.com/tribunatech/casevault/internal/cases/repository"
	casesUsecase "github.com/tribunatech/casevault/internal/cases/usecase"
)

// CaseRepository returns the case repository based on the database driver.
func (c *Container) CaseRepository(ctx context.Context) (casesUsecase.CaseRepository, error) {
	c.caseRepoInit.Do(func() {
		repo, err := c.initCaseRepository(ctx)
		if err != nil {
			c.initErrors["caseRepo"] = err
			return
		}
		c.caseRepo = repo
	})
	if err, exists := c.initErrors["caseRepo"]; exists {
		return nil, err
	}
	return c.caseRepo, nil
}

func (c *Container) initCaseRepository(ctx context.Context) (casesUsecase.CaseRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for case repository: %w", err)
	}

	cipher, err := c.FieldCipher(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for case repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return casesRepository.NewMySQLCaseRepository(db, cipher, c.Logger()), nil
	case "postgres":
		return casesRepository.NewPostgreSQLCaseRepository(db, cipher, c.Logger()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// CaseUseCase returns the case use case instance.
func (c *Container) CaseUseCase(ctx context.Context) (casesUsecase.CaseUseCase, error) {
	c.caseUseCaseInit.Do(func() {
		useCase, err := c.initCaseUseCase(ctx)
		if err != nil {
			c.initErrors["caseUseCase"] = err
			return
		}
		c.caseUseCase = useCase
	})
	if err, exists := c.initErrors["caseUseCase"]; exists {
		return nil, err
	}
	return c.caseUseCase, nil
}

func (c *Container) initCaseUseCase(ctx context.Context) (casesUsecase.CaseUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for case use case: %w", err)
	}

	caseRepo, err := c.CaseRepository(ctx)
	if err != nil {
		return nil, err
	}

	clientRepo, err := c.ClientRepository(ctx)
	if err != nil {
		return nil, err
	}

	timelineRepo, err := c.TimelineRepository()
	if err != nil {
		return nil, err
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	return casesUsecase.NewCaseUseCaseWithMetrics(
		casesUsecase.NewCaseUseCase(txManager, caseRepo, clientRepo, timelineRepo), bm,
	), nil
}
