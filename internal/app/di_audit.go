package app

import (
	"fmt"

	auditRepository "github.com/tribunatech/casevault/internal/audit/repository"
	auditService "github.com/tribunatech/casevault/internal/audit/service"
	auditUsecase "github.com/tribunatech/casevault/internal/audit/usecase"
)

// AuditRepository returns the access log repository based on the database driver.
func (c *Container) AuditRepository() (auditUsecase.AccessLogRepository, error) {
	c.auditRepoInit.Do(func() {
		repo, err := c.initAuditRepository()
		if err != nil {
			c.initErrors["auditRepo"] = err
			return
		}
		c.auditRepo = repo
	})
	if err, exists := c.initErrors["auditRepo"]; exists {
		return nil, err
	}
	return c.auditRepo, nil
}

func (c *Container) initAuditRepository() (auditUsecase.AccessLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for access log repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return auditRepository.NewMySQLAccessLogRepository(db), nil
	case "postgres":
		return auditRepository.NewPostgreSQLAccessLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// AuditUseCase returns the audit use case instance.
func (c *Container) AuditUseCase() (auditUsecase.AuditUseCase, error) {
	c.auditUseCaseInit.Do(func() {
		useCase, err := c.initAuditUseCase()
		if err != nil {
			c.initErrors["auditUseCase"] = err
			return
		}
		c.auditUseCase = useCase
	})
	if err, exists := c.initErrors["auditUseCase"]; exists {
		return nil, err
	}
	return c.auditUseCase, nil
}

func (c *Container) initAuditUseCase() (auditUsecase.AuditUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for audit use case: %w", err)
	}

	logRepo, err := c.AuditRepository()
	if err != nil {
		return nil, err
	}

	useCase, err := auditUsecase.NewAuditUseCase(
		txManager,
		logRepo,
		auditService.NewAuditSigner(),
		c.config.AuditSigningKey,
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit use case: %w", err)
	}

	return useCase, nil
}
