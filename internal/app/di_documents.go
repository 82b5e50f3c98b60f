package app

import (
	"context"
	"fmt"

	documentsRepository "github.com/tribunatech/casevault/internal/documents/repository"
	documentsService "github.com/tribunatech/casevault/internal/documents/service"
	documentsUsecase "github.com/tribunatech/casevault/internal/documents/usecase"
)

// FileStore returns the blob store backing document contents.
func (c *Container) FileStore(ctx context.Context) (documentsService.FileStore, error) {
	c.fileStoreInit.Do(func() {
		store, err := documentsService.OpenFileStore(ctx, c.config.DocumentsBucketURL)
		if err != nil {
			c.initErrors["fileStore"] = fmt.Errorf("failed to open document file store: %w", err)
			return
		}
		c.fileStore = store
	})
	if err, exists := c.initErrors["fileStore"]; exists {
		return nil, err
	}
	return c.fileStore, nil
}

// DocumentRepository returns the document repository based on the database driver.
func (c *Container) DocumentRepository() (documentsUsecase.DocumentRepository, error) {
	c.documentRepoInit.Do(func() {
		repo, err := c.initDocumentRepository()
		if err != nil {
			c.initErrors["documentRepo"] = err
			return
		}
		c.documentRepo = repo
	})
	if err, exists := c.initErrors["documentRepo"]; exists {
		return nil, err
	}
	return c.documentRepo, nil
}

func (c *Container) initDocumentRepository() (documentsUsecase.DocumentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for document repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return documentsRepository.NewMySQLDocumentRepository(db), nil
	case "postgres":
		return documentsRepository.NewPostgreSQLDocumentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// DocumentUseCase returns the document use case instance.
func (c *Container) DocumentUseCase(ctx context.Context) (documentsUsecase.DocumentUseCase, error) {
	c.documentUseCaseInit.Do(func() {
		useCase, err := c.initDocumentUseCase(ctx)
		if err != nil {
			c.initErrors["documentUseCase"] = err
			return
		}
		c.documentUseCase = useCase
	})
	if err, exists := c.initErrors["documentUseCase"]; exists {
		return nil, err
	}
	return c.documentUseCase, nil
}

func (c *Container) initDocumentUseCase(ctx context.Context) (documentsUsecase.DocumentUseCase, error) {
	documentRepo, err := c.DocumentRepository()
	if err != nil {
		return nil, err
	}

	caseRepo, err := c.CaseRepository(ctx)
	if err != nil {
		return nil, err
	}

	fileStore, err := c.FileStore(ctx)
	if err != nil {
		return nil, err
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	return documentsUsecase.NewDocumentUseCaseWithMetrics(
		documentsUsecase.NewDocumentUseCase(documentRepo, caseRepo, fileStore), bm,
	), nil
}
