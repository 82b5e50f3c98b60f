package app

import (
	"fmt"

	timelineRepository "github.com/tribunatech/casevault/internal/timeline/repository"
	timelineUsecase "github.com/tribunatech/casevault/internal/timeline/usecase"
)

// TimelineRepository returns the timeline repository based on the database driver.
func (c *Container) TimelineRepository() (timelineUsecase.TimelineRepository, error) {
	c.timelineRepoInit.Do(func() {
		repo, err := c.initTimelineRepository()
		if err != nil {
			c.initErrors["timelineRepo"] = err
			return
		}
		c.timelineRepo = repo
	})
	if err, exists := c.initErrors["timelineRepo"]; exists {
		return nil, err
	}
	return c.timelineRepo, nil
}

func (c *Container) initTimelineRepository() (timelineUsecase.TimelineRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for timeline repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return timelineRepository.NewMySQLTimelineRepository(db), nil
	case "postgres":
		return timelineRepository.NewPostgreSQLTimelineRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// TimelineUseCase returns the timeline use case instance.
func (c *Container) TimelineUseCase() (timelineUsecase.TimelineUseCase, error) {
	c.timelineUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["timelineUseCase"] = fmt.Errorf("failed to get tx manager for timeline use case: %w", err)
			return
		}

		repo, err := c.TimelineRepository()
		if err != nil {
			c.initErrors["timelineUseCase"] = err
			return
		}

		bm, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["timelineUseCase"] = err
			return
		}

		c.timelineUseCase = timelineUsecase.NewTimelineUseCaseWithMetrics(
			timelineUsecase.NewTimelineUseCase(txManager, repo), bm,
		)
	})
	if err, exists := c.initErrors["timelineUseCase"]; exists {
		return nil, err
	}
	return c.timelineUseCase, nil
}
