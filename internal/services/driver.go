package services

import (
	"context"
	"strings"

	"github.com/c21matthewm/mound-hounds-pickem/internal/errors"
	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
)

// DriverService handles driver pool business logic
type DriverService struct {
	log  logger.Logger
	repo repository.DriverRepository
}

// NewDriverService creates a new DriverService
func NewDriverService(log logger.Logger, repo repository.DriverRepository) *DriverService {
	return &DriverService{log: log, repo: repo}
}

// ListDrivers returns all drivers including inactive ones
func (s *DriverService) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	return s.repo.ListDrivers(ctx)
}

// ListActiveDrivers returns the drivers currently selectable in picks
func (s *DriverService) ListActiveDrivers(ctx context.Context) ([]models.Driver, error) {
	return s.repo.ListActiveDrivers(ctx)
}

// GetDriver returns one driver by ID
func (s *DriverService) GetDriver(ctx context.Context, id int64) (*models.Driver, error) {
	d, err := s.repo.GetDriver(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrDriverNotFound
	}
	return d, err
}

// CreateDriver adds a driver to one of the six groups
func (s *DriverService) CreateDriver(ctx context.Context, name string, groupNumber int) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.Validation("driver name cannot be empty")
	}
	if groupNumber < 1 || groupNumber > models.NumDriverGroups {
		return 0, &InvalidGroupError{Group: groupNumber}
	}

	id, err := s.repo.CreateDriver(ctx, name, groupNumber)
	if err != nil {
		return 0, err
	}
	s.log.Info("Created driver", "driver_id", id, "name", name, "group", groupNumber)
	return id, nil
}

// UpdateDriver updates a driver's name, group, or active flag.
// Deactivating a driver only blocks new picks; historical picks and
// results that reference the driver keep scoring.
func (s *DriverService) UpdateDriver(ctx context.Context, id int64, name string, groupNumber int, isActive bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.Validation("driver name cannot be empty")
	}
	if groupNumber < 1 || groupNumber > models.NumDriverGroups {
		return &InvalidGroupError{Group: groupNumber}
	}
	if _, err := s.GetDriver(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateDriver(ctx, id, name, groupNumber, isActive)
}
