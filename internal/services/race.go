package services

import (
	"context"
	"strings"
	"time"

	"github.com/c21matthewm/mound-hounds-pickem/internal/errors"
	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
)

// RaceService handles race schedule business logic
type RaceService struct {
	log  logger.Logger
	repo repository.RaceRepository
}

// NewRaceService creates a new RaceService
func NewRaceService(log logger.Logger, repo repository.RaceRepository) *RaceService {
	return &RaceService{log: log, repo: repo}
}

// ListRaces returns the active (non-archived) season schedule
func (s *RaceService) ListRaces(ctx context.Context) ([]models.Race, error) {
	return s.repo.ListRaces(ctx)
}

// ListAllRaces returns every race including archived ones
func (s *RaceService) ListAllRaces(ctx context.Context) ([]models.Race, error) {
	return s.repo.ListAllRaces(ctx)
}

// GetRace returns one race by ID
func (s *RaceService) GetRace(ctx context.Context, id int64) (*models.Race, error) {
	race, err := s.repo.GetRace(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrRaceNotFound
	}
	return race, err
}

func validateRaceSchedule(name string, raceDate, qualifyingStartAt time.Time) error {
	if strings.TrimSpace(name) == "" {
		return errors.Validation("race name cannot be empty")
	}
	if raceDate.IsZero() || qualifyingStartAt.IsZero() {
		return errors.Validation("race date and qualifying start are required")
	}
	if qualifyingStartAt.After(raceDate) {
		return errors.Validation("qualifying must start before the race date")
	}
	return nil
}

// CreateRace adds a race to the season schedule
func (s *RaceService) CreateRace(ctx context.Context, name string, raceDate, qualifyingStartAt time.Time) (int64, error) {
	if err := validateRaceSchedule(name, raceDate, qualifyingStartAt); err != nil {
		return 0, err
	}

	id, err := s.repo.CreateRace(ctx, strings.TrimSpace(name), raceDate, qualifyingStartAt)
	if err != nil {
		return 0, err
	}
	s.log.Info("Created race", "race_id", id, "name", name)
	return id, nil
}

// UpdateRace updates a race's schedule fields
func (s *RaceService) UpdateRace(ctx context.Context, id int64, name string, raceDate, qualifyingStartAt time.Time) error {
	if err := validateRaceSchedule(name, raceDate, qualifyingStartAt); err != nil {
		return err
	}
	if _, err := s.GetRace(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateRace(ctx, id, strings.TrimSpace(name), raceDate, qualifyingStartAt)
}

// SetOfficialSpeed records the official winning average speed used as
// the tiebreak target, or clears it with nil
func (s *RaceService) SetOfficialSpeed(ctx context.Context, id int64, speed *float64) error {
	if speed != nil && *speed <= 0 {
		return errors.Validation("official average speed must be positive")
	}
	race, err := s.GetRace(ctx, id)
	if err != nil {
		return err
	}
	if race.IsArchived {
		return ErrRaceArchived
	}
	return s.repo.SetOfficialAvgSpeed(ctx, id, speed)
}

// ArchiveRace permanently removes a race from the active scoring set.
// Standings already computed from it simply stop including it.
func (s *RaceService) ArchiveRace(ctx context.Context, id int64) error {
	if _, err := s.GetRace(ctx, id); err != nil {
		return err
	}
	if err := s.repo.ArchiveRace(ctx, id); err != nil {
		return err
	}
	s.log.Info("Archived race", "race_id", id)
	return nil
}
