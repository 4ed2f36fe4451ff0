package services

import (
	"context"

	"github.com/c21matthewm/mound-hounds-pickem/internal/errors"
	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
)

// ResultServiceRepository defines the repository methods needed by ResultService
type ResultServiceRepository interface {
	repository.ResultRepository
	repository.RaceRepository
	repository.DriverRepository
}

// ResultService handles race result entry business logic
type ResultService struct {
	log    logger.Logger
	repo   ResultServiceRepository
	winner WinnerServicer
}

// NewResultService creates a new ResultService
func NewResultService(log logger.Logger, repo ResultServiceRepository, winner WinnerServicer) *ResultService {
	return &ResultService{log: log, repo: repo, winner: winner}
}

// ResultEntry is one driver's posted points for a race
type ResultEntry struct {
	DriverID int64 `json:"driver_id"`
	Points   int   `json:"points"`
}

// SaveResults replaces a race's posted results and schedules winner
// auto-calculation. Saving an empty set moves the race back to
// "results not posted".
func (s *ResultService) SaveResults(ctx context.Context, raceID int64, entries []ResultEntry) error {
	race, err := s.repo.GetRace(ctx, raceID)
	if err != nil {
		if err == repository.ErrNotFound {
			return ErrRaceNotFound
		}
		return err
	}
	if race.IsArchived {
		return ErrRaceArchived
	}

	seen := make(map[int64]bool, len(entries))
	rows := make([]models.RaceResult, 0, len(entries))
	for _, entry := range entries {
		if entry.Points < 0 {
			return errors.Validationf("points for driver %d cannot be negative", entry.DriverID)
		}
		if seen[entry.DriverID] {
			return errors.Validationf("duplicate result for driver %d", entry.DriverID)
		}
		seen[entry.DriverID] = true

		if _, err := s.repo.GetDriver(ctx, entry.DriverID); err != nil {
			if err == repository.ErrNotFound {
				return errors.Validationf("unknown driver %d", entry.DriverID)
			}
			return err
		}
		rows = append(rows, models.RaceResult{RaceID: raceID, DriverID: entry.DriverID, Points: entry.Points})
	}

	if err := s.repo.ReplaceResults(ctx, raceID, rows); err != nil {
		return err
	}

	s.log.Info("Saved race results", "race_id", raceID, "drivers", len(rows))

	if len(rows) == 0 {
		return nil
	}
	return s.winner.ScheduleAutoCalculation(ctx, raceID)
}

// GetResults returns a race's posted results
func (s *ResultService) GetResults(ctx context.Context, raceID int64) ([]models.RaceResult, error) {
	if _, err := s.repo.GetRace(ctx, raceID); err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrRaceNotFound
		}
		return nil, err
	}
	return s.repo.ListResultsForRace(ctx, raceID)
}

// ResultsPosted reports whether a race has any posted results
func (s *ResultService) ResultsPosted(ctx context.Context, raceID int64) (bool, error) {
	count, err := s.repo.CountResultsForRace(ctx, raceID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
