package services

import (
	"context"
	"time"

	"github.com/c21matthewm/mound-hounds-pickem/internal/errors"
	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
)

// PickServiceRepository defines the repository methods needed by PickService
type PickServiceRepository interface {
	repository.PickRepository
	repository.RaceRepository
	repository.DriverRepository
	repository.ProfileRepository
}

// PickService handles pick submission business logic
type PickService struct {
	log  logger.Logger
	repo PickServiceRepository
}

// NewPickService creates a new PickService
func NewPickService(log logger.Logger, repo PickServiceRepository) *PickService {
	return &PickService{log: log, repo: repo}
}

// SubmitPickInput is one participant's full pick sheet for a race
type SubmitPickInput struct {
	ProfileID    string
	RaceID       int64
	AverageSpeed float64
	DriverIDs    [models.NumDriverGroups]int64
}

// SubmitPick validates and saves a pick. Re-submission before the
// qualifying deadline replaces the earlier pick.
func (s *PickService) SubmitPick(ctx context.Context, input SubmitPickInput) error {
	if _, err := s.repo.GetParticipant(ctx, input.ProfileID); err != nil {
		if err == repository.ErrNotFound {
			return ErrParticipantNotFound
		}
		return err
	}

	race, err := s.repo.GetRace(ctx, input.RaceID)
	if err != nil {
		if err == repository.ErrNotFound {
			return ErrRaceNotFound
		}
		return err
	}
	if race.IsArchived {
		return ErrRaceArchived
	}
	if !time.Now().Before(race.QualifyingStartAt) {
		return ErrPicksLocked
	}

	if input.AverageSpeed <= 0 {
		return errors.Validation("average speed must be a positive number")
	}

	// One active driver per group, all six distinct
	seen := make(map[int64]bool, models.NumDriverGroups)
	for group := 1; group <= models.NumDriverGroups; group++ {
		driverID := input.DriverIDs[group-1]
		if seen[driverID] {
			return errors.Validationf("driver %d selected more than once", driverID)
		}
		seen[driverID] = true

		driver, err := s.repo.GetDriver(ctx, driverID)
		if err != nil {
			if err == repository.ErrNotFound {
				return errors.Validationf("unknown driver %d in group %d", driverID, group)
			}
			return err
		}
		if driver.GroupNumber != group {
			return errors.Validationf("driver %s is in group %d, not group %d", driver.Name, driver.GroupNumber, group)
		}
		if !driver.IsActive {
			return errors.Validationf("driver %s is not currently selectable", driver.Name)
		}
	}

	err = s.repo.UpsertPick(ctx, models.Pick{
		ProfileID:    input.ProfileID,
		RaceID:       input.RaceID,
		AverageSpeed: input.AverageSpeed,
		DriverIDs:    input.DriverIDs,
	})
	if err != nil {
		return err
	}

	s.log.Info("Saved pick", "profile_id", input.ProfileID, "race_id", input.RaceID)
	return nil
}

// GetPick returns one participant's pick for a race, or nil if none
// was submitted
func (s *PickService) GetPick(ctx context.Context, profileID string, raceID int64) (*models.Pick, error) {
	p, err := s.repo.GetPick(ctx, profileID, raceID)
	if err == repository.ErrNotFound {
		return nil, nil
	}
	return p, err
}
