package services

import (
	"context"
	"time"

	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
	"github.com/c21matthewm/mound-hounds-pickem/internal/scoring"
)

// WinnerServiceRepository defines the repository methods needed by WinnerService
type WinnerServiceRepository interface {
	repository.RaceRepository
	repository.PickRepository
	repository.ResultRepository
	repository.ProfileRepository
}

// WinnerService drives the deferred fantasy-winner finalization workflow.
// Winner state per race moves between: no winner, auto pending (eligibility
// timestamp set), auto set, and manual set.
type WinnerService struct {
	log      logger.Logger
	repo     WinnerServiceRepository
	settings SettingsServicer
}

// NewWinnerService creates a new WinnerService
func NewWinnerService(log logger.Logger, repo WinnerServiceRepository, settings SettingsServicer) *WinnerService {
	return &WinnerService{log: log, repo: repo, settings: settings}
}

// FinalizeOutcome reports the winner decision for one race
type FinalizeOutcome struct {
	RaceID          int64   `json:"race_id"`
	WinnerProfileID *string `json:"winner_profile_id"`
}

// ScheduleAutoCalculation marks a race for auto-finalization after the
// configured delay and clears any manual override. Called every time
// results are saved for a race.
func (s *WinnerService) ScheduleAutoCalculation(ctx context.Context, raceID int64) error {
	delay, err := s.settings.WinnerDelay(ctx)
	if err != nil {
		return err
	}

	ok, err := s.repo.ScheduleWinnerAuto(ctx, raceID, time.Now().Add(delay))
	if err != nil {
		return err
	}
	if !ok {
		return s.rejectReason(ctx, raceID)
	}

	s.log.Info("Scheduled winner auto-calculation", "race_id", raceID, "delay", delay)
	return nil
}

// FinalizeNow computes and persists the fantasy winner for one race.
// The winner is the tiebreak-ordered top participant among scored picks;
// a race with zero picks finalizes with a nil winner. The archived guard
// is enforced by the conditional persist, so a concurrent archive cannot
// produce a winner on an archived race.
func (s *WinnerService) FinalizeNow(ctx context.Context, raceID int64) (*FinalizeOutcome, error) {
	race, err := s.repo.GetRace(ctx, raceID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrRaceNotFound
		}
		return nil, err
	}
	if race.IsArchived {
		return nil, ErrRaceArchived
	}

	winner, err := s.computeWinner(ctx, race)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.SetAutoWinner(ctx, raceID, winner, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		// Race was archived between the read and the write
		return nil, ErrRaceArchived
	}

	if winner != nil {
		s.log.Info("Finalized fantasy winner", "race_id", raceID, "winner_profile_id", *winner)
	} else {
		s.log.Info("Finalized fantasy winner", "race_id", raceID, "winner_profile_id", "none")
	}
	return &FinalizeOutcome{RaceID: raceID, WinnerProfileID: winner}, nil
}

// computeWinner scores every posted pick for the race and returns the
// tiebreak-ordered top participant, or nil when nobody picked.
func (s *WinnerService) computeWinner(ctx context.Context, race *models.Race) (*string, error) {
	picks, err := s.repo.ListPicksForRace(ctx, race.ID)
	if err != nil {
		return nil, err
	}
	if len(picks) == 0 {
		return nil, nil
	}

	results, err := s.repo.ListResultsForRace(ctx, race.ID)
	if err != nil {
		return nil, err
	}
	resultsByDriver := scoring.ResultsByDriver(results)

	participants, err := s.repo.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	teamNames := make(map[string]string, len(participants))
	for _, p := range participants {
		teamNames[p.ProfileID] = p.TeamName
	}

	entries := make([]scoring.Entry, 0, len(picks))
	for _, pick := range picks {
		guess := pick.AverageSpeed
		entries = append(entries, scoring.Entry{
			ProfileID: pick.ProfileID,
			Name:      teamNames[pick.ProfileID],
			Points:    scoring.ScorePick(pick, resultsByDriver),
			Guess:     &guess,
		})
	}

	ordered := scoring.Order(entries, race.OfficialAvgSpeed)
	winner := ordered[0].ProfileID
	return &winner, nil
}

// FinalizeDue processes every race whose eligibility timestamp has
// passed, oldest-eligible first, bounded by the configured batch size.
// Races already finalized have a cleared timestamp and are not selected,
// so re-running with nothing newly due is a no-op.
func (s *WinnerService) FinalizeDue(ctx context.Context) (int, error) {
	batchSize, err := s.settings.FinalizeBatchSize(ctx)
	if err != nil {
		return 0, err
	}

	due, err := s.repo.ListDueWinnerRaces(ctx, time.Now(), batchSize)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, race := range due {
		if _, err := s.FinalizeNow(ctx, race.ID); err != nil {
			// A race archived since selection is skipped, anything else
			// stops the batch with the count completed so far
			if err == ErrRaceArchived {
				continue
			}
			return processed, err
		}
		processed++
	}

	if processed > 0 {
		s.log.Info("Finalized due fantasy winners", "processed", processed)
	}
	return processed, nil
}

// SetManualWinner overrides the fantasy winner for a race. The override
// is permanent: auto-finalization skips the race until an admin requests
// a recompute.
func (s *WinnerService) SetManualWinner(ctx context.Context, raceID int64, profileID string) error {
	if _, err := s.repo.GetParticipant(ctx, profileID); err != nil {
		if err == repository.ErrNotFound {
			return ErrParticipantNotFound
		}
		return err
	}

	ok, err := s.repo.SetManualWinner(ctx, raceID, profileID, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return s.rejectReason(ctx, raceID)
	}

	s.log.Info("Set manual fantasy winner", "race_id", raceID, "winner_profile_id", profileID)
	return nil
}

// RequestAutoCalculation clears a manual override by recomputing the
// winner immediately rather than merely rescheduling
func (s *WinnerService) RequestAutoCalculation(ctx context.Context, raceID int64) (*FinalizeOutcome, error) {
	return s.FinalizeNow(ctx, raceID)
}

// rejectReason distinguishes a missing race from an archived one after a
// conditional write matched no row
func (s *WinnerService) rejectReason(ctx context.Context, raceID int64) error {
	if _, err := s.repo.GetRace(ctx, raceID); err != nil {
		if err == repository.ErrNotFound {
			return ErrRaceNotFound
		}
		return err
	}
	return ErrRaceArchived
}
