package services

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
)

// SeedServiceRepository defines the repository methods needed by SeedService
type SeedServiceRepository interface {
	repository.ProfileRepository
	repository.RaceRepository
	repository.DriverRepository
	repository.PickRepository
	repository.ResultRepository
}

// SeedService populates the league with demo data for local development
type SeedService struct {
	log    logger.Logger
	repo   SeedServiceRepository
	winner WinnerServicer
}

// NewSeedService creates a new SeedService
func NewSeedService(log logger.Logger, repo SeedServiceRepository, winner WinnerServicer) *SeedService {
	return &SeedService{log: log, repo: repo, winner: winner}
}

// SeedResult reports what demo data was created
type SeedResult struct {
	Participants int `json:"participants"`
	Drivers      int `json:"drivers"`
	Races        int `json:"races"`
	Picks        int `json:"picks"`
	ScoredRaces  int `json:"scored_races"`
}

const (
	seedParticipants    = 12
	seedDriversPerGroup = 4
	seedRaces           = 6
	seedScoredRaces     = 4
)

// SeedDemoData creates a demo league: participants, a six-group driver
// pool, a short season, picks for every participant, and posted results
// for the earlier races. Later races stay unscored so every view state
// is visible.
func (s *SeedService) SeedDemoData(ctx context.Context) (*SeedResult, error) {
	faker := gofakeit.New(0)
	result := &SeedResult{}

	var profileIDs []string
	for i := 0; i < seedParticipants; i++ {
		id := uuid.NewString()
		teamName := fmt.Sprintf("%s %s", faker.AdjectiveDescriptive(), faker.Animal())
		err := s.repo.CreateParticipant(ctx, models.Participant{
			ProfileID:       id,
			TeamName:        teamName,
			Role:            "participant",
			ProfileComplete: true,
		})
		if err != nil {
			return nil, err
		}
		profileIDs = append(profileIDs, id)
		result.Participants++
	}

	driversByGroup := make(map[int][]int64, models.NumDriverGroups)
	for group := 1; group <= models.NumDriverGroups; group++ {
		for i := 0; i < seedDriversPerGroup; i++ {
			id, err := s.repo.CreateDriver(ctx, faker.Name(), group)
			if err != nil {
				return nil, err
			}
			driversByGroup[group] = append(driversByGroup[group], id)
			result.Drivers++
		}
	}

	// Scored races sit in the past, the rest upcoming with open picks
	now := time.Now()
	var raceIDs []int64
	for i := 0; i < seedRaces; i++ {
		weeksOut := i - seedScoredRaces + 1
		raceDate := now.AddDate(0, 0, 7*weeksOut)
		name := fmt.Sprintf("%s %d", faker.City(), 100*(faker.Number(2, 6)))
		id, err := s.repo.CreateRace(ctx, name, raceDate, raceDate.Add(-26*time.Hour))
		if err != nil {
			return nil, err
		}
		raceIDs = append(raceIDs, id)
		result.Races++
	}

	for raceIdx, raceID := range raceIDs {
		// The odd participant out skips a pick so fallback scoring shows up
		for i, profileID := range profileIDs {
			if (i+raceIdx)%seedParticipants == 0 {
				continue
			}
			var driverIDs [models.NumDriverGroups]int64
			for group := 1; group <= models.NumDriverGroups; group++ {
				pool := driversByGroup[group]
				driverIDs[group-1] = pool[faker.Number(0, len(pool)-1)]
			}
			err := s.repo.UpsertPick(ctx, models.Pick{
				ProfileID:    profileID,
				RaceID:       raceID,
				AverageSpeed: faker.Float64Range(150, 200),
				DriverIDs:    driverIDs,
			})
			if err != nil {
				return nil, err
			}
			result.Picks++
		}
	}

	for raceIdx := 0; raceIdx < seedScoredRaces; raceIdx++ {
		raceID := raceIDs[raceIdx]
		var rows []models.RaceResult
		for group := 1; group <= models.NumDriverGroups; group++ {
			for _, driverID := range driversByGroup[group] {
				rows = append(rows, models.RaceResult{
					RaceID:   raceID,
					DriverID: driverID,
					Points:   faker.Number(0, 45),
				})
			}
		}
		if err := s.repo.ReplaceResults(ctx, raceID, rows); err != nil {
			return nil, err
		}

		speed := faker.Float64Range(150, 200)
		if err := s.repo.SetOfficialAvgSpeed(ctx, raceID, &speed); err != nil {
			return nil, err
		}

		if _, err := s.winner.FinalizeNow(ctx, raceID); err != nil {
			return nil, err
		}
		result.ScoredRaces++
	}

	s.log.Info("Seeded demo league",
		"participants", result.Participants,
		"drivers", result.Drivers,
		"races", result.Races,
		"picks", result.Picks,
		"scored_races", result.ScoredRaces)
	return result, nil
}
