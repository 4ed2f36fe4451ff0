package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
)

// NewTestRepository creates a new in-memory repository for testing.
// Each call creates a fresh database with all migrations applied.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})

	return repo
}

// CreateParticipant inserts a participant with a fresh profile ID and
// returns that ID.
func CreateParticipant(t *testing.T, repo *repository.Repository, teamName string) string {
	t.Helper()

	id := uuid.NewString()
	err := repo.CreateParticipant(context.Background(), models.Participant{
		ProfileID:       id,
		TeamName:        teamName,
		Role:            "participant",
		ProfileComplete: true,
	})
	if err != nil {
		t.Fatalf("failed to create participant %q: %v", teamName, err)
	}
	return id
}

// CreateRace inserts a race dated relative to now and returns its ID.
// Qualifying starts an hour before the race date.
func CreateRace(t *testing.T, repo *repository.Repository, name string, daysFromNow int) int64 {
	t.Helper()

	raceDate := time.Now().AddDate(0, 0, daysFromNow)
	id, err := repo.CreateRace(context.Background(), name, raceDate, raceDate.Add(-time.Hour))
	if err != nil {
		t.Fatalf("failed to create race %q: %v", name, err)
	}
	return id
}

// CreateDriverGroups inserts n drivers per group and returns driver IDs
// keyed by group number.
func CreateDriverGroups(t *testing.T, repo *repository.Repository, perGroup int) map[int][]int64 {
	t.Helper()

	ids := make(map[int][]int64, models.NumDriverGroups)
	for group := 1; group <= models.NumDriverGroups; group++ {
		for i := 0; i < perGroup; i++ {
			name := driverName(group, i)
			id, err := repo.CreateDriver(context.Background(), name, group)
			if err != nil {
				t.Fatalf("failed to create driver %q: %v", name, err)
			}
			ids[group] = append(ids[group], id)
		}
	}
	return ids
}

func driverName(group, n int) string {
	return "Driver " + string(rune('A'+n)) + "-" + string(rune('0'+group))
}
