package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
	"github.com/c21matthewm/mound-hounds-pickem/internal/testutil"
)

// league is a small fixture: three participants and three drivers per
// group. Picks and results are written straight through the repository
// so tests can build any season state regardless of qualifying locks.
type league struct {
	repo    *repository.Repository
	drivers map[int][]int64
	alice   string
	bob     string
	carol   string
}

func newLeague(t *testing.T) *league {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	return &league{
		repo:    repo,
		drivers: testutil.CreateDriverGroups(t, repo, 3),
		alice:   testutil.CreateParticipant(t, repo, "Alice GP"),
		bob:     testutil.CreateParticipant(t, repo, "Bob GP"),
		carol:   testutil.CreateParticipant(t, repo, "Carol GP"),
	}
}

// sheet returns a full pick sheet using the driver at the same slot in
// every group
func (l *league) sheet(slot int) [models.NumDriverGroups]int64 {
	var ids [models.NumDriverGroups]int64
	for group := 1; group <= models.NumDriverGroups; group++ {
		ids[group-1] = l.drivers[group][slot]
	}
	return ids
}

func (l *league) submitPick(t *testing.T, profileID string, raceID int64, speed float64, slot int) {
	t.Helper()
	err := l.repo.UpsertPick(context.Background(), models.Pick{
		ProfileID:    profileID,
		RaceID:       raceID,
		AverageSpeed: speed,
		DriverIDs:    l.sheet(slot),
	})
	if err != nil {
		t.Fatalf("UpsertPick failed: %v", err)
	}
}

// postResults gives the driver at slot i of every group points[i].
// A sheet(i) pick therefore scores 6*points[i], the group ceiling is
// 6*max(points) and the floor 6*min(points).
func (l *league) postResults(t *testing.T, raceID int64, points [3]int) {
	t.Helper()
	var rows []models.RaceResult
	for group := 1; group <= models.NumDriverGroups; group++ {
		for slot, driverID := range l.drivers[group] {
			rows = append(rows, models.RaceResult{RaceID: raceID, DriverID: driverID, Points: points[slot]})
		}
	}
	if err := l.repo.ReplaceResults(context.Background(), raceID, rows); err != nil {
		t.Fatalf("ReplaceResults failed: %v", err)
	}
}

func (l *league) setOfficialSpeed(t *testing.T, raceID int64, speed float64) {
	t.Helper()
	if err := l.repo.SetOfficialAvgSpeed(context.Background(), raceID, &speed); err != nil {
		t.Fatalf("SetOfficialAvgSpeed failed: %v", err)
	}
}

func (l *league) race(t *testing.T, raceID int64) *models.Race {
	t.Helper()
	race, err := l.repo.GetRace(context.Background(), raceID)
	if err != nil {
		t.Fatalf("GetRace failed: %v", err)
	}
	return race
}

// scheduleDue sets a race's auto-finalization eligibility in the past so
// FinalizeDue will select it
func (l *league) scheduleDue(t *testing.T, raceID int64) {
	t.Helper()
	ok, err := l.repo.ScheduleWinnerAuto(context.Background(), raceID, time.Now().Add(-time.Minute))
	if err != nil || !ok {
		t.Fatalf("ScheduleWinnerAuto failed: ok=%v err=%v", ok, err)
	}
}
