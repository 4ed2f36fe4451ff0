package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/c21matthewm/mound-hounds-pickem/internal/auth"
	"github.com/c21matthewm/mound-hounds-pickem/internal/handlers"
	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
	"github.com/c21matthewm/mound-hounds-pickem/internal/services"
)

// testSetup creates all the dependencies needed for testing handlers
type testSetup struct {
	repo       *repository.Repository
	handlers   *handlers.Handlers
	router     chi.Router
	authCookie *http.Cookie
	settings   *services.SettingsService
}

// newTestSetup creates a new test setup with in-memory repository
func newTestSetup(t *testing.T) *testSetup {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	log := logger.New()

	settingsService := services.NewSettingsService(log, repo)
	participantService := services.NewParticipantService(log, repo)
	raceService := services.NewRaceService(log, repo)
	driverService := services.NewDriverService(log, repo)
	pickService := services.NewPickService(log, repo)
	winnerService := services.NewWinnerService(log, repo, settingsService)
	resultService := services.NewResultService(log, repo, winnerService)
	leaderboardService := services.NewLeaderboardService(log, repo)
	picksViewService := services.NewPicksViewService(log, repo)
	analyticsService := services.NewAnalyticsService(log, repo, settingsService)
	seedService := services.NewSeedService(log, repo, winnerService)

	h := handlers.NewForTesting(
		participantService,
		raceService,
		driverService,
		pickService,
		resultService,
		winnerService,
		leaderboardService,
		picksViewService,
		analyticsService,
		settingsService,
		seedService,
	)

	// Login to get a session cookie for authenticated requests
	token, _ := h.Auth.Login("test-password")
	authCookie := &http.Cookie{
		Name:  auth.CookieName,
		Value: token,
	}

	return &testSetup{
		repo:       repo,
		handlers:   h,
		router:     h.Router(),
		authCookie: authCookie,
		settings:   settingsService,
	}
}

// authRequest adds the auth cookie to a request
func (ts *testSetup) authRequest(req *http.Request) *http.Request {
	req.AddCookie(ts.authCookie)
	return req
}

// createDriverSet creates two drivers per group and returns driver IDs
// keyed by group
func (ts *testSetup) createDriverSet(t *testing.T) map[int][]int64 {
	t.Helper()
	ctx := context.Background()

	drivers := make(map[int][]int64, models.NumDriverGroups)
	for group := 1; group <= models.NumDriverGroups; group++ {
		for slot := 0; slot < 2; slot++ {
			name := "Driver " + string(rune('A'+group-1)) + "-" + string(rune('1'+slot))
			id, err := ts.repo.CreateDriver(ctx, name, group)
			if err != nil {
				t.Fatalf("failed to create driver: %v", err)
			}
			drivers[group] = append(drivers[group], id)
		}
	}
	return drivers
}

// sheet builds a pick sheet from the slot-th driver of each group
func sheet(drivers map[int][]int64, slot int) [models.NumDriverGroups]int64 {
	var ids [models.NumDriverGroups]int64
	for group := 1; group <= models.NumDriverGroups; group++ {
		ids[group-1] = drivers[group][slot]
	}
	return ids
}

// createRace creates a race the given number of days out, with
// qualifying a day before the race
func (ts *testSetup) createRace(t *testing.T, name string, daysOut int) int64 {
	t.Helper()

	raceDate := time.Now().Add(time.Duration(daysOut) * 24 * time.Hour)
	id, err := ts.repo.CreateRace(context.Background(), name, raceDate, raceDate.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("failed to create race: %v", err)
	}
	return id
}

// createParticipant registers a participant directly in the repository
func (ts *testSetup) createParticipant(t *testing.T, profileID, teamName string) {
	t.Helper()

	p := models.Participant{ProfileID: profileID, TeamName: teamName, Role: "participant", ProfileComplete: true}
	if err := ts.repo.CreateParticipant(context.Background(), p); err != nil {
		t.Fatalf("failed to create participant: %v", err)
	}
}

// submitPick stores a pick directly in the repository
func (ts *testSetup) submitPick(t *testing.T, profileID string, raceID int64, speed float64, driverIDs [models.NumDriverGroups]int64) {
	t.Helper()

	p := models.Pick{
		ProfileID:    profileID,
		RaceID:       raceID,
		AverageSpeed: speed,
		DriverIDs:    driverIDs,
		SubmittedAt:  time.Now(),
	}
	if err := ts.repo.UpsertPick(context.Background(), p); err != nil {
		t.Fatalf("failed to submit pick: %v", err)
	}
}

// postResults posts the given points for each driver in a sheet
func (ts *testSetup) postResults(t *testing.T, raceID int64, drivers map[int][]int64, slotPoints []int) {
	t.Helper()

	var rows []models.RaceResult
	for group := 1; group <= models.NumDriverGroups; group++ {
		for slot, points := range slotPoints {
			rows = append(rows, models.RaceResult{RaceID: raceID, DriverID: drivers[group][slot], Points: points})
		}
	}
	if err := ts.repo.ReplaceResults(context.Background(), raceID, rows); err != nil {
		t.Fatalf("failed to post results: %v", err)
	}
}
