package repository

import (
	"context"
	"testing"
	"time"

	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
)

// newTestRepo creates a new in-memory repository for testing.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func createProfile(t *testing.T, repo *Repository, id, teamName string) {
	t.Helper()
	err := repo.CreateParticipant(context.Background(), models.Participant{
		ProfileID:       id,
		TeamName:        teamName,
		Role:            "participant",
		ProfileComplete: true,
	})
	if err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}
}

func createRace(t *testing.T, repo *Repository, name string) int64 {
	t.Helper()
	raceDate := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	id, err := repo.CreateRace(context.Background(), name, raceDate, raceDate.Add(-time.Hour))
	if err != nil {
		t.Fatalf("CreateRace failed: %v", err)
	}
	return id
}

// ==================== Profile Tests ====================

func TestListParticipants_Empty(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	participants, err := repo.ListParticipants(ctx)
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(participants) != 0 {
		t.Errorf("expected 0 participants, got %d", len(participants))
	}
}

func TestListParticipants_OrderedByTeamName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	createProfile(t, repo, "p-1", "Zebra Racing")
	createProfile(t, repo, "p-2", "Apex Crew")
	createProfile(t, repo, "p-3", "Midfield Mayhem")

	participants, err := repo.ListParticipants(ctx)
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(participants) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(participants))
	}
	if participants[0].TeamName != "Apex Crew" || participants[2].TeamName != "Zebra Racing" {
		t.Errorf("expected alphabetical order, got %q, %q, %q",
			participants[0].TeamName, participants[1].TeamName, participants[2].TeamName)
	}
}

func TestListParticipants_ExcludesIncompleteProfiles(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	createProfile(t, repo, "p-done", "Finished")
	err := repo.CreateParticipant(ctx, models.Participant{
		ProfileID: "p-pending", TeamName: "", Role: "participant", ProfileComplete: false,
	})
	if err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}

	participants, err := repo.ListParticipants(ctx)
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(participants) != 1 {
		t.Fatalf("expected 1 participant, got %d", len(participants))
	}
	if participants[0].ProfileID != "p-done" {
		t.Errorf("expected p-done, got %q", participants[0].ProfileID)
	}
}

func TestGetParticipant_NonExistent(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetParticipant(context.Background(), "nope")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateParticipant_Basic(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	createProfile(t, repo, "p-1", "Original Team")

	err := repo.UpdateParticipant(ctx, models.Participant{
		ProfileID: "p-1", TeamName: "Renamed Team", Role: "admin", ProfileComplete: true,
	})
	if err != nil {
		t.Fatalf("UpdateParticipant failed: %v", err)
	}

	p, err := repo.GetParticipant(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetParticipant failed: %v", err)
	}
	if p.TeamName != "Renamed Team" {
		t.Errorf("expected team name 'Renamed Team', got %q", p.TeamName)
	}
	if p.Role != "admin" {
		t.Errorf("expected role 'admin', got %q", p.Role)
	}
}

// ==================== Race Tests ====================

func TestCreateRace_Basic(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := createRace(t, repo, "Thunder Valley 400")

	race, err := repo.GetRace(ctx, id)
	if err != nil {
		t.Fatalf("GetRace failed: %v", err)
	}
	if race.Name != "Thunder Valley 400" {
		t.Errorf("expected name 'Thunder Valley 400', got %q", race.Name)
	}
	if race.IsArchived {
		t.Error("expected new race to not be archived")
	}
	if race.WinnerProfileID != nil {
		t.Error("expected no winner on new race")
	}
	if race.OfficialAvgSpeed != nil {
		t.Error("expected no official speed on new race")
	}
}

func TestGetRace_NonExistent(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetRace(context.Background(), 99999)
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetOfficialAvgSpeed_SetAndClear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := createRace(t, repo, "Speedway")

	speed := 178.456
	if err := repo.SetOfficialAvgSpeed(ctx, id, &speed); err != nil {
		t.Fatalf("SetOfficialAvgSpeed failed: %v", err)
	}

	race, _ := repo.GetRace(ctx, id)
	if race.OfficialAvgSpeed == nil || *race.OfficialAvgSpeed != speed {
		t.Errorf("expected official speed %v, got %v", speed, race.OfficialAvgSpeed)
	}

	if err := repo.SetOfficialAvgSpeed(ctx, id, nil); err != nil {
		t.Fatalf("SetOfficialAvgSpeed clear failed: %v", err)
	}
	race, _ = repo.GetRace(ctx, id)
	if race.OfficialAvgSpeed != nil {
		t.Errorf("expected nil official speed after clear, got %v", race.OfficialAvgSpeed)
	}
}

func TestArchiveRace_RemovesFromActiveListAndCancelsAuto(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := createRace(t, repo, "Doomed Race")
	if _, err := repo.ScheduleWinnerAuto(ctx, id, time.Now().Add(15*time.Minute)); err != nil {
		t.Fatalf("ScheduleWinnerAuto failed: %v", err)
	}

	if err := repo.ArchiveRace(ctx, id); err != nil {
		t.Fatalf("ArchiveRace failed: %v", err)
	}

	races, err := repo.ListRaces(ctx)
	if err != nil {
		t.Fatalf("ListRaces failed: %v", err)
	}
	if len(races) != 0 {
		t.Errorf("expected 0 active races after archive, got %d", len(races))
	}

	race, _ := repo.GetRace(ctx, id)
	if !race.IsArchived {
		t.Error("expected race to be archived")
	}
	if race.WinnerAutoEligibleAt != nil {
		t.Error("expected archive to cancel pending auto-calculation")
	}

	all, err := repo.ListAllRaces(ctx)
	if err != nil {
		t.Fatalf("ListAllRaces failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected archived race in full list, got %d races", len(all))
	}
}

func TestScheduleWinnerAuto_ArchivedRaceRejected(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := createRace(t, repo, "Archived")
	_ = repo.ArchiveRace(ctx, id)

	ok, err := repo.ScheduleWinnerAuto(ctx, id, time.Now())
	if err != nil {
		t.Fatalf("ScheduleWinnerAuto failed: %v", err)
	}
	if ok {
		t.Error("expected schedule to be rejected on archived race")
	}
}

func TestScheduleWinnerAuto_ClearsManualOverride(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := createRace(t, repo, "Override Then Reschedule")
	createProfile(t, repo, "p-1", "Team One")

	if _, err := repo.SetManualWinner(ctx, id, "p-1", time.Now()); err != nil {
		t.Fatalf("SetManualWinner failed: %v", err)
	}
	race, _ := repo.GetRace(ctx, id)
	if !race.WinnerManualOverride {
		t.Fatal("expected manual override flag set")
	}

	if _, err := repo.ScheduleWinnerAuto(ctx, id, time.Now()); err != nil {
		t.Fatalf("ScheduleWinnerAuto failed: %v", err)
	}
	race, _ = repo.GetRace(ctx, id)
	if race.WinnerManualOverride {
		t.Error("expected reschedule to clear manual override")
	}
	if race.WinnerAutoEligibleAt == nil {
		t.Error("expected eligibility timestamp to be set")
	}
}

func TestSetAutoWinner_Basic(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := createRace(t, repo, "Auto Winner Race")
	createProfile(t, repo, "p-win", "Winners")
	_, _ = repo.ScheduleWinnerAuto(ctx, id, time.Now())

	winner := "p-win"
	setAt := time.Now()
	ok, err := repo.SetAutoWinner(ctx, id, &winner, setAt)
	if err != nil {
		t.Fatalf("SetAutoWinner failed: %v", err)
	}
	if !ok {
		t.Fatal("expected winner write to apply")
	}

	race, _ := repo.GetRace(ctx, id)
	if race.WinnerProfileID == nil || *race.WinnerProfileID != "p-win" {
		t.Errorf("expected winner p-win, got %v", race.WinnerProfileID)
	}
	if race.WinnerSource != models.WinnerSourceAuto {
		t.Errorf("expected winner source auto, got %q", race.WinnerSource)
	}
	if race.WinnerAutoEligibleAt != nil {
		t.Error("expected eligibility timestamp cleared after finalize")
	}
	if race.WinnerSetAt == nil {
		t.Error("expected winner_set_at recorded")
	}
}

func TestSetAutoWinner_NilProfileForNoPicksRace(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := createRace(t, repo, "Ghost Race")
	ok, err := repo.SetAutoWinner(ctx, id, nil, time.Now())
	if err != nil {
		t.Fatalf("SetAutoWinner failed: %v", err)
	}
	if !ok {
		t.Fatal("expected winner write to apply")
	}

	race, _ := repo.GetRace(ctx, id)
	if race.WinnerProfileID != nil {
		t.Errorf("expected nil winner, got %v", race.WinnerProfileID)
	}
	if race.WinnerSource != models.WinnerSourceAuto {
		t.Errorf("expected winner source auto, got %q", race.WinnerSource)
	}
}

func TestSetAutoWinner_ArchivedRaceRejected(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := createRace(t, repo, "Archived")
	_ = repo.ArchiveRace(ctx, id)

	winner := "p-1"
	ok, err := repo.SetAutoWinner(ctx, id, &winner, time.Now())
	if err != nil {
		t.Fatalf("SetAutoWinner failed: %v", err)
	}
	if ok {
		t.Error("expected winner write to be rejected on archived race")
	}
}

func TestSetManualWinner_SetsOverride(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := createRace(t, repo, "Manual Race")
	createProfile(t, repo, "p-1", "Team One")
	_, _ = repo.ScheduleWinnerAuto(ctx, id, time.Now())

	ok, err := repo.SetManualWinner(ctx, id, "p-1", time.Now())
	if err != nil {
		t.Fatalf("SetManualWinner failed: %v", err)
	}
	if !ok {
		t.Fatal("expected winner write to apply")
	}

	race, _ := repo.GetRace(ctx, id)
	if race.WinnerProfileID == nil || *race.WinnerProfileID != "p-1" {
		t.Errorf("expected winner p-1, got %v", race.WinnerProfileID)
	}
	if race.WinnerSource != models.WinnerSourceManual {
		t.Errorf("expected winner source manual, got %q", race.WinnerSource)
	}
	if !race.WinnerManualOverride {
		t.Error("expected manual override flag set")
	}
	if race.WinnerAutoEligibleAt != nil {
		t.Error("expected pending auto-calculation cancelled by manual winner")
	}
}

func TestListDueWinnerRaces_OnlyDueNonOverridden(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	now := time.Now()
	dueID := createRace(t, repo, "Due Race")
	futureID := createRace(t, repo, "Future Race")
	manualID := createRace(t, repo, "Manual Race")
	createProfile(t, repo, "p-1", "Team One")

	_, _ = repo.ScheduleWinnerAuto(ctx, dueID, now.Add(-time.Minute))
	_, _ = repo.ScheduleWinnerAuto(ctx, futureID, now.Add(time.Hour))
	_, _ = repo.ScheduleWinnerAuto(ctx, manualID, now.Add(-time.Minute))
	_, _ = repo.SetManualWinner(ctx, manualID, "p-1", now)

	due, err := repo.ListDueWinnerRaces(ctx, now, 100)
	if err != nil {
		t.Fatalf("ListDueWinnerRaces failed: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected 1 due race, got %d", len(due))
	}
	if due[0].ID != dueID {
		t.Errorf("expected due race %d, got %d", dueID, due[0].ID)
	}
}

func TestListDueWinnerRaces_RespectsLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 5; i++ {
		id := createRace(t, repo, "Race")
		_, _ = repo.ScheduleWinnerAuto(ctx, id, now.Add(-time.Minute))
	}

	due, err := repo.ListDueWinnerRaces(ctx, now, 3)
	if err != nil {
		t.Fatalf("ListDueWinnerRaces failed: %v", err)
	}
	if len(due) != 3 {
		t.Errorf("expected limit of 3 due races, got %d", len(due))
	}
}

func TestListRacesWithResults_RequiresPostedResults(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	scoredID := createRace(t, repo, "Scored Race")
	_ = createRace(t, repo, "Unscored Race")
	driverID, _ := repo.CreateDriver(ctx, "Dale Sr", 1)

	err := repo.ReplaceResults(ctx, scoredID, []models.RaceResult{
		{RaceID: scoredID, DriverID: driverID, Points: 40},
	})
	if err != nil {
		t.Fatalf("ReplaceResults failed: %v", err)
	}

	races, err := repo.ListRacesWithResults(ctx)
	if err != nil {
		t.Fatalf("ListRacesWithResults failed: %v", err)
	}
	if len(races) != 1 {
		t.Fatalf("expected 1 race with results, got %d", len(races))
	}
	if races[0].ID != scoredID {
		t.Errorf("expected race %d, got %d", scoredID, races[0].ID)
	}
}

// ==================== Driver Tests ====================

func TestCreateDriver_Basic(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateDriver(ctx, "Ricky Bobby", 3)
	if err != nil {
		t.Fatalf("CreateDriver failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("expected positive ID, got %d", id)
	}

	d, err := repo.GetDriver(ctx, id)
	if err != nil {
		t.Fatalf("GetDriver failed: %v", err)
	}
	if d.Name != "Ricky Bobby" {
		t.Errorf("expected name 'Ricky Bobby', got %q", d.Name)
	}
	if d.GroupNumber != 3 {
		t.Errorf("expected group 3, got %d", d.GroupNumber)
	}
	if !d.IsActive {
		t.Error("expected new driver to be active")
	}
}

func TestListActiveDrivers_ExcludesInactive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	activeID, _ := repo.CreateDriver(ctx, "Active Driver", 1)
	benchedID, _ := repo.CreateDriver(ctx, "Benched Driver", 1)
	if err := repo.UpdateDriver(ctx, benchedID, "Benched Driver", 1, false); err != nil {
		t.Fatalf("UpdateDriver failed: %v", err)
	}

	drivers, err := repo.ListActiveDrivers(ctx)
	if err != nil {
		t.Fatalf("ListActiveDrivers failed: %v", err)
	}
	if len(drivers) != 1 {
		t.Fatalf("expected 1 active driver, got %d", len(drivers))
	}
	if drivers[0].ID != activeID {
		t.Errorf("expected driver %d, got %d", activeID, drivers[0].ID)
	}

	all, err := repo.ListDrivers(ctx)
	if err != nil {
		t.Fatalf("ListDrivers failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 drivers in full list, got %d", len(all))
	}
}

func TestGetDriver_NonExistent(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetDriver(context.Background(), 99999)
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ==================== Pick Tests ====================

func testPick(profileID string, raceID int64) models.Pick {
	return models.Pick{
		ProfileID:    profileID,
		RaceID:       raceID,
		AverageSpeed: 178.450,
		DriverIDs:    [models.NumDriverGroups]int64{1, 2, 3, 4, 5, 6},
	}
}

func TestUpsertPick_InsertThenUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	createProfile(t, repo, "p-1", "Team One")
	raceID := createRace(t, repo, "Pick Race")
	for g := 1; g <= models.NumDriverGroups; g++ {
		_, _ = repo.CreateDriver(ctx, "Driver", g)
		_, _ = repo.CreateDriver(ctx, "Backup", g)
	}

	if err := repo.UpsertPick(ctx, testPick("p-1", raceID)); err != nil {
		t.Fatalf("UpsertPick insert failed: %v", err)
	}

	// Re-submission replaces the earlier pick
	updated := testPick("p-1", raceID)
	updated.AverageSpeed = 181.200
	updated.DriverIDs[0] = 7
	if err := repo.UpsertPick(ctx, updated); err != nil {
		t.Fatalf("UpsertPick update failed: %v", err)
	}

	p, err := repo.GetPick(ctx, "p-1", raceID)
	if err != nil {
		t.Fatalf("GetPick failed: %v", err)
	}
	if p.AverageSpeed != 181.200 {
		t.Errorf("expected updated speed 181.200, got %v", p.AverageSpeed)
	}
	if p.DriverIDs[0] != 7 {
		t.Errorf("expected updated group 1 driver 7, got %d", p.DriverIDs[0])
	}

	picks, err := repo.ListPicksForRace(ctx, raceID)
	if err != nil {
		t.Fatalf("ListPicksForRace failed: %v", err)
	}
	if len(picks) != 1 {
		t.Errorf("expected 1 pick after upsert, got %d", len(picks))
	}
}

func TestGetPick_NonExistent(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetPick(context.Background(), "nobody", 1)
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListPicksForRace_Empty(t *testing.T) {
	repo := newTestRepo(t)

	picks, err := repo.ListPicksForRace(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListPicksForRace failed: %v", err)
	}
	if len(picks) != 0 {
		t.Errorf("expected 0 picks, got %d", len(picks))
	}
}

// ==================== Result Tests ====================

func TestReplaceResults_ReplacesAtomically(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	raceID := createRace(t, repo, "Results Race")
	d1, _ := repo.CreateDriver(ctx, "Driver One", 1)
	d2, _ := repo.CreateDriver(ctx, "Driver Two", 2)

	err := repo.ReplaceResults(ctx, raceID, []models.RaceResult{
		{RaceID: raceID, DriverID: d1, Points: 40},
		{RaceID: raceID, DriverID: d2, Points: 35},
	})
	if err != nil {
		t.Fatalf("ReplaceResults failed: %v", err)
	}

	// Second post wipes the first set entirely
	err = repo.ReplaceResults(ctx, raceID, []models.RaceResult{
		{RaceID: raceID, DriverID: d1, Points: 12},
	})
	if err != nil {
		t.Fatalf("ReplaceResults second post failed: %v", err)
	}

	results, err := repo.ListResultsForRace(ctx, raceID)
	if err != nil {
		t.Fatalf("ListResultsForRace failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result after replace, got %d", len(results))
	}
	if results[0].DriverID != d1 || results[0].Points != 12 {
		t.Errorf("expected driver %d with 12 points, got driver %d with %d", d1, results[0].DriverID, results[0].Points)
	}

	count, err := repo.CountResultsForRace(ctx, raceID)
	if err != nil {
		t.Fatalf("CountResultsForRace failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestCountResultsForRace_Empty(t *testing.T) {
	repo := newTestRepo(t)

	count, err := repo.CountResultsForRace(context.Background(), 42)
	if err != nil {
		t.Fatalf("CountResultsForRace failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 results, got %d", count)
	}
}

// ==================== Settings Tests ====================

func TestSetSetting_NewValue(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	err := repo.SetSetting(ctx, "winner_delay_minutes", "30")
	if err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}

	value, err := repo.GetSetting(ctx, "winner_delay_minutes")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if value != "30" {
		t.Errorf("expected '30', got %q", value)
	}
}

func TestSetSetting_UpdateExisting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_ = repo.SetSetting(ctx, "base_url", "http://10.0.0.5:8080")
	err := repo.SetSetting(ctx, "base_url", "http://10.0.0.9:8080")
	if err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}

	value, _ := repo.GetSetting(ctx, "base_url")
	if value != "http://10.0.0.9:8080" {
		t.Errorf("expected updated value, got %q", value)
	}
}

func TestGetSetting_NonExistent(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetSetting(context.Background(), "non_existent_key")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound for non-existent key, got %v", err)
	}
}

// ==================== Stats Tests ====================

func TestGetLeagueStats_Empty(t *testing.T) {
	repo := newTestRepo(t)

	stats, err := repo.GetLeagueStats(context.Background())
	if err != nil {
		t.Fatalf("GetLeagueStats failed: %v", err)
	}
	if stats["total_participants"] != 0 {
		t.Errorf("expected 0 total_participants, got %v", stats["total_participants"])
	}
	if stats["total_picks"] != 0 {
		t.Errorf("expected 0 total_picks, got %v", stats["total_picks"])
	}
}

func TestGetLeagueStats_WithData(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	createProfile(t, repo, "p-1", "Team One")
	createProfile(t, repo, "p-2", "Team Two")
	raceID := createRace(t, repo, "Stats Race")
	d1, _ := repo.CreateDriver(ctx, "Driver", 1)
	_ = repo.UpsertPick(ctx, testPick("p-1", raceID))
	_ = repo.ReplaceResults(ctx, raceID, []models.RaceResult{{RaceID: raceID, DriverID: d1, Points: 40}})

	stats, err := repo.GetLeagueStats(ctx)
	if err != nil {
		t.Fatalf("GetLeagueStats failed: %v", err)
	}
	if stats["total_participants"] != 2 {
		t.Errorf("expected 2 total_participants, got %v", stats["total_participants"])
	}
	if stats["total_races"] != 1 {
		t.Errorf("expected 1 total_races, got %v", stats["total_races"])
	}
	if stats["races_with_results"] != 1 {
		t.Errorf("expected 1 races_with_results, got %v", stats["races_with_results"])
	}
	if stats["total_picks"] != 1 {
		t.Errorf("expected 1 total_picks, got %v", stats["total_picks"])
	}
}

// ==================== Database Management Tests ====================

func TestClearTable_Picks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	createProfile(t, repo, "p-1", "Team One")
	raceID := createRace(t, repo, "Clear Race")
	_ = repo.UpsertPick(ctx, testPick("p-1", raceID))

	if err := repo.ClearTable(ctx, "picks"); err != nil {
		t.Fatalf("ClearTable failed: %v", err)
	}

	picks, _ := repo.ListPicksForRace(ctx, raceID)
	if len(picks) != 0 {
		t.Errorf("expected 0 picks after clear, got %d", len(picks))
	}
}

func TestClearTable_InvalidTable(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.ClearTable(context.Background(), "sqlite_master")
	if err != ErrInvalidTable {
		t.Errorf("expected ErrInvalidTable, got %v", err)
	}
}
