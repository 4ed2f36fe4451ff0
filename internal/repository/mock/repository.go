package mock

import (
	"context"
	"time"

	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.ListPicksForRaceError = errors.New("database error")
//	svc := services.NewLeaderboardService(log, mockRepo)
//	_, err := svc.BuildStandings(ctx)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Profile Errors =====
	ListParticipantsError  error
	GetParticipantError    error
	CreateParticipantError error
	UpdateParticipantError error

	// ===== Race Errors =====
	ListRacesError            error
	ListAllRacesError         error
	ListRacesWithResultsError error
	GetRaceError              error
	CreateRaceError           error
	UpdateRaceError           error
	SetOfficialAvgSpeedError  error
	ArchiveRaceError          error
	ScheduleWinnerAutoError   error
	SetAutoWinnerError        error
	SetManualWinnerError      error
	ListDueWinnerRacesError   error

	// ===== Driver Errors =====
	ListDriversError       error
	ListActiveDriversError error
	GetDriverError         error
	CreateDriverError      error
	UpdateDriverError      error

	// ===== Pick Errors =====
	UpsertPickError       error
	GetPickError          error
	ListPicksForRaceError error

	// ===== Result Errors =====
	ReplaceResultsError      error
	ListResultsForRaceError  error
	CountResultsForRaceError error

	// ===== Settings Errors =====
	GetSettingError     error
	SetSettingError     error
	GetLeagueStatsError error
	ClearTableError     error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

// ===== Profile Methods =====

func (m *Repository) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	if m.ListParticipantsError != nil {
		return nil, m.ListParticipantsError
	}
	return m.FullRepository.ListParticipants(ctx)
}

func (m *Repository) GetParticipant(ctx context.Context, profileID string) (*models.Participant, error) {
	if m.GetParticipantError != nil {
		return nil, m.GetParticipantError
	}
	return m.FullRepository.GetParticipant(ctx, profileID)
}

func (m *Repository) CreateParticipant(ctx context.Context, p models.Participant) error {
	if m.CreateParticipantError != nil {
		return m.CreateParticipantError
	}
	return m.FullRepository.CreateParticipant(ctx, p)
}

func (m *Repository) UpdateParticipant(ctx context.Context, p models.Participant) error {
	if m.UpdateParticipantError != nil {
		return m.UpdateParticipantError
	}
	return m.FullRepository.UpdateParticipant(ctx, p)
}

// ===== Race Methods =====

func (m *Repository) ListRaces(ctx context.Context) ([]models.Race, error) {
	if m.ListRacesError != nil {
		return nil, m.ListRacesError
	}
	return m.FullRepository.ListRaces(ctx)
}

func (m *Repository) ListAllRaces(ctx context.Context) ([]models.Race, error) {
	if m.ListAllRacesError != nil {
		return nil, m.ListAllRacesError
	}
	return m.FullRepository.ListAllRaces(ctx)
}

func (m *Repository) ListRacesWithResults(ctx context.Context) ([]models.Race, error) {
	if m.ListRacesWithResultsError != nil {
		return nil, m.ListRacesWithResultsError
	}
	return m.FullRepository.ListRacesWithResults(ctx)
}

func (m *Repository) GetRace(ctx context.Context, id int64) (*models.Race, error) {
	if m.GetRaceError != nil {
		return nil, m.GetRaceError
	}
	return m.FullRepository.GetRace(ctx, id)
}

func (m *Repository) CreateRace(ctx context.Context, name string, raceDate, qualifyingStartAt time.Time) (int64, error) {
	if m.CreateRaceError != nil {
		return 0, m.CreateRaceError
	}
	return m.FullRepository.CreateRace(ctx, name, raceDate, qualifyingStartAt)
}

func (m *Repository) UpdateRace(ctx context.Context, id int64, name string, raceDate, qualifyingStartAt time.Time) error {
	if m.UpdateRaceError != nil {
		return m.UpdateRaceError
	}
	return m.FullRepository.UpdateRace(ctx, id, name, raceDate, qualifyingStartAt)
}

func (m *Repository) SetOfficialAvgSpeed(ctx context.Context, id int64, speed *float64) error {
	if m.SetOfficialAvgSpeedError != nil {
		return m.SetOfficialAvgSpeedError
	}
	return m.FullRepository.SetOfficialAvgSpeed(ctx, id, speed)
}

func (m *Repository) ArchiveRace(ctx context.Context, id int64) error {
	if m.ArchiveRaceError != nil {
		return m.ArchiveRaceError
	}
	return m.FullRepository.ArchiveRace(ctx, id)
}

func (m *Repository) ScheduleWinnerAuto(ctx context.Context, id int64, eligibleAt time.Time) (bool, error) {
	if m.ScheduleWinnerAutoError != nil {
		return false, m.ScheduleWinnerAutoError
	}
	return m.FullRepository.ScheduleWinnerAuto(ctx, id, eligibleAt)
}

func (m *Repository) SetAutoWinner(ctx context.Context, id int64, profileID *string, setAt time.Time) (bool, error) {
	if m.SetAutoWinnerError != nil {
		return false, m.SetAutoWinnerError
	}
	return m.FullRepository.SetAutoWinner(ctx, id, profileID, setAt)
}

func (m *Repository) SetManualWinner(ctx context.Context, id int64, profileID string, setAt time.Time) (bool, error) {
	if m.SetManualWinnerError != nil {
		return false, m.SetManualWinnerError
	}
	return m.FullRepository.SetManualWinner(ctx, id, profileID, setAt)
}

func (m *Repository) ListDueWinnerRaces(ctx context.Context, now time.Time, limit int) ([]models.Race, error) {
	if m.ListDueWinnerRacesError != nil {
		return nil, m.ListDueWinnerRacesError
	}
	return m.FullRepository.ListDueWinnerRaces(ctx, now, limit)
}

// ===== Driver Methods =====

func (m *Repository) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	if m.ListDriversError != nil {
		return nil, m.ListDriversError
	}
	return m.FullRepository.ListDrivers(ctx)
}

func (m *Repository) ListActiveDrivers(ctx context.Context) ([]models.Driver, error) {
	if m.ListActiveDriversError != nil {
		return nil, m.ListActiveDriversError
	}
	return m.FullRepository.ListActiveDrivers(ctx)
}

func (m *Repository) GetDriver(ctx context.Context, id int64) (*models.Driver, error) {
	if m.GetDriverError != nil {
		return nil, m.GetDriverError
	}
	return m.FullRepository.GetDriver(ctx, id)
}

func (m *Repository) CreateDriver(ctx context.Context, name string, groupNumber int) (int64, error) {
	if m.CreateDriverError != nil {
		return 0, m.CreateDriverError
	}
	return m.FullRepository.CreateDriver(ctx, name, groupNumber)
}

func (m *Repository) UpdateDriver(ctx context.Context, id int64, name string, groupNumber int, isActive bool) error {
	if m.UpdateDriverError != nil {
		return m.UpdateDriverError
	}
	return m.FullRepository.UpdateDriver(ctx, id, name, groupNumber, isActive)
}

// ===== Pick Methods =====

func (m *Repository) UpsertPick(ctx context.Context, p models.Pick) error {
	if m.UpsertPickError != nil {
		return m.UpsertPickError
	}
	return m.FullRepository.UpsertPick(ctx, p)
}

func (m *Repository) GetPick(ctx context.Context, profileID string, raceID int64) (*models.Pick, error) {
	if m.GetPickError != nil {
		return nil, m.GetPickError
	}
	return m.FullRepository.GetPick(ctx, profileID, raceID)
}

func (m *Repository) ListPicksForRace(ctx context.Context, raceID int64) ([]models.Pick, error) {
	if m.ListPicksForRaceError != nil {
		return nil, m.ListPicksForRaceError
	}
	return m.FullRepository.ListPicksForRace(ctx, raceID)
}

// ===== Result Methods =====

func (m *Repository) ReplaceResults(ctx context.Context, raceID int64, results []models.RaceResult) error {
	if m.ReplaceResultsError != nil {
		return m.ReplaceResultsError
	}
	return m.FullRepository.ReplaceResults(ctx, raceID, results)
}

func (m *Repository) ListResultsForRace(ctx context.Context, raceID int64) ([]models.RaceResult, error) {
	if m.ListResultsForRaceError != nil {
		return nil, m.ListResultsForRaceError
	}
	return m.FullRepository.ListResultsForRace(ctx, raceID)
}

func (m *Repository) CountResultsForRace(ctx context.Context, raceID int64) (int, error) {
	if m.CountResultsForRaceError != nil {
		return 0, m.CountResultsForRaceError
	}
	return m.FullRepository.CountResultsForRace(ctx, raceID)
}

// ===== Settings Methods =====

func (m *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	if m.GetSettingError != nil {
		return "", m.GetSettingError
	}
	return m.FullRepository.GetSetting(ctx, key)
}

func (m *Repository) SetSetting(ctx context.Context, key, value string) error {
	if m.SetSettingError != nil {
		return m.SetSettingError
	}
	return m.FullRepository.SetSetting(ctx, key, value)
}

func (m *Repository) GetLeagueStats(ctx context.Context) (map[string]interface{}, error) {
	if m.GetLeagueStatsError != nil {
		return nil, m.GetLeagueStatsError
	}
	return m.FullRepository.GetLeagueStats(ctx)
}

func (m *Repository) ClearTable(ctx context.Context, table string) error {
	if m.ClearTableError != nil {
		return m.ClearTableError
	}
	return m.FullRepository.ClearTable(ctx, table)
}
