package services

import (
	"context"
	"time"

	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
)

// ParticipantServicer defines the interface for participant operations
type ParticipantServicer interface {
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	GetParticipant(ctx context.Context, profileID string) (*models.Participant, error)
	Register(ctx context.Context, teamName, role string) (*models.Participant, error)
	UpdateTeamName(ctx context.Context, profileID, teamName string) error
}

// RaceServicer defines the interface for race operations
type RaceServicer interface {
	ListRaces(ctx context.Context) ([]models.Race, error)
	ListAllRaces(ctx context.Context) ([]models.Race, error)
	GetRace(ctx context.Context, id int64) (*models.Race, error)
	CreateRace(ctx context.Context, name string, raceDate, qualifyingStartAt time.Time) (int64, error)
	UpdateRace(ctx context.Context, id int64, name string, raceDate, qualifyingStartAt time.Time) error
	SetOfficialSpeed(ctx context.Context, id int64, speed *float64) error
	ArchiveRace(ctx context.Context, id int64) error
}

// DriverServicer defines the interface for driver operations
type DriverServicer interface {
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	ListActiveDrivers(ctx context.Context) ([]models.Driver, error)
	GetDriver(ctx context.Context, id int64) (*models.Driver, error)
	CreateDriver(ctx context.Context, name string, groupNumber int) (int64, error)
	UpdateDriver(ctx context.Context, id int64, name string, groupNumber int, isActive bool) error
}

// PickServicer defines the interface for pick submission
type PickServicer interface {
	SubmitPick(ctx context.Context, input SubmitPickInput) error
	GetPick(ctx context.Context, profileID string, raceID int64) (*models.Pick, error)
}

// ResultServicer defines the interface for race result operations
type ResultServicer interface {
	SaveResults(ctx context.Context, raceID int64, entries []ResultEntry) error
	GetResults(ctx context.Context, raceID int64) ([]models.RaceResult, error)
	ResultsPosted(ctx context.Context, raceID int64) (bool, error)
}

// WinnerServicer defines the interface for fantasy winner finalization
type WinnerServicer interface {
	ScheduleAutoCalculation(ctx context.Context, raceID int64) error
	FinalizeNow(ctx context.Context, raceID int64) (*FinalizeOutcome, error)
	FinalizeDue(ctx context.Context) (int, error)
	SetManualWinner(ctx context.Context, raceID int64, profileID string) error
	RequestAutoCalculation(ctx context.Context, raceID int64) (*FinalizeOutcome, error)
}

// LeaderboardServicer defines the interface for standings operations
type LeaderboardServicer interface {
	BuildStandings(ctx context.Context) (*Standings, error)
}

// PicksViewServicer defines the interface for the picks-by-race view
type PicksViewServicer interface {
	BuildPicksByRace(ctx context.Context, raceID int64) (*PicksByRace, error)
}

// AnalyticsServicer defines the interface for participant analytics
type AnalyticsServicer interface {
	BuildParticipantAnalytics(ctx context.Context, profileID string) (*ParticipantAnalytics, error)
}

// SettingsServicer defines the interface for settings operations
type SettingsServicer interface {
	WinnerDelay(ctx context.Context) (time.Duration, error)
	SetWinnerDelayMinutes(ctx context.Context, minutes int) error
	FinalizeBatchSize(ctx context.Context) (int, error)
	MomentumWindow(ctx context.Context) (int, error)
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	AllSettings(ctx context.Context) (map[string]interface{}, error)
	LeagueStats(ctx context.Context) (map[string]interface{}, error)
	ResetTables(ctx context.Context, tables []string) (*ResetTablesResult, error)
}

// SeedServicer defines the interface for demo data seeding
type SeedServicer interface {
	SeedDemoData(ctx context.Context) (*SeedResult, error)
}

// Ensure concrete types implement interfaces
var (
	_ ParticipantServicer = (*ParticipantService)(nil)
	_ RaceServicer        = (*RaceService)(nil)
	_ DriverServicer      = (*DriverService)(nil)
	_ PickServicer        = (*PickService)(nil)
	_ ResultServicer      = (*ResultService)(nil)
	_ WinnerServicer      = (*WinnerService)(nil)
	_ LeaderboardServicer = (*LeaderboardService)(nil)
	_ PicksViewServicer   = (*PicksViewService)(nil)
	_ AnalyticsServicer   = (*AnalyticsService)(nil)
	_ SettingsServicer    = (*SettingsService)(nil)
	_ SeedServicer        = (*SeedService)(nil)
)
