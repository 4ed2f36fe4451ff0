package repository

import (
	"context"
	"time"

	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
)

// ProfileRepository defines participant profile data operations
type ProfileRepository interface {
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	GetParticipant(ctx context.Context, profileID string) (*models.Participant, error)
	CreateParticipant(ctx context.Context, p models.Participant) error
	UpdateParticipant(ctx context.Context, p models.Participant) error
}

// RaceRepository defines race schedule and winner-state data operations.
//
// The winner mutators are conditional writes: they only apply when the
// race is not archived (and, where noted, not manually overridden) and
// report whether a row was updated, so guard checks and the mutation
// happen in one statement.
type RaceRepository interface {
	ListRaces(ctx context.Context) ([]models.Race, error)
	ListAllRaces(ctx context.Context) ([]models.Race, error)
	ListRacesWithResults(ctx context.Context) ([]models.Race, error)
	GetRace(ctx context.Context, id int64) (*models.Race, error)
	CreateRace(ctx context.Context, name string, raceDate, qualifyingStartAt time.Time) (int64, error)
	UpdateRace(ctx context.Context, id int64, name string, raceDate, qualifyingStartAt time.Time) error
	SetOfficialAvgSpeed(ctx context.Context, id int64, speed *float64) error
	ArchiveRace(ctx context.Context, id int64) error
	ScheduleWinnerAuto(ctx context.Context, id int64, eligibleAt time.Time) (bool, error)
	SetAutoWinner(ctx context.Context, id int64, profileID *string, setAt time.Time) (bool, error)
	SetManualWinner(ctx context.Context, id int64, profileID string, setAt time.Time) (bool, error)
	ListDueWinnerRaces(ctx context.Context, now time.Time, limit int) ([]models.Race, error)
}

// DriverRepository defines driver data operations
type DriverRepository interface {
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	ListActiveDrivers(ctx context.Context) ([]models.Driver, error)
	GetDriver(ctx context.Context, id int64) (*models.Driver, error)
	CreateDriver(ctx context.Context, name string, groupNumber int) (int64, error)
	UpdateDriver(ctx context.Context, id int64, name string, groupNumber int, isActive bool) error
}

// PickRepository defines pick data operations
type PickRepository interface {
	UpsertPick(ctx context.Context, p models.Pick) error
	GetPick(ctx context.Context, profileID string, raceID int64) (*models.Pick, error)
	ListPicksForRace(ctx context.Context, raceID int64) ([]models.Pick, error)
}

// ResultRepository defines posted race result data operations
type ResultRepository interface {
	ReplaceResults(ctx context.Context, raceID int64, rows []models.RaceResult) error
	ListResultsForRace(ctx context.Context, raceID int64) ([]models.RaceResult, error)
	CountResultsForRace(ctx context.Context, raceID int64) (int, error)
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	GetLeagueStats(ctx context.Context) (map[string]interface{}, error)
	ClearTable(ctx context.Context, table string) error
}

// FullRepository combines all repository interfaces.
// Use this when a service needs access to multiple domains.
type FullRepository interface {
	ProfileRepository
	RaceRepository
	DriverRepository
	PickRepository
	ResultRepository
	SettingsRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
