package handlers

import (
	"github.com/c21matthewm/mound-hounds-pickem/internal/auth"
	"github.com/c21matthewm/mound-hounds-pickem/internal/services"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Participant services.ParticipantServicer
	Race        services.RaceServicer
	Driver      services.DriverServicer
	Pick        services.PickServicer
	Result      services.ResultServicer
	Winner      services.WinnerServicer
	Leaderboard services.LeaderboardServicer
	PicksView   services.PicksViewServicer
	Analytics   services.AnalyticsServicer
	Settings    services.SettingsServicer
	Seed        services.SeedServicer
	Auth        *auth.Auth
	Log         HTTPLogger
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	participant services.ParticipantServicer,
	race services.RaceServicer,
	driver services.DriverServicer,
	pick services.PickServicer,
	result services.ResultServicer,
	winner services.WinnerServicer,
	leaderboard services.LeaderboardServicer,
	picksView services.PicksViewServicer,
	analytics services.AnalyticsServicer,
	settings services.SettingsServicer,
	seed services.SeedServicer,
	adminAuth *auth.Auth,
	log HTTPLogger,
) *Handlers {
	return &Handlers{
		Participant: participant,
		Race:        race,
		Driver:      driver,
		Pick:        pick,
		Result:      result,
		Winner:      winner,
		Leaderboard: leaderboard,
		PicksView:   picksView,
		Analytics:   analytics,
		Settings:    settings,
		Seed:        seed,
		Auth:        adminAuth,
		Log:         log,
	}
}

// NewForTesting creates a Handlers instance with a fixed test password
// and no HTTP logging
func NewForTesting(
	participant services.ParticipantServicer,
	race services.RaceServicer,
	driver services.DriverServicer,
	pick services.PickServicer,
	result services.ResultServicer,
	winner services.WinnerServicer,
	leaderboard services.LeaderboardServicer,
	picksView services.PicksViewServicer,
	analytics services.AnalyticsServicer,
	settings services.SettingsServicer,
	seed services.SeedServicer,
) *Handlers {
	return New(
		participant, race, driver, pick, result, winner,
		leaderboard, picksView, analytics, settings, seed,
		auth.New("test-password"), NoopHTTPLogger{},
	)
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }
