package services

import (
	"context"
	"strconv"
	"time"

	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
)

// Defaults applied when a setting has never been written.
const (
	DefaultWinnerDelayMinutes = 15
	DefaultFinalizeBatchSize  = 100
	DefaultMomentumWindow     = 3
)

// SettingsService handles settings-related business logic
type SettingsService struct {
	log  logger.Logger
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{log: log, repo: repo}
}

// intSetting reads an integer setting, falling back to def when the key is
// missing or unparsable. Database errors propagate.
func (s *SettingsService) intSetting(ctx context.Context, key string, def int) (int, error) {
	value, err := s.repo.GetSetting(ctx, key)
	if err != nil {
		if err == repository.ErrNotFound {
			return def, nil
		}
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def, nil
	}
	return n, nil
}

// WinnerDelay returns how long after a result save a race becomes eligible
// for auto-finalization
func (s *SettingsService) WinnerDelay(ctx context.Context) (time.Duration, error) {
	minutes, err := s.intSetting(ctx, "winner_delay_minutes", DefaultWinnerDelayMinutes)
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

// SetWinnerDelayMinutes sets the auto-finalization delay
func (s *SettingsService) SetWinnerDelayMinutes(ctx context.Context, minutes int) error {
	if minutes < 0 || minutes > 1440 {
		return ErrInvalidDelayMinutes
	}
	return s.repo.SetSetting(ctx, "winner_delay_minutes", strconv.Itoa(minutes))
}

// FinalizeBatchSize returns the maximum number of races one finalization
// tick may process
func (s *SettingsService) FinalizeBatchSize(ctx context.Context) (int, error) {
	size, err := s.intSetting(ctx, "finalize_batch_size", DefaultFinalizeBatchSize)
	if err != nil {
		return 0, err
	}
	if size <= 0 || size > DefaultFinalizeBatchSize {
		size = DefaultFinalizeBatchSize
	}
	return size, nil
}

// MomentumWindow returns how many recent races the analytics momentum
// average covers
func (s *SettingsService) MomentumWindow(ctx context.Context) (int, error) {
	window, err := s.intSetting(ctx, "momentum_window", DefaultMomentumWindow)
	if err != nil {
		return 0, err
	}
	if window <= 0 {
		window = DefaultMomentumWindow
	}
	return window, nil
}

// GetBaseURL returns the application base URL
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	value, err := s.repo.GetSetting(ctx, "base_url")
	if err != nil {
		if err == repository.ErrNotFound {
			return "", nil // No default - setting not yet configured
		}
		return "", err
	}
	return value, nil
}

// SetBaseURL saves the application base URL
func (s *SettingsService) SetBaseURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, "base_url", url)
}

// GetSetting retrieves an arbitrary setting
func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	return s.repo.GetSetting(ctx, key)
}

// SetSetting saves an arbitrary setting
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	return s.repo.SetSetting(ctx, key, value)
}

// AllSettings returns commonly used settings as a map
func (s *SettingsService) AllSettings(ctx context.Context) (map[string]interface{}, error) {
	settings := make(map[string]interface{})

	delay, err := s.WinnerDelay(ctx)
	if err != nil {
		return nil, err
	}
	settings["winner_delay_minutes"] = int(delay / time.Minute)

	batchSize, err := s.FinalizeBatchSize(ctx)
	if err != nil {
		return nil, err
	}
	settings["finalize_batch_size"] = batchSize

	window, err := s.MomentumWindow(ctx)
	if err != nil {
		return nil, err
	}
	settings["momentum_window"] = window

	baseURL, err := s.GetBaseURL(ctx)
	if err != nil {
		return nil, err
	}
	settings["base_url"] = baseURL

	return settings, nil
}

// LeagueStats returns overall league statistics for the admin dashboard
func (s *SettingsService) LeagueStats(ctx context.Context) (map[string]interface{}, error) {
	return s.repo.GetLeagueStats(ctx)
}

// ResetTablesResult contains the result of a database reset
type ResetTablesResult struct {
	Tables  []string
	Message string
}

// ValidTables defines which tables can be reset
var ValidTables = map[string]bool{
	"picks": true, "results": true, "drivers": true, "races": true, "profiles": true, "settings": true,
}

// ResetTables validates and resets the specified database tables
func (s *SettingsService) ResetTables(ctx context.Context, tables []string) (*ResetTablesResult, error) {
	if len(tables) == 0 {
		return nil, ErrNoTablesSpecified
	}

	var tablesToReset []string
	for _, table := range tables {
		if !ValidTables[table] {
			return nil, &InvalidTableError{Table: table}
		}
		tablesToReset = append(tablesToReset, table)
	}

	// Picks and results reference the other tables, so clearing drivers,
	// races, or profiles drags them along to keep foreign keys intact
	needsDependentsCleared := false
	for _, table := range tablesToReset {
		if table == "drivers" || table == "races" || table == "profiles" {
			needsDependentsCleared = true
			break
		}
	}
	if needsDependentsCleared {
		if !containsTable(tablesToReset, "results") {
			tablesToReset = append([]string{"results"}, tablesToReset...)
		}
		if !containsTable(tablesToReset, "picks") {
			tablesToReset = append([]string{"picks"}, tablesToReset...)
		}
	}

	for _, table := range tablesToReset {
		if err := s.repo.ClearTable(ctx, table); err != nil {
			return nil, err
		}
	}

	s.log.Info("Reset database tables", "tables", tablesToReset)

	return &ResetTablesResult{
		Tables:  tablesToReset,
		Message: "Successfully deleted data from tables",
	}, nil
}

func containsTable(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
