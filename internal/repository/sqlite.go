package repository

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			team_name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'participant',
			profile_complete BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS races (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			race_date DATETIME NOT NULL,
			qualifying_start_at DATETIME NOT NULL,
			is_archived BOOLEAN NOT NULL DEFAULT 0,
			official_avg_speed REAL,
			winner_profile_id TEXT,
			winner_source TEXT,
			winner_manual_override BOOLEAN NOT NULL DEFAULT 0,
			winner_auto_eligible_at DATETIME,
			winner_set_at DATETIME,
			FOREIGN KEY (winner_profile_id) REFERENCES profiles(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS drivers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			group_number INTEGER NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS picks (
			profile_id TEXT NOT NULL,
			race_id INTEGER NOT NULL,
			average_speed REAL NOT NULL,
			driver_group1_id INTEGER NOT NULL,
			driver_group2_id INTEGER NOT NULL,
			driver_group3_id INTEGER NOT NULL,
			driver_group4_id INTEGER NOT NULL,
			driver_group5_id INTEGER NOT NULL,
			driver_group6_id INTEGER NOT NULL,
			submitted_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile_id, race_id),
			FOREIGN KEY (profile_id) REFERENCES profiles(id),
			FOREIGN KEY (race_id) REFERENCES races(id)
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			race_id INTEGER NOT NULL,
			driver_id INTEGER NOT NULL,
			points INTEGER NOT NULL,
			PRIMARY KEY (race_id, driver_id),
			FOREIGN KEY (race_id) REFERENCES races(id),
			FOREIGN KEY (driver_id) REFERENCES drivers(id)
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_picks_race ON picks(race_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_race ON results(race_id)`,
		`CREATE INDEX IF NOT EXISTS idx_races_eligible ON races(winner_auto_eligible_at)`,
		`CREATE INDEX IF NOT EXISTS idx_drivers_group ON drivers(group_number)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// ==================== Profile Methods ====================

// ListParticipants returns all completed-profile participants ordered by team name
func (r *Repository) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, team_name, role, profile_complete
		FROM profiles
		WHERE role IN ('participant', 'admin') AND profile_complete = 1
		ORDER BY team_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ProfileID, &p.TeamName, &p.Role, &p.ProfileComplete); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// GetParticipant returns a participant profile by ID
func (r *Repository) GetParticipant(ctx context.Context, profileID string) (*models.Participant, error) {
	var p models.Participant
	err := r.db.QueryRowContext(ctx, `
		SELECT id, team_name, role, profile_complete FROM profiles WHERE id = ?
	`, profileID).Scan(&p.ProfileID, &p.TeamName, &p.Role, &p.ProfileComplete)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateParticipant inserts a new participant profile
func (r *Repository) CreateParticipant(ctx context.Context, p models.Participant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, team_name, role, profile_complete)
		VALUES (?, ?, ?, ?)
	`, p.ProfileID, p.TeamName, p.Role, p.ProfileComplete)
	return err
}

// UpdateParticipant updates a participant profile
func (r *Repository) UpdateParticipant(ctx context.Context, p models.Participant) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET team_name = ?, role = ?, profile_complete = ? WHERE id = ?
	`, p.TeamName, p.Role, p.ProfileComplete, p.ProfileID)
	return err
}

// ==================== Race Methods ====================

const raceColumns = `id, name, race_date, qualifying_start_at, is_archived,
	official_avg_speed, winner_profile_id, winner_source, winner_manual_override,
	winner_auto_eligible_at, winner_set_at`

func scanRace(scan func(dest ...interface{}) error) (*models.Race, error) {
	var race models.Race
	var officialSpeed sql.NullFloat64
	var winnerProfileID, winnerSource sql.NullString
	var eligibleAt, setAt sql.NullTime
	err := scan(&race.ID, &race.Name, &race.RaceDate, &race.QualifyingStartAt,
		&race.IsArchived, &officialSpeed, &winnerProfileID, &winnerSource,
		&race.WinnerManualOverride, &eligibleAt, &setAt)
	if err != nil {
		return nil, err
	}
	if officialSpeed.Valid {
		speed := officialSpeed.Float64
		race.OfficialAvgSpeed = &speed
	}
	if winnerProfileID.Valid {
		id := winnerProfileID.String
		race.WinnerProfileID = &id
	}
	if winnerSource.Valid {
		race.WinnerSource = winnerSource.String
	}
	if eligibleAt.Valid {
		t := eligibleAt.Time
		race.WinnerAutoEligibleAt = &t
	}
	if setAt.Valid {
		t := setAt.Time
		race.WinnerSetAt = &t
	}
	return &race, nil
}

func (r *Repository) queryRaces(ctx context.Context, query string, args ...interface{}) ([]models.Race, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var races []models.Race
	for rows.Next() {
		race, err := scanRace(rows.Scan)
		if err != nil {
			return nil, err
		}
		races = append(races, *race)
	}
	return races, rows.Err()
}

// ListRaces returns all non-archived races in season order
func (r *Repository) ListRaces(ctx context.Context) ([]models.Race, error) {
	return r.queryRaces(ctx, `
		SELECT `+raceColumns+` FROM races WHERE is_archived = 0 ORDER BY race_date, id
	`)
}

// ListAllRaces returns every race including archived ones (for admin views)
func (r *Repository) ListAllRaces(ctx context.Context) ([]models.Race, error) {
	return r.queryRaces(ctx, `
		SELECT `+raceColumns+` FROM races ORDER BY race_date, id
	`)
}

// ListRacesWithResults returns non-archived races that have at least one
// posted result, oldest first. This is the active race set every scoring
// view is computed from.
func (r *Repository) ListRacesWithResults(ctx context.Context) ([]models.Race, error) {
	return r.queryRaces(ctx, `
		SELECT `+raceColumns+` FROM races
		WHERE is_archived = 0
		  AND EXISTS (SELECT 1 FROM results WHERE results.race_id = races.id)
		ORDER BY race_date, id
	`)
}

// GetRace returns a race by ID
func (r *Repository) GetRace(ctx context.Context, id int64) (*models.Race, error) {
	race, err := scanRace(r.db.QueryRowContext(ctx, `
		SELECT `+raceColumns+` FROM races WHERE id = ?
	`, id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return race, nil
}

// CreateRace creates a new race
func (r *Repository) CreateRace(ctx context.Context, name string, raceDate, qualifyingStartAt time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO races (name, race_date, qualifying_start_at) VALUES (?, ?, ?)
	`, name, raceDate, qualifyingStartAt)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateRace updates a race's schedule fields
func (r *Repository) UpdateRace(ctx context.Context, id int64, name string, raceDate, qualifyingStartAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE races SET name = ?, race_date = ?, qualifying_start_at = ? WHERE id = ?
	`, name, raceDate, qualifyingStartAt, id)
	return err
}

// SetOfficialAvgSpeed records (or clears) the official winning average
// speed used as the tiebreak target
func (r *Repository) SetOfficialAvgSpeed(ctx context.Context, id int64, speed *float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE races SET official_avg_speed = ? WHERE id = ?`, speed, id)
	return err
}

// ArchiveRace archives a race, permanently removing it from the active
// scoring set. Any pending winner auto-calculation is cancelled in the
// same statement.
func (r *Repository) ArchiveRace(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE races SET is_archived = 1, winner_auto_eligible_at = NULL WHERE id = ?
	`, id)
	return err
}

// ScheduleWinnerAuto sets the auto-finalization eligibility timestamp and
// clears any manual override. The archived guard is part of the update so
// a concurrent archive cannot slip between a check and the write. Returns
// whether a row was updated.
func (r *Repository) ScheduleWinnerAuto(ctx context.Context, id int64, eligibleAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE races
		SET winner_auto_eligible_at = ?, winner_manual_override = 0
		WHERE id = ? AND is_archived = 0
	`, eligibleAt, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// SetAutoWinner persists an auto-computed fantasy winner, clearing the
// eligibility timestamp and override flag. profileID may be nil when a
// race had no picks. Returns whether a row was updated.
func (r *Repository) SetAutoWinner(ctx context.Context, id int64, profileID *string, setAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE races
		SET winner_profile_id = ?, winner_source = 'auto', winner_set_at = ?,
		    winner_auto_eligible_at = NULL, winner_manual_override = 0
		WHERE id = ? AND is_archived = 0
	`, profileID, setAt, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// SetManualWinner persists an admin-chosen winner and raises the override
// flag so auto-finalization leaves the race alone until the override is
// explicitly cleared. Returns whether a row was updated.
func (r *Repository) SetManualWinner(ctx context.Context, id int64, profileID string, setAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE races
		SET winner_profile_id = ?, winner_source = 'manual', winner_set_at = ?,
		    winner_auto_eligible_at = NULL, winner_manual_override = 1
		WHERE id = ? AND is_archived = 0
	`, profileID, setAt, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// ListDueWinnerRaces returns non-archived, non-overridden races whose
// eligibility timestamp has passed, oldest-eligible first, bounded by limit
func (r *Repository) ListDueWinnerRaces(ctx context.Context, now time.Time, limit int) ([]models.Race, error) {
	return r.queryRaces(ctx, `
		SELECT `+raceColumns+` FROM races
		WHERE is_archived = 0
		  AND winner_manual_override = 0
		  AND winner_auto_eligible_at IS NOT NULL
		  AND winner_auto_eligible_at <= ?
		ORDER BY winner_auto_eligible_at ASC
		LIMIT ?
	`, now, limit)
}

// ==================== Driver Methods ====================

// ListDrivers returns all drivers grouped then alphabetical (for admin views)
func (r *Repository) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	return r.queryDrivers(ctx, `
		SELECT id, name, group_number, is_active FROM drivers ORDER BY group_number, name
	`)
}

// ListActiveDrivers returns the selectable drivers only
func (r *Repository) ListActiveDrivers(ctx context.Context) ([]models.Driver, error) {
	return r.queryDrivers(ctx, `
		SELECT id, name, group_number, is_active FROM drivers
		WHERE is_active = 1 ORDER BY group_number, name
	`)
}

func (r *Repository) queryDrivers(ctx context.Context, query string, args ...interface{}) ([]models.Driver, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []models.Driver
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.GroupNumber, &d.IsActive); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// GetDriver returns a driver by ID
func (r *Repository) GetDriver(ctx context.Context, id int64) (*models.Driver, error) {
	var d models.Driver
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, group_number, is_active FROM drivers WHERE id = ?
	`, id).Scan(&d.ID, &d.Name, &d.GroupNumber, &d.IsActive)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDriver creates a new active driver in the given group
func (r *Repository) CreateDriver(ctx context.Context, name string, groupNumber int) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO drivers (name, group_number, is_active) VALUES (?, ?, 1)
	`, name, groupNumber)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateDriver updates a driver
func (r *Repository) UpdateDriver(ctx context.Context, id int64, name string, groupNumber int, isActive bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE drivers SET name = ?, group_number = ?, is_active = ? WHERE id = ?
	`, name, groupNumber, isActive, id)
	return err
}

// ==================== Pick Methods ====================

// UpsertPick saves a participant's pick for a race; the latest submission wins
func (r *Repository) UpsertPick(ctx context.Context, p models.Pick) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO picks (profile_id, race_id, average_speed,
			driver_group1_id, driver_group2_id, driver_group3_id,
			driver_group4_id, driver_group5_id, driver_group6_id, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_id, race_id) DO UPDATE SET
			average_speed = excluded.average_speed,
			driver_group1_id = excluded.driver_group1_id,
			driver_group2_id = excluded.driver_group2_id,
			driver_group3_id = excluded.driver_group3_id,
			driver_group4_id = excluded.driver_group4_id,
			driver_group5_id = excluded.driver_group5_id,
			driver_group6_id = excluded.driver_group6_id,
			submitted_at = excluded.submitted_at
	`, p.ProfileID, p.RaceID, p.AverageSpeed,
		p.DriverIDs[0], p.DriverIDs[1], p.DriverIDs[2],
		p.DriverIDs[3], p.DriverIDs[4], p.DriverIDs[5], now)
	return err
}

const pickColumns = `profile_id, race_id, average_speed,
	driver_group1_id, driver_group2_id, driver_group3_id,
	driver_group4_id, driver_group5_id, driver_group6_id, submitted_at`

func scanPick(scan func(dest ...interface{}) error) (*models.Pick, error) {
	var p models.Pick
	err := scan(&p.ProfileID, &p.RaceID, &p.AverageSpeed,
		&p.DriverIDs[0], &p.DriverIDs[1], &p.DriverIDs[2],
		&p.DriverIDs[3], &p.DriverIDs[4], &p.DriverIDs[5], &p.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPick returns one participant's pick for a race
func (r *Repository) GetPick(ctx context.Context, profileID string, raceID int64) (*models.Pick, error) {
	p, err := scanPick(r.db.QueryRowContext(ctx, `
		SELECT `+pickColumns+` FROM picks WHERE profile_id = ? AND race_id = ?
	`, profileID, raceID).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPicksForRace returns every pick submitted for a race
func (r *Repository) ListPicksForRace(ctx context.Context, raceID int64) ([]models.Pick, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+pickColumns+` FROM picks WHERE race_id = ? ORDER BY profile_id
	`, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var picks []models.Pick
	for rows.Next() {
		p, err := scanPick(rows.Scan)
		if err != nil {
			return nil, err
		}
		picks = append(picks, *p)
	}
	return picks, rows.Err()
}

// ==================== Result Methods ====================

// ReplaceResults atomically replaces a race's posted results
func (r *Repository) ReplaceResults(ctx context.Context, raceID int64, results []models.RaceResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE race_id = ?`, raceID); err != nil {
		return err
	}

	for _, row := range results {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO results (race_id, driver_id, points) VALUES (?, ?, ?)
		`, raceID, row.DriverID, row.Points); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListResultsForRace returns a race's posted results
func (r *Repository) ListResultsForRace(ctx context.Context, raceID int64) ([]models.RaceResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT race_id, driver_id, points FROM results WHERE race_id = ? ORDER BY driver_id
	`, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.RaceResult
	for rows.Next() {
		var row models.RaceResult
		if err := rows.Scan(&row.RaceID, &row.DriverID, &row.Points); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountResultsForRace returns how many result rows a race has posted.
// Zero means results have not been posted.
func (r *Repository) CountResultsForRace(ctx context.Context, raceID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results WHERE race_id = ?`, raceID).Scan(&count)
	return count, err
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting updates a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// ==================== Stats Methods ====================

// GetLeagueStats returns overall league statistics for the admin dashboard
func (r *Repository) GetLeagueStats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	counts := []struct {
		key   string
		query string
	}{
		{"total_participants", `SELECT COUNT(*) FROM profiles WHERE profile_complete = 1`},
		{"total_races", `SELECT COUNT(*) FROM races WHERE is_archived = 0`},
		{"races_with_results", `SELECT COUNT(DISTINCT race_id) FROM results`},
		{"total_picks", `SELECT COUNT(*) FROM picks`},
		{"total_drivers", `SELECT COUNT(*) FROM drivers WHERE is_active = 1`},
	}

	for _, c := range counts {
		var n int
		if err := r.db.QueryRowContext(ctx, c.query).Scan(&n); err != nil {
			return nil, err
		}
		stats[c.key] = n
	}

	return stats, nil
}

// ==================== Database Management Methods ====================

// validTables defines which tables can be safely cleared
var validTables = map[string]bool{
	"picks": true, "results": true, "drivers": true, "races": true, "profiles": true, "settings": true,
}

// ClearTable clears all data from a table.
// Only whitelisted tables may be cleared.
func (r *Repository) ClearTable(ctx context.Context, table string) error {
	if !validTables[table] {
		return ErrInvalidTable
	}

	// Safe to concatenate now that the table name is validated
	_, err := r.db.ExecContext(ctx, "DELETE FROM "+table)
	return err
}
