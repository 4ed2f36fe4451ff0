package handlers

// RegisterRequest represents a request to register a participant
type RegisterRequest struct {
	TeamName string `json:"team_name"`
	Role     string `json:"role,omitempty"`
}

// ParticipantUpdateRequest represents a request to rename a team
type ParticipantUpdateRequest struct {
	TeamName string `json:"team_name"`
}

// RaceCreateRequest represents a request to create a race
type RaceCreateRequest struct {
	Name              string `json:"name"`
	RaceDate          string `json:"race_date"`
	QualifyingStartAt string `json:"qualifying_start_at"`
}

// RaceUpdateRequest represents a request to update a race's schedule
type RaceUpdateRequest struct {
	Name              string `json:"name"`
	RaceDate          string `json:"race_date"`
	QualifyingStartAt string `json:"qualifying_start_at"`
}

// OfficialSpeedRequest represents a request to set or clear the official
// winning average speed for a race
type OfficialSpeedRequest struct {
	OfficialAvgSpeed *float64 `json:"official_avg_speed"`
}

// DriverCreateRequest represents a request to create a driver
type DriverCreateRequest struct {
	Name        string `json:"name"`
	GroupNumber int    `json:"group_number"`
}

// DriverUpdateRequest represents a request to update a driver
type DriverUpdateRequest struct {
	Name        string `json:"name"`
	GroupNumber int    `json:"group_number"`
	IsActive    bool   `json:"is_active"`
}

// PickSubmitRequest represents a pick sheet submission
type PickSubmitRequest struct {
	ProfileID    string  `json:"profile_id"`
	RaceID       int64   `json:"race_id"`
	AverageSpeed float64 `json:"average_speed"`
	DriverIDs    []int64 `json:"driver_ids"`
}

// ResultsSaveRequest represents a full replacement of a race's results
type ResultsSaveRequest struct {
	Results []ResultEntryRequest `json:"results"`
}

// ResultEntryRequest is one driver's points in a results submission
type ResultEntryRequest struct {
	DriverID int64 `json:"driver_id"`
	Points   int   `json:"points"`
}

// ManualWinnerRequest represents a request to set a manual fantasy winner
type ManualWinnerRequest struct {
	ProfileID string `json:"profile_id"`
}

// SettingsUpdateRequest represents a request to update settings
type SettingsUpdateRequest struct {
	WinnerDelayMinutes *int    `json:"winner_delay_minutes"`
	FinalizeBatchSize  *int    `json:"finalize_batch_size"`
	MomentumWindow     *int    `json:"momentum_window"`
	BaseURL            *string `json:"base_url"`
}

// DatabaseResetRequest represents a request to reset database tables
type DatabaseResetRequest struct {
	Tables []string `json:"tables"`
}

// LoginRequest represents an admin login
type LoginRequest struct {
	Password string `json:"password"`
}
