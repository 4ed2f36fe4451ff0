package models

import "time"

// NumDriverGroups is the fixed number of ranked driver groups a pick spans.
const NumDriverGroups = 6

// Winner source values recorded on a race.
const (
	WinnerSourceAuto   = "auto"
	WinnerSourceManual = "manual"
)

// Participant represents a league member with a completed profile
type Participant struct {
	ProfileID       string `json:"profile_id"`
	TeamName        string `json:"team_name"`
	Role            string `json:"role"` // "participant" or "admin"
	ProfileComplete bool   `json:"profile_complete"`
}

// Race represents one race weekend on the season schedule
type Race struct {
	ID                   int64      `json:"id"`
	Name                 string     `json:"name"`
	RaceDate             time.Time  `json:"race_date"`
	QualifyingStartAt    time.Time  `json:"qualifying_start_at"`
	IsArchived           bool       `json:"is_archived"`
	OfficialAvgSpeed     *float64   `json:"official_avg_speed,omitempty"` // tiebreak target, absent until posted
	WinnerProfileID      *string    `json:"winner_profile_id,omitempty"`
	WinnerSource         string     `json:"winner_source,omitempty"` // "auto" or "manual"
	WinnerManualOverride bool       `json:"winner_manual_override"`
	WinnerAutoEligibleAt *time.Time `json:"winner_auto_eligible_at,omitempty"`
	WinnerSetAt          *time.Time `json:"winner_set_at,omitempty"`
}

// Driver represents a driver assigned to one of the six pick groups.
// Inactive drivers are not selectable but may still appear in historical
// picks and results.
type Driver struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	GroupNumber int    `json:"group_number"` // 1..6
	IsActive    bool   `json:"is_active"`
}

// Pick represents one participant's entry for a race: one driver per group
// plus the predicted winning average speed used as the tiebreaker.
// DriverIDs is indexed by group: DriverIDs[0] is the group-1 pick.
type Pick struct {
	ProfileID    string                 `json:"profile_id"`
	RaceID       int64                  `json:"race_id"`
	AverageSpeed float64                `json:"average_speed"`
	DriverIDs    [NumDriverGroups]int64 `json:"driver_ids"`
	SubmittedAt  time.Time              `json:"submitted_at"`
}

// RaceResult is one driver's posted result points for a race.
// A race with no RaceResult rows has not had results posted.
type RaceResult struct {
	RaceID   int64 `json:"race_id"`
	DriverID int64 `json:"driver_id"`
	Points   int   `json:"points"`
}

// WeeklyScore is a participant's computed score for a single race.
// Derived, never persisted.
type WeeklyScore struct {
	ProfileID    string   `json:"profile_id"`
	RaceID       int64    `json:"race_id"`
	RacePoints   int      `json:"race_points"`
	AverageSpeed *float64 `json:"average_speed,omitempty"`
}
