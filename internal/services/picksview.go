package services

import (
	"context"
	"sort"
	"time"

	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
	"github.com/c21matthewm/mound-hounds-pickem/internal/scoring"
)

// PicksViewServiceRepository defines the repository methods needed by PicksViewService
type PicksViewServiceRepository interface {
	repository.RaceRepository
	repository.ProfileRepository
	repository.DriverRepository
	repository.PickRepository
	repository.ResultRepository
}

// PicksViewService builds the everyone's-picks view for one race
type PicksViewService struct {
	log  logger.Logger
	repo PicksViewServiceRepository
}

// NewPicksViewService creates a new PicksViewService
func NewPicksViewService(log logger.Logger, repo PicksViewServiceRepository) *PicksViewService {
	return &PicksViewService{log: log, repo: repo}
}

// GroupPick is one group cell in a participant's pick row. All fields
// are nil for a group the participant never picked; Points is nil until
// results are posted.
type GroupPick struct {
	DriverID   *int64  `json:"driver_id"`
	DriverName *string `json:"driver_name"`
	Points     *int    `json:"points"`
}

// PickRow is one participant's line in the picks-by-race view
type PickRow struct {
	ProfileID        string                              `json:"profile_id"`
	TeamName         string                              `json:"team_name"`
	Groups           [models.NumDriverGroups]GroupPick   `json:"groups"`
	AverageSpeed     *float64                            `json:"average_speed"`
	TiebreakDistance *float64                            `json:"tiebreak_distance"`
	Total            *int                                `json:"total"`
	Rank             *int                                `json:"rank"`
	NoPick           bool                                `json:"no_pick"`
}

// PicksByRace is the full picks view for one race
type PicksByRace struct {
	Race            models.Race   `json:"race"`
	ResultsPosted   bool          `json:"results_posted"`
	Rows            []PickRow     `json:"rows"`
	SelectableRaces []models.Race `json:"selectable_races"`
}

// selectDefaultRace picks the most recent race whose qualifying has
// started, falling back to the first race in the season
func selectDefaultRace(races []models.Race, now time.Time) models.Race {
	selected := races[0]
	for _, race := range races {
		if !race.QualifyingStartAt.After(now) {
			selected = race
		}
	}
	return selected
}

// BuildPicksByRace assembles every participant's picks for one race.
// Pass raceID 0 for the default selection. Rows are ranked with the
// speed tiebreak when results are posted, otherwise sorted by team name
// with totals suppressed.
func (s *PicksViewService) BuildPicksByRace(ctx context.Context, raceID int64) (*PicksByRace, error) {
	races, err := s.repo.ListRaces(ctx)
	if err != nil {
		return nil, err
	}
	if len(races) == 0 {
		return &PicksByRace{}, nil
	}

	var race *models.Race
	if raceID == 0 {
		selected := selectDefaultRace(races, time.Now())
		race = &selected
	} else {
		race, err = s.repo.GetRace(ctx, raceID)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil, ErrRaceNotFound
			}
			return nil, err
		}
	}

	participants, err := s.repo.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.repo.ListResultsForRace(ctx, race.ID)
	if err != nil {
		return nil, err
	}
	resultsPosted := len(results) > 0
	resultsByDriver := scoring.ResultsByDriver(results)

	groupOf, err := driverGroups(ctx, s.repo)
	if err != nil {
		return nil, err
	}
	_, groupFloor := scoring.GroupExtremes(results, groupOf)

	driverNames, err := s.driverNames(ctx)
	if err != nil {
		return nil, err
	}

	pickRows, err := s.repo.ListPicksForRace(ctx, race.ID)
	if err != nil {
		return nil, err
	}
	picks := make(map[string]models.Pick, len(pickRows))
	for _, p := range pickRows {
		picks[p.ProfileID] = p
	}

	rows := make([]PickRow, 0, len(participants))
	for _, participant := range participants {
		rows = append(rows, s.buildRow(participant, picks, resultsPosted, resultsByDriver, groupFloor, driverNames, race.OfficialAvgSpeed))
	}

	if resultsPosted {
		rankRows(rows, race.OfficialAvgSpeed)
	} else {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].TeamName < rows[j].TeamName })
	}

	return &PicksByRace{
		Race:            *race,
		ResultsPosted:   resultsPosted,
		Rows:            rows,
		SelectableRaces: races,
	}, nil
}

func (s *PicksViewService) driverNames(ctx context.Context) (map[int64]string, error) {
	drivers, err := s.repo.ListDrivers(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(drivers))
	for _, d := range drivers {
		names[d.ID] = d.Name
	}
	return names, nil
}

// buildRow resolves one participant's pick sheet. A deleted driver
// still summed as 0 points renders with a nil name rather than failing.
func (s *PicksViewService) buildRow(participant models.Participant, picks map[string]models.Pick,
	resultsPosted bool, resultsByDriver map[int64]int, groupFloor int,
	driverNames map[int64]string, target *float64) PickRow {

	row := PickRow{
		ProfileID: participant.ProfileID,
		TeamName:  participant.TeamName,
	}

	pick, hasPick := picks[participant.ProfileID]
	if !hasPick {
		row.NoPick = true
		if resultsPosted {
			// Same group-floor fallback the standings use
			floor := groupFloor
			row.Total = &floor
		}
		return row
	}

	speed := pick.AverageSpeed
	row.AverageSpeed = &speed
	row.TiebreakDistance = scoring.Distance(&speed, target)

	total := 0
	for i, driverID := range pick.DriverIDs {
		id := driverID
		row.Groups[i].DriverID = &id
		if name, ok := driverNames[driverID]; ok {
			row.Groups[i].DriverName = &name
		}
		if resultsPosted {
			points := resultsByDriver[driverID]
			row.Groups[i].Points = &points
			total += points
		}
	}
	if resultsPosted {
		row.Total = &total
	}
	return row
}

// rankRows orders rows with the speed tiebreak and writes competition ranks
func rankRows(rows []PickRow, target *float64) {
	entries := make([]scoring.Entry, len(rows))
	byProfile := make(map[string]*PickRow, len(rows))
	for i := range rows {
		points := 0
		if rows[i].Total != nil {
			points = *rows[i].Total
		}
		entries[i] = scoring.Entry{
			ProfileID: rows[i].ProfileID,
			Name:      rows[i].TeamName,
			Points:    points,
			Guess:     rows[i].AverageSpeed,
		}
		byProfile[rows[i].ProfileID] = &rows[i]
	}

	ranked := scoring.AssignRanks(scoring.Order(entries, target))

	ordered := make([]PickRow, 0, len(rows))
	for _, r := range ranked {
		row := *byProfile[r.ProfileID]
		rank := r.Rank
		row.Rank = &rank
		ordered = append(ordered, row)
	}
	copy(rows, ordered)
}
