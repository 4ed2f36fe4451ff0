package services

import (
	"context"
	"sort"

	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
	"github.com/c21matthewm/mound-hounds-pickem/internal/scoring"
)

// Trend classifications for standings movement
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// LeaderboardServiceRepository defines the repository methods needed by LeaderboardService
type LeaderboardServiceRepository interface {
	repository.RaceRepository
	repository.ProfileRepository
	repository.DriverRepository
	repository.PickRepository
	repository.ResultRepository
}

// LeaderboardService builds season standings from races with posted results
type LeaderboardService struct {
	log  logger.Logger
	repo LeaderboardServiceRepository
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(log logger.Logger, repo LeaderboardServiceRepository) *LeaderboardService {
	return &LeaderboardService{log: log, repo: repo}
}

// StandingRow is one participant's season standing
type StandingRow struct {
	ProfileID        string        `json:"profile_id"`
	TeamName         string        `json:"team_name"`
	Rank             int           `json:"rank"`
	PreviousRank     *int          `json:"previous_rank"`
	Change           *int          `json:"change"`
	Trend            string        `json:"trend"`
	CumulativePoints int           `json:"cumulative_points"`
	LatestWeekPoints int           `json:"latest_week_points"`
	PointsByRace     map[int64]int `json:"points_by_race"`
}

// ScoreboardRow is one line of the latest-race scoreboard. Benchmark
// rows (ceiling and floor) carry no profile and no rank.
type ScoreboardRow struct {
	ProfileID string `json:"profile_id,omitempty"`
	TeamName  string `json:"team_name"`
	Points    int    `json:"points"`
	Rank      *int   `json:"rank,omitempty"`
	Benchmark bool   `json:"benchmark"`
}

// Standings is the full season leaderboard snapshot
type Standings struct {
	Rows             []StandingRow    `json:"rows"`
	Races            []models.Race    `json:"races"`
	LatestRace       *models.Race     `json:"latest_race,omitempty"`
	LatestScoreboard []ScoreboardRow  `json:"latest_scoreboard,omitempty"`
}

// raceWeek holds one race's scoring inputs resolved against the full field
type raceWeek struct {
	race            models.Race
	resultsByDriver map[int64]int
	groupCeiling    int
	groupFloor      int
	picks           map[string]models.Pick
	weekly          map[string]int
}

// loadRaceWeek computes every participant's weekly points for one race.
// Participants without a pick score the group-floor fallback, so every
// view derived from this agrees on the same number.
func loadRaceWeek(ctx context.Context, repo interface {
	repository.PickRepository
	repository.ResultRepository
}, race models.Race, participants []models.Participant, groupOf map[int64]int) (*raceWeek, error) {
	results, err := repo.ListResultsForRace(ctx, race.ID)
	if err != nil {
		return nil, err
	}
	resultsByDriver := scoring.ResultsByDriver(results)
	ceiling, floor := scoring.GroupExtremes(results, groupOf)

	pickRows, err := repo.ListPicksForRace(ctx, race.ID)
	if err != nil {
		return nil, err
	}
	picks := make(map[string]models.Pick, len(pickRows))
	for _, p := range pickRows {
		picks[p.ProfileID] = p
	}

	weekly := make(map[string]int, len(participants))
	for _, participant := range participants {
		var pick *models.Pick
		if p, ok := picks[participant.ProfileID]; ok {
			pick = &p
		}
		weekly[participant.ProfileID] = scoring.WeeklyPoints(pick, resultsByDriver, floor)
	}

	return &raceWeek{
		race:            race,
		resultsByDriver: resultsByDriver,
		groupCeiling:    ceiling,
		groupFloor:      floor,
		picks:           picks,
		weekly:          weekly,
	}, nil
}

// driverGroups maps every driver, active or not, to its group number
func driverGroups(ctx context.Context, repo repository.DriverRepository) (map[int64]int, error) {
	drivers, err := repo.ListDrivers(ctx)
	if err != nil {
		return nil, err
	}
	groupOf := make(map[int64]int, len(drivers))
	for _, d := range drivers {
		groupOf[d.ID] = d.GroupNumber
	}
	return groupOf, nil
}

// standingsRanks assigns competition ranks over participants sorted by
// cumulative points, then this race's weekly points, then team name.
// Ranks are shared only when both point values tie; the speed tiebreak
// never applies to cumulative standings.
func standingsRanks(participants []models.Participant, cumulative, weekly map[string]int) map[string]int {
	sorted := make([]models.Participant, len(participants))
	copy(sorted, participants)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if cumulative[a.ProfileID] != cumulative[b.ProfileID] {
			return cumulative[a.ProfileID] > cumulative[b.ProfileID]
		}
		if weekly[a.ProfileID] != weekly[b.ProfileID] {
			return weekly[a.ProfileID] > weekly[b.ProfileID]
		}
		return a.TeamName < b.TeamName
	})

	ranks := make(map[string]int, len(sorted))
	for i, p := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			if cumulative[p.ProfileID] == cumulative[prev.ProfileID] &&
				weekly[p.ProfileID] == weekly[prev.ProfileID] {
				ranks[p.ProfileID] = ranks[prev.ProfileID]
				continue
			}
		}
		ranks[p.ProfileID] = i + 1
	}
	return ranks
}

// BuildStandings folds every race with posted results, oldest first,
// into cumulative season standings with rank movement
func (s *LeaderboardService) BuildStandings(ctx context.Context) (*Standings, error) {
	participants, err := s.repo.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	races, err := s.repo.ListRacesWithResults(ctx)
	if err != nil {
		return nil, err
	}
	if len(races) == 0 || len(participants) == 0 {
		return &Standings{Races: races}, nil
	}

	groupOf, err := driverGroups(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	cumulative := make(map[string]int, len(participants))
	pointsByRace := make(map[string]map[int64]int, len(participants))
	for _, p := range participants {
		pointsByRace[p.ProfileID] = make(map[int64]int, len(races))
	}

	var rankHistory []map[string]int
	var latestWeek *raceWeek

	for _, race := range races {
		week, err := loadRaceWeek(ctx, s.repo, race, participants, groupOf)
		if err != nil {
			return nil, err
		}

		for _, p := range participants {
			points := week.weekly[p.ProfileID]
			cumulative[p.ProfileID] += points
			pointsByRace[p.ProfileID][race.ID] = points
		}

		rankHistory = append(rankHistory, standingsRanks(participants, cumulative, week.weekly))
		latestWeek = week
	}

	current := rankHistory[len(rankHistory)-1]
	var previous map[string]int
	if len(rankHistory) > 1 {
		previous = rankHistory[len(rankHistory)-2]
	}

	rows := make([]StandingRow, 0, len(participants))
	for _, p := range participants {
		row := StandingRow{
			ProfileID:        p.ProfileID,
			TeamName:         p.TeamName,
			Rank:             current[p.ProfileID],
			Trend:            TrendFlat,
			CumulativePoints: cumulative[p.ProfileID],
			LatestWeekPoints: latestWeek.weekly[p.ProfileID],
			PointsByRace:     pointsByRace[p.ProfileID],
		}
		if previous != nil {
			prevRank := previous[p.ProfileID]
			change := prevRank - row.Rank
			row.PreviousRank = &prevRank
			row.Change = &change
			switch {
			case change > 0:
				row.Trend = TrendUp
			case change < 0:
				row.Trend = TrendDown
			}
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Rank != rows[j].Rank {
			return rows[i].Rank < rows[j].Rank
		}
		return rows[i].TeamName < rows[j].TeamName
	})

	latest := latestWeek.race
	return &Standings{
		Rows:             rows,
		Races:            races,
		LatestRace:       &latest,
		LatestScoreboard: s.buildScoreboard(participants, latestWeek),
	}, nil
}

// buildScoreboard ranks the latest race's weekly scores with the speed
// tiebreak and appends ceiling and floor benchmark rows
func (s *LeaderboardService) buildScoreboard(participants []models.Participant, week *raceWeek) []ScoreboardRow {
	entries := make([]scoring.Entry, 0, len(participants))
	for _, p := range participants {
		entry := scoring.Entry{
			ProfileID: p.ProfileID,
			Name:      p.TeamName,
			Points:    week.weekly[p.ProfileID],
		}
		if pick, ok := week.picks[p.ProfileID]; ok {
			guess := pick.AverageSpeed
			entry.Guess = &guess
		}
		entries = append(entries, entry)
	}

	ranked := scoring.AssignRanks(scoring.Order(entries, week.race.OfficialAvgSpeed))

	rows := make([]ScoreboardRow, 0, len(ranked)+2)
	for _, r := range ranked {
		rank := r.Rank
		rows = append(rows, ScoreboardRow{
			ProfileID: r.ProfileID,
			TeamName:  r.Name,
			Points:    r.Points,
			Rank:      &rank,
		})
	}
	rows = append(rows,
		ScoreboardRow{TeamName: "Best Possible", Points: week.groupCeiling, Benchmark: true},
		ScoreboardRow{TeamName: "Worst Possible", Points: week.groupFloor, Benchmark: true},
	)
	return rows
}
