package services

import (
	"context"

	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
	"github.com/c21matthewm/mound-hounds-pickem/internal/scoring"
)

// AnalyticsServiceRepository defines the repository methods needed by AnalyticsService
type AnalyticsServiceRepository interface {
	repository.RaceRepository
	repository.ProfileRepository
	repository.DriverRepository
	repository.PickRepository
	repository.ResultRepository
}

// AnalyticsService builds per-participant season history and summary stats
type AnalyticsService struct {
	log      logger.Logger
	repo     AnalyticsServiceRepository
	settings SettingsServicer
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(log logger.Logger, repo AnalyticsServiceRepository, settings SettingsServicer) *AnalyticsService {
	return &AnalyticsService{log: log, repo: repo, settings: settings}
}

// AnalyticsRaceRow is one participant's outcome for one race with results
type AnalyticsRaceRow struct {
	RaceID           int64    `json:"race_id"`
	RaceName         string   `json:"race_name"`
	WeeklyPoints     int      `json:"weekly_points"`
	WeeklyRank       int      `json:"weekly_rank"`
	CumulativePoints int      `json:"cumulative_points"`
	VsRaceAverage    float64  `json:"vs_race_average"`
	TiebreakDelta    *float64 `json:"tiebreak_delta"`
	SubmittedPick    bool     `json:"submitted_pick"`
}

// AnalyticsSummary aggregates a participant's season. Means over zero
// races are nil, never zero.
type AnalyticsSummary struct {
	MeanRank          *float64          `json:"mean_rank"`
	MeanWeeklyPoints  *float64          `json:"mean_weekly_points"`
	MeanTiebreakDelta *float64          `json:"mean_tiebreak_delta"`
	BestWeek          *AnalyticsRaceRow `json:"best_week,omitempty"`
	WorstWeek         *AnalyticsRaceRow `json:"worst_week,omitempty"`
	RecentAverage     *float64          `json:"recent_average"`
	Momentum          *float64          `json:"momentum"`
	SubmissionRate    float64           `json:"submission_rate"`
	WeeksWon          int               `json:"weeks_won"`
	WeeksTop3         int               `json:"weeks_top3"`
	ClosestTiebreak   *float64          `json:"closest_tiebreak"`
}

// ParticipantAnalytics is the full analytics snapshot for one participant
type ParticipantAnalytics struct {
	ProfileID string             `json:"profile_id"`
	TeamName  string             `json:"team_name"`
	Races     []AnalyticsRaceRow `json:"races"`
	Summary   AnalyticsSummary   `json:"summary"`
}

// BuildParticipantAnalytics produces one row per race with posted
// results plus summary statistics for one participant
func (s *AnalyticsService) BuildParticipantAnalytics(ctx context.Context, profileID string) (*ParticipantAnalytics, error) {
	participant, err := s.repo.GetParticipant(ctx, profileID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	participants, err := s.repo.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	races, err := s.repo.ListRacesWithResults(ctx)
	if err != nil {
		return nil, err
	}

	analytics := &ParticipantAnalytics{
		ProfileID: participant.ProfileID,
		TeamName:  participant.TeamName,
	}
	if len(races) == 0 {
		return analytics, nil
	}

	groupOf, err := driverGroups(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	cumulative := 0
	for _, race := range races {
		week, err := loadRaceWeek(ctx, s.repo, race, participants, groupOf)
		if err != nil {
			return nil, err
		}
		row := s.buildRaceRow(participant.ProfileID, participants, week)
		cumulative += row.WeeklyPoints
		row.CumulativePoints = cumulative
		analytics.Races = append(analytics.Races, row)
	}

	window, err := s.settings.MomentumWindow(ctx)
	if err != nil {
		return nil, err
	}
	analytics.Summary = summarize(analytics.Races, window)
	return analytics, nil
}

// buildRaceRow scores one race for the participant against the full field
func (s *AnalyticsService) buildRaceRow(profileID string, participants []models.Participant, week *raceWeek) AnalyticsRaceRow {
	row := AnalyticsRaceRow{
		RaceID:       week.race.ID,
		RaceName:     week.race.Name,
		WeeklyPoints: week.weekly[profileID],
	}

	entries := make([]scoring.Entry, 0, len(participants))
	fieldTotal := 0
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
		fieldTotal += entry.Points
	}

	for _, r := range scoring.AssignRanks(scoring.Order(entries, week.race.OfficialAvgSpeed)) {
		if r.ProfileID == profileID {
			row.WeeklyRank = r.Rank
			break
		}
	}

	if len(participants) > 0 {
		mean := float64(fieldTotal) / float64(len(participants))
		row.VsRaceAverage = float64(row.WeeklyPoints) - mean
	}

	if pick, ok := week.picks[profileID]; ok {
		row.SubmittedPick = true
		guess := pick.AverageSpeed
		row.TiebreakDelta = scoring.Distance(&guess, week.race.OfficialAvgSpeed)
	}
	return row
}

func summarize(rows []AnalyticsRaceRow, momentumWindow int) AnalyticsSummary {
	summary := AnalyticsSummary{}
	if len(rows) == 0 {
		return summary
	}

	rankSum, pointsSum, submitted := 0, 0, 0
	deltaSum := 0.0
	deltaCount := 0
	best, worst := &rows[0], &rows[0]

	for i := range rows {
		row := &rows[i]
		rankSum += row.WeeklyRank
		pointsSum += row.WeeklyPoints
		if row.SubmittedPick {
			submitted++
		}
		if row.TiebreakDelta != nil {
			deltaSum += *row.TiebreakDelta
			deltaCount++
			if summary.ClosestTiebreak == nil || *row.TiebreakDelta < *summary.ClosestTiebreak {
				delta := *row.TiebreakDelta
				summary.ClosestTiebreak = &delta
			}
		}
		if row.WeeklyRank == 1 {
			summary.WeeksWon++
		}
		if row.WeeklyRank >= 1 && row.WeeklyRank <= 3 {
			summary.WeeksTop3++
		}
		if betterWeek(row, best) {
			best = row
		}
		if worseWeek(row, worst) {
			worst = row
		}
	}

	n := float64(len(rows))
	meanRank := float64(rankSum) / n
	meanPoints := float64(pointsSum) / n
	summary.MeanRank = &meanRank
	summary.MeanWeeklyPoints = &meanPoints
	if deltaCount > 0 {
		meanDelta := deltaSum / float64(deltaCount)
		summary.MeanTiebreakDelta = &meanDelta
	}

	bestCopy, worstCopy := *best, *worst
	summary.BestWeek = &bestCopy
	summary.WorstWeek = &worstCopy
	summary.SubmissionRate = float64(submitted) / n

	if momentumWindow > 0 && len(rows) > 0 {
		start := len(rows) - momentumWindow
		if start < 0 {
			start = 0
		}
		recentSum := 0
		for _, row := range rows[start:] {
			recentSum += row.WeeklyPoints
		}
		recentAvg := float64(recentSum) / float64(len(rows)-start)
		momentum := recentAvg - meanPoints
		summary.RecentAverage = &recentAvg
		summary.Momentum = &momentum
	}
	return summary
}

// betterWeek prefers more points, then a better rank, then the more
// recent race
func betterWeek(candidate, current *AnalyticsRaceRow) bool {
	if candidate.WeeklyPoints != current.WeeklyPoints {
		return candidate.WeeklyPoints > current.WeeklyPoints
	}
	if candidate.WeeklyRank != current.WeeklyRank {
		return candidate.WeeklyRank < current.WeeklyRank
	}
	return candidate.RaceID != current.RaceID
}

// worseWeek prefers fewer points, then a worse rank, then the more
// recent race
func worseWeek(candidate, current *AnalyticsRaceRow) bool {
	if candidate.WeeklyPoints != current.WeeklyPoints {
		return candidate.WeeklyPoints < current.WeeklyPoints
	}
	if candidate.WeeklyRank != current.WeeklyRank {
		return candidate.WeeklyRank > current.WeeklyRank
	}
	return candidate.RaceID != current.RaceID
}
