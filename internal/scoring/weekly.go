package scoring

import "github.com/c21matthewm/mound-hounds-pickem/internal/models"

// ResultsByDriver indexes a race's posted results by driver id.
func ResultsByDriver(results []models.RaceResult) map[int64]int {
	byDriver := make(map[int64]int, len(results))
	for _, r := range results {
		byDriver[r.DriverID] = r.Points
	}
	return byDriver
}

// ScorePick sums the posted result points across the pick's six drivers.
// A driver with no posted result contributes 0 points, not an error, so
// historical picks referencing retired or removed drivers still score.
func ScorePick(p models.Pick, resultsByDriver map[int64]int) int {
	total := 0
	for _, driverID := range p.DriverIDs {
		total += resultsByDriver[driverID]
	}
	return total
}

// GroupExtremes computes the best- and worst-possible weekly totals for a
// race: the sum of each group's highest posted result and the sum of each
// group's lowest. Groups with no posted results contribute 0 to both.
func GroupExtremes(results []models.RaceResult, groupOf map[int64]int) (highest, lowest int) {
	maxByGroup := make(map[int]int)
	minByGroup := make(map[int]int)
	for _, r := range results {
		group, ok := groupOf[r.DriverID]
		if !ok || group < 1 || group > models.NumDriverGroups {
			continue
		}
		if cur, seen := maxByGroup[group]; !seen || r.Points > cur {
			maxByGroup[group] = r.Points
		}
		if cur, seen := minByGroup[group]; !seen || r.Points < cur {
			minByGroup[group] = r.Points
		}
	}
	for group := 1; group <= models.NumDriverGroups; group++ {
		highest += maxByGroup[group]
		lowest += minByGroup[group]
	}
	return highest, lowest
}

// WeeklyPoints is the single weekly-score rule shared by standings, the
// picks-by-race view, analytics, and winner finalization: a submitted pick
// scores its drivers, and a participant with no pick falls back to the
// race's group-floor total rather than zero. Keeping this in one place
// guarantees the views never disagree about a participant's weekly score.
func WeeklyPoints(p *models.Pick, resultsByDriver map[int64]int, groupFloor int) int {
	if p == nil {
		return groupFloor
	}
	return ScorePick(*p, resultsByDriver)
}
