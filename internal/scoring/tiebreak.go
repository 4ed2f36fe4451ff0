package scoring

import (
	"math"
	"sort"
)

// Entry is one scored row entering tiebreak resolution: a participant's
// points for a race plus their predicted average speed, if submitted.
type Entry struct {
	ProfileID string   `json:"profile_id"`
	Name      string   `json:"name"`
	Points    int      `json:"points"`
	Guess     *float64 `json:"guess,omitempty"`
}

// Ranked pairs an ordered Entry with its competition rank.
type Ranked struct {
	Entry
	Rank int `json:"rank"`
}

// Distance returns the absolute difference between a speed guess and the
// official target, or nil when either value is absent.
func Distance(guess, target *float64) *float64 {
	if guess == nil || target == nil {
		return nil
	}
	d := math.Abs(*guess - *target)
	return &d
}

// distanceOrInf treats a missing guess or target as infinitely far, so
// entries without a usable tiebreak sort behind every entry with one.
func distanceOrInf(guess, target *float64) float64 {
	if d := Distance(guess, target); d != nil {
		return *d
	}
	return math.Inf(1)
}

// Order produces the deterministic total order used everywhere a field of
// scored entries is ranked. The points leaders come first; when more than
// one entry shares the top score, the leaders are ordered by closest guess
// to the official target, then by name. The league's tiebreak rule only
// applies to first place, so everyone below the leaders is ordered by
// points descending then name ascending.
func Order(entries []Entry, target *float64) []Entry {
	if len(entries) == 0 {
		return nil
	}

	top := entries[0].Points
	for _, e := range entries[1:] {
		if e.Points > top {
			top = e.Points
		}
	}

	var leaders, rest []Entry
	for _, e := range entries {
		if e.Points == top {
			leaders = append(leaders, e)
		} else {
			rest = append(rest, e)
		}
	}

	if len(leaders) > 1 {
		sort.SliceStable(leaders, func(i, j int) bool {
			di := distanceOrInf(leaders[i].Guess, target)
			dj := distanceOrInf(leaders[j].Guess, target)
			if di != dj {
				return di < dj
			}
			return leaders[i].Name < leaders[j].Name
		})
	}

	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].Points != rest[j].Points {
			return rest[i].Points > rest[j].Points
		}
		return rest[i].Name < rest[j].Name
	})

	return append(leaders, rest...)
}

// AssignRanks walks an already-Ordered list and assigns competition ranks.
// A points tie at the very top is already strictly ordered by the speed
// tiebreak, so each tied leader gets a distinct sequential rank. Every
// other group of equal points shares one rank, and the next distinct score
// skips ranks the way sports standings do (1, 1, 3).
func AssignRanks(ordered []Entry) []Ranked {
	if len(ordered) == 0 {
		return nil
	}

	topSize := 1
	for topSize < len(ordered) && ordered[topSize].Points == ordered[0].Points {
		topSize++
	}

	ranked := make([]Ranked, len(ordered))
	for i, e := range ordered {
		switch {
		case i < topSize && topSize > 1:
			// tiebroken leaders: forced distinct ranks
			ranked[i] = Ranked{Entry: e, Rank: i + 1}
		case i > 0 && e.Points == ordered[i-1].Points:
			ranked[i] = Ranked{Entry: e, Rank: ranked[i-1].Rank}
		default:
			ranked[i] = Ranked{Entry: e, Rank: i + 1}
		}
	}
	return ranked
}

// IsTopTie reports whether the given score is the shared maximum of the
// field, i.e. whether the speed tiebreak decides first place.
func IsTopTie(entries []Entry, points int) bool {
	if len(entries) == 0 {
		return false
	}
	top := entries[0].Points
	count := 0
	for _, e := range entries {
		if e.Points > top {
			top = e.Points
		}
	}
	if points != top {
		return false
	}
	for _, e := range entries {
		if e.Points == top {
			count++
		}
	}
	return count >= 2
}
