package app

import (
	"math"
	"sort"

	"quizzify-service/internal/domain"
)

// Rank orders leaderboard entries by score descending, then time taken
// ascending. The sort is stable so entries with equal keys keep their input
// order. Entries without a usable time sink to the bottom of their score
// tier rather than landing at an arbitrary position.
func Rank(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	ranked := make([]domain.LeaderboardEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return sortableTime(ranked[i]) < sortableTime(ranked[j])
	})
	return ranked
}

// sortableTime maps a missing or zero time to an infinite sentinel; a
// recorded zero means the source never captured a usable duration.
func sortableTime(e domain.LeaderboardEntry) int {
	if e.TimeTakenSeconds <= 0 {
		return math.MaxInt
	}
	return e.TimeTakenSeconds
}
