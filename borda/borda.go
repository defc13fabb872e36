// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package borda

import (
	"sort"

	"github.com/AdamDeHovitz/readers-choice/models"
)

// tally accumulates one book's totals across users
type tally struct {
	bookID  string
	points  int
	count   int
	rankSum int
}

// Aggregate computes the global ranking for one club year.
//
// Each user's ranked books (non-nil Rank) earn N - rank + 1 points, where N is
// that user's own count of ranked books. Unread rows contribute nothing and do
// not count toward N. Books are ordered by total points descending, then by
// average rank ascending. Books nobody ranked are absent from the result.
//
// The sort is stable over first appearance in rows, so exact ties keep input
// order; callers should not rely on a particular order among them.
func Aggregate(rows []models.RankingRow) []models.GlobalRanking {
	// N per user
	rankedCount := make(map[string]int)
	for _, row := range rows {
		if row.Rank != nil {
			rankedCount[row.UserID]++
		}
	}

	byBook := make(map[string]*tally)
	var order []*tally
	for _, row := range rows {
		if row.Rank == nil {
			continue
		}
		n := rankedCount[row.UserID]
		rank := *row.Rank
		if rank < 1 || rank > n {
			continue
		}

		t, ok := byBook[row.BookID]
		if !ok {
			t = &tally{bookID: row.BookID}
			byBook[row.BookID] = t
			order = append(order, t)
		}
		t.points += Points(rank, n)
		t.count++
		t.rankSum += rank
	}

	results := make([]models.GlobalRanking, len(order))
	for i, t := range order {
		results[i] = models.GlobalRanking{
			BookID:           t.bookID,
			TotalPoints:      t.points,
			NumberOfRankings: t.count,
			AverageRank:      float64(t.rankSum) / float64(t.count),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]

		// 1. More points wins
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}

		// 2. Lower average rank wins
		return a.AverageRank < b.AverageRank
	})

	return results
}

// Points returns the Borda points for rank among n ranked books, or 0 when
// rank is outside 1..n.
func Points(rank, n int) int {
	if rank < 1 || rank > n {
		return 0
	}
	return n - rank + 1
}
