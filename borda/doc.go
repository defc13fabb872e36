// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package borda aggregates personal book rankings into a club-wide order.

# Borda Count

A user who ranked N books gives their #1 N points, their #2 N-1 points, down
to 1 point for #N. Books marked unread earn nothing and are not part of N.
Users with different N are not normalized against each other.

	rows := []models.RankingRow{...} // every row for the club year
	ranking := borda.Aggregate(rows)

# Ordering

  - total points, descending
  - average rank, ascending

There is no third key. Exact ties keep the order in which the books first
appear in the input.

The aggregator holds no state; the caller reads all snapshots for the year
and passes them in.
*/
package borda
