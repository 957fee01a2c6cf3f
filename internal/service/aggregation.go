package service

import (
	"cmp"
	"slices"

	"github.com/noah-isme/reflective-room/internal/models"
)

// CountByAuthor groups submissions by exact author string and counts them,
// ordered by count descending. Ties keep first-seen order.
func CountByAuthor(submissions []models.Submission) []models.AuthorAggregate {
	groups := groupByAuthor(submissions)
	slices.SortStableFunc(groups, func(a, b models.AuthorAggregate) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return groups
}

// SumScoreByAuthor groups submissions by exact author string and sums their
// reflection scores (unset counts as 0), ordered by sum descending. Ties keep
// first-seen order.
func SumScoreByAuthor(submissions []models.Submission) []models.AuthorAggregate {
	groups := groupByAuthor(submissions)
	slices.SortStableFunc(groups, func(a, b models.AuthorAggregate) int {
		return cmp.Compare(b.ScoreSum, a.ScoreSum)
	})
	return groups
}

func groupByAuthor(submissions []models.Submission) []models.AuthorAggregate {
	index := make(map[string]int)
	groups := make([]models.AuthorAggregate, 0)
	for _, sub := range submissions {
		i, ok := index[sub.Author]
		if !ok {
			i = len(groups)
			index[sub.Author] = i
			groups = append(groups, models.AuthorAggregate{Author: sub.Author})
		}
		groups[i].Count++
		groups[i].ScoreSum += sub.ScoreValue()
	}
	return groups
}
