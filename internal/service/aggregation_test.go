package service

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/reflective-room/internal/models"
)

func TestCountByAuthor(t *testing.T) {
	subs := []models.Submission{
		{Author: "Ana"}, {Author: "Bo"}, {Author: "Ana"}, {Author: "Cy"}, {Author: "Bo"}, {Author: "Ana"},
	}
	got := CountByAuthor(subs)
	assert.Equal(t, []models.AuthorAggregate{
		{Author: "Ana", Count: 3},
		{Author: "Bo", Count: 2},
		{Author: "Cy", Count: 1},
	}, got)

	total := 0
	for _, agg := range got {
		total += agg.Count
	}
	assert.Equal(t, len(subs), total)
}

func TestCountByAuthorTiesKeepFirstSeenOrder(t *testing.T) {
	got := CountByAuthor([]models.Submission{{Author: "Zed"}, {Author: "Amy"}, {Author: "Mo"}})
	assert.Equal(t, "Zed", got[0].Author)
	assert.Equal(t, "Amy", got[1].Author)
	assert.Equal(t, "Mo", got[2].Author)
}

func TestCountByAuthorDoesNotNormalise(t *testing.T) {
	got := CountByAuthor([]models.Submission{{Author: "ana"}, {Author: "Ana"}, {Author: "Ana "}, {Author: ""}})
	assert.Len(t, got, 4)
}

func TestSumScoreByAuthor(t *testing.T) {
	subs := []models.Submission{
		{Author: "Ana", Score: intPtr(4)},
		{Author: "Bo", Score: intPtr(9)},
		{Author: "Ana", Score: intPtr(3)},
		{Author: "Cy"},
		{Author: "Bo"},
	}
	got := SumScoreByAuthor(subs)
	assert.Equal(t, []models.AuthorAggregate{
		{Author: "Bo", Count: 2, ScoreSum: 9},
		{Author: "Ana", Count: 2, ScoreSum: 7},
		{Author: "Cy", Count: 1, ScoreSum: 0},
	}, got)
}

func TestAggregationEmpty(t *testing.T) {
	assert.Empty(t, CountByAuthor(nil))
	assert.Empty(t, SumScoreByAuthor(nil))
}

func TestCountByAuthorAmyBoAmy(t *testing.T) {
	got := CountByAuthor([]models.Submission{{Author: "Amy"}, {Author: "Bo"}, {Author: "Amy"}})
	assert.Equal(t, []models.AuthorAggregate{
		{Author: "Amy", Count: 2},
		{Author: "Bo", Count: 1},
	}, got)
}

func TestAggregationIsIdempotentAndLeavesInputAlone(t *testing.T) {
	subs := []models.Submission{
		{Row: 1, Author: "Bo", Score: intPtr(2)},
		{Row: 2, Author: "Amy", Score: intPtr(8)},
		{Row: 3, Author: "Bo", Score: intPtr(7)},
		{Row: 4, Author: "Cy"},
	}
	before := slices.Clone(subs)

	firstCount := CountByAuthor(subs)
	secondCount := CountByAuthor(subs)
	assert.Equal(t, firstCount, secondCount)

	firstSum := SumScoreByAuthor(subs)
	secondSum := SumScoreByAuthor(subs)
	assert.Equal(t, firstSum, secondSum)

	assert.Equal(t, before, subs)
}
