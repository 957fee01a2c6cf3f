package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/reflective-room/internal/models"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

func TestLeaderboard(t *testing.T) {
	repo := &mockSubmissionRepo{rows: []models.Submission{
		{Row: 1, Author: "Ana", Score: intPtr(3)},
		{Row: 2, Author: "Bo", Score: intPtr(8)},
		{Row: 3, Author: "Ana"},
	}}
	resp, err := NewStatsService(repo).Leaderboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, "Ana", resp.Counts[0].Author)
	assert.Equal(t, "Bo", resp.Scores[0].Author)

	repo.readErr = errors.New("offline")
	_, err = NewStatsService(repo).Leaderboard(context.Background())
	assert.Equal(t, appErrors.ErrConnectivity.Code, appErrors.FromError(err).Code)
}
