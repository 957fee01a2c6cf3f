package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/reflective-room/internal/models"
	"github.com/noah-isme/reflective-room/pkg/tabular"
)

func TestPromptRepositoryAppendAndRead(t *testing.T) {
	ctx := context.Background()
	book := tabular.NewMemory()
	repo := NewPromptRepository(book, "WeeklyPrompt", nil)

	empty, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	posted := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Append(ctx, models.WeeklyPrompt{Week: 1, Title: "Thresholds", Description: "doors", PostedDate: posted}))
	require.NoError(t, repo.Append(ctx, models.WeeklyPrompt{Week: 2, Title: "Salt", PostedDate: posted.AddDate(0, 0, 7)}))

	ws, _ := book.Worksheet(ctx, "weeklyprompt")
	rows, _ := ws.Rows(ctx)
	assert.Equal(t, []string{"week", "title", "description", "postedDate"}, rows[0])
	assert.Equal(t, []string{"1", "Thresholds", "doors", "2025-06-02"}, rows[1])

	prompts, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, prompts, 2)
	assert.Equal(t, models.WeeklyPrompt{Week: 1, Title: "Thresholds", Description: "doors", PostedDate: posted}, prompts[0])
	assert.Equal(t, 2, prompts[1].Week)
}
