package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/models"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

func TestPromptCurrentIsLastAppended(t *testing.T) {
	repo := &mockPromptRepo{prompts: []models.WeeklyPrompt{{Week: 1, Title: "Rivers"}, {Week: 2, Title: "Lanterns"}}}
	svc := NewPromptService(repo, nil, nil)

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Lanterns", current.Title)
}

func TestPromptCurrentEmptyAndUnavailable(t *testing.T) {
	_, err := NewPromptService(&mockPromptRepo{}, nil, nil).Current(context.Background())
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = NewPromptService(&mockPromptRepo{readErr: errors.New("offline")}, nil, nil).Current(context.Background())
	assert.Equal(t, appErrors.ErrConnectivity.Code, appErrors.FromError(err).Code)
}

func TestPromptPost(t *testing.T) {
	repo := &mockPromptRepo{prompts: []models.WeeklyPrompt{{Week: 3, Title: "Salt"}}}
	svc := NewPromptService(repo, nil, nil)
	svc.clock = fixedClock(time.Date(2024, 3, 4, 18, 30, 0, 0, time.UTC))

	_, err := svc.Post(context.Background(), dto.PostPromptRequest{Week: 3, Title: "Again"})
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	_, err = svc.Post(context.Background(), dto.PostPromptRequest{Week: 4, Title: "  "})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	prompt, err := svc.Post(context.Background(), dto.PostPromptRequest{Week: 4, Title: " Thresholds ", Description: "doors"})
	require.NoError(t, err)
	assert.Equal(t, "Thresholds", prompt.Title)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), prompt.PostedDate)
	assert.Len(t, repo.prompts, 2)
}
