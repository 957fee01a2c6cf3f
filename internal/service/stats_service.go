package service

import (
	"context"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/models"
)

type submissionLister interface {
	ReadAll(ctx context.Context) ([]models.Submission, error)
}

// StatsService recomputes author statistics from the full record set on every call.
type StatsService struct {
	repo submissionLister
}

// NewStatsService constructs a StatsService.
func NewStatsService(repo submissionLister) *StatsService {
	return &StatsService{repo: repo}
}

// Leaderboard returns per-author counts and score sums.
func (s *StatsService) Leaderboard(ctx context.Context) (*dto.LeaderboardResponse, error) {
	subs, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, storeError(err, "could not load statistics")
	}
	return &dto.LeaderboardResponse{
		Counts: CountByAuthor(subs),
		Scores: SumScoreByAuthor(subs),
		Total:  len(subs),
	}, nil
}
