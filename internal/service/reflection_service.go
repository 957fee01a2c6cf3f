package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/models"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

// Reflector produces free-form reflection text for a poem.
type Reflector interface {
	Reflect(ctx context.Context, poem, instruction string) (string, error)
}

type reflectionRepository interface {
	Get(ctx context.Context, row int) (*models.Submission, error)
	SetScore(ctx context.Context, row int, score int) error
}

// ReflectionService asks the reflection collaborator about a stored poem and
// backfills the parsed score once.
type ReflectionService struct {
	repo        reflectionRepository
	reflector   Reflector
	instruction string
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewReflectionService constructs a ReflectionService. A nil reflector disables the feature.
func NewReflectionService(repo reflectionRepository, reflector Reflector, instruction string, metrics *MetricsService, logger *zap.Logger) *ReflectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReflectionService{repo: repo, reflector: reflector, instruction: instruction, metrics: metrics, logger: logger}
}

// Enabled reports whether a reflection collaborator is configured.
func (s *ReflectionService) Enabled() bool {
	return s != nil && s.reflector != nil
}

// Reflect loads the submission on row and reflects on it.
func (s *ReflectionService) Reflect(ctx context.Context, row int) (*dto.ReflectionResponse, error) {
	if !s.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrFeatureNotConfigured, "reflections are not enabled")
	}
	sub, err := s.repo.Get(ctx, row)
	if err != nil {
		return nil, storeError(err, "could not load the poem")
	}
	return s.ReflectOn(ctx, sub)
}

// ReflectOn reflects on an already loaded submission. A score is stored only
// when the text carries one and the submission has none yet; a failed
// backfill is logged and leaves the reflection text intact.
func (s *ReflectionService) ReflectOn(ctx context.Context, sub *models.Submission) (*dto.ReflectionResponse, error) {
	if !s.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrFeatureNotConfigured, "reflections are not enabled")
	}
	text, err := s.reflector.Reflect(ctx, sub.Poem, s.instruction)
	if err != nil {
		s.metrics.RecordReflection("error")
		s.logger.Warn("reflection request failed", zap.Int("row", sub.Row), zap.Error(err))
		return nil, appErrors.WrapAs(err, appErrors.ErrReflectionService, "the reflection could not be generated right now")
	}

	resp := &dto.ReflectionResponse{Row: sub.Row, Text: text}
	score, ok := ParseReflectionScore(text)
	if !ok {
		s.metrics.RecordReflection("no_score")
		return resp, nil
	}
	resp.Score = &score

	if sub.Score != nil {
		s.metrics.RecordReflection("already_scored")
		return resp, nil
	}
	if err := s.repo.SetScore(ctx, sub.Row, score); err != nil {
		s.metrics.RecordReflection("store_failed")
		s.logger.Warn("reflection score backfill failed", zap.Int("row", sub.Row), zap.Error(err))
		return resp, nil
	}
	sub.Score = &score
	resp.ScoreStored = true
	s.metrics.RecordReflection("scored")
	return resp, nil
}
