package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/models"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

type promptRepository interface {
	ReadAll(ctx context.Context) ([]models.WeeklyPrompt, error)
	Append(ctx context.Context, prompt models.WeeklyPrompt) error
}

// PromptService exposes the weekly writing prompt.
type PromptService struct {
	repo      promptRepository
	validator *validator.Validate
	logger    *zap.Logger
	clock     func() time.Time
}

// NewPromptService constructs a PromptService.
func NewPromptService(repo promptRepository, validate *validator.Validate, logger *zap.Logger) *PromptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &PromptService{repo: repo, validator: validate, logger: logger, clock: time.Now}
}

// Current returns the most recently appended prompt.
func (s *PromptService) Current(ctx context.Context) (*models.WeeklyPrompt, error) {
	prompts, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, storeError(err, "could not load the weekly prompt")
	}
	if len(prompts) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no weekly prompt has been posted")
	}
	current := prompts[len(prompts)-1]
	return &current, nil
}

// Post appends a new prompt. Its week must be greater than every existing week.
func (s *PromptService) Post(ctx context.Context, req dto.PostPromptRequest) (*models.WeeklyPrompt, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid prompt payload")
	}

	prompts, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, storeError(err, "could not load the weekly prompt")
	}
	for _, p := range prompts {
		if p.Week >= req.Week {
			return nil, appErrors.Clone(appErrors.ErrConflict, "week must be greater than every posted week")
		}
	}

	prompt := models.WeeklyPrompt{
		Week:        req.Week,
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		PostedDate:  s.clock().UTC().Truncate(24 * time.Hour),
	}
	if err := s.repo.Append(ctx, prompt); err != nil {
		s.logger.Error("prompt append failed", zap.Error(err))
		return nil, storeError(err, "could not save the weekly prompt")
	}
	s.logger.Info("weekly prompt posted", zap.Int("week", prompt.Week))
	return &prompt, nil
}
