package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/models"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

type submissionWriter interface {
	Append(ctx context.Context, sub *models.Submission) (int, error)
}

// SubmissionServiceConfig carries the community form rules.
type SubmissionServiceConfig struct {
	Passphrase    string
	RequireAuthor bool
	Clock         func() time.Time
}

// SubmissionService validates and persists poem submissions.
type SubmissionService struct {
	repo    submissionWriter
	metrics *MetricsService
	logger  *zap.Logger
	config  SubmissionServiceConfig
}

// NewSubmissionService constructs a SubmissionService.
func NewSubmissionService(repo submissionWriter, metrics *MetricsService, logger *zap.Logger, cfg SubmissionServiceConfig) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &SubmissionService{repo: repo, metrics: metrics, logger: logger, config: cfg}
}

// Submit validates req, appends one canonical row and returns the stored
// submission with the updated session. The session is only advanced on success.
func (s *SubmissionService) Submit(ctx context.Context, sess models.SessionContext, req dto.SubmitPoemRequest) (*models.Submission, models.SessionContext, error) {
	sub, err := s.validate(req)
	if err != nil {
		s.metrics.RecordSubmission(appErrors.FromError(err).Code)
		return nil, sess, err
	}

	if _, err := s.repo.Append(ctx, sub); err != nil {
		s.logger.Error("submission append failed", zap.Error(err))
		s.metrics.RecordSubmission(appErrors.ErrConnectivity.Code)
		return nil, sess, storeError(err, "could not save your poem, please try again later")
	}
	s.metrics.RecordSubmission("accepted")
	s.logger.Info("submission stored", zap.Int("row", sub.Row), zap.String("session_id", sess.ID))

	next := sess
	next.Submissions++
	next.LastRow = sub.Row
	ts := sub.Timestamp
	next.LastSubmittedAt = &ts
	return sub, next, nil
}

// tidyPoem drops blank lines around a non-blank poem. Indentation and
// trailing spaces inside the poem are kept.
func tidyPoem(poem string) string {
	poem = strings.TrimRight(poem, "\r\n")
	for {
		i := strings.IndexByte(poem, '\n')
		if i < 0 || strings.TrimSpace(poem[:i]) != "" {
			return poem
		}
		poem = poem[i+1:]
	}
}

func (s *SubmissionService) validate(req dto.SubmitPoemRequest) (*models.Submission, error) {
	if strings.TrimSpace(req.Poem) == "" {
		return nil, appErrors.ErrEmptyPoem
	}
	author := strings.TrimSpace(req.Author)
	if s.config.RequireAuthor && author == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingField, "author name is required")
	}
	if s.config.Passphrase != "" && req.Passphrase != s.config.Passphrase {
		return nil, appErrors.ErrInvalidPasskey
	}

	return &models.Submission{
		Author:    author,
		Handle:    strings.TrimPrefix(strings.TrimSpace(req.Handle), "@"),
		Title:     strings.TrimSpace(req.Title),
		Poem:      tidyPoem(req.Poem),
		Theme:     strings.TrimSpace(req.Theme),
		Timestamp: s.config.Clock().UTC().Truncate(time.Second),
	}, nil
}
