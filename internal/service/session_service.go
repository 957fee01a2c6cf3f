package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/reflective-room/internal/models"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

// SessionRepository abstracts persistence for visitor sessions.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*models.SessionContext, error)
	Set(ctx context.Context, sess models.SessionContext, ttl time.Duration) error
}

// SessionService loads and saves explicit visitor session contexts.
type SessionService struct {
	repo   SessionRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewSessionService constructs a session service.
func NewSessionService(repo SessionRepository, ttl time.Duration, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionService{repo: repo, ttl: ttl, logger: logger}
}

// Load returns the stored session or a fresh one. Storage failures degrade
// to a fresh session rather than failing the request.
func (s *SessionService) Load(ctx context.Context, id string) models.SessionContext {
	fresh := models.SessionContext{ID: id}
	if s == nil || s.repo == nil || id == "" {
		return fresh
	}
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("session load failed", zap.String("session_id", id), zap.Error(err))
		}
		return fresh
	}
	sess.ID = id
	return *sess
}

// Save persists the session; failures are logged and swallowed.
func (s *SessionService) Save(ctx context.Context, sess models.SessionContext) {
	if s == nil || s.repo == nil || sess.ID == "" {
		return
	}
	if err := s.repo.Set(ctx, sess, s.ttl); err != nil {
		s.logger.Warn("session save failed", zap.String("session_id", sess.ID), zap.Error(err))
	}
}
