package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

// Speaker converts text to a playable audio file.
type Speaker interface {
	Synthesize(ctx context.Context, text string) (audio []byte, contentType string, err error)
}

// Audio is a synthesized narration.
type Audio struct {
	Data        []byte
	ContentType string
}

// SpeechService narrates text through the text-to-speech collaborator.
type SpeechService struct {
	speaker Speaker
	metrics *MetricsService
	logger  *zap.Logger
}

// NewSpeechService constructs a SpeechService. A nil speaker disables the feature.
func NewSpeechService(speaker Speaker, metrics *MetricsService, logger *zap.Logger) *SpeechService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpeechService{speaker: speaker, metrics: metrics, logger: logger}
}

// Synthesize returns narrated audio for text.
func (s *SpeechService) Synthesize(ctx context.Context, text string) (*Audio, error) {
	if s == nil || s.speaker == nil {
		return nil, appErrors.Clone(appErrors.ErrFeatureNotConfigured, "audio is not enabled")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "text is required")
	}
	data, contentType, err := s.speaker.Synthesize(ctx, text)
	if err != nil {
		s.metrics.RecordSpeech("error")
		s.logger.Warn("speech request failed", zap.Error(err))
		return nil, appErrors.WrapAs(err, appErrors.ErrAudioService, "the audio could not be generated right now")
	}
	s.metrics.RecordSpeech("ok")
	return &Audio{Data: data, ContentType: contentType}, nil
}
