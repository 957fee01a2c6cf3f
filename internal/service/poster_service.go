package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/models"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

// PosterRenderer draws paginated pages onto fixed-size canvases.
type PosterRenderer interface {
	Render(pages []models.PosterPage) ([]byte, error)
}

type submissionReader interface {
	Get(ctx context.Context, row int) (*models.Submission, error)
}

// PosterService paginates poems and renders them as downloadable posters.
type PosterService struct {
	repo     submissionReader
	renderer PosterRenderer
	layout   PosterLayout
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewPosterService constructs a PosterService.
func NewPosterService(repo submissionReader, renderer PosterRenderer, layout PosterLayout, metrics *MetricsService, logger *zap.Logger) *PosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if layout.LineCapacity <= 0 || layout.WrapWidth <= 0 {
		layout = DefaultPosterLayout
	}
	return &PosterService{repo: repo, renderer: renderer, layout: layout, metrics: metrics, logger: logger}
}

// Pages paginates ad-hoc poem text.
func (s *PosterService) Pages(req dto.PosterRequest) (*dto.PosterResponse, error) {
	if strings.TrimSpace(req.Poem) == "" {
		return nil, appErrors.ErrEmptyPoem
	}
	pages := Paginate(PosterInput{Poem: req.Poem, Title: req.Title, Byline: req.Byline}, s.layout)
	s.metrics.ObservePoster(len(pages), false)
	return &dto.PosterResponse{Pages: pages, LineCapacity: s.layout.LineCapacity, WrapWidth: s.layout.WrapWidth}, nil
}

// FromSubmission paginates a stored submission, crediting its handle or author.
func (s *PosterService) FromSubmission(ctx context.Context, row int) (*dto.PosterResponse, error) {
	sub, err := s.repo.Get(ctx, row)
	if err != nil {
		return nil, storeError(err, "could not load the poem")
	}
	return s.Pages(dto.PosterRequest{Poem: sub.Poem, Title: sub.Title, Byline: sub.Byline()})
}

// RenderPDF renders previously paginated pages into a PDF poster.
func (s *PosterService) RenderPDF(resp *dto.PosterResponse) ([]byte, error) {
	if s.renderer == nil {
		return nil, appErrors.Clone(appErrors.ErrFeatureNotConfigured, "poster rendering is not available")
	}
	pdf, err := s.renderer.Render(resp.Pages)
	if err != nil {
		s.logger.Error("poster render failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render poster")
	}
	s.metrics.ObservePoster(len(resp.Pages), true)
	return pdf, nil
}
