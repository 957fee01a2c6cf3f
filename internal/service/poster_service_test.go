package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/models"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

type stubRenderer struct {
	pages []models.PosterPage
	err   error
}

func (s *stubRenderer) Render(pages []models.PosterPage) ([]byte, error) {
	s.pages = pages
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-stub"), nil
}

func TestPosterFromSubmissionUsesHandleByline(t *testing.T) {
	repo := &mockSubmissionRepo{rows: []models.Submission{
		{Row: 1, Author: "Ana", Handle: "ana", Title: "Tide", Poem: strings.Repeat("wave\n", 12)},
		{Row: 2, Author: "Bo", Poem: "one line"},
	}}
	svc := NewPosterService(repo, nil, PosterLayout{}, nil, nil)

	resp, err := svc.FromSubmission(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Pages, 2)
	assert.Equal(t, "@ana", resp.Pages[1].Byline)
	assert.Equal(t, []string{"Tide"}, resp.Pages[0].Title)
	assert.Equal(t, 11, resp.LineCapacity)

	resp, err = svc.FromSubmission(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Bo", resp.Pages[0].Byline)

	_, err = svc.FromSubmission(context.Background(), 3)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPosterPagesRejectsEmptyPoem(t *testing.T) {
	svc := NewPosterService(&mockSubmissionRepo{}, nil, DefaultPosterLayout, nil, nil)
	_, err := svc.Pages(dto.PosterRequest{Poem: "  "})
	assert.Equal(t, appErrors.ErrEmptyPoem.Code, appErrors.FromError(err).Code)
}

func TestPosterRenderPDF(t *testing.T) {
	renderer := &stubRenderer{}
	svc := NewPosterService(&mockSubmissionRepo{}, renderer, DefaultPosterLayout, nil, nil)
	resp, err := svc.Pages(dto.PosterRequest{Poem: "a\nb"})
	require.NoError(t, err)

	pdf, err := svc.RenderPDF(resp)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-stub", string(pdf))
	assert.Len(t, renderer.pages, 1)

	renderer.err = errors.New("font missing")
	_, err = svc.RenderPDF(resp)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)

	_, err = NewPosterService(&mockSubmissionRepo{}, nil, DefaultPosterLayout, nil, nil).RenderPDF(resp)
	assert.Equal(t, appErrors.ErrFeatureNotConfigured.Code, appErrors.FromError(err).Code)
}
