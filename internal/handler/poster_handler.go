package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/reflective-room/internal/dto"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
	"github.com/noah-isme/reflective-room/pkg/response"
)

type posterService interface {
	Pages(req dto.PosterRequest) (*dto.PosterResponse, error)
	FromSubmission(ctx context.Context, row int) (*dto.PosterResponse, error)
	RenderPDF(resp *dto.PosterResponse) ([]byte, error)
}

// PosterHandler serves paginated posters as JSON or PDF.
type PosterHandler struct {
	service posterService
}

// NewPosterHandler constructs the handler.
func NewPosterHandler(service posterService) *PosterHandler {
	return &PosterHandler{service: service}
}

// Create godoc
// @Summary Paginate poem text into a poster
// @Tags Posters
// @Accept json
// @Produce json,application/pdf
// @Param payload body dto.PosterRequest true "Poem"
// @Param format query string false "pdf for a PDF download"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /posters [post]
func (h *PosterHandler) Create(c *gin.Context) {
	var req dto.PosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid poster payload"))
		return
	}
	res, err := h.service.Pages(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, res, "poster.pdf")
}

// ForSubmission godoc
// @Summary Poster for a stored poem
// @Tags Posters
// @Produce json,application/pdf
// @Param row path int true "Submission row"
// @Param format query string false "pdf for a PDF download"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /submissions/{row}/poster [get]
func (h *PosterHandler) ForSubmission(c *gin.Context) {
	row, err := rowParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.service.FromSubmission(c.Request.Context(), row)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, res, fmt.Sprintf("poem-%d.pdf", row))
}

func (h *PosterHandler) respond(c *gin.Context, res *dto.PosterResponse, filename string) {
	if !wantsPDF(c) {
		response.JSON(c, http.StatusOK, res, nil)
		return
	}
	pdf, err := h.service.RenderPDF(res)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "application/pdf", filename, pdf)
}
