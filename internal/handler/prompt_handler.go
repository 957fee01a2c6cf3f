package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/models"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
	"github.com/noah-isme/reflective-room/pkg/response"
)

type promptService interface {
	Current(ctx context.Context) (*models.WeeklyPrompt, error)
	Post(ctx context.Context, req dto.PostPromptRequest) (*models.WeeklyPrompt, error)
}

// PromptHandler serves the weekly writing prompt.
type PromptHandler struct {
	service promptService
}

// NewPromptHandler constructs the handler.
func NewPromptHandler(service promptService) *PromptHandler {
	return &PromptHandler{service: service}
}

// Current godoc
// @Summary Current weekly prompt
// @Tags Prompts
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /prompts/current [get]
func (h *PromptHandler) Current(c *gin.Context) {
	prompt, err := h.service.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prompt, nil)
}

// Post godoc
// @Summary Post a weekly prompt
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.PostPromptRequest true "Prompt"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/prompts [post]
func (h *PromptHandler) Post(c *gin.Context) {
	var req dto.PostPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid prompt payload"))
		return
	}
	prompt, err := h.service.Post(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, prompt)
}
