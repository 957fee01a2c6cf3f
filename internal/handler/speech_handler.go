package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/service"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
	"github.com/noah-isme/reflective-room/pkg/response"
)

type speechService interface {
	Synthesize(ctx context.Context, text string) (*service.Audio, error)
}

// SpeechHandler narrates text.
type SpeechHandler struct {
	service speechService
}

// NewSpeechHandler constructs the handler.
func NewSpeechHandler(service speechService) *SpeechHandler {
	return &SpeechHandler{service: service}
}

// Synthesize godoc
// @Summary Read text aloud
// @Tags Speech
// @Accept json
// @Produce audio/wav
// @Param payload body dto.SpeechRequest true "Text"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /speech [post]
func (h *SpeechHandler) Synthesize(c *gin.Context) {
	var req dto.SpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid speech payload"))
		return
	}
	audio, err := h.service.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, audio.ContentType, audio.Data)
}
