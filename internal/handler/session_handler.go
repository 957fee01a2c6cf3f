package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/reflective-room/internal/middleware"
	"github.com/noah-isme/reflective-room/pkg/response"
)

// SessionHandler exposes the visitor session context.
type SessionHandler struct{}

// NewSessionHandler constructs the handler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Current godoc
// @Summary Current visitor session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *SessionHandler) Current(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	response.JSON(c, http.StatusOK, gin.H{
		"id":                sess.ID,
		"submissions":       sess.Submissions,
		"has_submitted":     sess.HasSubmitted(),
		"last_row":          sess.LastRow,
		"last_submitted_at": sess.LastSubmittedAt,
	}, nil)
}
