package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/middleware"
	"github.com/noah-isme/reflective-room/internal/models"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
	"github.com/noah-isme/reflective-room/pkg/response"
)

type submissionService interface {
	Submit(ctx context.Context, sess models.SessionContext, req dto.SubmitPoemRequest) (*models.Submission, models.SessionContext, error)
}

type reflectionService interface {
	Enabled() bool
	Reflect(ctx context.Context, row int) (*dto.ReflectionResponse, error)
	ReflectOn(ctx context.Context, sub *models.Submission) (*dto.ReflectionResponse, error)
}

type featuredReader interface {
	Featured(ctx context.Context) (*models.Submission, error)
}

type sessionStore interface {
	Save(ctx context.Context, sess models.SessionContext)
}

// SubmissionHandler wires the community submission flow to HTTP endpoints.
type SubmissionHandler struct {
	submissions submissionService
	reflections reflectionService
	featured    featuredReader
	sessions    sessionStore
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(submissions submissionService, reflections reflectionService, featured featuredReader, sessions sessionStore) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, reflections: reflections, featured: featured, sessions: sessions}
}

// Submit godoc
// @Summary Submit a poem
// @Description Validates and stores a poem. With reflect=true a reflection is generated afterwards; a failed reflection is reported in meta.warnings and does not undo the submission.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param payload body dto.SubmitPoemRequest true "Poem"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmitPoemRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission payload"))
		return
	}

	ctx := c.Request.Context()
	sub, sess, err := h.submissions.Submit(ctx, middleware.SessionFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.sessions.Save(ctx, sess)
	c.Set(middleware.ContextSessionKey, sess)

	var warnings []string
	var reflection *dto.ReflectionResponse
	if req.Reflect {
		if h.reflections == nil || !h.reflections.Enabled() {
			warnings = append(warnings, "reflections are not enabled")
		} else if reflection, err = h.reflections.ReflectOn(ctx, sub); err != nil {
			warnings = append(warnings, appErrors.FromError(err).Message)
		}
	}

	var meta map[string]interface{}
	if len(warnings) > 0 {
		meta = map[string]interface{}{"warnings": warnings}
	}
	response.Created(c, dto.SubmitPoemResponse{Submission: *sub, Reflection: reflection}, meta)
}

// Featured godoc
// @Summary Featured poem
// @Tags Submissions
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /submissions/featured [get]
func (h *SubmissionHandler) Featured(c *gin.Context) {
	sub, err := h.featured.Featured(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sub, nil)
}

// Reflect godoc
// @Summary Reflect on a stored poem
// @Description Generates a reflection and stores the parsed score when the poem has none.
// @Tags Submissions
// @Produce json
// @Param row path int true "Submission row"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 501 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /submissions/{row}/reflection [post]
func (h *SubmissionHandler) Reflect(c *gin.Context) {
	row, err := rowParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.reflections.Reflect(c.Request.Context(), row)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
