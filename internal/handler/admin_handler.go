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

type adminService interface {
	Login(ctx context.Context, req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	ListSubmissions(ctx context.Context, query dto.ListSubmissionsQuery) ([]models.Submission, *models.Pagination, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	Feature(ctx context.Context, row int, featured bool) (*models.Submission, error)
}

// AdminHandler wires curation endpoints.
type AdminHandler struct {
	service adminService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(service adminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Login godoc
// @Summary Admin gate
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.AdminLoginRequest true "Shared password"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// List godoc
// @Summary List submissions
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/submissions [get]
func (h *AdminHandler) List(c *gin.Context) {
	var query dto.ListSubmissionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	items, pagination, err := h.service.ListSubmissions(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Export godoc
// @Summary Export submissions as CSV
// @Tags Admin
// @Security BearerAuth
// @Produce text/csv
// @Success 200 {file} binary
// @Router /admin/submissions/export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	data, err := h.service.ExportCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "text/csv; charset=utf-8", "submissions.csv", data)
}

// Feature godoc
// @Summary Set the featured poem
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param row path int true "Submission row"
// @Param payload body dto.FeatureRequest true "Featured flag"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/submissions/{row}/featured [put]
func (h *AdminHandler) Feature(c *gin.Context) {
	row, err := rowParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.FeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Featured == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "featured must be true or false"))
		return
	}
	sub, err := h.service.Feature(c.Request.Context(), row, *req.Featured)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sub, nil)
}
