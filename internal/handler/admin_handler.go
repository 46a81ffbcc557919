package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholarseek/scholarseek-api/internal/service"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
	"github.com/scholarseek/scholarseek-api/pkg/response"
)

// AdminHandler exposes super-admin moderation endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs the admin handler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type decisionRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// ListPendingOrganizations godoc
// @Summary List organization accounts awaiting approval
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/organizations/pending [get]
func (h *AdminHandler) ListPendingOrganizations(c *gin.Context) {
	pending, err := h.admin.ListPendingOrganizations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pending, nil)
}

// Decide godoc
// @Summary Approve or reject an organization account
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Organization user ID"
// @Param request body decisionRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/organizations/{id}/decision [post]
func (h *AdminHandler) Decide(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	profile, err := h.admin.Decide(c.Request.Context(), c.Param("id"), *req.Approved)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}
