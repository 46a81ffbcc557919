package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholarseek/scholarseek-api/internal/models"
	"github.com/scholarseek/scholarseek-api/internal/service"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
	"github.com/scholarseek/scholarseek-api/pkg/response"
)

// ApplicationHandler exposes the application lifecycle endpoints.
type ApplicationHandler struct {
	applications *service.ApplicationService
	exports      *service.ExportService
}

// NewApplicationHandler constructs the application handler.
func NewApplicationHandler(applications *service.ApplicationService, exports *service.ExportService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, exports: exports}
}

type applyRequest struct {
	ScholarshipID string `json:"scholarship_id" binding:"required"`
}

type statusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
}

// Apply godoc
// @Summary Submit an application for a scholarship
// @Tags applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body applyRequest true "Target scholarship"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Already applied"
// @Router /applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	app, err := h.applications.Apply(c.Request.Context(), claims.UserID, req.ScholarshipID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, app)
}

// ListMine godoc
// @Summary List the caller's applications, newest first
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /applications/mine [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	apps, err := h.applications.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apps, nil)
}

// UpdateStatus godoc
// @Summary Move an application to a review status
// @Tags applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body statusRequest true "New status"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	app, err := h.applications.UpdateStatus(c.Request.Context(), claims, c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, app, nil)
}

// Withdraw godoc
// @Summary Withdraw the caller's application
// @Tags applications
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 204
// @Router /applications/{id} [delete]
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	if err := h.applications.Withdraw(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportPDF godoc
// @Summary Download the caller's applications as a PDF
// @Tags applications
// @Security BearerAuth
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /applications/export [get]
func (h *ApplicationHandler) ExportPDF(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	out, err := h.exports.StudentApplicationsPDF(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFilename("applications", "pdf")+`"`)
	c.Data(http.StatusOK, "application/pdf", out)
}

// ListForScholarship godoc
// @Summary List applications on a listing the caller owns
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Scholarship ID"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /scholarships/{id}/applications [get]
func (h *ApplicationHandler) ListForScholarship(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	status := models.ApplicationStatus(c.Query("status"))
	apps, err := h.applications.ListForScholarship(c.Request.Context(), claims, c.Param("id"), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apps, nil)
}

// ExportApplicantsCSV godoc
// @Summary Download the applicant roster for a listing as CSV
// @Tags applications
// @Security BearerAuth
// @Produce text/csv
// @Param id path string true "Scholarship ID"
// @Success 200 {file} binary
// @Router /scholarships/{id}/applications/export [get]
func (h *ApplicationHandler) ExportApplicantsCSV(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	out, err := h.exports.ScholarshipApplicantsCSV(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFilename("applicants", "csv")+`"`)
	c.Data(http.StatusOK, "text/csv", out)
}
