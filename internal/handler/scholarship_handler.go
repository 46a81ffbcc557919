package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scholarseek/scholarseek-api/internal/models"
	"github.com/scholarseek/scholarseek-api/internal/service"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
	"github.com/scholarseek/scholarseek-api/pkg/response"
)

// ScholarshipHandler exposes scholarship discovery and management.
type ScholarshipHandler struct {
	scholarships    *service.ScholarshipService
	recommendations *service.RecommendationService
}

// NewScholarshipHandler constructs the scholarship handler.
func NewScholarshipHandler(scholarships *service.ScholarshipService, recommendations *service.RecommendationService) *ScholarshipHandler {
	return &ScholarshipHandler{scholarships: scholarships, recommendations: recommendations}
}

// List godoc
// @Summary Search and filter scholarship listings
// @Tags scholarships
// @Produce json
// @Param search query string false "Case-insensitive term matched against name, provider and description"
// @Param category query string false "Eligibility tag, or all"
// @Param degree_level query string false "Degree level, or all"
// @Param mine query bool false "Restrict to listings created by the caller"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /scholarships [get]
func (h *ScholarshipHandler) List(c *gin.Context) {
	filter := models.ScholarshipFilter{
		Search:      c.Query("search"),
		Category:    c.DefaultQuery("category", service.FacetAll),
		DegreeLevel: c.DefaultQuery("degree_level", service.FacetAll),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if c.Query("mine") == "true" {
		claims := mustClaims(c)
		if claims == nil {
			return
		}
		filter.CreatedBy = claims.UserID
	}

	listings, pagination, err := h.scholarships.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, listings, pagination)
}

// Get godoc
// @Summary Fetch one scholarship
// @Tags scholarships
// @Produce json
// @Param id path string true "Scholarship ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /scholarships/{id} [get]
func (h *ScholarshipHandler) Get(c *gin.Context) {
	scholarship, err := h.scholarships.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scholarship, nil)
}

// Recommended godoc
// @Summary Listings the student qualifies for, soonest deadline first
// @Tags scholarships
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scholarships/recommended [get]
func (h *ScholarshipHandler) Recommended(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	recommended, err := h.recommendations.ForStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, recommended, nil)
}

// Create godoc
// @Summary Post a new scholarship listing
// @Tags scholarships
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body service.CreateScholarshipRequest true "Listing"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /scholarships [post]
func (h *ScholarshipHandler) Create(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	var req service.CreateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	scholarship, err := h.scholarships.Create(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, scholarship)
}

// Update godoc
// @Summary Update a listing the caller owns
// @Tags scholarships
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Scholarship ID"
// @Param request body service.UpdateScholarshipRequest true "Listing"
// @Success 200 {object} response.Envelope
// @Router /scholarships/{id} [put]
func (h *ScholarshipHandler) Update(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	var req service.UpdateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	scholarship, err := h.scholarships.Update(c.Request.Context(), claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scholarship, nil)
}

// Delete godoc
// @Summary Remove a listing the caller owns
// @Tags scholarships
// @Security BearerAuth
// @Param id path string true "Scholarship ID"
// @Success 204
// @Router /scholarships/{id} [delete]
func (h *ScholarshipHandler) Delete(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	if err := h.scholarships.Delete(c.Request.Context(), claims, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
