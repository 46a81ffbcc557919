package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholarseek/scholarseek-api/internal/service"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
	"github.com/scholarseek/scholarseek-api/pkg/response"
)

// BookmarkHandler exposes bookmark toggle and listing.
type BookmarkHandler struct {
	bookmarks *service.BookmarkService
}

// NewBookmarkHandler constructs the bookmark handler.
func NewBookmarkHandler(bookmarks *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

type toggleRequest struct {
	ScholarshipID string `json:"scholarship_id" binding:"required"`
}

// Toggle godoc
// @Summary Toggle a bookmark on a scholarship
// @Tags bookmarks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body toggleRequest true "Target scholarship"
// @Success 200 {object} response.Envelope "result is Added or Removed"
// @Router /bookmarks/toggle [post]
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	result, err := h.bookmarks.Toggle(c.Request.Context(), claims.UserID, req.ScholarshipID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"result": result}, nil)
}

// List godoc
// @Summary List the caller's bookmarks, newest first
// @Tags bookmarks
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /bookmarks [get]
func (h *BookmarkHandler) List(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	bookmarks, err := h.bookmarks.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bookmarks, nil)
}
