package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholarseek/scholarseek-api/internal/service"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
	"github.com/scholarseek/scholarseek-api/pkg/response"
)

// ProfileHandler exposes profile reads, edits and document uploads.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs the profile handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get godoc
// @Summary Fetch the caller's profile
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profiles/me [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	profile, err := h.profiles.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Update godoc
// @Summary Update the caller's profile
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body service.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /profiles/me [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	profile, err := h.profiles.Update(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// UploadPhoto godoc
// @Summary Upload the caller's profile photo
// @Tags profiles
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} response.Envelope "url is a signed download link"
// @Router /profiles/me/photo [post]
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	h.upload(c, service.DocumentPhoto)
}

// UploadIncomeCertificate godoc
// @Summary Upload the caller's income certificate
// @Tags profiles
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Success 200 {object} response.Envelope "url is a signed download link"
// @Router /profiles/me/income-certificate [post]
func (h *ProfileHandler) UploadIncomeCertificate(c *gin.Context) {
	h.upload(c, service.DocumentIncomeCertificate)
}

// Download godoc
// @Summary Stream a document named by a signed token
// @Tags profiles
// @Produce octet-stream
// @Param token query string true "Signed document token"
// @Success 200 {file} binary
// @Router /documents [get]
func (h *ProfileHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing token"))
		return
	}
	f, err := h.profiles.OpenDocument(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat document"))
		return
	}
	c.DataFromReader(http.StatusOK, info.Size(), "application/octet-stream", f, nil)
}

func (h *ProfileHandler) upload(c *gin.Context, kind string) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing file field"))
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer src.Close()

	url, err := h.profiles.AttachDocument(
		c.Request.Context(),
		claims.UserID,
		kind,
		file.Filename,
		file.Header.Get("Content-Type"),
		file.Size,
		src,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"url": url}, nil)
}
