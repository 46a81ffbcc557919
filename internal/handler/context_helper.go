package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/scholarseek/scholarseek-api/internal/middleware"
	"github.com/scholarseek/scholarseek-api/internal/models"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
	"github.com/scholarseek/scholarseek-api/pkg/response"
)

// mustClaims pulls the authenticated claims off the context, writing a 401
// and returning nil when they are missing.
func mustClaims(c *gin.Context) *models.JWTClaims {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		c.Abort()
	}
	return claims
}
