package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/scholarseek/scholarseek-api/internal/handler"
	"github.com/scholarseek/scholarseek-api/internal/middleware"
	"github.com/scholarseek/scholarseek-api/internal/models"
	"github.com/scholarseek/scholarseek-api/internal/service"
	"github.com/scholarseek/scholarseek-api/pkg/config"
	"github.com/scholarseek/scholarseek-api/pkg/logger"
	corsmiddleware "github.com/scholarseek/scholarseek-api/pkg/middleware/cors"
	reqidmiddleware "github.com/scholarseek/scholarseek-api/pkg/middleware/requestid"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	DB      *sqlx.DB
	Redis   *redis.Client
	Metrics *service.MetricsService

	Auth         *service.AuthService
	Profiles     *handler.ProfileHandler
	Scholarships *handler.ScholarshipHandler
	Applications *handler.ApplicationHandler
	Bookmarks    *handler.BookmarkHandler
	Admin        *handler.AdminHandler
	AuthHandler  *handler.AuthHandler
}

// New assembles the gin engine with all routes and middleware.
func New(d Deps) *gin.Engine {
	if d.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(corsmiddleware.New(d.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(d.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := d.DB.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		if d.Redis != nil {
			if err := d.Redis.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "cache": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	if d.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(d.Config.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", d.AuthHandler.Register)
		auth.POST("/login", d.AuthHandler.Login)
		auth.POST("/refresh", d.AuthHandler.Refresh)

		authed := auth.Group("", middleware.JWT(d.Auth))
		authed.POST("/logout", d.AuthHandler.Logout)
		authed.POST("/change-password", d.AuthHandler.ChangePassword)
		authed.GET("/me", d.AuthHandler.Me)
	}

	profiles := api.Group("/profiles", middleware.JWT(d.Auth))
	{
		profiles.GET("/me", d.Profiles.Get)
		profiles.PUT("/me", d.Profiles.Update)
		profiles.POST("/me/photo", d.Profiles.UploadPhoto)
		profiles.POST("/me/income-certificate", d.Profiles.UploadIncomeCertificate)
	}
	// Signed token carries its own authorization.
	api.GET("/documents", d.Profiles.Download)

	scholarships := api.Group("/scholarships")
	{
		scholarships.GET("", d.Scholarships.List)
		scholarships.GET("/recommended",
			middleware.JWT(d.Auth),
			middleware.RequireRoles(models.RoleStudent),
			d.Scholarships.Recommended)
		scholarships.GET("/:id", d.Scholarships.Get)

		managed := scholarships.Group("", middleware.JWT(d.Auth),
			middleware.RequireRoles(models.RoleOrganization, models.RoleSuperAdmin))
		managed.POST("", d.Scholarships.Create)
		managed.PUT("/:id", d.Scholarships.Update)
		managed.DELETE("/:id", d.Scholarships.Delete)
		managed.GET("/:id/applications", d.Applications.ListForScholarship)
		managed.GET("/:id/applications/export", d.Applications.ExportApplicantsCSV)
	}

	applications := api.Group("/applications", middleware.JWT(d.Auth))
	{
		applications.POST("",
			middleware.RequireRoles(models.RoleStudent),
			d.Applications.Apply)
		applications.GET("/mine", d.Applications.ListMine)
		applications.GET("/export", d.Applications.ExportPDF)
		applications.PATCH("/:id/status",
			middleware.RequireRoles(models.RoleOrganization, models.RoleSuperAdmin),
			d.Applications.UpdateStatus)
		applications.DELETE("/:id",
			middleware.RequireRoles(models.RoleStudent),
			d.Applications.Withdraw)
	}

	bookmarks := api.Group("/bookmarks", middleware.JWT(d.Auth),
		middleware.RequireRoles(models.RoleStudent))
	{
		bookmarks.GET("", d.Bookmarks.List)
		bookmarks.POST("/toggle", d.Bookmarks.Toggle)
	}

	admin := api.Group("/admin", middleware.JWT(d.Auth),
		middleware.RequireRoles(models.RoleSuperAdmin))
	{
		admin.GET("/organizations/pending", d.Admin.ListPendingOrganizations)
		admin.POST("/organizations/:id/decision", d.Admin.Decide)
	}

	return r
}
