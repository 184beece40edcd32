package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/conduit-dev/conduit/config"
	"github.com/conduit-dev/conduit/controllers"
	"github.com/conduit-dev/conduit/middleware"
	"github.com/conduit-dev/conduit/store"
	"github.com/conduit-dev/conduit/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	s := store.New(db)
	s.AllowSelfFollow = cfg.FollowAllowSelf

	authController := controllers.NewAuthController(s)
	profileController := controllers.NewProfileController(s)
	articleController := controllers.NewArticleController(s)
	commentController := controllers.NewCommentController(s)
	tagController := controllers.NewTagController(s)

	api := r.Group("/api")

	usersGroup := api.Group("/users")
	usersGroup.Use(middleware.RateLimitMiddleware())
	usersGroup.POST("", authController.Register)
	usersGroup.POST("/login", authController.Login)
	usersGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)

	userGroup := api.Group("/user")
	userGroup.Use(middleware.AuthRequired())
	userGroup.GET("", authController.CurrentUser)
	userGroup.PUT("", authController.UpdateUser)
	userGroup.DELETE("", authController.DeleteUser)

	profilesGroup := api.Group("/profiles")
	profilesGroup.GET("/:username", middleware.AuthOptional(), profileController.GetProfile)
	profilesGroup.POST("/:username/follow", middleware.AuthRequired(), profileController.Follow)
	profilesGroup.DELETE("/:username/follow", middleware.AuthRequired(), profileController.Unfollow)

	articlesGroup := api.Group("/articles")
	articlesGroup.GET("", middleware.AuthOptional(), articleController.ListArticles)
	articlesGroup.GET("/feed", middleware.AuthRequired(), articleController.Feed)
	articlesGroup.GET("/:slug", middleware.AuthOptional(), articleController.GetArticle)
	articlesGroup.POST("", middleware.AuthRequired(), articleController.CreateArticle)
	articlesGroup.PATCH("/:slug", middleware.AuthRequired(), articleController.UpdateArticle)
	articlesGroup.DELETE("/:slug", middleware.AuthRequired(), articleController.DeleteArticle)
	articlesGroup.POST("/:slug/favorite", middleware.AuthRequired(), articleController.Favorite)
	articlesGroup.DELETE("/:slug/favorite", middleware.AuthRequired(), articleController.Unfavorite)
	articlesGroup.POST("/:slug/comments", middleware.AuthRequired(), commentController.CreateComment)
	articlesGroup.GET("/:slug/comments", middleware.AuthRequired(), commentController.ListComments)
	articlesGroup.DELETE("/:slug/comments/:id", middleware.AuthRequired(), commentController.DeleteComment)

	api.GET("/tags", tagController.ListTags)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
