package api

import (
	"fmt"
	"time"

	"recipe-recommender/internal/api/handlers/health"
	recipeHandler "recipe-recommender/internal/api/handlers/recipe"
	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/core/cache"
	recipeService "recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由；store 可為 nil
func SetupRouter(cfg *config.Config, svc *recipeService.Service, store cache.Store) (*gin.Engine, error) {
	if svc == nil {
		return nil, fmt.Errorf("recipe service is required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(common.ErrNotFound.Status, common.ErrorResponse{
			Code:    common.ErrNotFound.Code,
			Message: common.ErrNotFound.Message,
		})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(common.ErrMethodNotAllowed.Status, common.ErrorResponse{
			Code:    common.ErrMethodNotAllowed.Code,
			Message: common.ErrMethodNotAllowed.Message,
		})
	})

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}

	healthHandler := health.NewHandler(cfg, svc, store)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	h := recipeHandler.NewHandler(svc)

	// API 路由組
	// 只有會觸發抓取的請求需要去重
	api := router.Group("/api/v1")
	{
		recipes := api.Group("/recipes")
		{
			recipes.GET("", h.HandleList)
			recipes.POST("", middleware.DeduplicationWhen(cfg.DedupWindow, recipeHandler.IsScrapeRequest), h.HandleAddRecipe)
			recipes.POST("/import", middleware.Deduplication(cfg.DedupWindow), h.HandleImport)
			recipes.GET("/top", h.HandleTop)
			recipes.POST("/like", h.HandleLike)
			recipes.POST("/comments", h.HandleComment)
		}

		users := api.Group("/users/:username")
		{
			users.PUT("/preferences", h.HandleSetPreferences)
			users.GET("/preferences", h.HandleGetPreferences)
			users.GET("/recommendation", h.HandleUserRecommendation)
		}

		api.POST("/recommend", h.HandleRecommend)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", store != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Bool("shared_vocabulary", cfg.Recommend.SharedVocabulary),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
