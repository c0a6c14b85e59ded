package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-recommender/internal/core/cache"
	"recipe-recommender/internal/core/ingest"
	recipeService "recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Version     string                 `json:"version"`
	CatalogSize int                    `json:"catalog_size"`
	Runtime     map[string]interface{} `json:"runtime"`
	Queue       *ingest.Status         `json:"queue,omitempty"`
	Cache       map[string]interface{} `json:"cache,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	config  *config.Config
	service *recipeService.Service
	cache   cache.Store
}

// NewHandler 創建健康檢查處理器；store 可為 nil
func NewHandler(cfg *config.Config, service *recipeService.Service, store cache.Store) *Handler {
	return &Handler{
		config:  cfg,
		service: service,
		cache:   store,
	}
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now(),
		Version:     h.config.App.Version,
		CatalogSize: h.service.Catalog().Len(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Queue: h.service.ImportStatus(),
	}
	if h.cache != nil {
		response.Cache = h.cache.Stats()
	}

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查
func (h *Handler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
