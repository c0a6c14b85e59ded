package recipe

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"recipe-recommender/internal/core/ingest"
	recipeService "recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddRecipeRequest 以網址抓取，或直接提供食譜內容
type AddRecipeRequest struct {
	URL          string   `json:"url,omitempty"`
	Title        string   `json:"title,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// IsScrapeRequest 新增食譜的請求體是否要求抓取網址
func IsScrapeRequest(body []byte) bool {
	var req AddRecipeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return false
	}
	return strings.TrimSpace(req.URL) != ""
}

// ImportRequest 批次匯入
type ImportRequest struct {
	URLs []string `json:"urls" binding:"required,min=1"`
}

// ImportResponse 批次匯入結果
type ImportResponse struct {
	Added   int             `json:"added"`
	Failed  int             `json:"failed"`
	Results []ingest.Result `json:"results"`
}

// LikeRequest 按讚
type LikeRequest struct {
	Title string `json:"title" binding:"required"`
}

// CommentRequest 留言
type CommentRequest struct {
	Title   string `json:"title" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// Handler 食譜處理程序
type Handler struct {
	service *recipeService.Service
}

// NewHandler 創建新的食譜處理程序
func NewHandler(service *recipeService.Service) *Handler {
	return &Handler{service: service}
}

// HandleAddRecipe 新增食譜
func (h *Handler) HandleAddRecipe(c *gin.Context) {
	var req AddRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if url := strings.TrimSpace(req.URL); url != "" {
		recipe, err := h.service.Ingest(c.Request.Context(), url)
		if err != nil {
			respondError(c, "食譜擷取失敗", err)
			return
		}
		c.JSON(http.StatusCreated, recipe)
		return
	}

	recipe := common.Recipe{
		Title:        strings.TrimSpace(req.Title),
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}
	if err := h.service.AddRecipe(recipe); err != nil {
		respondError(c, "新增食譜失敗", err)
		return
	}

	common.LogInfo("Recipe added",
		zap.String("title", recipe.Title),
		zap.String("request_id", getRequestID(c)),
	)
	c.JSON(http.StatusCreated, recipe)
}

// HandleImport 並行匯入多個網址
func (h *Handler) HandleImport(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	results, err := h.service.Import(c.Request.Context(), req.URLs)
	if err != nil {
		respondError(c, "批次匯入失敗", err)
		return
	}

	resp := ImportResponse{Results: results}
	for _, r := range results {
		if r.Err != nil {
			resp.Failed++
		} else {
			resp.Added++
		}
	}
	c.JSON(http.StatusOK, resp)
}

// HandleList 依加入順序列出所有食譜
func (h *Handler) HandleList(c *gin.Context) {
	entries := h.service.Catalog().Entries()
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"recipes": entries,
	})
}

// HandleTop 熱門食譜
func (h *Handler) HandleTop(c *gin.Context) {
	n := 0
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			bindError(c, common.NewValidationError("n must be a non-negative integer"))
			return
		}
		n = v
	}

	top := h.service.Top(n)
	c.JSON(http.StatusOK, gin.H{
		"count":   len(top),
		"recipes": top,
	})
}

// HandleLike 按讚；找不到食譜時目錄不變並回傳 404
func (h *Handler) HandleLike(c *gin.Context) {
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.Like(req.Title); err != nil {
		respondError(c, "按讚失敗", err)
		return
	}

	entry, _ := h.service.Catalog().Get(req.Title)
	c.JSON(http.StatusOK, entry)
}

// HandleComment 留言；找不到食譜時目錄不變並回傳 404
func (h *Handler) HandleComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.Comment(req.Title, req.Comment); err != nil {
		respondError(c, "留言失敗", err)
		return
	}

	entry, _ := h.service.Catalog().Get(req.Title)
	c.JSON(http.StatusCreated, entry)
}
