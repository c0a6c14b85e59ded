package recipe

import (
	"net/http"

	recipeService "recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PreferencesRequest 設定使用者偏好
type PreferencesRequest struct {
	Instructions string `json:"instructions"`
}

// RecommendationResponse 推薦結果
type RecommendationResponse struct {
	Title   string                     `json:"title"`
	Score   float64                    `json:"score"`
	Message string                     `json:"message"`
	Entry   recipeService.CatalogEntry `json:"entry"`
}

// HandleSetPreferences 設定使用者偏好，後寫入者覆蓋
func (h *Handler) HandleSetPreferences(c *gin.Context) {
	username := c.Param("username")

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	prefs := common.UserPreferences{Instructions: req.Instructions}
	h.service.SetPreferences(username, prefs)

	common.LogInfo("User preferences updated",
		zap.String("username", username),
		zap.String("request_id", getRequestID(c)),
	)
	c.JSON(http.StatusOK, prefs)
}

// HandleGetPreferences 取得使用者偏好
func (h *Handler) HandleGetPreferences(c *gin.Context) {
	prefs, err := h.service.Preferences(c.Param("username"))
	if err != nil {
		respondError(c, "查詢偏好失敗", err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// HandleUserRecommendation 以使用者偏好推薦食譜
func (h *Handler) HandleUserRecommendation(c *gin.Context) {
	match, err := h.service.RecommendForUser(c.Param("username"))
	if err != nil {
		respondError(c, "推薦失敗", err)
		return
	}
	writeRecommendation(c, match)
}

// HandleRecommend 以請求中的偏好推薦食譜
func (h *Handler) HandleRecommend(c *gin.Context) {
	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	match, err := h.service.Recommend(common.UserPreferences{Instructions: req.Instructions})
	if err != nil {
		respondError(c, "推薦失敗", err)
		return
	}
	writeRecommendation(c, match)
}

func writeRecommendation(c *gin.Context, match *recipeService.Match) {
	if match == nil {
		c.JSON(common.ErrNoRecommendation.Status, common.ErrorResponse{
			Code:    common.ErrNoRecommendation.Code,
			Message: common.FormatRecommendation("", false),
		})
		return
	}

	c.JSON(http.StatusOK, RecommendationResponse{
		Title:   match.Entry.Title(),
		Score:   match.Score,
		Message: common.FormatRecommendation(match.Entry.Title(), true),
		Entry:   match.Entry,
	})
}
