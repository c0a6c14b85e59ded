package common

import (
	"fmt"
)

// 推薦結果輸出訊息
const (
	RecommendedRecipePrefix = "Recommended Recipe:"
	NoRecommendationMessage = "No recipe recommendation available."
)

// Recipe 從食譜頁面擷取出的食譜，擷取後不再變動
type Recipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

// UserPreferences 使用者偏好，Instructions 作為推薦時的查詢文件
type UserPreferences struct {
	Instructions string `json:"instructions"`
}

// Clone 複製食譜，避免呼叫端共用 Ingredients 底層陣列
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = append([]string(nil), r.Ingredients...)
	}
	return out
}

// FormatRecommendation 產生推薦結果的單行輸出
func FormatRecommendation(title string, found bool) string {
	if !found {
		return NoRecommendationMessage
	}
	return fmt.Sprintf("%s %s", RecommendedRecipePrefix, title)
}
