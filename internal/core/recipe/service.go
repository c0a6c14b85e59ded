package recipe

import (
	"context"
	"fmt"
	"strings"

	"recipe-recommender/internal/core/ingest"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 食譜目錄、使用者偏好與推薦的統一入口
type Service struct {
	catalog     *Catalog
	profiler    *Profiler
	recommender *Recommender
	fetcher     ingest.Fetcher
	pool        *ingest.Pool
	topLimit    int
}

// NewService 創建食譜服務；fetcher 為 nil 時無法從網址匯入
func NewService(cfg *config.Config, fetcher ingest.Fetcher) *Service {
	catalog := NewCatalog()
	s := &Service{
		catalog:     catalog,
		profiler:    NewProfiler(),
		recommender: NewRecommender(WithSharedVocabulary(cfg.Recommend.SharedVocabulary)),
		fetcher:     fetcher,
		topLimit:    cfg.Catalog.TopLimit,
	}
	if fetcher != nil {
		s.pool = ingest.NewPool(fetcher, catalog, cfg.Queue)
	}
	return s
}

// Catalog 食譜目錄
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// AddRecipe 直接加入一筆食譜
func (s *Service) AddRecipe(recipe common.Recipe) error {
	if strings.TrimSpace(recipe.Title) == "" {
		return fmt.Errorf("%w: recipe title is required", common.ErrInvalidRequest)
	}
	s.catalog.AddRecipe(recipe)
	return nil
}

// Ingest 抓取單一網址並加入目錄
func (s *Service) Ingest(ctx context.Context, url string) (*common.Recipe, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: scraper not configured", common.ErrServiceUnavailable)
	}
	recipe, err := s.fetcher.Scrape(ctx, url)
	if err != nil {
		return nil, err
	}
	s.catalog.AddRecipe(*recipe)
	common.LogInfo("Recipe ingested",
		zap.String("url", url),
		zap.String("title", recipe.Title),
		zap.Int("ingredients", len(recipe.Ingredients)),
	)
	return recipe, nil
}

// Import 並行抓取多個網址
func (s *Service) Import(ctx context.Context, urls []string) ([]ingest.Result, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("%w: scraper not configured", common.ErrServiceUnavailable)
	}
	return s.pool.Import(ctx, urls)
}

// ImportStatus 匯入隊列狀態；未設定 scraper 時回傳 nil
func (s *Service) ImportStatus() *ingest.Status {
	if s.pool == nil {
		return nil
	}
	st := s.pool.Status()
	return &st
}

// Like 為食譜按讚
func (s *Service) Like(title string) error {
	if !s.catalog.LikeRecipe(title) {
		return fmt.Errorf("%w: %q", common.ErrRecipeNotFound, title)
	}
	return nil
}

// Comment 為食譜加入留言
func (s *Service) Comment(title, comment string) error {
	if !s.catalog.AddComment(title, comment) {
		return fmt.Errorf("%w: %q", common.ErrRecipeNotFound, title)
	}
	return nil
}

// Top 熱門食譜；n <= 0 時使用設定的數量
func (s *Service) Top(n int) []CatalogEntry {
	if n <= 0 {
		n = s.topLimit
	}
	return s.catalog.TopRecipes(n)
}

// SetPreferences 設定使用者偏好
func (s *Service) SetPreferences(username string, prefs common.UserPreferences) {
	s.profiler.SetPreferences(username, prefs)
}

// Preferences 取得使用者偏好
func (s *Service) Preferences(username string) (common.UserPreferences, error) {
	prefs, ok := s.profiler.Preferences(username)
	if !ok {
		return common.UserPreferences{}, fmt.Errorf("%w: %q", common.ErrUserNotFound, username)
	}
	return prefs, nil
}

// RecommendForUser 以使用者偏好在整個目錄中挑選食譜；目錄為空時回傳 nil
func (s *Service) RecommendForUser(username string) (*Match, error) {
	prefs, err := s.Preferences(username)
	if err != nil {
		return nil, err
	}
	return s.Recommend(prefs)
}

// Recommend 以給定偏好在整個目錄中挑選食譜；目錄為空時回傳 nil
func (s *Service) Recommend(prefs common.UserPreferences) (*Match, error) {
	return s.recommender.Recommend(s.catalog.Entries(), prefs)
}
