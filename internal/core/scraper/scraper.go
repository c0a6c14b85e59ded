package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"recipe-recommender/internal/core/cache"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Selectors 食譜頁面中各欄位的 CSS 選擇器
type Selectors struct {
	Title        string
	Ingredient   string
	Instructions string
}

// DefaultSelectors 預設選擇器
func DefaultSelectors() Selectors {
	return Selectors{
		Title:        "h1.recipe-title",
		Ingredient:   "li.ingredient",
		Instructions: "div.instructions",
	}
}

// Scraper 抓取食譜頁面並擷取欄位
type Scraper struct {
	client    *resty.Client
	cache     cache.Store
	selectors Selectors
}

// New 創建 Scraper；store 可為 nil
func New(cfg config.ScraperConfig, store cache.Store) *Scraper {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})

	return &Scraper{
		client: client,
		cache:  store,
		selectors: Selectors{
			Title:        cfg.TitleSelector,
			Ingredient:   cfg.IngredientSelector,
			Instructions: cfg.InstructionsSelector,
		},
	}
}

// Scrape 取得並解析食譜頁面。
// 連線失敗或非 2xx 回應時回傳 nil 與包裝 ErrFetch 的錯誤；
// 頁面缺少必要欄位時回傳包裝 ErrMissingField 的錯誤。
func (s *Scraper) Scrape(ctx context.Context, url string) (*common.Recipe, error) {
	if recipe, ok := s.fromCache(ctx, url); ok {
		return recipe, nil
	}

	start := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", common.ErrFetch, url, err)
		common.LogScrape(url, time.Since(start), err)
		return nil, err
	}
	if !resp.IsSuccess() {
		err = fmt.Errorf("%w: %s: status %d", common.ErrFetch, url, resp.StatusCode())
		common.LogScrape(url, time.Since(start), err)
		return nil, err
	}

	recipe, err := ParseWith(bytes.NewReader(resp.Body()), s.selectors)
	if err != nil {
		err = fmt.Errorf("parse %s: %w", url, err)
		common.LogScrape(url, time.Since(start), err)
		return nil, err
	}
	common.LogScrape(url, time.Since(start), nil)

	s.toCache(ctx, url, recipe)
	return recipe, nil
}

// Parse 以預設選擇器解析食譜頁面
func Parse(r io.Reader) (*common.Recipe, error) {
	return ParseWith(r, DefaultSelectors())
}

// ParseWith 解析食譜頁面：標題與料理步驟為必要欄位，食材可為零筆
func ParseWith(r io.Reader, sel Selectors) (*common.Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}

	titleSel := doc.Find(sel.Title).First()
	if titleSel.Length() == 0 {
		return nil, fmt.Errorf("%w: title (%s)", common.ErrMissingField, sel.Title)
	}

	instrSel := doc.Find(sel.Instructions).First()
	if instrSel.Length() == 0 {
		return nil, fmt.Errorf("%w: instructions (%s)", common.ErrMissingField, sel.Instructions)
	}

	ingredients := []string{}
	if sel.Ingredient != "" {
		doc.Find(sel.Ingredient).Each(func(_ int, s *goquery.Selection) {
			ingredients = append(ingredients, strings.TrimSpace(s.Text()))
		})
	}

	return &common.Recipe{
		Title:        strings.TrimSpace(titleSel.Text()),
		Ingredients:  ingredients,
		Instructions: strings.TrimSpace(instrSel.Text()),
	}, nil
}

func (s *Scraper) fromCache(ctx context.Context, url string) (*common.Recipe, bool) {
	if s.cache == nil {
		return nil, false
	}
	val, err := s.cache.Get(ctx, url)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("Scrape cache lookup failed", zap.String("url", url), zap.Error(err))
		}
		return nil, false
	}
	var recipe common.Recipe
	if err := common.ParseJSONStrict(val, &recipe); err != nil {
		common.LogWarn("Discarding malformed cached recipe", zap.String("url", url), zap.Error(err))
		return nil, false
	}
	return &recipe, true
}

func (s *Scraper) toCache(ctx context.Context, url string, recipe *common.Recipe) {
	if s.cache == nil {
		return
	}
	val, err := common.ToJSON(recipe)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, url, val); err != nil {
		common.LogWarn("Failed to cache scraped recipe", zap.String("url", url), zap.Error(err))
	}
}
