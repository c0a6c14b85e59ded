package recipe

import (
	"sort"
	"sync"

	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultTopLimit TopRecipes 未指定數量時的預設值
const DefaultTopLimit = 10

// CatalogEntry 目錄中的食譜與其互動資料（按讚、留言）
type CatalogEntry struct {
	Recipe   common.Recipe `json:"recipe"`
	Likes    int           `json:"likes"`
	Comments []string      `json:"comments"`
}

// Title 食譜標題
func (e CatalogEntry) Title() string {
	return e.Recipe.Title
}

func (e *CatalogEntry) snapshot() CatalogEntry {
	comments := make([]string, len(e.Comments))
	copy(comments, e.Comments)
	return CatalogEntry{
		Recipe:   e.Recipe.Clone(),
		Likes:    e.Likes,
		Comments: comments,
	}
}

// Catalog 依加入順序保存食譜；標題相同時一律以第一筆為準
type Catalog struct {
	mu      sync.RWMutex
	entries []*CatalogEntry
}

// NewCatalog 創建空的食譜目錄
func NewCatalog() *Catalog {
	return &Catalog{}
}

// AddRecipe 新增一筆食譜，按讚數為 0、無留言
func (c *Catalog) AddRecipe(recipe common.Recipe) {
	c.mu.Lock()
	c.entries = append(c.entries, &CatalogEntry{
		Recipe:   recipe.Clone(),
		Comments: []string{},
	})
	size := len(c.entries)
	c.mu.Unlock()

	common.LogDebug("Recipe added to catalog",
		zap.String("title", recipe.Title),
		zap.Int("catalog_size", size),
	)
}

// LikeRecipe 為第一筆符合標題的食譜按讚；找不到時不做任何事並回傳 false
func (c *Catalog) LikeRecipe(title string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.find(title)
	if entry == nil {
		return false
	}
	entry.Likes++
	return true
}

// AddComment 在第一筆符合標題的食譜加入留言；找不到時不做任何事並回傳 false
func (c *Catalog) AddComment(title, comment string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.find(title)
	if entry == nil {
		return false
	}
	entry.Comments = append(entry.Comments, comment)
	return true
}

// Get 回傳第一筆符合標題的食譜副本
func (c *Catalog) Get(title string) (CatalogEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry := c.find(title)
	if entry == nil {
		return CatalogEntry{}, false
	}
	return entry.snapshot(), true
}

// TopRecipes 依按讚數由多到少排序，同分保持加入順序；n <= 0 時使用 DefaultTopLimit
func (c *Catalog) TopRecipes(n int) []CatalogEntry {
	if n <= 0 {
		n = DefaultTopLimit
	}

	entries := c.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Likes > entries[j].Likes
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Entries 依加入順序回傳所有食譜副本
func (c *Catalog) Entries() []CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]CatalogEntry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.snapshot()
	}
	return out
}

// Len 目錄中的食譜數量
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// find 呼叫端需持有鎖
func (c *Catalog) find(title string) *CatalogEntry {
	for _, e := range c.entries {
		if e.Recipe.Title == title {
			return e
		}
	}
	return nil
}
