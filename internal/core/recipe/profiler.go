package recipe

import (
	"sync"

	"recipe-recommender/internal/pkg/common"
)

// Profiler 以使用者名稱保存偏好，後寫入者覆蓋
type Profiler struct {
	mu    sync.RWMutex
	prefs map[string]common.UserPreferences
}

// NewProfiler 創建偏好管理器
func NewProfiler() *Profiler {
	return &Profiler{
		prefs: make(map[string]common.UserPreferences),
	}
}

// SetPreferences 設定使用者偏好
func (p *Profiler) SetPreferences(username string, prefs common.UserPreferences) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prefs[username] = prefs
}

// Preferences 取得使用者偏好
func (p *Profiler) Preferences(username string) (common.UserPreferences, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	prefs, ok := p.prefs[username]
	return prefs, ok
}
