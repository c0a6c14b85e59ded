package ingest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Fetcher 取得單一網址的食譜
type Fetcher interface {
	Scrape(ctx context.Context, url string) (*common.Recipe, error)
}

// Sink 接收擷取完成的食譜
type Sink interface {
	AddRecipe(recipe common.Recipe)
}

// Result 單一網址的匯入結果
type Result struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Error string `json:"error,omitempty"`
	Err   error  `json:"-"`
}

// Status 匯入隊列狀態
type Status struct {
	InFlight       int `json:"in_flight"`
	ProcessedCount int `json:"processed_count"`
	FailedCount    int `json:"failed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Pool 以固定數量的 worker 並行抓取食譜
type Pool struct {
	fetcher   Fetcher
	sink      Sink
	workers   int
	maxSize   int
	inFlight  int64
	processed int64
	failed    int64
}

// NewPool 創建匯入 worker pool
func NewPool(fetcher Fetcher, sink Sink, cfg config.QueueConfig) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		fetcher: fetcher,
		sink:    sink,
		workers: workers,
		maxSize: cfg.MaxSize,
	}
}

// Import 並行抓取所有網址；全部完成後才依輸入順序寫入 sink。
// 個別網址失敗只記錄在結果中，不會中斷其他網址。
func (p *Pool) Import(ctx context.Context, urls []string) ([]Result, error) {
	if p.maxSize > 0 && len(urls) > p.maxSize {
		return nil, fmt.Errorf("%w: %d urls exceeds %d", common.ErrQueueFull, len(urls), p.maxSize)
	}

	results := make([]Result, len(urls))
	recipes := make([]*common.Recipe, len(urls))

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := p.workers
	if workers > len(urls) {
		workers = len(urls)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				recipes[i], results[i] = p.fetch(ctx, urls[i])
			}
		}()
	}

	for i := range urls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	added := 0
	for _, r := range recipes {
		if r != nil {
			p.sink.AddRecipe(*r)
			added++
		}
	}

	common.LogInfo("Import finished",
		zap.Int("requested", len(urls)),
		zap.Int("added", added),
		zap.Int("workers", workers),
	)

	return results, nil
}

func (p *Pool) fetch(ctx context.Context, url string) (*common.Recipe, Result) {
	atomic.AddInt64(&p.inFlight, 1)
	defer atomic.AddInt64(&p.inFlight, -1)
	defer atomic.AddInt64(&p.processed, 1)

	res := Result{URL: url}

	if err := ctx.Err(); err != nil {
		atomic.AddInt64(&p.failed, 1)
		res.Err, res.Error = err, err.Error()
		return nil, res
	}

	recipe, err := p.fetcher.Scrape(ctx, url)
	if err != nil {
		atomic.AddInt64(&p.failed, 1)
		res.Err, res.Error = err, err.Error()
		return nil, res
	}

	res.Title = recipe.Title
	return recipe, res
}

// Status 獲取隊列狀態
func (p *Pool) Status() Status {
	return Status{
		InFlight:       int(atomic.LoadInt64(&p.inFlight)),
		ProcessedCount: int(atomic.LoadInt64(&p.processed)),
		FailedCount:    int(atomic.LoadInt64(&p.failed)),
		MaxQueueSize:   p.maxSize,
		Workers:        p.workers,
	}
}
