package recipe

import (
	"fmt"

	"recipe-recommender/internal/core/similarity"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// noScore 低於任何合法相似度的起始值
const noScore = -1.0

// Match 推薦結果
type Match struct {
	Entry CatalogEntry `json:"entry"`
	Score float64      `json:"score"`
}

// Recommender 依料理步驟的文字相似度挑選最符合偏好的食譜
type Recommender struct {
	sharedVocabulary bool
}

// Option Recommender 設定
type Option func(*Recommender)

// WithSharedVocabulary 每次推薦只對全部候選與查詢建立一份詞彙表。
// 其他詞在兩邊皆為 0，不影響內積與長度，因此分數與逐對建立完全相同。
func WithSharedVocabulary(enabled bool) Option {
	return func(r *Recommender) {
		r.sharedVocabulary = enabled
	}
}

// NewRecommender 創建推薦器
func NewRecommender(opts ...Option) *Recommender {
	r := &Recommender{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend 回傳分數最高的候選；同分取較早者，沒有候選時回傳 nil
func (r *Recommender) Recommend(candidates []CatalogEntry, prefs common.UserPreferences) (*Match, error) {
	scores, err := r.Scores(candidates, prefs)
	if err != nil {
		return nil, err
	}

	best := -1
	bestScore := noScore
	for i, s := range scores {
		if s > bestScore {
			best, bestScore = i, s
		}
	}

	if best < 0 {
		common.LogDebug("No candidates to recommend from")
		return nil, nil
	}

	common.LogDebug("Recommendation selected",
		zap.String("title", candidates[best].Title()),
		zap.Float64("score", bestScore),
		zap.Int("candidates", len(candidates)),
		zap.Bool("shared_vocabulary", r.sharedVocabulary),
	)

	return &Match{Entry: candidates[best], Score: bestScore}, nil
}

// Scores 依候選順序回傳各自與偏好的相似度
func (r *Recommender) Scores(candidates []CatalogEntry, prefs common.UserPreferences) ([]float64, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if r.sharedVocabulary {
		return sharedScores(candidates, prefs.Instructions)
	}
	return pairwiseScores(candidates, prefs.Instructions)
}

// pairwiseScores 每個候選都以 [候選步驟, 查詢] 重新建立詞彙表
func pairwiseScores(candidates []CatalogEntry, query string) ([]float64, error) {
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		vocab, err := similarity.Fit(c.Recipe.Instructions, query)
		if err != nil {
			return nil, fmt.Errorf("fit vocabulary for %q: %w", c.Title(), err)
		}
		vecs := vocab.Transform(c.Recipe.Instructions, query)
		s, err := similarity.Score(vecs[0], vecs[1])
		if err != nil {
			return nil, fmt.Errorf("score %q: %w", c.Title(), err)
		}
		scores[i] = s
	}
	return scores, nil
}

// sharedScores 對所有候選與查詢只建立一次詞彙表
func sharedScores(candidates []CatalogEntry, query string) ([]float64, error) {
	docs := make([]string, 0, len(candidates)+1)
	for _, c := range candidates {
		docs = append(docs, c.Recipe.Instructions)
	}
	docs = append(docs, query)

	vocab, err := similarity.Fit(docs...)
	if err != nil {
		return nil, fmt.Errorf("fit shared vocabulary: %w", err)
	}
	vecs := vocab.Transform(docs...)
	q := vecs[len(vecs)-1]

	scores := make([]float64, len(candidates))
	for i := range candidates {
		s, err := similarity.Score(vecs[i], q)
		if err != nil {
			return nil, fmt.Errorf("score %q: %w", candidates[i].Title(), err)
		}
		scores[i] = s
	}
	return scores, nil
}
