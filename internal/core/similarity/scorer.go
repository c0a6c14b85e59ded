package similarity

import (
	"fmt"
	"math"

	"recipe-recommender/internal/pkg/common"
)

// Score 計算兩個詞頻向量的餘弦相似度，結果介於 0 與 1。
// 任一向量長度為零時回傳 0。
func Score(a, b TermVector) (float64, error) {
	if a.vocab == nil || a.vocab != b.vocab {
		return 0, fmt.Errorf("score: %w", common.ErrVocabularyMismatch)
	}

	var dot, normA, normB float64
	for i := range a.counts {
		x, y := float64(a.counts[i]), float64(b.counts[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	denom := math.Sqrt(normA * normB)
	if denom == 0 {
		return 0, nil
	}

	// 浮點誤差可能讓自身相似度略大於 1
	return math.Min(dot/denom, 1), nil
}

// Compare 以恰好兩份文件建立詞彙表並回傳其相似度
func Compare(a, b string) float64 {
	vocab, err := Fit(a, b)
	if err != nil {
		return 0
	}
	vecs := vocab.Transform(a, b)
	score, err := Score(vecs[0], vecs[1])
	if err != nil {
		return 0
	}
	return score
}
