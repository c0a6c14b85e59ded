// Package similarity 將文字轉為詞頻向量並計算餘弦相似度。
//
// 向量只在同一份 Vocabulary 之下才可比較；TermVector 會記住自己所屬的詞彙表，
// Score 遇到不同詞彙表產生的向量會回傳 ErrVocabularyMismatch。
package similarity

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"recipe-recommender/internal/pkg/common"
)

// minTokenLength 少於兩個字元的詞不列入詞彙表
const minTokenLength = 2

// Vocabulary 由 Fit 建立的詞彙表，詞依字典序排列
type Vocabulary struct {
	terms []string
	index map[string]int
}

// TermVector 某文件在特定詞彙表下的詞頻向量
type TermVector struct {
	vocab  *Vocabulary
	counts []int
}

// Tokenize 將文字切成小寫詞，忽略空白與標點。
// 只有字母、數字（含 ½ 這類數字符號）與底線屬於詞；
// 組合附加符號不算，分解形式的重音會把詞切開（cafe\u0301 得到 "cafe"）。
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_'
	})

	tokens := raw[:0]
	for _, t := range raw {
		if utf8.RuneCountInString(t) >= minTokenLength {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// Fit 以給定文件建立詞彙表；沒有任何文件時回傳 ErrEmptyInput
func Fit(documents ...string) (*Vocabulary, error) {
	if len(documents) == 0 {
		return nil, fmt.Errorf("fit vocabulary: %w", common.ErrEmptyInput)
	}

	seen := make(map[string]struct{})
	for _, doc := range documents {
		for _, tok := range Tokenize(doc) {
			seen[tok] = struct{}{}
		}
	}

	terms := make([]string, 0, len(seen))
	for tok := range seen {
		terms = append(terms, tok)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, tok := range terms {
		index[tok] = i
	}

	return &Vocabulary{terms: terms, index: index}, nil
}

// Len 詞彙數量
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms 回傳詞彙表副本
func (v *Vocabulary) Terms() []string {
	return append([]string(nil), v.terms...)
}

// Transform 將每份文件轉為詞頻向量；不在詞彙表中的詞會被忽略
func (v *Vocabulary) Transform(documents ...string) []TermVector {
	vectors := make([]TermVector, len(documents))
	for i, doc := range documents {
		counts := make([]int, len(v.terms))
		for _, tok := range Tokenize(doc) {
			if idx, ok := v.index[tok]; ok {
				counts[idx]++
			}
		}
		vectors[i] = TermVector{vocab: v, counts: counts}
	}
	return vectors
}

// Counts 回傳詞頻副本，索引對應 Vocabulary.Terms
func (tv TermVector) Counts() []int {
	return append([]int(nil), tv.counts...)
}

// Count 回傳某詞在此向量中的出現次數
func (tv TermVector) Count(term string) int {
	if tv.vocab == nil {
		return 0
	}
	idx, ok := tv.vocab.index[strings.ToLower(term)]
	if !ok {
		return 0
	}
	return tv.counts[idx]
}

// IsZero 向量是否全為零
func (tv TermVector) IsZero() bool {
	for _, c := range tv.counts {
		if c != 0 {
			return false
		}
	}
	return true
}
