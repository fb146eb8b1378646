package service

import (
	"errors"
	"log"
	"sort"
	"time"

	"github.com/Thejairex/Filmes-Mvp/internal/model"
)

// DefaultRecommenderSize 参与推荐的电影数量上限
const DefaultRecommenderSize = 2000

// DefaultRecommendLimit 每次推荐返回的标题数
const DefaultRecommendLimit = 5

var ErrTitleNotFound = errors.New("title not found")

// Recommender 基于标题 TF-IDF 余弦相似度的推荐器
// 构造后只读，可被多个请求并发使用
type Recommender struct {
	titles     []string
	index      map[string]int
	similarity [][]float64
}

// NewRecommender 取前 size 部电影（按清洗结果顺序）构建相似度矩阵
// 超出上限的电影永远不会被推荐，也不能作为查询
func NewRecommender(movies []model.Movie, size int) *Recommender {
	if size <= 0 {
		size = DefaultRecommenderSize
	}
	if len(movies) > size {
		movies = movies[:size]
	}

	start := time.Now()
	r := &Recommender{
		titles: make([]string, len(movies)),
		index:  make(map[string]int, len(movies)),
	}
	for i, m := range movies {
		r.titles[i] = m.Title
		// 同名时保留第一部
		if _, ok := r.index[m.Title]; !ok {
			r.index[m.Title] = i
		}
	}
	r.similarity = cosineMatrix(tfidfVectors(r.titles))

	log.Printf("[Recommender] 构建完成: %d 个标题, 耗时 %v", len(r.titles), time.Since(start))
	return r
}

// Size 参与推荐的标题数
func (r *Recommender) Size() int {
	return len(r.titles)
}

// Contains 标题是否在推荐范围内
func (r *Recommender) Contains(title string) bool {
	_, ok := r.index[title]
	return ok
}

// Recommend 返回与 title 最相似的至多 limit 个标题，按相似度降序，同分保持原始顺序
// title 需由调用方预先规范化；不在范围内时返回 ErrTitleNotFound
func (r *Recommender) Recommend(title string, limit int) ([]string, error) {
	query, ok := r.index[title]
	if !ok {
		return nil, ErrTitleNotFound
	}
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	scores := r.similarity[query]
	candidates := make([]int, 0, len(r.titles))
	for i := range r.titles {
		if i != query {
			candidates = append(candidates, i)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return scores[candidates[a]] > scores[candidates[b]]
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	result := make([]string, len(candidates))
	for i, idx := range candidates {
		result[i] = r.titles[idx]
	}
	return result, nil
}
