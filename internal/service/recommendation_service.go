package service

import (
	"fmt"
	"time"

	"github.com/Thejairex/Filmes-Mvp/internal/utils"
	"golang.org/x/sync/singleflight"
)

// RecommendationService 在推荐器外加结果缓存
type RecommendationService struct {
	engine *Recommender
	limit  int
	cache  *utils.ResultCache[[]string]
	sf     singleflight.Group
}

// NewRecommendationService cacheSize 为缓存的查询条数，ttl 为 0 时不过期
func NewRecommendationService(engine *Recommender, limit, cacheSize int, ttl time.Duration) *RecommendationService {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}
	return &RecommendationService{
		engine: engine,
		limit:  limit,
		cache:  utils.NewResultCache[[]string](cacheSize, ttl),
		sf:     singleflight.Group{},
	}
}

// Recommend 推荐相似标题，title 需已规范化
func (s *RecommendationService) Recommend(title string) ([]string, error) {
	// 1. 先查缓存
	if titles, ok := s.cache.Get(title); ok {
		return titles, nil
	}

	// 2. 使用 singleflight 避免并发请求同一个标题时重复排序
	val, err, _ := s.sf.Do(title, func() (interface{}, error) {
		titles, err := s.engine.Recommend(title, s.limit)
		if err != nil {
			return nil, err
		}
		s.cache.Set(title, titles)
		return titles, nil
	})
	if err != nil {
		return nil, err
	}

	titles, ok := val.([]string)
	if !ok {
		return nil, fmt.Errorf("unexpected result type %T", val)
	}
	return titles, nil
}

// Size 推荐范围内的标题数
func (s *RecommendationService) Size() int {
	return s.engine.Size()
}
