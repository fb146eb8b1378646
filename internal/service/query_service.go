package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Thejairex/Filmes-Mvp/internal/model"
	"github.com/Thejairex/Filmes-Mvp/internal/repository"
	"github.com/Thejairex/Filmes-Mvp/internal/utils"
	"github.com/patrickmn/go-cache"
)

// MinVotes 投票数超过该值才公开评分信息
const MinVotes = 2000

// DirectorJob 导演在幕后表中的职务名
const DirectorJob = "Director"

var ErrInvalidArgument = errors.New("invalid argument")

// TitleScore 电影评分
type TitleScore struct {
	Title       string  `json:"title"`
	ReleaseYear int     `json:"release_year"`
	VoteAverage float64 `json:"vote_average"`
}

// TitleVotes 电影投票信息，Enough 为 false 时其余统计仍然返回
type TitleVotes struct {
	Title       string  `json:"title"`
	ReleaseYear int     `json:"release_year"`
	VoteCount   int64   `json:"vote_count"`
	VoteAverage float64 `json:"vote_average"`
	Enough      bool    `json:"enough"`
}

// ActorReturn 演员参演电影的回报统计
type ActorReturn struct {
	Actor         string  `json:"actor"`
	Films         int     `json:"films"`
	TotalReturn   float64 `json:"total_return"`
	AverageReturn float64 `json:"average_return"`
}

// DirectorFilm 导演的单部电影
type DirectorFilm struct {
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Budget      int64   `json:"budget"`
	Revenue     float64 `json:"revenue"`
	Return      float64 `json:"return"`
}

// DirectorReport 导演作品及总回报
type DirectorReport struct {
	Director    string         `json:"director"`
	TotalReturn float64        `json:"total_return"`
	Films       []DirectorFilm `json:"films"`
}

// QueryService 只读查询，结果缓存在进程内
type QueryService struct {
	repos *repository.Repositories
	cache *cache.Cache
}

func NewQueryService(repos *repository.Repositories, ttl time.Duration) *QueryService {
	return &QueryService{
		repos: repos,
		cache: utils.NewTTLCache(ttl),
	}
}

// cached 读取缓存，未命中时调用 load 并写入
func cached[T any](s *QueryService, key string, load func() (T, error)) (T, error) {
	if v, found := s.cache.Get(key); found {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	s.cache.Set(key, v, cache.DefaultExpiration)
	return v, nil
}

// CountByMonth 某月（1-12）上映的电影数量
func (s *QueryService) CountByMonth(month int) (int64, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d", ErrInvalidArgument, month)
	}
	return cached(s, fmt.Sprintf("month:%d", month), func() (int64, error) {
		return s.repos.Movie.CountByMonth(month)
	})
}

// CountByWeekday 某个星期几上映的电影数量
func (s *QueryService) CountByWeekday(weekday time.Weekday) (int64, error) {
	if weekday < time.Sunday || weekday > time.Saturday {
		return 0, fmt.Errorf("%w: weekday %d", ErrInvalidArgument, weekday)
	}
	return cached(s, fmt.Sprintf("weekday:%d", weekday), func() (int64, error) {
		return s.repos.Movie.CountByWeekday(int(weekday))
	})
}

func (s *QueryService) findTitle(title string) (*model.Movie, error) {
	movie, err := s.repos.Movie.FindByTitle(title)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, repository.ErrNotFound
	}
	return movie, nil
}

// TitleScore 电影的上映年份和评分
func (s *QueryService) TitleScore(title string) (*TitleScore, error) {
	return cached(s, "score:"+title, func() (*TitleScore, error) {
		movie, err := s.findTitle(title)
		if err != nil {
			return nil, err
		}
		return &TitleScore{
			Title:       movie.Title,
			ReleaseYear: movie.ReleaseYear,
			VoteAverage: movie.VoteAverage,
		}, nil
	})
}

// TitleVotes 电影的投票数和平均分
func (s *QueryService) TitleVotes(title string) (*TitleVotes, error) {
	return cached(s, "votes:"+title, func() (*TitleVotes, error) {
		movie, err := s.findTitle(title)
		if err != nil {
			return nil, err
		}
		return &TitleVotes{
			Title:       movie.Title,
			ReleaseYear: movie.ReleaseYear,
			VoteCount:   movie.VoteCount,
			VoteAverage: movie.VoteAverage,
			Enough:      movie.VoteCount > MinVotes,
		}, nil
	})
}

// ActorReturn 演员参演电影数量及回报总和、均值；没有作品时各项为 0
func (s *QueryService) ActorReturn(actor string) (*ActorReturn, error) {
	actor = utils.StripQuotes(actor)
	return cached(s, "actor:"+actor, func() (*ActorReturn, error) {
		ids, err := s.repos.Cast.FilmIDsByName(actor)
		if err != nil {
			return nil, err
		}
		movies, err := s.repos.Movie.FindByIDs(ids)
		if err != nil {
			return nil, err
		}

		result := &ActorReturn{Actor: actor, Films: len(movies)}
		var total float64
		for _, m := range movies {
			total += m.Return
		}
		result.TotalReturn = round2(total)
		if len(movies) > 0 {
			result.AverageReturn = round2(total / float64(len(movies)))
		}
		return result, nil
	})
}

// DirectorFilms 导演的作品列表和回报总和
func (s *QueryService) DirectorFilms(director string) (*DirectorReport, error) {
	director = utils.StripQuotes(director)
	return cached(s, "director:"+director, func() (*DirectorReport, error) {
		ids, err := s.repos.Crew.FilmIDsByNameAndJob(director, DirectorJob)
		if err != nil {
			return nil, err
		}
		movies, err := s.repos.Movie.FindByIDs(ids)
		if err != nil {
			return nil, err
		}

		report := &DirectorReport{Director: director, Films: make([]DirectorFilm, 0, len(movies))}
		var total float64
		for _, m := range movies {
			total += m.Return
			report.Films = append(report.Films, DirectorFilm{
				Title:       m.Title,
				ReleaseDate: m.ReleaseDate.Format(time.DateOnly),
				VoteAverage: m.VoteAverage,
				Budget:      m.Budget,
				Revenue:     m.Revenue,
				Return:      round2(m.Return),
			})
		}
		report.TotalReturn = round2(total)
		return report, nil
	})
}

// Flush 清空查询缓存，重新导入数据后调用
func (s *QueryService) Flush() {
	s.cache.Flush()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
