package repository

import (
	"errors"

	"github.com/Thejairex/Filmes-Mvp/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// FindByTitle 按标题精确查找，多部同名时取清洗结果中的第一部
func (r *MovieRepository) FindByTitle(title string) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Where("title = ?", title).Order("position").First(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// FindByIDs 按 id 集合查找，保持清洗结果中的顺序
func (r *MovieRepository) FindByIDs(ids []int64) ([]model.Movie, error) {
	if len(ids) == 0 {
		return []model.Movie{}, nil
	}
	var movies []model.Movie
	err := r.db.Where("id IN ?", ids).Order("position").Find(&movies).Error
	return movies, err
}

// CountByMonth 统计某月上映的电影数量
func (r *MovieRepository) CountByMonth(month int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Where("release_month = ?", month).Count(&count).Error
	return count, err
}

// CountByWeekday 统计某个星期几上映的电影数量
func (r *MovieRepository) CountByWeekday(weekday int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Where("release_weekday = ?", weekday).Count(&count).Error
	return count, err
}

// ListOrdered 按清洗结果顺序返回前 limit 部电影，limit <= 0 时返回全部
func (r *MovieRepository) ListOrdered(limit int) ([]model.Movie, error) {
	var movies []model.Movie
	q := r.db.Order("position")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&movies).Error
	return movies, err
}

// Count 电影总数
func (r *MovieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Count(&count).Error
	return count, err
}
