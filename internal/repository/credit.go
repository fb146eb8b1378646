package repository

import (
	"github.com/Thejairex/Filmes-Mvp/internal/model"
	"gorm.io/gorm"
)

type CastRepository struct {
	db *gorm.DB
}

func NewCastRepository(db *gorm.DB) *CastRepository {
	return &CastRepository{db: db}
}

// FilmIDsByName 演员参演的电影 id（去重）
func (r *CastRepository) FilmIDsByName(name string) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.CastCredit{}).
		Where("name = ?", name).
		Distinct().
		Pluck("id_film", &ids).Error
	return ids, err
}

// Count 演员表行数
func (r *CastRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.CastCredit{}).Count(&count).Error
	return count, err
}

type CrewRepository struct {
	db *gorm.DB
}

func NewCrewRepository(db *gorm.DB) *CrewRepository {
	return &CrewRepository{db: db}
}

// FilmIDsByNameAndJob 某人以指定职务参与的电影 id（去重）
func (r *CrewRepository) FilmIDsByNameAndJob(name, job string) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.CrewCredit{}).
		Where("name = ? AND job = ?", name, job).
		Distinct().
		Pluck("id_film", &ids).Error
	return ids, err
}

// Count 幕后人员表行数
func (r *CrewRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.CrewCredit{}).Count(&count).Error
	return count, err
}
