package model

import (
	"time"

	"github.com/lib/pq"
)

// Movie 清洗后的电影
type Movie struct {
	ID                     int64          `json:"id" db:"id" gorm:"primaryKey;autoIncrement:false"`
	Position               int            `json:"-" db:"position" gorm:"index"` // 在清洗结果中的行号
	Title                  string         `json:"title" db:"title" gorm:"index"`
	ReleaseDate            time.Time      `json:"release_date" db:"release_date"`
	ReleaseYear            int            `json:"release_year" db:"release_year"`
	ReleaseMonth           int            `json:"-" db:"release_month" gorm:"index"`
	ReleaseWeekday         int            `json:"-" db:"release_weekday" gorm:"index"` // time.Weekday，周日为 0
	Budget                 int64          `json:"budget" db:"budget"`
	Revenue                float64        `json:"revenue" db:"revenue"`
	Return                 float64        `json:"return" db:"return"`
	VoteAverage            float64        `json:"vote_average" db:"vote_average"`
	VoteCount              int64          `json:"vote_count" db:"vote_count"`
	CollectionID           *int64         `json:"collection_id" db:"collection_id"`
	CollectionName         *string        `json:"collection_name" db:"collection_name"`
	CollectionPosterPath   *string        `json:"collection_poster_path" db:"collection_poster_path"`
	CollectionBackdropPath *string        `json:"collection_backdrop_path" db:"collection_backdrop_path"`
	Genres                 pq.StringArray `json:"genres" db:"genres" gorm:"type:text"`
	ProductionCompanies    pq.StringArray `json:"production_companies" db:"production_companies" gorm:"type:text"`
	ProductionCountries    pq.StringArray `json:"production_countries" db:"production_countries" gorm:"type:text"`
	SpokenLanguages        pq.StringArray `json:"spoken_languages" db:"spoken_languages" gorm:"type:text"`
}

// SetReleaseDate 设置上映日期及派生的年/月/星期
func (m *Movie) SetReleaseDate(date time.Time) {
	m.ReleaseDate = date
	m.ReleaseYear = date.Year()
	m.ReleaseMonth = int(date.Month())
	m.ReleaseWeekday = int(date.Weekday())
}
