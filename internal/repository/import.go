package repository

import (
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Thejairex/Filmes-Mvp/internal/etl"
	"github.com/Thejairex/Filmes-Mvp/internal/model"
	"gorm.io/gorm"
)

const importBatchSize = 200

// movieCoreColumns 电影表中除类型布尔列之外的列
var movieCoreColumns = []string{
	etl.ColID, etl.ColTitle, etl.ColBudget, etl.ColRevenue, etl.ColReleaseDate,
	etl.ColReleaseYear, etl.ColReturn, etl.ColVoteAverage, etl.ColVoteCount,
	etl.ColCollectionID, etl.ColCollectionName, etl.ColCollectionPoster, etl.ColCollectionBackdrop,
	etl.ColProductionCompanies, etl.ColProductionCountries, etl.ColSpokenLanguages,
}

// CleanFiles 清洗结果文件路径
type CleanFiles struct {
	Movies string
	Cast   string
	Crew   string
}

// ImportStats 导入统计
type ImportStats struct {
	Movies int
	Cast   int
	Crew   int
}

// ImportCleaned 从清洗结果 CSV 重建查询存储
// 在一个事务内清空旧数据并写入，失败时存储保持不变
func (r *Repositories) ImportCleaned(files CleanFiles) (*ImportStats, error) {
	moviesTable, err := etl.ReadCSV(files.Movies)
	if err != nil {
		return nil, err
	}
	castTable, err := etl.ReadCSV(files.Cast)
	if err != nil {
		return nil, err
	}
	crewTable, err := etl.ReadCSV(files.Crew)
	if err != nil {
		return nil, err
	}

	movies, err := MoviesFromTable(moviesTable)
	if err != nil {
		return nil, fmt.Errorf("电影表: %w", err)
	}
	cast, err := CastFromTable(castTable)
	if err != nil {
		return nil, fmt.Errorf("演员表: %w", err)
	}
	crew, err := CrewFromTable(crewTable)
	if err != nil {
		return nil, fmt.Errorf("幕后表: %w", err)
	}

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.Movie{}, &model.CastCredit{}, &model.CrewCredit{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		if len(movies) > 0 {
			if err := tx.CreateInBatches(movies, importBatchSize).Error; err != nil {
				return err
			}
		}
		if len(cast) > 0 {
			if err := tx.CreateInBatches(cast, importBatchSize).Error; err != nil {
				return err
			}
		}
		if len(crew) > 0 {
			if err := tx.CreateInBatches(crew, importBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("写入查询存储失败: %w", err)
	}

	stats := &ImportStats{Movies: len(movies), Cast: len(cast), Crew: len(crew)}
	log.Printf("[Store] 导入完成: %d 部电影, %d 条演员, %d 条幕后", stats.Movies, stats.Cast, stats.Crew)
	return stats, nil
}

// GenreColumns 识别类型布尔列：核心列之外、且所有值都是 true/false 的列
func GenreColumns(t *etl.Table) []string {
	var genres []string
	for _, c := range t.Columns {
		if slices.Contains(movieCoreColumns, c) {
			continue
		}
		boolean := true
		for _, v := range t.Column(c) {
			s, _ := v.(string)
			if s != "true" && s != "false" {
				boolean = false
				break
			}
		}
		if boolean {
			genres = append(genres, c)
		}
	}
	return genres
}

// MoviesFromTable 将清洗后的电影表转换为模型，Position 保留文件中的行序
func MoviesFromTable(t *etl.Table) ([]model.Movie, error) {
	genres := GenreColumns(t)

	movies := make([]model.Movie, 0, t.Len())
	for i, row := range t.Rows {
		id, err := strconv.ParseInt(str(row[etl.ColID]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("第 %d 行 id 无效: %w", i+1, err)
		}
		date, err := time.Parse(etl.DateLayout, str(row[etl.ColReleaseDate]))
		if err != nil {
			return nil, fmt.Errorf("第 %d 行上映日期无效: %w", i+1, err)
		}

		m := model.Movie{
			ID:                     id,
			Position:               i,
			Title:                  str(row[etl.ColTitle]),
			Budget:                 int64(num(row[etl.ColBudget])),
			Revenue:                num(row[etl.ColRevenue]),
			Return:                 num(row[etl.ColReturn]),
			VoteAverage:            num(row[etl.ColVoteAverage]),
			VoteCount:              int64(num(row[etl.ColVoteCount])),
			CollectionName:         optStr(row[etl.ColCollectionName]),
			CollectionPosterPath:   optStr(row[etl.ColCollectionPoster]),
			CollectionBackdropPath: optStr(row[etl.ColCollectionBackdrop]),
			ProductionCompanies:    strList(row[etl.ColProductionCompanies]),
			ProductionCountries:    strList(row[etl.ColProductionCountries]),
			SpokenLanguages:        strList(row[etl.ColSpokenLanguages]),
			Genres:                 []string{},
		}
		m.SetReleaseDate(date)
		if cid, err := strconv.ParseInt(str(row[etl.ColCollectionID]), 10, 64); err == nil {
			m.CollectionID = &cid
		}
		for _, g := range genres {
			if str(row[g]) == "true" {
				m.Genres = append(m.Genres, g)
			}
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// CastFromTable 将清洗后的演员表转换为模型
func CastFromTable(t *etl.Table) ([]model.CastCredit, error) {
	out := make([]model.CastCredit, 0, t.Len())
	for i, row := range t.Rows {
		filmID, err := strconv.ParseInt(str(row[etl.ColFilmID]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("第 %d 行 id_film 无效: %w", i+1, err)
		}
		out = append(out, model.CastCredit{
			FilmID:      filmID,
			CastID:      int64(num(row["cast_id"])),
			Character:   str(row["character"]),
			CreditID:    str(row["credit_id"]),
			Gender:      int64(num(row["gender"])),
			PersonID:    int64(num(row["id"])),
			Name:        str(row["name"]),
			Order:       int64(num(row["order"])),
			ProfilePath: str(row["profile_path"]),
		})
	}
	return out, nil
}

// CrewFromTable 将清洗后的幕后人员表转换为模型
func CrewFromTable(t *etl.Table) ([]model.CrewCredit, error) {
	out := make([]model.CrewCredit, 0, t.Len())
	for i, row := range t.Rows {
		filmID, err := strconv.ParseInt(str(row[etl.ColFilmID]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("第 %d 行 id_film 无效: %w", i+1, err)
		}
		out = append(out, model.CrewCredit{
			FilmID:      filmID,
			CreditID:    str(row["credit_id"]),
			Department:  str(row["department"]),
			Gender:      int64(num(row["gender"])),
			PersonID:    int64(num(row["id"])),
			Job:         str(row["job"]),
			Name:        str(row["name"]),
			ProfilePath: str(row["profile_path"]),
		})
	}
	return out, nil
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func optStr(v any) *string {
	s := str(v)
	if s == "" {
		return nil
	}
	return &s
}

func num(v any) float64 {
	f, err := strconv.ParseFloat(str(v), 64)
	if err != nil {
		return 0
	}
	return f
}

// strList 解析 JSON 数组单元格，空单元格或解析失败时返回空列表
func strList(v any) []string {
	s := str(v)
	if s == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(s), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}
