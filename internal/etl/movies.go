package etl

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// 电影表列名
const (
	ColID                  = "id"
	ColTitle               = "title"
	ColBudget              = "budget"
	ColRevenue             = "revenue"
	ColReleaseDate         = "release_date"
	ColReleaseYear         = "release_year"
	ColReturn              = "return"
	ColVoteAverage         = "vote_average"
	ColVoteCount           = "vote_count"
	ColCollection          = "belongs_to_collection"
	ColGenres              = "genres"
	ColProductionCompanies = "production_companies"
	ColProductionCountries = "production_countries"
	ColSpokenLanguages     = "spoken_languages"
)

// droppedMovieColumns 下游不使用的技术标记和自由文本列
var droppedMovieColumns = []string{"video", "imdb_id", "adult", "original_title", "poster_path", "homepage"}

// MovieOptions 电影管道参数
type MovieOptions struct {
	// Vocabulary 为 nil 时类型列由本批次数据决定
	Vocabulary *Vocabulary
}

// TransformMovies 清洗电影表
// 无效 id、重复 id、无法解析的上映日期会被过滤并记录到报告中，其余问题使用默认值替代
func TransformMovies(raw *Table, opts MovieOptions) (*Table, *Report) {
	report := NewReport("movies")
	report.InputRows = raw.Len()

	// 1. 校验 id
	t := validateIDs(raw, report)

	// 2. 预算/收入缺失补 0，预算取整
	t = coerceMoney(t)

	// 3. 删除无用列
	t = t.Drop(droppedMovieColumns...)

	// 4. 解析上映日期
	t = parseReleaseDates(t, report)

	// 5-6. 派生上映年份与回报率，评分字段转数值
	t = deriveFeatures(t)

	// 7. 展开嵌套列
	t = ExplodeCollection(t, ColCollection)
	t = ExplodeTaggedListColumn(t, ColGenres, "name", ColGenres)
	t = ExplodeTaggedListColumn(t, ColProductionCompanies, "name", ColProductionCompanies)
	t = ExplodeTaggedListColumn(t, ColProductionCountries, "iso_3166_1", ColProductionCountries)
	t = ExplodeTaggedListColumn(t, ColSpokenLanguages, "iso_639_1", ColSpokenLanguages)

	var vocabulary []string
	if opts.Vocabulary != nil {
		vocabulary = opts.Vocabulary.Genres
		report.VocabularyVersion = opts.Vocabulary.Version
	}
	t, unknown := OneHotEncode(t, ColGenres, vocabulary)
	if len(unknown) > 0 {
		report.Warn("%d genres outside vocabulary ignored: %s", len(unknown), strings.Join(unknown, ", "))
	}

	report.OutputRows = t.Len()
	return t, report
}

func validateIDs(t *Table, report *Report) *Table {
	out := t.withColumns(t.Columns)
	seen := map[int64]bool{}

	for _, row := range t.Rows {
		raw := cellString(row[ColID])
		if raw == nil {
			report.Reject("", ReasonInvalidID, "empty id")
			continue
		}

		id, err := strconv.ParseInt(strings.TrimSpace(*raw), 10, 64)
		if err != nil {
			report.Reject(*raw, ReasonInvalidID, "not a whole number")
			continue
		}
		if seen[id] {
			report.Reject(*raw, ReasonDuplicateID, "")
			continue
		}
		seen[id] = true

		nr := row.Clone()
		nr[ColID] = id
		out.Rows = append(out.Rows, nr)
	}
	return out
}

func coerceMoney(t *Table) *Table {
	out := t.withColumns(t.Columns)
	for _, row := range t.Rows {
		nr := row.Clone()
		nr[ColBudget] = int64(math.Trunc(math.Max(parseFloat(row[ColBudget]), 0)))
		nr[ColRevenue] = math.Max(parseFloat(row[ColRevenue]), 0)
		out.Rows = append(out.Rows, nr)
	}
	return out
}

func parseReleaseDates(t *Table, report *Report) *Table {
	out := t.withColumns(t.Columns)
	for _, row := range t.Rows {
		key := formatCell(row[ColID])

		raw := cellString(row[ColReleaseDate])
		if raw == nil {
			report.Reject(key, ReasonInvalidReleaseDate, "empty release_date")
			continue
		}
		date, err := time.Parse(DateLayout, strings.TrimSpace(*raw))
		if err != nil {
			report.Reject(key, ReasonInvalidReleaseDate, *raw)
			continue
		}

		nr := row.Clone()
		nr[ColReleaseDate] = date
		out.Rows = append(out.Rows, nr)
	}
	return out
}

func deriveFeatures(t *Table) *Table {
	columns := slices.Clone(t.Columns)
	for _, c := range []string{ColReleaseYear, ColReturn} {
		if !t.HasColumn(c) {
			columns = append(columns, c)
		}
	}

	out := t.withColumns(columns)
	for _, row := range t.Rows {
		nr := row.Clone()
		date := row[ColReleaseDate].(time.Time)
		nr[ColReleaseYear] = int64(date.Year())
		nr[ColReturn] = ReturnRatio(row[ColRevenue].(float64), row[ColBudget].(int64))
		nr[ColVoteAverage] = parseFloat(row[ColVoteAverage])
		nr[ColVoteCount] = int64(math.Trunc(parseFloat(row[ColVoteCount])))
		out.Rows = append(out.Rows, nr)
	}
	return out
}

// ReturnRatio 回报率 = 收入 / 预算；预算为 0 时返回 0（同时表示“未知”和“无回报”）
func ReturnRatio(revenue float64, budget int64) float64 {
	if budget == 0 {
		return 0
	}
	return revenue / float64(budget)
}

// parseFloat 解析数值单元格，空值或无法解析时返回 0
func parseFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	}
	raw := cellString(v)
	if raw == nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
