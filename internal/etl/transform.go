package etl

import (
	"slices"
	"sort"

	"github.com/Thejairex/Filmes-Mvp/internal/utils"
)

// 合集对象展开后的四列
const (
	ColCollectionID       = "collection_id"
	ColCollectionName     = "collection_name"
	ColCollectionPoster   = "collection_poster_path"
	ColCollectionBackdrop = "collection_backdrop_path"
)

// CollectionColumns 合集展开列，按输出顺序
var CollectionColumns = []string{ColCollectionID, ColCollectionName, ColCollectionPoster, ColCollectionBackdrop}

// ExplodeCollection 将单对象列展开为 id/name/poster_path/backdrop_path 四列，并删除原列
// 缺失的 key 输出为 nil，行顺序不变
func ExplodeCollection(t *Table, source string) *Table {
	columns := make([]string, 0, len(t.Columns)+len(CollectionColumns))
	for _, c := range t.Columns {
		if c != source {
			columns = append(columns, c)
		}
	}
	columns = append(columns, CollectionColumns...)

	fields := map[string]string{
		ColCollectionID:       "id",
		ColCollectionName:     "name",
		ColCollectionPoster:   "poster_path",
		ColCollectionBackdrop: "backdrop_path",
	}

	out := t.withColumns(columns)
	for _, row := range t.Rows {
		obj := utils.ParseSingleObject(cellString(row[source]))

		nr := row.Clone()
		delete(nr, source)
		for col, key := range fields {
			nr[col] = obj[key]
		}
		out.Rows = append(out.Rows, nr)
	}
	return out
}

// ExplodeTaggedListColumn 将对象列表列转换为按 key 提取的字符串列表列
// 单元格为空时输出 nil（区分“无数据”和“空列表”）；输出列占据原列的位置
func ExplodeTaggedListColumn(t *Table, source, key, output string) *Table {
	columns := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		switch {
		case c == source:
			columns = append(columns, output)
		case c == output:
			// 同名列会被覆盖
		default:
			columns = append(columns, c)
		}
	}

	out := t.withColumns(columns)
	for _, row := range t.Rows {
		raw := cellString(row[source])

		nr := row.Clone()
		delete(nr, source)
		if raw == nil {
			nr[output] = nil
		} else {
			nr[output] = utils.ParseTaggedList(raw, key)
		}
		out.Rows = append(out.Rows, nr)
	}
	return out
}

// OneHotEncode 将字符串列表列展开为每个类别一列布尔值，并删除原列
// vocabulary 为 nil 时类别取本批次出现过的全部值；否则类别固定为 vocabulary，
// 词表之外的值作为 unknown 返回（已排序去重）
func OneHotEncode(t *Table, source string, vocabulary []string) (*Table, []string) {
	seen := map[string]bool{}
	for _, row := range t.Rows {
		for _, v := range listCell(row[source]) {
			seen[v] = true
		}
	}

	var categories, unknown []string
	if vocabulary == nil {
		for v := range seen {
			categories = append(categories, v)
		}
	} else {
		categories = slices.Clone(vocabulary)
		for v := range seen {
			if !slices.Contains(vocabulary, v) {
				unknown = append(unknown, v)
			}
		}
	}
	sort.Strings(categories)
	sort.Strings(unknown)

	columns := make([]string, 0, len(t.Columns)+len(categories))
	for _, c := range t.Columns {
		if c != source {
			columns = append(columns, c)
		}
	}
	columns = append(columns, categories...)

	out := t.withColumns(columns)
	for _, row := range t.Rows {
		values := listCell(row[source])

		nr := row.Clone()
		delete(nr, source)
		for _, c := range categories {
			nr[c] = slices.Contains(values, c)
		}
		out.Rows = append(out.Rows, nr)
	}
	return out, unknown
}

// listCell 读取列表单元格，nil 视为空列表
func listCell(v any) []string {
	if values, ok := v.([]string); ok {
		return values
	}
	return nil
}
