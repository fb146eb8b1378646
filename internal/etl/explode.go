package etl

import (
	"slices"

	"github.com/Thejairex/Filmes-Mvp/internal/utils"
)

// ExplodeOneToMany 将记录列表列展开为每条记录一行
// 每行输出 parentKey 及记录中的全部字段（嵌套对象以 "a.b" 形式拉平）；
// 空列表不产生任何行。输出顺序：先按输入行顺序，再按列表内顺序
// 列顺序：parentKey 在前，其余列按首次出现的记录追加，同一记录内按 key 排序
// 列表列可以是 []Record，也可以是元素为对象的 []any（ParseRecordList 的结果）；
// []any 中的非对象元素被忽略，其他类型的值视为空列表
func ExplodeOneToMany(t *Table, listColumn, parentKey string) *Table {
	columns := []string{parentKey}
	out := &Table{}

	for _, row := range t.Rows {
		for _, rec := range recordsOf(row[listColumn]) {
			nr := Row{parentKey: row[parentKey]}
			flattenRecord(nr, "", rec)

			for _, k := range utils.SortedKeys(rec) {
				for _, col := range flattenedNames(k, rec[k]) {
					if !slices.Contains(columns, col) {
						columns = append(columns, col)
					}
				}
			}
			out.Rows = append(out.Rows, nr)
		}
	}

	out.Columns = columns
	return out
}

// recordsOf 取出列表单元格中的对象记录
func recordsOf(v any) []Record {
	switch x := v.(type) {
	case []Record:
		return x
	case []any:
		records := make([]Record, 0, len(x))
		for _, item := range x {
			if rec, ok := item.(Record); ok {
				records = append(records, rec)
			}
		}
		return records
	default:
		return nil
	}
}

func flattenRecord(dst Row, prefix string, rec Record) {
	for k, v := range rec {
		name := prefix + k
		if nested, ok := v.(map[string]any); ok {
			flattenRecord(dst, name+".", nested)
			continue
		}
		dst[name] = v
	}
}

func flattenedNames(name string, v any) []string {
	nested, ok := v.(map[string]any)
	if !ok {
		return []string{name}
	}
	var names []string
	for _, k := range utils.SortedKeys(nested) {
		names = append(names, flattenedNames(name+"."+k, nested[k])...)
	}
	return names
}
