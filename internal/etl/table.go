package etl

import (
	"slices"
	"strings"
)

// Record 列表单元格中的一条嵌套记录（如一位演员）
type Record = map[string]any

// Row 一行数据，key 为列名
// 单元格取值: nil(空), string, int64, float64, bool, time.Time, []string, []Record
type Row map[string]any

// Clone 浅拷贝一行
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table 内存中的表格：有序列名 + 行
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable 创建空表
func NewTable(columns ...string) *Table {
	return &Table{Columns: slices.Clone(columns)}
}

// Len 行数
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn 是否存在列
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Append 追加一行
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Column 取出整列的值
func (t *Table) Column(name string) []any {
	values := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[name]
	}
	return values
}

// withColumns 复制表结构并替换列名，行不复制
func (t *Table) withColumns(columns []string) *Table {
	return &Table{Columns: columns, Rows: make([]Row, 0, len(t.Rows))}
}

// Drop 删除列，返回新表
func (t *Table) Drop(names ...string) *Table {
	columns := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !slices.Contains(names, c) {
			columns = append(columns, c)
		}
	}

	out := t.withColumns(columns)
	for _, row := range t.Rows {
		nr := row.Clone()
		for _, name := range names {
			delete(nr, name)
		}
		out.Rows = append(out.Rows, nr)
	}
	return out
}

// Rename 重命名列，返回新表
func (t *Table) Rename(oldName, newName string) *Table {
	columns := slices.Clone(t.Columns)
	for i, c := range columns {
		if c == oldName {
			columns[i] = newName
		}
	}

	out := t.withColumns(columns)
	for _, row := range t.Rows {
		nr := row.Clone()
		if v, ok := nr[oldName]; ok {
			delete(nr, oldName)
			nr[newName] = v
		}
		out.Rows = append(out.Rows, nr)
	}
	return out
}

// Reorder 将指定列移到最前，其余列保持原顺序
func (t *Table) Reorder(first ...string) *Table {
	columns := make([]string, 0, len(t.Columns))
	for _, c := range first {
		if t.HasColumn(c) {
			columns = append(columns, c)
		}
	}
	for _, c := range t.Columns {
		if !slices.Contains(first, c) {
			columns = append(columns, c)
		}
	}
	return &Table{Columns: columns, Rows: t.Rows}
}

// cellString 将单元格转换为可空字符串，空白字符串视为空
func cellString(v any) *string {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(x) == "" {
			return nil
		}
		return &x
	default:
		s := formatCell(x)
		return &s
	}
}
