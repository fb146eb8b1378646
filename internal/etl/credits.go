package etl

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Thejairex/Filmes-Mvp/internal/utils"
)

// Role 人员角色：演员或幕后
type Role string

const (
	RoleCast Role = "cast"
	RoleCrew Role = "crew"
)

// ColFilmID 人员表中的电影 id 列（避免与人员 id 重名）
const ColFilmID = "id_film"

// ErrInvalidRecord 人员记录无法转换
var ErrInvalidRecord = errors.New("invalid credit record")

type fieldKind int

const (
	stringField fieldKind = iota
	intField
)

type creditField struct {
	name string
	kind fieldKind
}

var creditSchemas = map[Role][]creditField{
	RoleCast: {
		{"cast_id", intField},
		{"character", stringField},
		{"credit_id", stringField},
		{"gender", intField},
		{"id", intField},
		{"name", stringField},
		{"order", intField},
		{"profile_path", stringField},
	},
	RoleCrew: {
		{"credit_id", stringField},
		{"department", stringField},
		{"gender", intField},
		{"id", intField},
		{"job", stringField},
		{"name", stringField},
		{"profile_path", stringField},
	},
}

// CreditColumns 输出列顺序，电影 id 在最前
func CreditColumns(role Role) []string {
	columns := []string{ColFilmID}
	for _, f := range creditSchemas[role] {
		columns = append(columns, f.name)
	}
	return columns
}

// SanitizeCredit 清洗一条人员记录
// 字符串字段经过 CleanStr；整数字段必须能转换为整数，否则整条记录无效
func SanitizeCredit(item any, role Role) (Record, error) {
	raw, ok := item.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %T", ErrInvalidRecord, item)
	}

	rec := make(Record, len(creditSchemas[role]))
	for _, f := range creditSchemas[role] {
		switch f.kind {
		case intField:
			n, err := toInt(raw[f.name])
			if err != nil {
				return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidRecord, f.name, err)
			}
			rec[f.name] = n
		default:
			rec[f.name] = utils.CleanStr(raw[f.name])
		}
	}
	return rec, nil
}

// TransformCredits 将每部电影一行的人员列表展开为每人一行
// 无效记录单独跳过并记录，不影响同一部电影的其他记录
func TransformCredits(raw *Table, role Role) (*Table, *Report) {
	report := NewReport(string(role))
	report.InputRows = raw.Len()
	column := string(role)

	// 1. 重命名电影 id
	t := raw.Rename(ColID, ColFilmID)

	// 2. 解析并清洗每行的人员列表
	parsed := t.withColumns([]string{ColFilmID, column})
	for _, row := range t.Rows {
		filmKey := formatCell(row[ColFilmID])
		filmID, err := toInt(row[ColFilmID])
		if err != nil {
			report.Reject(filmKey, ReasonInvalidID, err.Error())
			continue
		}

		var records []Record
		if text := cellString(row[column]); text != nil {
			items, err := utils.ParseRecordList(*text)
			if err != nil {
				report.Reject(filmKey, ReasonUnparseableList, err.Error())
			}
			for i, item := range items {
				rec, err := SanitizeCredit(item, role)
				if err != nil {
					report.Reject(filmKey, ReasonInvalidRecord, fmt.Sprintf("record %d: %v", i, err))
					continue
				}
				records = append(records, rec)
			}
		}
		parsed.Append(Row{ColFilmID: filmID, column: records})
	}

	// 3. 展开
	out := ExplodeOneToMany(parsed, column, ColFilmID)

	// 4. 电影 id 放在第一列
	out.Columns = CreditColumns(role)

	report.OutputRows = out.Len()
	return out, report
}

// toInt 将单元格或字段值转换为整数，浮点数必须是整数值
func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
			return 0, fmt.Errorf("not a whole number: %v", x)
		}
		return int64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", x)
		}
		return toInt(f)
	case nil:
		return 0, errors.New("missing value")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
