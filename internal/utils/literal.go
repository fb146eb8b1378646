package utils

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrMalformedLiteral 字面量文本无法解析
var ErrMalformedLiteral = errors.New("malformed literal")

// ParseLiteral 解析导出数据中的 Python 风格字面量文本
// 支持: 单/双引号字符串(含转义)、整数、浮点数、True/False/None、列表、元组、字典
// 返回值类型: string, int64, float64, bool, nil, []any, map[string]any
func ParseLiteral(raw string) (any, error) {
	p := &literalParser{src: raw}
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected trailing text")
	}
	return v, nil
}

// ParseTaggedList 从对象列表中按 key 提取值
// raw 为 nil、解析失败或不是列表时返回空切片；缺少 key 的对象会被跳过
func ParseTaggedList(raw *string, key string) []string {
	result := []string{}
	if raw == nil {
		return result
	}

	v, err := ParseLiteral(*raw)
	if err != nil {
		return result
	}
	items, ok := v.([]any)
	if !ok {
		return result
	}

	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		val, ok := obj[key]
		if !ok || val == nil {
			continue
		}
		result = append(result, FormatScalar(val))
	}
	return result
}

// ParseSingleObject 解析单个对象，失败时返回空 map
func ParseSingleObject(raw *string) map[string]any {
	if raw == nil {
		return map[string]any{}
	}
	v, err := ParseLiteral(*raw)
	if err != nil {
		return map[string]any{}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return obj
}

// ParseRecordList 解析对象列表，保留每个元素的原始值（非对象元素也会保留，由调用方决定如何处理）
func ParseRecordList(raw string) ([]any, error) {
	v, err := ParseLiteral(raw)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected list, got %T", ErrMalformedLiteral, v)
	}
	return items, nil
}

// CleanStr 清理人员字段中的字符串
// 空值及假值(false、0)返回字面量 "null"，其余值去掉双引号，避免写出 CSV 时出现嵌入的分隔符
func CleanStr(v any) string {
	switch s := v.(type) {
	case nil:
		return "null"
	case string:
		if s == "" {
			return "null"
		}
		return StripQuotes(s)
	case bool:
		if !s {
			return "null"
		}
	case int64:
		if s == 0 {
			return "null"
		}
	case float64:
		if s == 0 {
			return "null"
		}
	}
	return StripQuotes(FormatScalar(v))
}

// StripQuotes 去掉双引号；撇号是人名的一部分(O'Toole)，保留
// 查询人名时也要经过这里，保证与入库的值一致
func StripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

// FormatScalar 将解析得到的标量转换为字符串
func FormatScalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// TitleCase 与 Python str.title() 一致：字母前一个字符不是字母时大写，否则小写
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevCased {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevCased = true
			continue
		}
		b.WriteRune(r)
		prevCased = false
	}
	return b.String()
}

// literalParser 递归下降解析器
type literalParser struct {
	src string
	pos int
}

func (p *literalParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrMalformedLiteral, p.pos, fmt.Sprintf(format, args...))
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *literalParser) value() (any, error) {
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of input")
	}

	switch c := p.src[p.pos]; {
	case c == '[':
		return p.sequence('[', ']')
	case c == '(':
		return p.sequence('(', ')')
	case c == '{':
		return p.dict()
	case c == '\'' || c == '"':
		return p.str()
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	case isIdentStart(c):
		return p.ident()
	default:
		return nil, p.errorf("unexpected character %q", c)
	}
}

func (p *literalParser) sequence(open, close byte) ([]any, error) {
	p.pos++ // open
	items := []any{}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated %c", open)
		}
		if p.src[p.pos] == close {
			p.pos++
			return items, nil
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)

		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated %c", open)
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case close:
		default:
			return nil, p.errorf("expected ',' or %q", close)
		}
	}
}

func (p *literalParser) dict() (map[string]any, error) {
	p.pos++ // {
	obj := map[string]any{}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated {")
		}
		if p.src[p.pos] == '}' {
			p.pos++
			return obj, nil
		}

		k, err := p.value()
		if err != nil {
			return nil, err
		}
		switch k.(type) {
		case []any, map[string]any:
			return nil, p.errorf("unhashable dict key")
		}

		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, p.errorf("expected ':'")
		}
		p.pos++

		p.skipSpace()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		obj[FormatScalar(k)] = v

		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated {")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case '}':
		default:
			return nil, p.errorf("expected ',' or '}'")
		}
	}
}

func (p *literalParser) str() (string, error) {
	quote := p.src[p.pos]
	p.pos++

	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\':
			if err := p.escape(&b); err != nil {
				return "", err
			}
		case c == '\n':
			return "", p.errorf("newline in string")
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
	return "", p.errorf("unterminated string")
}

func (p *literalParser) escape(b *strings.Builder) error {
	p.pos++ // backslash
	if p.pos >= len(p.src) {
		return p.errorf("dangling escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '\n':
		// 续行
	case 'x':
		return p.hexEscape(b, 2)
	case 'u':
		return p.hexEscape(b, 4)
	case 'U':
		return p.hexEscape(b, 8)
	default:
		// 未知转义按 Python 规则原样保留
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return nil
}

func (p *literalParser) hexEscape(b *strings.Builder, digits int) error {
	if p.pos+digits > len(p.src) {
		return p.errorf("truncated escape")
	}
	n, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], 16, 32)
	if err != nil {
		return p.errorf("invalid escape")
	}
	p.pos += digits
	b.WriteRune(rune(n))
	return nil
}

func (p *literalParser) number() (any, error) {
	start := p.pos
	if c := p.src[p.pos]; c == '-' || c == '+' {
		p.pos++
	}
	isFloat := false
scan:
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c >= '0' && c <= '9', c == '_':
		case c == '.':
			isFloat = true
		case c == 'e' || c == 'E':
			isFloat = true
			if p.pos+1 < len(p.src) && (p.src[p.pos+1] == '-' || p.src[p.pos+1] == '+') {
				p.pos++
			}
		default:
			break scan
		}
		p.pos++
	}
	text := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	if !isFloat {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return n, nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.pos = start
		return nil, p.errorf("invalid number %q", text)
	}
	return f, nil
}

func (p *literalParser) ident() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && (isIdentStart(p.src[p.pos]) || (p.src[p.pos] >= '0' && p.src[p.pos] <= '9')) {
		p.pos++
	}
	switch word := p.src[start:p.pos]; word {
	case "None":
		return nil, nil
	case "True":
		return true, nil
	case "False":
		return false, nil
	default:
		// 字符串前缀 u'..' / b'..'
		if (word == "u" || word == "b" || word == "U" || word == "B") && p.pos < len(p.src) &&
			(p.src[p.pos] == '\'' || p.src[p.pos] == '"') {
			return p.str()
		}
		p.pos = start
		return nil, p.errorf("unknown identifier %q", word)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// SortedKeys 返回 map 的有序 key 列表
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
