package etl

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed genres.yaml
var defaultGenresYAML []byte

// Vocabulary 固定的类型词表，保证不同批次输出的列集合一致
type Vocabulary struct {
	Version string   `yaml:"version"`
	Genres  []string `yaml:"genres"`
}

// DefaultVocabulary 内置词表
func DefaultVocabulary() *Vocabulary {
	v, err := ParseVocabulary(defaultGenresYAML)
	if err != nil {
		panic(fmt.Sprintf("内置类型词表无效: %v", err))
	}
	return v
}

// LoadVocabulary 从 YAML 文件加载词表，path 为空时使用内置词表
func LoadVocabulary(path string) (*Vocabulary, error) {
	if path == "" {
		return DefaultVocabulary(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取类型词表失败: %w", err)
	}
	return ParseVocabulary(data)
}

// ParseVocabulary 解析并校验词表
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("解析类型词表失败: %w", err)
	}
	if v.Version == "" {
		return nil, errors.New("类型词表缺少 version")
	}
	if len(v.Genres) == 0 {
		return nil, errors.New("类型词表为空")
	}

	seen := map[string]bool{}
	for _, g := range v.Genres {
		if g == "" {
			return nil, errors.New("类型词表包含空值")
		}
		if seen[g] {
			return nil, fmt.Errorf("类型词表重复: %s", g)
		}
		seen[g] = true
	}
	sort.Strings(v.Genres)
	return &v, nil
}
