package engine

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FundPlaceholder 查询模板中的基金名称占位符
const FundPlaceholder = "{fund}"

//go:embed stages.yaml
var defaultStagesYAML []byte

// Stage 一个主题研究阶段
type Stage struct {
	Key     string   `yaml:"key"`
	Title   string   `yaml:"title"`
	Queries []string `yaml:"queries"`
}

type stageCatalog struct {
	Stages []Stage `yaml:"stages"`
}

// ErrEmptyCatalog 阶段目录为空
var ErrEmptyCatalog = errors.New("stage catalog has no stages")

// DefaultStages 返回内置的九阶段研究目录
func DefaultStages() []Stage {
	stages, err := ParseStages(defaultStagesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded stage catalog: %v", err))
	}
	return stages
}

// LoadStages 从文件加载阶段目录，path 为空时使用内置目录
func LoadStages(path string) ([]Stage, error) {
	if path == "" {
		return DefaultStages(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stage catalog: %w", err)
	}
	return ParseStages(data)
}

// ParseStages 解析并校验 YAML 阶段目录
func ParseStages(data []byte) ([]Stage, error) {
	var catalog stageCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse stage catalog: %w", err)
	}
	if len(catalog.Stages) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i, st := range catalog.Stages {
		if strings.TrimSpace(st.Title) == "" {
			return nil, fmt.Errorf("stage %d: title is empty", i)
		}
		if len(st.Queries) == 0 {
			return nil, fmt.Errorf("stage %q: no queries", st.Title)
		}
	}
	return catalog.Stages, nil
}

// ExpandQuery 将基金名称代入查询模板
func ExpandQuery(template, fundName string) string {
	if strings.Contains(template, FundPlaceholder) {
		return strings.ReplaceAll(template, FundPlaceholder, fundName)
	}
	return fundName + " " + template
}
