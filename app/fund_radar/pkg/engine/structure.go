package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/metrics"
	dm "github.com/iWorld-y/fund_radar/app/fund_radar/pkg/model"
)

// StructuringError 结构化阶段失败
type StructuringError struct {
	Reason string
	Raw    string // 模型原始输出，便于排查
	Err    error
}

func (e *StructuringError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("structuring failed: %s: %v", e.Reason, e.Err)
	}
	return "structuring failed: " + e.Reason
}

func (e *StructuringError) Unwrap() error { return e.Err }

// Structure 让模型按报告结构输出 JSON 并解析
func (e *Engine) Structure(ctx context.Context, text, fundName string) (*dm.Report, error) {
	report, err := e.structure(ctx, text, fundName)
	if err != nil {
		metrics.LLMPassTotal.WithLabelValues("structure", "error").Inc()
		return nil, err
	}
	metrics.LLMPassTotal.WithLabelValues("structure", "ok").Inc()
	return report, nil
}

func (e *Engine) structure(ctx context.Context, text, fundName string) (*dm.Report, error) {
	ctx, cancel := e.llmContext(ctx)
	defer cancel()

	messages := []*schema.Message{
		{Role: schema.System, Content: structureSystemPrompt},
		{Role: schema.User, Content: buildStructurePrompt(fundName, text)},
	}
	resp, err := e.chatModel.Generate(ctx, messages,
		model.WithMaxTokens(e.opts.StructureMaxTokens),
		model.WithTemperature(*e.opts.Temperature),
	)
	if err != nil {
		return nil, &StructuringError{Reason: "model call failed", Err: err}
	}
	if resp == nil {
		return nil, &StructuringError{Reason: "empty response"}
	}
	return ParseReport(resp.Content)
}

// ExtractJSON 截取第一个 '{' 到最后一个 '}' 之间的内容，可去掉代码块标记与多余说明
func ExtractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// ParseReport 把模型输出解析为报告
func ParseReport(text string) (*dm.Report, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &StructuringError{Reason: "empty response"}
	}

	payload, ok := ExtractJSON(trimmed)
	if !ok {
		return nil, &StructuringError{Reason: "no JSON object in response", Raw: trimmed}
	}

	tree, err := decodeReportTree(payload)
	if err != nil {
		return nil, &StructuringError{Reason: "invalid JSON", Raw: trimmed, Err: err}
	}
	normalizeObject(reportType, tree)
	normalized, err := json.Marshal(tree)
	if err != nil {
		return nil, &StructuringError{Reason: "invalid JSON", Raw: trimmed, Err: err}
	}

	var report dm.Report
	if err := json.Unmarshal(normalized, &report); err != nil {
		return nil, &StructuringError{Reason: "invalid JSON", Raw: trimmed, Err: err}
	}
	if err := report.Validate(); err != nil {
		return nil, &StructuringError{Reason: "incomplete report", Raw: trimmed, Err: err}
	}
	return &report, nil
}
