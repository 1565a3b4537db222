package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/metrics"
)

// ErrEmptyCompletion 模型返回空内容
var ErrEmptyCompletion = errors.New("empty completion")

// Enhancement 增强分析结果。Fallback 为 true 时 Text 是原始输入，Reason 说明原因
type Enhancement struct {
	Text     string
	Fallback bool
	Reason   error
}

// Enhance 让模型把原始资料整理为更密集的分析文本，任何失败都退回原文
func (e *Engine) Enhance(ctx context.Context, text, fundName string) Enhancement {
	content, err := e.enhance(ctx, text, fundName)
	if err != nil {
		metrics.LLMPassTotal.WithLabelValues("enhance", "fallback").Inc()
		return Enhancement{Text: text, Fallback: true, Reason: err}
	}
	metrics.LLMPassTotal.WithLabelValues("enhance", "ok").Inc()
	return Enhancement{Text: content}
}

func (e *Engine) enhance(ctx context.Context, text, fundName string) (string, error) {
	ctx, cancel := e.llmContext(ctx)
	defer cancel()

	messages := []*schema.Message{
		{Role: schema.System, Content: enhanceSystemPrompt},
		{Role: schema.User, Content: buildEnhancePrompt(fundName, text)},
	}
	resp, err := e.chatModel.Generate(ctx, messages,
		model.WithMaxTokens(e.opts.EnhanceMaxTokens),
		model.WithTemperature(*e.opts.Temperature),
	)
	if err != nil {
		return "", err
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Content, nil
}
