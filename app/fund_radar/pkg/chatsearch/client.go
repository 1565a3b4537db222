// Package chatsearch 通过 OpenAI 兼容的对话接口（Perplexity、OpenAI 搜索模型等）执行问答式检索
package chatsearch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/search"
)

// DefaultSystemPrompt 默认的研究助手角色设定
const DefaultSystemPrompt = "You are a specialized financial research assistant with expertise in private credit funds, " +
	"direct lending, and institutional investing. Provide comprehensive, accurate, and detailed information about " +
	"private credit firms, their investment strategies, team members, fund portfolios, recent transactions, and " +
	"market positioning. Include specific details like contact information, fund sizes, dates, amounts, and " +
	"competitive analysis when available. Always cite sources when possible."

// ErrEmptyAnswer 服务端返回了空内容
var ErrEmptyAnswer = errors.New("no content returned from chat search")

// Config 对话式检索配置
type Config struct {
	BaseURL      string
	APIKey       string
	Model        string
	SystemPrompt string
	MaxTokens    int
	Temperature  float32
	Timeout      time.Duration
}

// Client 基于 ChatModel 的检索客户端
type Client struct {
	cm     model.BaseChatModel
	system string
	opts   []model.Option
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// New 根据配置创建 OpenAI 兼容的 ChatModel 并包装为检索客户端
func New(ctx context.Context, cfg Config) (*Client, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model %s: %w", cfg.Model, err)
	}
	return NewClient(cm, cfg.SystemPrompt, cfg.MaxTokens, cfg.Temperature), nil
}

// NewClient 用已有的 ChatModel 创建检索客户端
func NewClient(cm model.BaseChatModel, systemPrompt string, maxTokens int, temperature float32) *Client {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	if maxTokens <= 0 {
		maxTokens = 4000
	}
	return &Client{
		cm:     cm,
		system: systemPrompt,
		opts: []model.Option{
			model.WithMaxTokens(maxTokens),
			model.WithTemperature(temperature),
		},
	}
}

// Search 将查询作为用户消息发送，答案文本作为检索结果
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: c.system},
		{Role: schema.User, Content: req.Query},
	}

	resp, err := c.cm.Generate(ctx, messages, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("chat search: %w", err)
	}
	answer := strings.TrimSpace(resp.Content)
	if answer == "" {
		return nil, ErrEmptyAnswer
	}
	return &search.Response{Answer: answer}, nil
}
