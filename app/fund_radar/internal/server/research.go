package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/fund_radar/app/fund_radar/internal/biz"
	"github.com/iWorld-y/fund_radar/app/fund_radar/internal/conf"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/engine"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/gemini"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/search/factory"
)

const defaultOpenAIModel = "gpt-4-turbo-preview"

// NewResearcher 初始化研究引擎。缺少 LLM 或检索服务凭据时返回 nil，服务运行在演示模式
func NewResearcher(c *conf.Research, logger log.Logger) (biz.Researcher, error) {
	helper := log.NewHelper(logger)
	status := NewProviderStatusFromResearch(c)
	if !status.Ready() {
		helper.Warn("API keys not configured, running in demo mode")
		return nil, nil
	}

	ctx := context.Background()

	// 初始化 LLM
	chatModel, err := newChatModel(ctx, c.Llm, parseDuration(c.LlmTimeout, engine.DefaultLLMTimeout))
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	// 初始化检索服务
	providers, skipped, err := factory.NewProviders(ctx, providerConfigs(c))
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}
	if len(skipped) > 0 {
		helper.Infof("search providers without credentials: %s", strings.Join(skipped, ", "))
	}

	stages, err := engine.LoadStages(c.StagesFile)
	if err != nil {
		return nil, err
	}

	opts := engine.Options{
		QueryTimeout:       parseDuration(c.QueryTimeout, engine.DefaultQueryTimeout),
		LLMTimeout:         parseDuration(c.LlmTimeout, engine.DefaultLLMTimeout),
		MaxResults:         int(c.MaxResults),
		FetchFullText:      c.FetchFullText,
		EnhanceMaxTokens:   int(c.Llm.EnhanceMaxTokens),
		StructureMaxTokens: int(c.Llm.StructureMaxTokens),
		Temperature:        c.Llm.Temperature,
		Stages:             stages,
	}
	if c.Concurrency != nil {
		opts.MaxConcurrency = int(c.Concurrency.MaxQueries)
		opts.RPM = int(c.Concurrency.Rpm)
		opts.Burst = int(c.Concurrency.Qps)
	}

	eng, err := engine.NewEngine(chatModel, providers, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to init engine: %w", err)
	}
	helper.Infof("research engine ready: %d providers, %d stages", len(providers), len(stages))
	return eng, nil
}

func newChatModel(ctx context.Context, c *conf.LLM, timeout time.Duration) (model.BaseChatModel, error) {
	if strings.EqualFold(c.Provider, "gemini") {
		return gemini.NewClient(ctx, c.ApiKey, c.Model, "")
	}
	modelName := c.Model
	if modelName == "" {
		modelName = defaultOpenAIModel
	}
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: c.BaseUrl,
		APIKey:  c.ApiKey,
		Model:   modelName,
		Timeout: timeout,
	})
}

func providerConfigs(c *conf.Research) []factory.Config {
	cfgs := make([]factory.Config, 0, len(c.Providers))
	for _, p := range c.Providers {
		if p == nil {
			continue
		}
		cfgs = append(cfgs, factory.Config{
			Name:         p.Name,
			Label:        p.Label,
			APIKey:       p.ApiKey,
			BaseURL:      p.BaseUrl,
			Model:        p.Model,
			SystemPrompt: p.SystemPrompt,
			MaxTokens:    int(p.MaxTokens),
			Timeout:      int(p.Timeout),
		})
	}
	return cfgs
}

// NewProviderStatus 汇总凭据配置情况，供 /test 使用
func NewProviderStatus(bc *conf.Bootstrap) biz.ProviderStatus {
	status := NewProviderStatusFromResearch(bc.Research)
	status.Environment = bc.Env
	return status
}

func NewProviderStatusFromResearch(c *conf.Research) biz.ProviderStatus {
	status := biz.ProviderStatus{SearchProviders: map[string]bool{}}
	if c == nil {
		return status
	}
	status.LLMConfigured = c.Llm != nil && c.Llm.ApiKey != ""
	for _, cfg := range providerConfigs(c) {
		status.SearchProviders[cfg.Name] = factory.Configured(cfg)
	}
	return status
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
