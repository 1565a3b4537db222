package factory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/chatsearch"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/gemini"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/search"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/searxng"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/tavily"
)

// ErrNotConfigured 检索服务缺少凭据或地址
var ErrNotConfigured = errors.New("search provider not configured")

const (
	perplexityBaseURL = "https://api.perplexity.ai"
	perplexityModel   = "sonar-pro"
	openAISearchModel = "gpt-4o-search-preview"
)

// Config 单个检索服务的配置
type Config struct {
	Name         string
	Label        string
	APIKey       string
	BaseURL      string
	Model        string
	SystemPrompt string
	MaxTokens    int
	Timeout      int // 秒
}

// NewSearcher 根据配置创建搜索实例
func NewSearcher(ctx context.Context, cfg Config) (search.Searcher, error) {
	timeout := time.Duration(cfg.Timeout) * time.Second

	switch strings.ToLower(cfg.Name) {
	case "tavily":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("tavily: %w", ErrNotConfigured)
		}
		var opts []tavily.Option
		if cfg.BaseURL != "" {
			opts = append(opts, tavily.WithEndpoint(cfg.BaseURL))
		}
		return tavily.NewClient(cfg.APIKey, opts...), nil

	case "searxng":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("searxng: %w", ErrNotConfigured)
		}
		return searxng.NewClient(cfg.BaseURL, cfg.Timeout), nil

	case "perplexity", "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s: %w", cfg.Name, ErrNotConfigured)
		}
		cc := chatsearch.Config{
			BaseURL:      cfg.BaseURL,
			APIKey:       cfg.APIKey,
			Model:        cfg.Model,
			SystemPrompt: cfg.SystemPrompt,
			MaxTokens:    cfg.MaxTokens,
			Temperature:  0.1,
			Timeout:      timeout,
		}
		if strings.EqualFold(cfg.Name, "perplexity") {
			if cc.BaseURL == "" {
				cc.BaseURL = perplexityBaseURL
			}
			if cc.Model == "" {
				cc.Model = perplexityModel
			}
		} else if cc.Model == "" {
			cc.Model = openAISearchModel
		}
		return chatsearch.New(ctx, cc)

	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini: %w", ErrNotConfigured)
		}
		return gemini.NewClient(ctx, cfg.APIKey, cfg.Model, cfg.SystemPrompt)

	default:
		return nil, fmt.Errorf("unknown search provider: %s", cfg.Name)
	}
}

// NewProviders 创建所有已配置的检索服务，缺少凭据的服务被跳过并在 skipped 中返回
func NewProviders(ctx context.Context, cfgs []Config) (providers []search.Provider, skipped []string, err error) {
	for _, cfg := range cfgs {
		s, err := NewSearcher(ctx, cfg)
		if errors.Is(err, ErrNotConfigured) {
			skipped = append(skipped, cfg.Name)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		label := cfg.Label
		if label == "" {
			label = strings.ToUpper(cfg.Name) + " RESEARCH"
		}
		providers = append(providers, search.Provider{Name: cfg.Name, Label: label, Searcher: s})
	}
	return providers, skipped, nil
}

// Configured 报告每个检索服务是否具备凭据，不建立连接
func Configured(cfg Config) bool {
	switch strings.ToLower(cfg.Name) {
	case "searxng":
		return cfg.BaseURL != ""
	default:
		return cfg.APIKey != ""
	}
}
