package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/logger"
	dm "github.com/iWorld-y/fund_radar/app/fund_radar/pkg/model"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/search"
)

// 默认参数
const (
	DefaultMaxConcurrency     = 6
	DefaultQueryTimeout       = 60 * time.Second
	DefaultLLMTimeout         = 120 * time.Second
	DefaultMaxResults         = 5
	DefaultEnhanceMaxTokens   = 4000
	DefaultStructureMaxTokens = 3000
	DefaultTemperature        = 0.1
)

// ErrNoProviders 没有可用的检索服务
var ErrNoProviders = errors.New("no search providers configured")

// Options 引擎运行参数，零值字段使用默认值
type Options struct {
	MaxConcurrency     int
	QueryTimeout       time.Duration
	LLMTimeout         time.Duration
	RPM                int // 检索调用每分钟上限，<=0 不限流
	Burst              int
	MaxResults         int
	FetchFullText      bool // 摘要过短时用 readability 抓取正文
	EnhanceMaxTokens   int
	StructureMaxTokens int
	Temperature        *float32 // nil 使用默认值，0 表示确定性解码
	Stages             []Stage
}

func (o *Options) withDefaults() {
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = DefaultMaxConcurrency
	}
	if o.QueryTimeout <= 0 {
		o.QueryTimeout = DefaultQueryTimeout
	}
	if o.LLMTimeout <= 0 {
		o.LLMTimeout = DefaultLLMTimeout
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.EnhanceMaxTokens <= 0 {
		o.EnhanceMaxTokens = DefaultEnhanceMaxTokens
	}
	if o.StructureMaxTokens <= 0 {
		o.StructureMaxTokens = DefaultStructureMaxTokens
	}
	if o.Temperature == nil {
		t := float32(DefaultTemperature)
		o.Temperature = &t
	}
	if o.Burst <= 0 {
		o.Burst = 1
	}
	if len(o.Stages) == 0 {
		o.Stages = DefaultStages()
	}
}

// Engine 基金研究引擎
type Engine struct {
	opts      Options
	chatModel model.BaseChatModel
	adapter   *Adapter
	stages    []Stage
}

// NewEngine 创建引擎实例
func NewEngine(chatModel model.BaseChatModel, providers []search.Provider, opts Options) (*Engine, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	opts.withDefaults()

	// 初始化限流器
	var limiter *rate.Limiter
	if opts.RPM > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RPM)/60.0), opts.Burst)
	}

	adapter := NewAdapter(providers,
		WithLimiter(limiter),
		WithTimeout(opts.QueryTimeout),
		WithMaxResults(opts.MaxResults),
	)
	if opts.FetchFullText {
		adapter.fetch = fetchAndCleanContent
	}

	return &Engine{
		opts:      opts,
		chatModel: chatModel,
		adapter:   adapter,
		stages:    opts.Stages,
	}, nil
}

// Stages 返回引擎使用的阶段目录
func (e *Engine) Stages() []Stage {
	return e.stages
}

// Research 对基金执行完整研究：多阶段检索、增强分析、结构化
func (e *Engine) Research(ctx context.Context, fundName string) (*dm.Report, error) {
	log := logger.Log.WithFields(logrus.Fields{"run": uuid.NewString(), "fund": fundName})
	start := time.Now()
	log.Infof("开始研究，共 %d 个阶段", len(e.stages))

	raw := e.Aggregate(ctx, fundName)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("research aborted: %w", err)
	}
	log.Infof("检索完成，原始资料长度 %d", len(raw))

	enhanced := e.Enhance(ctx, raw, fundName)
	if enhanced.Fallback {
		log.Warnf("增强分析未生效，使用原始资料: %v", enhanced.Reason)
	} else {
		log.Infof("增强分析完成，长度 %d", len(enhanced.Text))
	}

	report, err := e.Structure(ctx, enhanced.Text, fundName)
	if err != nil {
		log.Errorf("结构化失败: %v", err)
		return nil, err
	}
	log.Infof("研究完成，耗时 %s", time.Since(start).Round(time.Millisecond))
	return report, nil
}

func (e *Engine) llmContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.opts.LLMTimeout)
}
