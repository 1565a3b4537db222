package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/metrics"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/model"
)

const (
	DemoMessage     = "Demo mode: Configure your API keys to research any fund"
	FallbackMessage = "API services temporarily unavailable. Showing demo data."
)

// ErrFundNameRequired 请求未提供基金名称
var ErrFundNameRequired = errors.New("fund name is required")

// DemoUnavailableError 需要演示数据但该基金没有演示数据。
// Fallback 为 true 表示研究失败后的降级，否则是未配置凭据
type DemoUnavailableError struct {
	FundName string
	Fallback bool
}

func (e *DemoUnavailableError) Error() string {
	funds := strings.Join(AvailableDemoFunds, ", ")
	if e.Fallback {
		return fmt.Sprintf("API services temporarily unavailable. Demo data not available for \"%s\". Available demo funds: %s.", e.FundName, funds)
	}
	return fmt.Sprintf("Demo data not available for \"%s\". Available demo funds: %s. Configure API keys for full functionality.", e.FundName, funds)
}

// Researcher 对一个基金执行完整的在线研究
type Researcher interface {
	Research(ctx context.Context, fundName string) (*model.Report, error)
}

// Source 报告来源
type Source int

const (
	SourceCache Source = iota
	SourceDemo
	SourceResearch
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceDemo:
		return "demo"
	case SourceResearch:
		return "fresh"
	case SourceFallback:
		return "fallback"
	}
	return "unknown"
}

// ResearchReply 研究结果及来源信息
type ResearchReply struct {
	Report       *model.Report
	Source       Source
	CacheDate    time.Time // SourceCache
	ResearchDate time.Time // SourceResearch，与写入缓存的时间一致
	Message      string
}

// ProviderStatus 外部服务的配置情况
type ProviderStatus struct {
	LLMConfigured   bool
	SearchProviders map[string]bool
	Environment     string
}

// Ready 具备在线研究所需的全部凭据
func (s ProviderStatus) Ready() bool {
	if !s.LLMConfigured {
		return false
	}
	for _, ok := range s.SearchProviders {
		if ok {
			return true
		}
	}
	return false
}

type ResearchUseCase struct {
	cache      *CacheGateway
	researcher Researcher
	now        func() time.Time
	log        *log.Helper
}

// NewResearchUseCase researcher 为 nil 时运行在演示模式
func NewResearchUseCase(cache *CacheGateway, researcher Researcher, logger log.Logger) *ResearchUseCase {
	return &ResearchUseCase{
		cache:      cache,
		researcher: researcher,
		now:        time.Now,
		log:        log.NewHelper(logger),
	}
}

// DemoMode 是否运行在演示模式
func (uc *ResearchUseCase) DemoMode() bool {
	return uc.researcher == nil
}

// Research 缓存 → 凭据检查 → 演示数据 → 在线研究 → 写缓存
func (uc *ResearchUseCase) Research(ctx context.Context, fundName string) (*ResearchReply, error) {
	reply, err := uc.research(ctx, strings.TrimSpace(fundName))
	metrics.ResearchRequestsTotal.WithLabelValues(outcome(reply, err)).Inc()
	return reply, err
}

func (uc *ResearchUseCase) research(ctx context.Context, fundName string) (*ResearchReply, error) {
	if fundName == "" {
		return nil, ErrFundNameRequired
	}
	logger := uc.log.WithContext(ctx)

	if cached, ok := uc.cache.Read(ctx, fundName); ok {
		logger.Infof("serving %q from cache (researched %s)", fundName, cached.ResearchDate.Format(time.RFC3339))
		return &ResearchReply{Report: cached.Report, Source: SourceCache, CacheDate: cached.ResearchDate}, nil
	}

	if uc.researcher == nil {
		demo := DemoReport(fundName)
		if demo == nil {
			return nil, &DemoUnavailableError{FundName: fundName}
		}
		logger.Infof("API keys not configured, serving demo data for %q", fundName)
		return &ResearchReply{Report: demo, Source: SourceDemo, Message: DemoMessage}, nil
	}

	report, err := uc.researcher.Research(ctx, fundName)
	if err != nil {
		logger.Errorf("research failed for %q, falling back to demo data: %v", fundName, err)
		demo := DemoReport(fundName)
		if demo == nil {
			return nil, &DemoUnavailableError{FundName: fundName, Fallback: true}
		}
		return &ResearchReply{Report: demo, Source: SourceFallback, Message: FallbackMessage}, nil
	}

	researchedAt := uc.now().UTC().Truncate(time.Millisecond)
	uc.cache.Write(ctx, fundName, report, researchedAt)
	return &ResearchReply{Report: report, Source: SourceResearch, ResearchDate: researchedAt}, nil
}

// CachedFunds 返回缓存列表，enabled 为 false 表示未配置缓存
func (uc *ResearchUseCase) CachedFunds(ctx context.Context) (funds []*CachedFund, enabled bool, err error) {
	if !uc.cache.Enabled() {
		return nil, false, nil
	}
	funds, err = uc.cache.List(ctx)
	if err != nil {
		return nil, true, fmt.Errorf("list cached funds: %w", err)
	}
	return funds, true, nil
}

// CacheEnabled 是否配置了缓存
func (uc *ResearchUseCase) CacheEnabled() bool {
	return uc.cache.Enabled()
}

func outcome(reply *ResearchReply, err error) string {
	var demoErr *DemoUnavailableError
	switch {
	case err == nil:
		return reply.Source.String()
	case errors.Is(err, ErrFundNameRequired):
		return "invalid"
	case errors.As(err, &demoErr) && demoErr.Fallback:
		return "unavailable"
	case errors.As(err, &demoErr):
		return "not_found"
	}
	return "error"
}
