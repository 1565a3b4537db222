package biz

import (
	"context"
	"errors"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/metrics"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/model"
)

// ErrCacheMiss 缓存中没有该基金
var ErrCacheMiss = errors.New("cache miss")

// CachedReport 缓存的报告及其研究时间
type CachedReport struct {
	Report       *model.Report
	ResearchDate time.Time
}

// CachedFund 缓存列表项
type CachedFund struct {
	FundName     string
	ResearchDate time.Time
}

// FundCache 报告缓存存储，key 为规范化后的基金名称
type FundCache interface {
	Get(ctx context.Context, key string) (*CachedReport, error)
	Save(ctx context.Context, key string, report *model.Report, researchedAt time.Time) error
	List(ctx context.Context) ([]*CachedFund, error)
}

// CacheGateway 缓存访问入口，读写故障只记录日志，不影响请求
type CacheGateway struct {
	repo FundCache
	log  *log.Helper
}

// NewCacheGateway repo 为 nil 表示未配置缓存
func NewCacheGateway(repo FundCache, logger log.Logger) *CacheGateway {
	return &CacheGateway{repo: repo, log: log.NewHelper(logger)}
}

func (g *CacheGateway) Enabled() bool {
	return g != nil && g.repo != nil
}

// Read 查找缓存。未命中与读取失败都返回 false
func (g *CacheGateway) Read(ctx context.Context, fundName string) (*CachedReport, bool) {
	if !g.Enabled() {
		return nil, false
	}
	cached, err := g.repo.Get(ctx, model.NormalizeName(fundName))
	switch {
	case errors.Is(err, ErrCacheMiss):
		metrics.CacheOperationsTotal.WithLabelValues("read", "miss").Inc()
		return nil, false
	case err != nil:
		metrics.CacheOperationsTotal.WithLabelValues("read", "error").Inc()
		g.log.WithContext(ctx).Warnf("cache read failed for %q, continuing without cache: %v", fundName, err)
		return nil, false
	case cached == nil || cached.Report == nil:
		metrics.CacheOperationsTotal.WithLabelValues("read", "miss").Inc()
		return nil, false
	}
	metrics.CacheOperationsTotal.WithLabelValues("read", "hit").Inc()
	return cached, true
}

// Write 按规范化名称覆盖写入，返回是否成功
func (g *CacheGateway) Write(ctx context.Context, fundName string, report *model.Report, researchedAt time.Time) bool {
	if !g.Enabled() {
		return false
	}
	if err := g.repo.Save(ctx, model.NormalizeName(fundName), report, researchedAt); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues("write", "error").Inc()
		g.log.WithContext(ctx).Errorf("failed to save %q to cache: %v", fundName, err)
		return false
	}
	metrics.CacheOperationsTotal.WithLabelValues("write", "ok").Inc()
	return true
}

// List 返回全部缓存项，按研究时间倒序
func (g *CacheGateway) List(ctx context.Context) ([]*CachedFund, error) {
	if !g.Enabled() {
		return nil, nil
	}
	return g.repo.List(ctx)
}
