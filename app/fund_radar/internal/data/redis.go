package data

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/rueidis"

	"github.com/iWorld-y/fund_radar/app/fund_radar/internal/biz"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/model"
)

const (
	reportKeyPrefix = "fundradar:report:"
	indexKey        = "fundradar:index"
)

// redisFundCache 报告存为 STRING，索引存为 HASH（field 为规范化名称）
type redisFundCache struct {
	client rueidis.Client
	log    *log.Helper
}

type redisReport struct {
	Report       *model.Report `json:"report"`
	ResearchDate time.Time     `json:"researchDate"`
}

type redisIndexEntry struct {
	FundName     string    `json:"fundName"`
	ResearchDate time.Time `json:"researchDate"`
}

func NewRedisFundCache(client rueidis.Client, logger log.Logger) biz.FundCache {
	return &redisFundCache{client: client, log: log.NewHelper(logger)}
}

func (c *redisFundCache) Get(ctx context.Context, key string) (*biz.CachedReport, error) {
	cmd := c.client.B().Get().Key(reportKeyPrefix + key).Build()
	data, err := c.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, biz.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry redisReport
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decode cached report: %w", err)
	}
	if entry.Report == nil {
		return nil, biz.ErrCacheMiss
	}
	return &biz.CachedReport{Report: entry.Report, ResearchDate: entry.ResearchDate.UTC()}, nil
}

func (c *redisFundCache) Save(ctx context.Context, key string, report *model.Report, researchedAt time.Time) error {
	value, err := json.Marshal(redisReport{Report: report, ResearchDate: researchedAt})
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	index, err := json.Marshal(redisIndexEntry{FundName: report.FundName, ResearchDate: researchedAt})
	if err != nil {
		return fmt.Errorf("encode index entry: %w", err)
	}

	cmds := rueidis.Commands{
		c.client.B().Set().Key(reportKeyPrefix + key).Value(string(value)).Build(),
		c.client.B().Hset().Key(indexKey).FieldValue().FieldValue(key, string(index)).Build(),
	}
	for i, res := range c.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("redis save (cmd %d): %w", i, err)
		}
	}
	c.log.WithContext(ctx).Infof("saved research for %q to redis cache", key)
	return nil
}

func (c *redisFundCache) List(ctx context.Context) ([]*biz.CachedFund, error) {
	cmd := c.client.B().Hgetall().Key(indexKey).Build()
	m, err := c.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}

	funds := make([]*biz.CachedFund, 0, len(m))
	for field, raw := range m {
		var entry redisIndexEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			c.log.WithContext(ctx).Warnf("skipping malformed index entry %q: %v", field, err)
			continue
		}
		funds = append(funds, &biz.CachedFund{FundName: entry.FundName, ResearchDate: entry.ResearchDate.UTC()})
	}
	sort.Slice(funds, func(i, j int) bool {
		return funds[i].ResearchDate.After(funds[j].ResearchDate)
	})
	return funds, nil
}
