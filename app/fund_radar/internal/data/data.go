package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"
	"github.com/redis/rueidis"

	"github.com/iWorld-y/fund_radar/app/fund_radar/internal/biz"
	"github.com/iWorld-y/fund_radar/app/fund_radar/internal/conf"
)

const createFundResearchTable = `
CREATE TABLE IF NOT EXISTS fund_research (
	id SERIAL PRIMARY KEY,
	fund_name TEXT NOT NULL,
	fund_name_normalized TEXT NOT NULL UNIQUE,
	address TEXT,
	contact_email TEXT,
	investment_thesis TEXT,
	funds JSONB NOT NULL DEFAULT '[]',
	team_members JSONB NOT NULL DEFAULT '[]',
	recent_deals JSONB NOT NULL DEFAULT '[]',
	report JSONB,
	research_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_fund_research_research_date ON fund_research (research_date DESC);
`

// Data 缓存后端连接，两者都可能为空
type Data struct {
	db  *sql.DB
	rdb rueidis.Client
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	d := &Data{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if c != nil && c.Database != nil && c.Database.Source != "" {
		driver := c.Database.Driver
		if driver == "" {
			driver = "postgres"
		}
		db, err := sql.Open(driver, c.Database.Source)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		// Init schema for the research cache
		if _, err := db.ExecContext(ctx, createFundResearchTable); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to init fund_research table: %w", err)
		}
		d.db = db
	}

	if c != nil && c.Redis != nil && c.Redis.Addr != "" {
		rdb, err := rueidis.NewClient(rueidis.ClientOption{
			InitAddress:  []string{c.Redis.Addr},
			Password:     c.Redis.Password,
			SelectDB:     int(c.Redis.DB),
			DisableCache: true,
		})
		if err != nil {
			if d.db != nil {
				d.db.Close()
			}
			return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		d.rdb = rdb
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		if d.db != nil {
			d.db.Close()
		}
		if d.rdb != nil {
			d.rdb.Close()
		}
	}
	return d, cleanup, nil
}

// NewFundCache 优先使用 Postgres，其次 Redis，都未配置时返回 nil（关闭缓存）
func NewFundCache(d *Data, logger log.Logger) biz.FundCache {
	switch {
	case d.db != nil:
		log.NewHelper(logger).Info("research cache: postgres")
		return NewFundRepo(d.db, logger)
	case d.rdb != nil:
		log.NewHelper(logger).Info("research cache: redis")
		return NewRedisFundCache(d.rdb, logger)
	}
	log.NewHelper(logger).Warn("research cache: not configured")
	return nil
}
