package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/fund_radar/app/fund_radar/internal/biz"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/model"
)

const (
	selectFundSQL = `
SELECT fund_name, COALESCE(address, ''), COALESCE(contact_email, ''), COALESCE(investment_thesis, ''),
	funds, team_members, recent_deals, report, research_date
FROM fund_research WHERE fund_name_normalized = $1`

	upsertFundSQL = `
INSERT INTO fund_research (fund_name, fund_name_normalized, address, contact_email, investment_thesis,
	funds, team_members, recent_deals, report, research_date, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
ON CONFLICT (fund_name_normalized) DO UPDATE SET
	fund_name = EXCLUDED.fund_name,
	address = EXCLUDED.address,
	contact_email = EXCLUDED.contact_email,
	investment_thesis = EXCLUDED.investment_thesis,
	funds = EXCLUDED.funds,
	team_members = EXCLUDED.team_members,
	recent_deals = EXCLUDED.recent_deals,
	report = EXCLUDED.report,
	research_date = EXCLUDED.research_date,
	updated_at = NOW()`

	listFundsSQL = `SELECT fund_name, research_date FROM fund_research ORDER BY research_date DESC`
)

type fundRepo struct {
	db  *sql.DB
	log *log.Helper
}

func NewFundRepo(db *sql.DB, logger log.Logger) biz.FundCache {
	return &fundRepo{
		db:  db,
		log: log.NewHelper(logger),
	}
}

// fundRow fund_research 表的一行，JSONB 列保持原始字节
type fundRow struct {
	FundName         string
	Normalized       string
	Address          string
	ContactEmail     string
	InvestmentThesis string
	Funds            []byte
	TeamMembers      []byte
	RecentDeals      []byte
	Report           []byte
	ResearchDate     time.Time
}

func newFundRow(key string, report *model.Report, researchedAt time.Time) (*fundRow, error) {
	row := &fundRow{
		FundName:         report.FundName,
		Normalized:       key,
		Address:          report.Address,
		ContactEmail:     report.ContactEmail,
		InvestmentThesis: report.InvestmentThesis,
		ResearchDate:     researchedAt,
	}
	var err error
	if row.Funds, err = marshalArray(report.Funds); err != nil {
		return nil, fmt.Errorf("marshal funds: %w", err)
	}
	if row.TeamMembers, err = marshalArray(report.TeamMembers); err != nil {
		return nil, fmt.Errorf("marshal team members: %w", err)
	}
	if row.RecentDeals, err = marshalArray(report.RecentDeals); err != nil {
		return nil, fmt.Errorf("marshal deals: %w", err)
	}
	if row.Report, err = json.Marshal(report); err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return row, nil
}

// marshalArray nil 切片存为 []
func marshalArray[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

// toReport 优先使用完整的 report 列，旧数据只有拆分列
func (row *fundRow) toReport() (*model.Report, error) {
	if len(row.Report) > 0 {
		var report model.Report
		if err := json.Unmarshal(row.Report, &report); err != nil {
			return nil, fmt.Errorf("decode report column: %w", err)
		}
		return &report, nil
	}

	report := &model.Report{
		FundName:         row.FundName,
		Address:          row.Address,
		ContactEmail:     row.ContactEmail,
		InvestmentThesis: row.InvestmentThesis,
	}
	if err := unmarshalArray(row.Funds, &report.Funds); err != nil {
		return nil, fmt.Errorf("decode funds: %w", err)
	}
	if err := unmarshalArray(row.TeamMembers, &report.TeamMembers); err != nil {
		return nil, fmt.Errorf("decode team members: %w", err)
	}
	if err := unmarshalArray(row.RecentDeals, &report.RecentDeals); err != nil {
		return nil, fmt.Errorf("decode deals: %w", err)
	}
	return report, nil
}

func unmarshalArray[T any](data []byte, out *[]T) error {
	if len(data) == 0 {
		*out = []T{}
		return nil
	}
	return json.Unmarshal(data, out)
}

func (r *fundRepo) Get(ctx context.Context, key string) (*biz.CachedReport, error) {
	var row fundRow
	err := r.db.QueryRowContext(ctx, selectFundSQL, key).Scan(
		&row.FundName, &row.Address, &row.ContactEmail, &row.InvestmentThesis,
		&row.Funds, &row.TeamMembers, &row.RecentDeals, &row.Report, &row.ResearchDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, biz.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("query fund_research: %w", err)
	}

	report, err := row.toReport()
	if err != nil {
		return nil, err
	}
	return &biz.CachedReport{Report: report, ResearchDate: row.ResearchDate.UTC()}, nil
}

func (r *fundRepo) Save(ctx context.Context, key string, report *model.Report, researchedAt time.Time) error {
	row, err := newFundRow(key, report, researchedAt)
	if err != nil {
		return err
	}
	// JSONB 参数以文本传入，[]byte 会被 lib/pq 编码为 bytea
	_, err = r.db.ExecContext(ctx, upsertFundSQL,
		row.FundName, row.Normalized, row.Address, row.ContactEmail, row.InvestmentThesis,
		string(row.Funds), string(row.TeamMembers), string(row.RecentDeals), string(row.Report),
		row.ResearchDate,
	)
	if err != nil {
		return fmt.Errorf("upsert fund_research: %w", err)
	}
	r.log.WithContext(ctx).Infof("saved research for %q to postgres cache", key)
	return nil
}

func (r *fundRepo) List(ctx context.Context) ([]*biz.CachedFund, error) {
	rows, err := r.db.QueryContext(ctx, listFundsSQL)
	if err != nil {
		return nil, fmt.Errorf("list fund_research: %w", err)
	}
	defer rows.Close()

	funds := make([]*biz.CachedFund, 0)
	for rows.Next() {
		var f biz.CachedFund
		if err := rows.Scan(&f.FundName, &f.ResearchDate); err != nil {
			return nil, fmt.Errorf("scan fund_research: %w", err)
		}
		f.ResearchDate = f.ResearchDate.UTC()
		funds = append(funds, &f)
	}
	return funds, rows.Err()
}
