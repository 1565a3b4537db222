package model

import (
	"errors"
	"fmt"
	"strings"
)

// NotAvailable 报告中缺失信息的显式标记
const NotAvailable = "Not publicly available"

// Report 基金研究报告
type Report struct {
	FundName            string               `json:"fundName"`
	Address             string               `json:"address,omitempty"`
	ContactEmail        string               `json:"contactEmail,omitempty"`
	Website             string               `json:"website,omitempty"`
	Phone               string               `json:"phone,omitempty"`
	InvestmentThesis    string               `json:"investmentThesis,omitempty"`
	AUM                 string               `json:"aum,omitempty"`
	FoundedYear         string               `json:"foundedYear,omitempty"`
	Headquarters        string               `json:"headquarters,omitempty"`
	OfficeLocations     []string             `json:"officeLocations,omitempty"`
	Funds               []Fund               `json:"funds"`
	TeamMembers         []TeamMember         `json:"teamMembers"`
	RecentDeals         []Deal               `json:"recentDeals"`
	CompetitiveAnalysis *CompetitiveAnalysis `json:"competitiveAnalysis,omitempty"`
	PerformanceMetrics  *PerformanceMetrics  `json:"performanceMetrics,omitempty"`
}

// Fund 旗下基金
type Fund struct {
	Name        string `json:"name"`
	Strategy    string `json:"strategy,omitempty"`
	RaisedDate  string `json:"raisedDate,omitempty"`
	Size        string `json:"size,omitempty"`
	TargetSize  string `json:"targetSize,omitempty"`
	Status      string `json:"status,omitempty"`
	VintageYear string `json:"vintageYear,omitempty"`
	ClosingDate string `json:"closingDate,omitempty"`
	FundNumber  string `json:"fundNumber,omitempty"`
}

// TeamMember 团队成员
type TeamMember struct {
	Name              string   `json:"name"`
	Position          string   `json:"position,omitempty"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	LinkedIn          string   `json:"linkedin,omitempty"`
	Experience        string   `json:"experience,omitempty"`
	Education         string   `json:"education,omitempty"`
	PreviousCompanies []string `json:"previousCompanies,omitempty"`
	YearsAtFirm       string   `json:"yearsAtFirm,omitempty"`
}

// Deal 交易记录
type Deal struct {
	Company       string   `json:"company"`
	Sector        string   `json:"sector,omitempty"`
	Date          string   `json:"date,omitempty"`
	DealType      string   `json:"dealType,omitempty"`
	Amount        string   `json:"amount,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	Description   string   `json:"description,omitempty"`
	LeadArrangers []string `json:"leadArrangers,omitempty"`
	CoInvestors   []string `json:"coInvestors,omitempty"`
	UseOfProceeds string   `json:"use_of_proceeds,omitempty"`
}

// CompetitiveAnalysis 竞争格局
type CompetitiveAnalysis struct {
	MainCompetitors []string `json:"mainCompetitors,omitempty"`
	MarketPosition  string   `json:"marketPosition,omitempty"`
	Differentiators []string `json:"differentiators,omitempty"`
}

// PerformanceMetrics 业绩指标
type PerformanceMetrics struct {
	TotalDeployed       string   `json:"totalDeployed,omitempty"`
	NumberOfInvestments string   `json:"numberOfInvestments,omitempty"`
	AverageDealSize     string   `json:"averageDealSize,omitempty"`
	GeographicFocus     []string `json:"geographicFocus,omitempty"`
	SectorFocus         []string `json:"sectorFocus,omitempty"`
}

// NormalizeName 返回缓存使用的基金名称键
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ErrInvalidReport 报告结构不满足最低要求
var ErrInvalidReport = errors.New("invalid report")

// Validate 校验报告的必填字段
func (r *Report) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil report", ErrInvalidReport)
	}
	if strings.TrimSpace(r.FundName) == "" {
		return fmt.Errorf("%w: fundName is empty", ErrInvalidReport)
	}
	for i, f := range r.Funds {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("%w: funds[%d].name is empty", ErrInvalidReport, i)
		}
	}
	for i, m := range r.TeamMembers {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%w: teamMembers[%d].name is empty", ErrInvalidReport, i)
		}
	}
	for i, d := range r.RecentDeals {
		if strings.TrimSpace(d.Company) == "" {
			return fmt.Errorf("%w: recentDeals[%d].company is empty", ErrInvalidReport, i)
		}
	}
	return nil
}
