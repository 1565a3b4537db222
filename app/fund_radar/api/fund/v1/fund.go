package v1

import "github.com/iWorld-y/fund_radar/app/fund_radar/pkg/model"

type ResearchFundRequest struct {
	FundName string `json:"fundName"`
}

// ResearchFundReply 报告字段平铺在顶层，下划线开头的字段说明数据来源
type ResearchFundReply struct {
	*model.Report
	FromCache    *bool  `json:"_fromCache,omitempty"`
	CacheDate    string `json:"_cacheDate,omitempty"`
	DemoMode     bool   `json:"_demoMode,omitempty"`
	Message      string `json:"_message,omitempty"`
	Fallback     bool   `json:"_fallback,omitempty"`
	ResearchDate string `json:"_researchDate,omitempty"`
}

type ErrorReply struct {
	Error              string   `json:"error"`
	AvailableDemoFunds []string `json:"availableDemoFunds,omitempty"`
	Fallback           bool     `json:"_fallback,omitempty"`
}

type CachedFundsRequest struct{}

type CachedFund struct {
	FundName     string `json:"fundName"`
	ResearchDate string `json:"researchDate"`
}

type CachedFundsReply struct {
	Message         string       `json:"message"`
	CachedFunds     []CachedFund `json:"cachedFunds"`
	CacheConfigured bool         `json:"cacheConfigured"`
	TotalCached     *int         `json:"totalCached,omitempty"`
}

type TestRequest struct{}

type TestConfig struct {
	LLMConfigured   bool            `json:"llmConfigured"`
	SearchProviders map[string]bool `json:"searchProviders"`
	CacheConfigured bool            `json:"cacheConfigured"`
	Environment     string          `json:"environment"`
	Timestamp       string          `json:"timestamp"`
}

type TestReply struct {
	Status  string     `json:"status"`
	Config  TestConfig `json:"config"`
	Message string     `json:"message"`
}

type EchoRequest struct {
	Message any `json:"message"`
}

type EchoReply struct {
	Echo     any    `json:"echo"`
	Received string `json:"received"`
	Status   string `json:"status"`
}
