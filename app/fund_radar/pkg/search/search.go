package search

import "context"

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query             string
	Topic             string // "news" or "general"
	MaxResults        int
	IncludeRawContent bool
	StartDate         string // Format: YYYY-MM-DD
	EndDate           string // Format: YYYY-MM-DD
}

// Response 通用搜索响应
type Response struct {
	// Answer 问答型服务（Perplexity、Gemini 等）直接给出的答案文本
	Answer  string
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string
	RawContent    string
	Score         float64
	PublishedDate string
}

// Empty 判断响应是否没有任何可用内容
func (r *Response) Empty() bool {
	return r == nil || (r.Answer == "" && len(r.Results) == 0)
}

// Provider 带名称与展示标签的检索服务
type Provider struct {
	Name     string
	Label    string
	Searcher Searcher
}
