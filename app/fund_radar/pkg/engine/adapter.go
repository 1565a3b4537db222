package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/logger"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/metrics"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/search"
)

const (
	minContentLen = 500
	maxContentLen = 5000
	fetchTimeout  = 30 * time.Second
)

var errEmptyResponse = errors.New("empty search response")

var fetchClient = &http.Client{}

// Fetcher 抓取网页正文
type Fetcher func(ctx context.Context, pageURL string) (string, error)

// 检索服务的展示名称
var displayNames = map[string]string{
	"perplexity": "Perplexity",
	"openai":     "OpenAI",
	"tavily":     "Tavily",
	"searxng":    "SearXNG",
	"gemini":     "Gemini",
}

// Adapter 把一次查询分发给所有检索服务，失败的服务以占位文本代替
type Adapter struct {
	providers  []search.Provider
	limiter    *rate.Limiter
	timeout    time.Duration
	maxResults int
	fetch      Fetcher
}

// AdapterOption 配置 Adapter
type AdapterOption func(*Adapter)

// WithLimiter 设置共享限流器
func WithLimiter(l *rate.Limiter) AdapterOption {
	return func(a *Adapter) { a.limiter = l }
}

// WithTimeout 设置单次检索的超时，包含正文抓取
func WithTimeout(d time.Duration) AdapterOption {
	return func(a *Adapter) { a.timeout = d }
}

// WithMaxResults 设置单次检索返回的结果数
func WithMaxResults(n int) AdapterOption {
	return func(a *Adapter) { a.maxResults = n }
}

// WithFetcher 设置正文抓取函数
func WithFetcher(fetch Fetcher) AdapterOption {
	return func(a *Adapter) { a.fetch = fetch }
}

// NewAdapter 创建检索适配器
func NewAdapter(providers []search.Provider, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		providers:  providers,
		timeout:    DefaultQueryTimeout,
		maxResults: DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Placeholder 检索失败时返回的占位文本
func Placeholder(provider, query string) string {
	name := displayNames[strings.ToLower(provider)]
	if name == "" {
		name = provider
	}
	if name == "" {
		return fmt.Sprintf("[Search unavailable for: %s]", query)
	}
	return fmt.Sprintf("[%s search unavailable for: %s]", name, query)
}

// Search 执行一次查询，从不返回错误
func (a *Adapter) Search(ctx context.Context, query string) string {
	switch len(a.providers) {
	case 0:
		return Placeholder("", query)
	case 1:
		return a.searchOne(ctx, a.providers[0], query)
	}

	outputs := make([]string, len(a.providers))
	var wg sync.WaitGroup
	for i, p := range a.providers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outputs[i] = a.searchOne(ctx, p, query)
		}()
	}
	wg.Wait()

	var sb strings.Builder
	for i, p := range a.providers {
		fmt.Fprintf(&sb, "\n=== %s ===\n%s\n", p.Label, outputs[i])
	}
	return sb.String()
}

func (a *Adapter) searchOne(ctx context.Context, p search.Provider, query string) string {
	start := time.Now()
	out, err := a.searchWithin(ctx, p, query)
	metrics.SearchQueryDuration.WithLabelValues(p.Name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues(p.Name, "error").Inc()
		logger.Log.Warnf("检索失败 [%s] %q: %v", p.Name, query, err)
		return Placeholder(p.Name, query)
	}
	metrics.SearchQueriesTotal.WithLabelValues(p.Name, "ok").Inc()
	return out
}

// searchWithin 限流等待不计入超时，检索与正文抓取共用同一个超时
func (a *Adapter) searchWithin(ctx context.Context, p search.Provider, query string) (string, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	resp, err := p.Searcher.Search(ctx, &search.Request{
		Query:      query,
		Topic:      "general",
		MaxResults: a.maxResults,
	})
	if err != nil {
		return "", err
	}
	if resp.Empty() {
		return "", errEmptyResponse
	}
	return a.render(ctx, resp), nil
}

// render 把检索响应整理为文本：先答案，后编号的来源
func (a *Adapter) render(ctx context.Context, resp *search.Response) string {
	var sb strings.Builder
	if answer := strings.TrimSpace(resp.Answer); answer != "" {
		sb.WriteString(answer)
	}
	if len(resp.Results) == 0 {
		return sb.String()
	}
	if sb.Len() > 0 {
		sb.WriteString("\n\n")
	}

	contents := make([]string, len(resp.Results))
	var g errgroup.Group
	for i, item := range resp.Results {
		g.Go(func() error {
			contents[i] = a.content(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	sb.WriteString("Sources:\n")
	for i, item := range resp.Results {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, item.Title, item.URL)
		if content := contents[i]; content != "" {
			fmt.Fprintf(&sb, "%s\n", content)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *Adapter) content(ctx context.Context, item search.Result) string {
	content := strings.TrimSpace(item.Content)
	if item.RawContent != "" && len(item.RawContent) > len(content) {
		content = strings.TrimSpace(item.RawContent)
	}
	if a.fetch != nil && item.URL != "" && len(content) < minContentLen && ctx.Err() == nil {
		fetched, err := a.fetch(ctx, item.URL)
		if err != nil {
			logger.Log.Debugf("抓取正文失败 [%s]: %v", item.URL, err)
		} else if fetched = strings.TrimSpace(fetched); len(fetched) > len(content) {
			content = fetched
		}
	}
	return truncate(content, maxContentLen)
}

// truncate 按字节截断，不切断多字节字符
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// fetchAndCleanContent 下载网页并用 readability 提取正文
func fetchAndCleanContent(ctx context.Context, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := fetchClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, u)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}
