package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/search"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSearcher 按查询内容返回结果，包含 "fail" 的查询返回错误
type fakeSearcher struct {
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

func (f *fakeSearcher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if strings.Contains(req.Query, "fail") {
		return nil, errors.New("upstream 500")
	}
	return &search.Response{Answer: "answer for " + req.Query}, nil
}

type searcherFunc func(ctx context.Context, req *search.Request) (*search.Response, error)

func (f searcherFunc) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	return f(ctx, req)
}

// fakeChatModel 按调用顺序返回预设回复
type fakeChatModel struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   [][]*schema.Message
	options []*model.Options
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.calls)
	f.calls = append(f.calls, input)
	f.options = append(f.options, model.GetCommonOptions(&model.Options{}, opts...))
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	var reply string
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return &schema.Message{Role: schema.Assistant, Content: reply}, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func newTestEngine(t *testing.T, cm model.BaseChatModel, s search.Searcher, opts Options) *Engine {
	t.Helper()
	e, err := NewEngine(cm, []search.Provider{{Name: "perplexity", Label: "PERPLEXITY RESEARCH", Searcher: s}}, opts)
	require.NoError(t, err)
	return e
}

const validReportJSON = `{
  "fundName": "Ares Management",
  "address": "1800 Avenue of the Stars, Los Angeles",
  "funds": [{"name": "Ares Capital Europe VI", "size": "$11bn"}],
  "teamMembers": [{"name": "Michael Arougheti", "position": "CEO"}],
  "recentDeals": [{"company": "Acme Software", "dealType": "Unitranche", "use_of_proceeds": "LBO financing"}]
}`

func TestNewEngine(t *testing.T) {
	providers := []search.Provider{{Name: "tavily", Searcher: &fakeSearcher{}}}

	_, err := NewEngine(nil, providers, Options{})
	assert.Error(t, err)

	_, err = NewEngine(&fakeChatModel{}, nil, Options{})
	assert.ErrorIs(t, err, ErrNoProviders)

	e, err := NewEngine(&fakeChatModel{}, providers, Options{RPM: 600})
	require.NoError(t, err)
	assert.Len(t, e.Stages(), 9)
	assert.Equal(t, DefaultMaxConcurrency, e.opts.MaxConcurrency)
	assert.NotNil(t, e.adapter.limiter)
}

func TestNewEngine_Temperature(t *testing.T) {
	e := newTestEngine(t, &fakeChatModel{}, &fakeSearcher{}, Options{})
	assert.InDelta(t, DefaultTemperature, *e.opts.Temperature, 1e-6)

	zero := float32(0)
	cm := &fakeChatModel{replies: []string{validReportJSON}}
	e = newTestEngine(t, cm, &fakeSearcher{}, Options{Temperature: &zero})
	_, err := e.Structure(context.Background(), "analysis", "Ares")
	require.NoError(t, err)
	require.NotNil(t, cm.options[0].Temperature)
	assert.Zero(t, *cm.options[0].Temperature)
}

func TestRunStage_PreservesOrder(t *testing.T) {
	fs := &fakeSearcher{}
	e := newTestEngine(t, &fakeChatModel{}, fs, Options{MaxConcurrency: 3})

	// 前面的查询耗时更长，完成顺序与模板顺序相反
	delays := map[string]time.Duration{"Ares q0": 40 * time.Millisecond, "Ares q1": 20 * time.Millisecond}
	e.adapter.providers[0].Searcher = searcherFunc(func(ctx context.Context, req *search.Request) (*search.Response, error) {
		time.Sleep(delays[req.Query])
		return fs.Search(ctx, req)
	})

	templates := []string{"q0", "q1", "fail q2", "q3", "{fund} q4 fail", "q5"}
	got := e.RunStage(context.Background(), templates, "Ares")

	require.Len(t, got, len(templates))
	assert.Equal(t, "answer for Ares q0", got[0])
	assert.Equal(t, "answer for Ares q1", got[1])
	assert.Equal(t, "[Perplexity search unavailable for: Ares fail q2]", got[2])
	assert.Equal(t, "answer for Ares q3", got[3])
	assert.Equal(t, "[Perplexity search unavailable for: Ares q4 fail]", got[4])
	assert.Equal(t, "answer for Ares q5", got[5])
}

func TestRunStage_BoundedConcurrency(t *testing.T) {
	fs := &fakeSearcher{delay: 20 * time.Millisecond}
	e := newTestEngine(t, &fakeChatModel{}, fs, Options{MaxConcurrency: 2})

	got := e.RunStage(context.Background(), []string{"a", "b", "c", "d", "e", "f"}, "KKR")
	assert.Len(t, got, 6)
	assert.EqualValues(t, 6, fs.calls.Load())
	assert.LessOrEqual(t, fs.peak.Load(), int32(2))
}

func TestRunStage_AllFail(t *testing.T) {
	e := newTestEngine(t, &fakeChatModel{}, &fakeSearcher{}, Options{})
	got := e.RunStage(context.Background(), []string{"fail a", "fail b"}, "X")
	assert.Equal(t, []string{
		"[Perplexity search unavailable for: X fail a]",
		"[Perplexity search unavailable for: X fail b]",
	}, got)
}

func TestAggregate(t *testing.T) {
	stages := []Stage{
		{Key: "one", Title: "Company Foundation", Queries: []string{"hq", "fail aum"}},
		{Key: "two", Title: "TEAM", Queries: []string{"partners"}},
	}
	e := newTestEngine(t, &fakeChatModel{}, &fakeSearcher{}, Options{Stages: stages})

	got := e.Aggregate(context.Background(), "Apollo")
	want := strings.Join([]string{
		"=== COMPANY FOUNDATION ===",
		"answer for Apollo hq",
		"[Perplexity search unavailable for: Apollo fail aum]",
		"\n=== TEAM ===",
		"answer for Apollo partners",
	}, Separator)
	assert.Equal(t, want, got)
}

func TestAggregate_CanceledContext(t *testing.T) {
	fs := &fakeSearcher{}
	e := newTestEngine(t, &fakeChatModel{}, fs, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, e.Aggregate(ctx, "KKR"))
	assert.Zero(t, fs.calls.Load())
}

func TestEnhance(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		cm := &fakeChatModel{replies: []string{"dense analysis"}}
		e := newTestEngine(t, cm, &fakeSearcher{}, Options{})

		got := e.Enhance(context.Background(), "raw", "KKR")
		assert.False(t, got.Fallback)
		assert.NoError(t, got.Reason)
		assert.Equal(t, "dense analysis", got.Text)

		require.Len(t, cm.calls, 1)
		assert.Contains(t, cm.calls[0][1].Content, `"KKR"`)
		assert.Contains(t, cm.calls[0][1].Content, "raw")
		assert.Equal(t, DefaultEnhanceMaxTokens, *cm.options[0].MaxTokens)
	})

	t.Run("model error", func(t *testing.T) {
		boom := errors.New("rate limited")
		e := newTestEngine(t, &fakeChatModel{errs: []error{boom}}, &fakeSearcher{}, Options{})

		got := e.Enhance(context.Background(), "raw", "KKR")
		assert.True(t, got.Fallback)
		assert.ErrorIs(t, got.Reason, boom)
		assert.Equal(t, "raw", got.Text)
	})

	t.Run("empty content", func(t *testing.T) {
		e := newTestEngine(t, &fakeChatModel{replies: []string{"  \n"}}, &fakeSearcher{}, Options{})

		got := e.Enhance(context.Background(), "raw", "KKR")
		assert.True(t, got.Fallback)
		assert.ErrorIs(t, got.Reason, ErrEmptyCompletion)
		assert.Equal(t, "raw", got.Text)
	})
}

func TestStructure(t *testing.T) {
	cm := &fakeChatModel{replies: []string{"```json\n" + validReportJSON + "\n```"}}
	e := newTestEngine(t, cm, &fakeSearcher{}, Options{})

	report, err := e.Structure(context.Background(), "analysis", "Ares")
	require.NoError(t, err)
	assert.Equal(t, "Ares Management", report.FundName)
	assert.Equal(t, DefaultStructureMaxTokens, *cm.options[0].MaxTokens)
	assert.InDelta(t, 0.1, *cm.options[0].Temperature, 1e-6)

	boom := errors.New("timeout")
	e = newTestEngine(t, &fakeChatModel{errs: []error{boom}}, &fakeSearcher{}, Options{})
	_, err = e.Structure(context.Background(), "analysis", "Ares")
	var se *StructuringError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, boom)
}

func TestResearch(t *testing.T) {
	stages := []Stage{{Title: "Team", Queries: []string{"{fund} partners"}}}
	cm := &fakeChatModel{replies: []string{"enhanced", validReportJSON}}
	e := newTestEngine(t, cm, &fakeSearcher{}, Options{Stages: stages})

	report, err := e.Research(context.Background(), "Ares")
	require.NoError(t, err)
	assert.Equal(t, "Ares Management", report.FundName)

	require.Len(t, cm.calls, 2)
	assert.Contains(t, cm.calls[0][1].Content, "=== TEAM ===")
	assert.Contains(t, cm.calls[0][1].Content, "answer for Ares partners")
	assert.Contains(t, cm.calls[1][1].Content, "enhanced")
}

func TestResearch_EnhanceFallbackStillStructures(t *testing.T) {
	stages := []Stage{{Title: "Team", Queries: []string{"partners"}}}
	cm := &fakeChatModel{errs: []error{errors.New("overloaded")}, replies: []string{"", validReportJSON}}
	e := newTestEngine(t, cm, &fakeSearcher{}, Options{Stages: stages})

	report, err := e.Research(context.Background(), "Ares")
	require.NoError(t, err)
	assert.NotNil(t, report)
	assert.Contains(t, cm.calls[1][1].Content, "answer for Ares partners")
}

func TestResearch_StructuringFailure(t *testing.T) {
	stages := []Stage{{Title: "Team", Queries: []string{"partners"}}}
	cm := &fakeChatModel{replies: []string{"enhanced", "I could not find anything."}}
	e := newTestEngine(t, cm, &fakeSearcher{}, Options{Stages: stages})

	_, err := e.Research(context.Background(), "Ares")
	var se *StructuringError
	assert.ErrorAs(t, err, &se)
}
