package service

import (
	"context"
	"errors"
	nethttp "net/http"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	pb "github.com/iWorld-y/fund_radar/app/fund_radar/api/fund/v1"
	"github.com/iWorld-y/fund_radar/app/fund_radar/internal/biz"
)

// TimeLayout 响应中的时间格式（UTC，毫秒精度）
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	msgFundNameRequired = "Fund name is required"
	msgUnexpected       = "An unexpected error occurred. Please try again."
	msgCachedFunds      = "Failed to fetch cached funds"
	msgInvalidJSON      = "Invalid JSON in request body"
)

// ErrCachedFunds 读取缓存列表失败
var ErrCachedFunds = errors.New("failed to fetch cached funds")

type FundService struct {
	uc     *biz.ResearchUseCase
	status biz.ProviderStatus
	now    func() time.Time
	log    *log.Helper
}

func NewFundService(uc *biz.ResearchUseCase, status biz.ProviderStatus, logger log.Logger) *FundService {
	return &FundService{
		uc:     uc,
		status: status,
		now:    time.Now,
		log:    log.NewHelper(logger),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func (s *FundService) ResearchFund(ctx context.Context, req *pb.ResearchFundRequest) (*pb.ResearchFundReply, error) {
	r, err := s.uc.Research(ctx, req.FundName)
	if err != nil {
		return nil, err
	}

	reply := &pb.ResearchFundReply{Report: r.Report}
	switch r.Source {
	case biz.SourceCache:
		fromCache := true
		reply.FromCache = &fromCache
		reply.CacheDate = formatTime(r.CacheDate)
	case biz.SourceResearch:
		fromCache := false
		reply.FromCache = &fromCache
		reply.ResearchDate = formatTime(r.ResearchDate)
	case biz.SourceDemo:
		reply.DemoMode = true
		reply.Message = r.Message
	case biz.SourceFallback:
		reply.DemoMode = true
		reply.Message = r.Message
		reply.Fallback = true
	}
	return reply, nil
}

func (s *FundService) CachedFunds(ctx context.Context, _ *pb.CachedFundsRequest) (*pb.CachedFundsReply, error) {
	funds, enabled, err := s.uc.CachedFunds(ctx)
	if err != nil {
		s.log.WithContext(ctx).Errorf("Error fetching cached funds: %v", err)
		return nil, ErrCachedFunds
	}
	if !enabled {
		return &pb.CachedFundsReply{
			Message:     "Database not configured",
			CachedFunds: []pb.CachedFund{},
		}, nil
	}

	list := make([]pb.CachedFund, 0, len(funds))
	for _, f := range funds {
		list = append(list, pb.CachedFund{FundName: f.FundName, ResearchDate: formatTime(f.ResearchDate)})
	}
	total := len(list)
	return &pb.CachedFundsReply{
		Message:         "Database cache status",
		CachedFunds:     list,
		CacheConfigured: true,
		TotalCached:     &total,
	}, nil
}

func (s *FundService) Test(_ context.Context, _ *pb.TestRequest) (*pb.TestReply, error) {
	message := "Please configure your API keys in .env.local file"
	if s.status.Ready() {
		message = "All API keys are configured. Ready to research funds!"
	}
	providers := make(map[string]bool, len(s.status.SearchProviders))
	for name, ok := range s.status.SearchProviders {
		providers[name] = ok
	}
	return &pb.TestReply{
		Status: "API is working",
		Config: pb.TestConfig{
			LLMConfigured:   s.status.LLMConfigured,
			SearchProviders: providers,
			CacheConfigured: s.uc.CacheEnabled(),
			Environment:     s.status.Environment,
			Timestamp:       formatTime(s.now()),
		},
		Message: message,
	}, nil
}

func (s *FundService) Echo(_ context.Context, req *pb.EchoRequest) (*pb.EchoReply, error) {
	return &pb.EchoReply{
		Echo:     req.Message,
		Received: formatTime(s.now()),
		Status:   "POST request working",
	}, nil
}

// ErrorReply 把错误映射为 HTTP 状态码与响应体
func ErrorReply(err error) (int, *pb.ErrorReply) {
	var demoErr *biz.DemoUnavailableError
	switch {
	case errors.Is(err, biz.ErrFundNameRequired):
		return nethttp.StatusBadRequest, &pb.ErrorReply{Error: msgFundNameRequired}
	case errors.As(err, &demoErr):
		status := nethttp.StatusNotFound
		if demoErr.Fallback {
			status = nethttp.StatusServiceUnavailable
		}
		return status, &pb.ErrorReply{
			Error:              demoErr.Error(),
			AvailableDemoFunds: biz.AvailableDemoFunds,
			Fallback:           demoErr.Fallback,
		}
	case errors.Is(err, ErrCachedFunds):
		return nethttp.StatusInternalServerError, &pb.ErrorReply{Error: msgCachedFunds}
	}

	if se := kerrors.FromError(err); se != nil && se.Code == nethttp.StatusBadRequest {
		return nethttp.StatusBadRequest, &pb.ErrorReply{Error: msgInvalidJSON}
	}
	return nethttp.StatusInternalServerError, &pb.ErrorReply{Error: msgUnexpected}
}
