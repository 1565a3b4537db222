package v1

import (
	context "context"

	http "github.com/go-kratos/kratos/v2/transport/http"
)

const OperationFundResearchFund = "/fund.v1.Fund/ResearchFund"
const OperationFundCachedFunds = "/fund.v1.Fund/CachedFunds"
const OperationFundTest = "/fund.v1.Fund/Test"
const OperationFundEcho = "/fund.v1.Fund/Echo"

type FundHTTPServer interface {
	// ResearchFund 研究一个基金
	ResearchFund(context.Context, *ResearchFundRequest) (*ResearchFundReply, error)
	// CachedFunds 列出缓存的基金
	CachedFunds(context.Context, *CachedFundsRequest) (*CachedFundsReply, error)
	// Test 健康检查与配置状态
	Test(context.Context, *TestRequest) (*TestReply, error)
	// Echo 回显请求内容
	Echo(context.Context, *EchoRequest) (*EchoReply, error)
}

func RegisterFundHTTPServer(s *http.Server, srv FundHTTPServer) {
	r := s.Route("/")
	r.POST("/research-fund", _Fund_ResearchFund0_HTTP_Handler(srv))
	r.GET("/cached-funds", _Fund_CachedFunds0_HTTP_Handler(srv))
	r.GET("/test", _Fund_Test0_HTTP_Handler(srv))
	r.POST("/test", _Fund_Echo0_HTTP_Handler(srv))
}

func _Fund_ResearchFund0_HTTP_Handler(srv FundHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ResearchFundRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFundResearchFund)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ResearchFund(ctx, req.(*ResearchFundRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ResearchFundReply)
		return ctx.Result(200, reply)
	}
}

func _Fund_CachedFunds0_HTTP_Handler(srv FundHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in CachedFundsRequest
		http.SetOperation(ctx, OperationFundCachedFunds)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.CachedFunds(ctx, req.(*CachedFundsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*CachedFundsReply)
		return ctx.Result(200, reply)
	}
}

func _Fund_Test0_HTTP_Handler(srv FundHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in TestRequest
		http.SetOperation(ctx, OperationFundTest)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Test(ctx, req.(*TestRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*TestReply)
		return ctx.Result(200, reply)
	}
}

func _Fund_Echo0_HTTP_Handler(srv FundHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in EchoRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFundEcho)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Echo(ctx, req.(*EchoRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*EchoReply)
		return ctx.Result(200, reply)
	}
}
