package server

import (
	"embed"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	pb "github.com/iWorld-y/fund_radar/app/fund_radar/api/fund/v1"
	"github.com/iWorld-y/fund_radar/app/fund_radar/internal/conf"
	"github.com/iWorld-y/fund_radar/app/fund_radar/internal/service"
)

// 一次完整研究需要数分钟
const defaultTimeout = 10 * time.Minute

//go:embed assets/*
var assets embed.FS

func NewHTTPServer(c *conf.Server, s *service.FundService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.ErrorEncoder(errorEncoder),
		http.Timeout(defaultTimeout),
		http.Logger(logger),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			} else {
				log.NewHelper(logger).Warnf("invalid http timeout %q, using %s", c.Http.Timeout, defaultTimeout)
			}
		}
	}

	srv := http.NewServer(opts...)
	pb.RegisterFundHTTPServer(srv, s)

	srv.Handle("/metrics", promhttp.Handler())

	// Serve the research form at "/"
	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, err := assets.ReadFile("assets/index.html")
		if err != nil {
			nethttp.Error(w, err.Error(), nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(content)
	})

	return srv
}

// errorEncoder 错误响应统一为 {"error": "..."} 结构
func errorEncoder(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	status, body := service.ErrorReply(err)
	codec, _ := http.CodecForRequest(r, "Accept")
	data, merr := codec.Marshal(body)
	if merr != nil {
		w.WriteHeader(nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/"+codec.Name())
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
