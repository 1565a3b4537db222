package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/fund_radar/app/fund_radar/internal/biz"
	"github.com/iWorld-y/fund_radar/app/fund_radar/internal/data"
	"github.com/iWorld-y/fund_radar/app/fund_radar/internal/service"
)

// ProviderSet 是基金研究服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewResearcher,
	NewProviderStatus,

	// Data providers
	data.NewData,
	data.NewFundCache,

	// UseCase providers
	biz.NewCacheGateway,
	biz.NewResearchUseCase,

	// Service providers
	service.NewFundService,
)
