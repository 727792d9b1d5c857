//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appcustomer "github.com/xiebiao/northwind/internal/application/customer"
	apporder "github.com/xiebiao/northwind/internal/application/order"
	appreport "github.com/xiebiao/northwind/internal/application/report"
	"github.com/xiebiao/northwind/internal/infrastructure/config"
	"github.com/xiebiao/northwind/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/northwind/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/northwind/internal/interface/http/handler"
	"github.com/xiebiao/northwind/internal/interface/http/router"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 数据库未配置时NewDBProvider不报错,由每个数据操作返回配置错误
var infrastructureSet = wire.NewSet(
	mysql.NewDBProvider,
	mysql.NewTxManager,
	redis.NewClient,
	redis.NewIdempotencyStore,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewCustomerRepository,
	mysql.NewOrderRepository,
	mysql.NewOrderProcedure,
	provideReportRepository,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appcustomer.NewListCustomersUseCase,
	appcustomer.NewGetCustomerUseCase,
	appcustomer.NewCreateCustomerUseCase,
	appcustomer.NewUpdateCustomerUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewGetDeleteSummaryUseCase,
	apporder.NewDeleteOrderUseCase,
	apporder.NewOrderOptionsUseCase,
	appreport.NewOrderLinesUseCase,
	appreport.NewCustomerOrdersUseCase,
	appreport.NewSalesReportUseCase,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewCustomerHandler,
	handler.NewOrderHandler,
	handler.NewReportHandler,
	handler.NewLookupHandler,
	router.New,
)

// InitializeApp 初始化整个应用
// 返回的cleanup按创建的逆序关闭Redis和数据库连接
func InitializeApp(cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
