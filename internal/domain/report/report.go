// Package report 销售报表
//
// 报表都是只读的聚合查询,行结构只在一次请求内有效,不持久化。
// 金额统一按 单价 × 数量 × (1 − 折扣) 逐行累加,与order.LineTotal一致。
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/northwind/internal/domain/order"
	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

// ErrNoOrderLines 订单没有明细(订单不存在或明细已被删除)
var ErrNoOrderLines = apperrors.New(apperrors.ErrCodeOrderLinesEmpty, "未找到该订单的明细")

// HistoryRow 客户历史订单(存储过程返回,各列都可能为NULL)
type HistoryRow struct {
	OrderID   int64
	OrderDate *time.Time
	Total     decimal.Decimal
}

// CustomerOrderRow 客户的订单
type CustomerOrderRow struct {
	OrderID      int64
	OrderDate    time.Time
	RequiredDate time.Time
	ShippedDate  *time.Time // 未发货为nil
	Freight      decimal.Decimal
	ShipCountry  string
}

// AverageOrderRow 客户年度平均订单金额
type AverageOrderRow struct {
	CustomerID   string
	CompanyName  string
	Year         int
	AverageOrder decimal.Decimal // 年内每单金额的平均值
	YearTotal    decimal.Decimal // 年内所有订单金额之和
}

// CustomerYearSalesRow 客户年度销售额
type CustomerYearSalesRow struct {
	CustomerID  string
	CompanyName string
	Year        int
	Total       decimal.Decimal
}

// CustomerMonthSalesRow 客户月度销售额
type CustomerMonthSalesRow struct {
	CustomerID  string
	CompanyName string
	Year        int
	Month       int
	Total       decimal.Decimal
}

// EmployeeYearSalesRow 销售员年度销售额
type EmployeeYearSalesRow struct {
	EmployeeName string // 名 + 空格 + 姓
	Year         int
	Total        decimal.Decimal
}

// TotalSalesRow 客户累计销售额
type TotalSalesRow struct {
	CustomerID  string
	CompanyName string
	Region      string // 客户所在国家
	Total       decimal.Decimal
}

// TotalSalesFilter 累计销售额过滤条件,空字符串表示不过滤
type TotalSalesFilter struct {
	CustomerID string
	Region     string // 按客户国家过滤
}

// CustomerRow 按国家查询的客户
type CustomerRow struct {
	CustomerID  string
	CompanyName string
	ContactName string
	Country     string
}

// Repository 报表仓储接口
type Repository interface {
	// OrderLines 订单明细,按产品编号升序
	OrderLines(ctx context.Context, orderID int64) ([]*order.LineItem, error)

	// CustomerHistory 客户历史订单(调用存储过程,保持存储过程返回的顺序)
	CustomerHistory(ctx context.Context, customerID string) ([]*HistoryRow, error)

	// OrdersByCustomer 客户的订单,按下单日期降序
	OrdersByCustomer(ctx context.Context, customerID string) ([]*CustomerOrderRow, error)

	// AverageOrderValue 客户年度平均订单金额,按年份降序、年度总额降序
	AverageOrderValue(ctx context.Context) ([]*AverageOrderRow, error)

	// SalesByCustomerYear 客户年度销售额,按年份降序、金额降序
	SalesByCustomerYear(ctx context.Context) ([]*CustomerYearSalesRow, error)

	// SalesByCustomerMonth 客户月度销售额,按年份降序、月份降序、金额降序
	SalesByCustomerMonth(ctx context.Context) ([]*CustomerMonthSalesRow, error)

	// SalesByEmployeeYear 销售员年度销售额,按姓名升序、年份升序
	SalesByEmployeeYear(ctx context.Context) ([]*EmployeeYearSalesRow, error)

	// TotalSales 客户累计销售额,按金额降序
	// 执行时间超过上限返回超时错误
	TotalSales(ctx context.Context, filter TotalSalesFilter) ([]*TotalSalesRow, error)

	// CustomersByCountry 某个国家的客户,按客户编号升序
	CustomersByCountry(ctx context.Context, country string) ([]*CustomerRow, error)
}
