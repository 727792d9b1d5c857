package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// 报表金额统一保留两位小数,以字符串返回避免前端浮点误差

// LineDTO 订单明细行
type LineDTO struct {
	ProductID    int    `json:"product_id"`
	ProductName  string `json:"product_name"`
	UnitPrice    string `json:"unit_price"`
	Quantity     int    `json:"quantity"`
	Discount     string `json:"discount"`
	Total        string `json:"total"`
	RunningTotal string `json:"running_total"` // 截至本行的累计金额
}

// OrderLinesResponse 订单明细及合计
type OrderLinesResponse struct {
	OrderID    int64      `json:"order_id"`
	Lines      []*LineDTO `json:"lines"`
	GrandTotal string     `json:"grand_total"`
}

// HistoryDTO 客户历史订单
type HistoryDTO struct {
	OrderID   int64  `json:"order_id"`
	OrderDate string `json:"order_date"`
	Total     string `json:"total"`
}

// CustomerSummary 客户概要
type CustomerSummary struct {
	CustomerID  string `json:"customer_id"`
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// CustomerOrderDTO 客户的订单
type CustomerOrderDTO struct {
	OrderID      int64  `json:"order_id"`
	OrderDate    string `json:"order_date"`
	RequiredDate string `json:"required_date"`
	ShippedDate  string `json:"shipped_date"` // 未发货为空字符串
	Freight      string `json:"freight"`
	ShipCountry  string `json:"ship_country"`
}

// CustomerOrdersResponse 客户概要及订单列表
type CustomerOrdersResponse struct {
	Customer *CustomerSummary    `json:"customer"`
	Orders   []*CustomerOrderDTO `json:"orders"`
}

// AverageOrderDTO 客户年度平均订单金额
type AverageOrderDTO struct {
	CustomerID   string `json:"customer_id"`
	CompanyName  string `json:"company_name"`
	Year         int    `json:"year"`
	AverageOrder string `json:"average_order"`
	YearTotal    string `json:"year_total"`
}

// CustomerSalesDTO 客户年度/月度销售额(年度报表Month为0,不输出)
type CustomerSalesDTO struct {
	CustomerID  string `json:"customer_id"`
	CompanyName string `json:"company_name"`
	Year        int    `json:"year"`
	Month       int    `json:"month,omitempty"`
	Total       string `json:"total"`
}

// EmployeeSalesDTO 销售员年度销售额
type EmployeeSalesDTO struct {
	EmployeeName string `json:"employee_name"`
	Year         int    `json:"year"`
	Total        string `json:"total"`
}

// TotalSalesDTO 客户累计销售额
type TotalSalesDTO struct {
	CustomerID  string `json:"customer_id"`
	CompanyName string `json:"company_name"`
	Region      string `json:"region"`
	Total       string `json:"total"`
}

// TotalSalesResponse 累计销售额及所有行的合计
type TotalSalesResponse struct {
	Rows       []*TotalSalesDTO `json:"rows"`
	GrandTotal string           `json:"grand_total"`
}

// CountryCustomerDTO 按国家查询的客户
type CountryCustomerDTO struct {
	CustomerID  string `json:"customer_id"`
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Country     string `json:"country"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func date(t time.Time) string {
	return t.Format(time.DateOnly)
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return date(*t)
}
