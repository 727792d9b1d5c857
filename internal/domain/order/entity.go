package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/northwind/internal/domain/customer"
)

// 下单参数范围(与数据库中员工、承运商的主键一致)
const (
	MinEmployeeID = 1
	MaxEmployeeID = 9
	MinShipVia    = 1
	MaxShipVia    = 3
	MaxQuantity   = 100
	MaxDiscount   = 0.5

	// DefaultShipField 收货信息未填写时的默认值
	DefaultShipField = "N/A"
)

// LineItem 订单明细
// 只通过下单存储过程写入,其余场景只读
type LineItem struct {
	OrderID     int64
	ProductID   int
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Discount    decimal.Decimal // 折扣比例0~0.5
}

// Total 明细金额
func (li *LineItem) Total() decimal.Decimal {
	return LineTotal(li.UnitPrice, li.Quantity, li.Discount)
}

// LineTotal 明细金额 = 单价 × 数量 × (1 − 折扣),保留两位小数
// 报表中的聚合金额使用相同的公式在数据库中计算
func LineTotal(unitPrice decimal.Decimal, quantity int, discount decimal.Decimal) decimal.Decimal {
	return unitPrice.
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(decimal.NewFromInt(1).Sub(discount)).
		Round(2)
}

// DeleteSummary 删除订单前的确认信息
type DeleteSummary struct {
	OrderID     int64
	OrderDate   *time.Time
	CompanyName string
}

// NewOrder 下单命令(订单头 + 第一条明细)
// 订单头和明细由存储过程在同一事务中写入
type NewOrder struct {
	CustomerID   string
	EmployeeID   int
	RequiredDate time.Time
	ShipVia      int
	Freight      decimal.Decimal
	ShipName     string
	ShipAddress  string
	ShipCity     string
	ShipCountry  string
	ProductID    int
	Quantity     int
	Discount     float64
}

// Normalize 规范化客户编号,收货信息为空时使用默认值
func (o *NewOrder) Normalize() {
	o.CustomerID = customer.NormalizeID(o.CustomerID)
	o.ShipName = defaultShipField(o.ShipName)
	o.ShipAddress = defaultShipField(o.ShipAddress)
	o.ShipCity = defaultShipField(o.ShipCity)
	o.ShipCountry = defaultShipField(o.ShipCountry)
}

func defaultShipField(v string) string {
	if strings.TrimSpace(v) == "" {
		return DefaultShipField
	}
	return strings.TrimSpace(v)
}

// Option 下拉选项
type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// shippers Northwind承运商(ShipVia的取值)
var shippers = []Option{
	{ID: 1, Name: "Speedy Express"},
	{ID: 2, Name: "United Package"},
	{ID: 3, Name: "Federal Shipping"},
}

// Shippers 返回可选承运商
func Shippers() []Option {
	out := make([]Option, len(shippers))
	copy(out, shippers)
	return out
}

// Employees 返回可选销售员(编号1~9)
func Employees() []Option {
	out := make([]Option, 0, MaxEmployeeID-MinEmployeeID+1)
	for id := MinEmployeeID; id <= MaxEmployeeID; id++ {
		out = append(out, Option{ID: id, Name: fmt.Sprintf("销售员 %d", id)})
	}
	return out
}
