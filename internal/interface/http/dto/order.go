package dto

import (
	"github.com/shopspring/decimal"

	apporder "github.com/xiebiao/northwind/internal/application/order"
)

// IdempotencyKeyHeader 下单幂等键的HTTP头
const IdempotencyKeyHeader = "Idempotency-Key"

// CreateOrderRequest 下单请求(订单头 + 第一条明细)
// 收货信息为空时使用"N/A"
type CreateOrderRequest struct {
	CustomerID   string          `json:"customer_id" example:"VINET"`
	EmployeeID   int             `json:"employee_id" example:"5"`
	RequiredDate string          `json:"required_date" example:"2026-11-01"`
	ShipVia      int             `json:"ship_via" example:"3"`
	Freight      decimal.Decimal `json:"freight" swaggertype:"number" example:"32.38"`
	ShipName     string          `json:"ship_name" example:"Vins et alcools Chevalier"`
	ShipAddress  string          `json:"ship_address" example:"59 rue de l'Abbaye"`
	ShipCity     string          `json:"ship_city" example:"Reims"`
	ShipCountry  string          `json:"ship_country" example:"France"`
	ProductID    int             `json:"product_id" example:"11"`
	Quantity     int             `json:"quantity" example:"12"`
	Discount     float64         `json:"discount" example:"0.1"`
}

// ToInput 转换为应用层输入
func (r *CreateOrderRequest) ToInput() apporder.CreateOrderInput {
	return apporder.CreateOrderInput{
		CustomerID:   r.CustomerID,
		EmployeeID:   r.EmployeeID,
		RequiredDate: r.RequiredDate,
		ShipVia:      r.ShipVia,
		Freight:      r.Freight,
		ShipName:     r.ShipName,
		ShipAddress:  r.ShipAddress,
		ShipCity:     r.ShipCity,
		ShipCountry:  r.ShipCountry,
		ProductID:    r.ProductID,
		Quantity:     r.Quantity,
		Discount:     r.Discount,
	}
}
