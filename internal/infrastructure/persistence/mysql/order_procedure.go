package mysql

import (
	"context"
	"database/sql"

	"github.com/xiebiao/northwind/internal/domain/order"
)

// registerOrderSQL 下单存储过程,14个参数依次为:
// CustomerID, EmployeeID, RequiredDate, ShipVia, Freight,
// ShipName, ShipAddress, ShipCity, ShipRegion, ShipPostalCode, ShipCountry,
// ProductID, Quantity, Discount
// 成功时返回一行NewOrderID
const registerOrderSQL = "CALL SP_RegistrarNuevoPedidoCompleto(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

// registerOrderResult 存储过程结果行,按列名读取,其余列忽略
type registerOrderResult struct {
	NewOrderID sql.NullInt64 `gorm:"column:NewOrderID"`
}

// orderProcedure 下单存储过程适配器
type orderProcedure struct {
	conns ConnProvider
}

// NewOrderProcedure 创建下单存储过程适配器
func NewOrderProcedure(conns ConnProvider) order.Procedure {
	return &orderProcedure{conns: conns}
}

// CreateFullOrder 调用存储过程创建订单头和第一条明细
// 存储过程没有返回行,或返回的订单号不大于0,视为被拒绝
func (p *orderProcedure) CreateFullOrder(ctx context.Context, o *order.NewOrder) (newID int64, err error) {
	ctx, done := observe(ctx, "order", "CreateFullOrder")
	defer func() { done(err) }()

	db, err := p.conns.Conn(ctx)
	if err != nil {
		return 0, err
	}

	var results []registerOrderResult
	err = db.Raw(registerOrderSQL,
		o.CustomerID,
		o.EmployeeID,
		o.RequiredDate,
		o.ShipVia,
		o.Freight,
		o.ShipName,
		o.ShipAddress,
		o.ShipCity,
		nil, // ShipRegion
		nil, // ShipPostalCode
		o.ShipCountry,
		o.ProductID,
		o.Quantity,
		o.Discount,
	).Scan(&results).Error
	if err != nil {
		return 0, execError(err, "登记订单失败")
	}

	if len(results) == 0 || !results[0].NewOrderID.Valid || results[0].NewOrderID.Int64 <= 0 {
		return 0, order.ErrOrderRejected
	}

	return results[0].NewOrderID.Int64, nil
}
