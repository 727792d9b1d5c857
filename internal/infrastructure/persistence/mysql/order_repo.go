package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xiebiao/northwind/internal/domain/order"
)

const (
	deleteSummarySQL = "SELECT o.OrderDate, c.CompanyName FROM Orders AS o " +
		"JOIN Customers AS c ON o.CustomerID = c.CustomerID WHERE o.OrderID = ?"
	deleteOrderDetailsSQL = "DELETE FROM `Order Details` WHERE OrderID = ?"
	deleteOrderSQL        = "DELETE FROM Orders WHERE OrderID = ?"
)

// orderRepository 订单仓储实现(MySQL)
type orderRepository struct {
	conns     ConnProvider
	txManager *TxManager
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(conns ConnProvider, txManager *TxManager) order.Repository {
	return &orderRepository{conns: conns, txManager: txManager}
}

// FindDeleteSummary 查询删除确认信息
func (r *orderRepository) FindDeleteSummary(ctx context.Context, orderID int64) (s *order.DeleteSummary, err error) {
	ctx, done := observe(ctx, "order", "FindDeleteSummary")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var (
		orderDate   sql.NullTime
		companyName string
	)
	if err := db.Raw(deleteSummarySQL, orderID).Row().Scan(&orderDate, &companyName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, execError(err, "查询订单失败")
	}

	return &order.DeleteSummary{
		OrderID:     orderID,
		OrderDate:   nullTime(orderDate),
		CompanyName: companyName,
	}, nil
}

// Delete 删除订单(明细 + 订单头)
// 步骤:
// 1. 删除订单明细(可能为0行)
// 2. 删除订单头,0行表示订单不存在
// 3. 返回ErrOrderNotFound触发回滚,第1步的删除一并撤销
func (r *orderRepository) Delete(ctx context.Context, orderID int64) (err error) {
	ctx, done := observe(ctx, "order", "Delete")
	defer func() { done(err) }()

	err = r.txManager.Transaction(ctx, func(ctx context.Context) error {
		db, err := r.conns.Conn(ctx)
		if err != nil {
			return err
		}

		// 1. 删除明细
		if err := db.Exec(deleteOrderDetailsSQL, orderID).Error; err != nil {
			return execError(err, "删除订单明细失败")
		}

		// 2. 删除订单头
		result := db.Exec(deleteOrderSQL, orderID)
		if result.Error != nil {
			return execError(result.Error, "删除订单失败")
		}
		if result.RowsAffected == 0 {
			return order.ErrOrderNotFound
		}

		return nil
	})
	if err != nil {
		return execError(err, "删除订单事务失败")
	}

	return nil
}
