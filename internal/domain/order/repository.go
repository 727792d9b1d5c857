package order

import (
	"context"
)

// Repository 订单仓储接口
type Repository interface {
	// FindDeleteSummary 查询删除确认所需的订单日期和客户公司名
	FindDeleteSummary(ctx context.Context, orderID int64) (*DeleteSummary, error)

	// Delete 在同一事务中删除订单明细和订单头
	// 订单头不存在时回滚并返回ErrOrderNotFound,不会留下只删了明细的订单
	Delete(ctx context.Context, orderID int64) error
}

// Procedure 下单存储过程
// 订单头和明细的多表写入由数据库在一个原子过程中完成,应用层不拆分
type Procedure interface {
	// CreateFullOrder 返回新订单号;存储过程未返回订单号时返回ErrOrderRejected
	CreateFullOrder(ctx context.Context, o *NewOrder) (int64, error)
}

// IdempotencyStore 下单幂等键存储
type IdempotencyStore interface {
	// Reserve 占用幂等键
	// 键已存在时reserved为false,orderID为之前登记的订单号(0表示仍在处理中)
	Reserve(ctx context.Context, key string) (reserved bool, orderID int64, err error)

	// Complete 记录幂等键对应的订单号
	Complete(ctx context.Context, key string, orderID int64) error

	// Release 下单失败时释放幂等键,允许客户端重试
	Release(ctx context.Context, key string) error
}
