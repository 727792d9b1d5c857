package customer

import (
	"context"
)

// Repository 客户仓储接口
// 由domain层定义接口,infrastructure层实现
type Repository interface {
	// List 分页查询客户列表
	// 返回当前页数据和匹配条件的总数;页码超出范围时返回空列表而不是错误
	List(ctx context.Context, params ListParams) ([]*Customer, int64, error)

	// FindByID 根据编号查询客户
	FindByID(ctx context.Context, id string) (*Customer, error)

	// Create 新建客户,编号重复返回ErrCustomerDuplicate
	Create(ctx context.Context, c *Customer) error

	// Update 按编号更新除编号外的所有字段,客户不存在返回ErrCustomerNotFound
	Update(ctx context.Context, c *Customer) error
}
