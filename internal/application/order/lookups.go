package order

import "github.com/xiebiao/northwind/internal/domain/order"

// OrderOptions 下单页面的下拉选项
type OrderOptions struct {
	Employees []order.Option `json:"employees"`
	Shippers  []order.Option `json:"shippers"`
}

// OrderOptionsUseCase 下单选项用例(不访问数据库)
type OrderOptionsUseCase struct{}

// NewOrderOptionsUseCase 创建下单选项用例
func NewOrderOptionsUseCase() *OrderOptionsUseCase {
	return &OrderOptionsUseCase{}
}

// Execute 返回销售员和承运商选项
func (uc *OrderOptionsUseCase) Execute() *OrderOptions {
	return &OrderOptions{
		Employees: order.Employees(),
		Shippers:  order.Shippers(),
	}
}
