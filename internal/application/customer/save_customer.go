package customer

import (
	"context"

	"github.com/xiebiao/northwind/internal/domain/customer"
	"github.com/xiebiao/northwind/pkg/validator"
)

// CreateCustomerUseCase 新建客户用例
// 校验失败时不访问数据库;编号重复返回customer.ErrCustomerDuplicate
type CreateCustomerUseCase struct {
	repo customer.Repository
}

// NewCreateCustomerUseCase 创建新建客户用例
func NewCreateCustomerUseCase(repo customer.Repository) *CreateCustomerUseCase {
	return &CreateCustomerUseCase{repo: repo}
}

// Execute 执行新建
func (uc *CreateCustomerUseCase) Execute(ctx context.Context, in CustomerInput) (*CustomerDTO, error) {
	// 1. 参数校验(一次返回所有字段错误)
	in.trim()
	if err := validator.Struct(&in); err != nil {
		return nil, err
	}

	// 2. 持久化(编号转大写)
	c := in.toEntity()
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return ToDTO(c), nil
}

// UpdateCustomerUseCase 修改客户用例
// 整行覆盖,后写入者生效
type UpdateCustomerUseCase struct {
	repo customer.Repository
}

// NewUpdateCustomerUseCase 创建修改客户用例
func NewUpdateCustomerUseCase(repo customer.Repository) *UpdateCustomerUseCase {
	return &UpdateCustomerUseCase{repo: repo}
}

// Execute 执行修改,id取自路径,覆盖请求体中的编号
func (uc *UpdateCustomerUseCase) Execute(ctx context.Context, id string, in CustomerInput) (*CustomerDTO, error) {
	in.ID = id
	in.trim()
	if err := validator.Struct(&in); err != nil {
		return nil, err
	}

	c := in.toEntity()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return ToDTO(c), nil
}
