package customer

import (
	"context"
	"strings"

	"github.com/xiebiao/northwind/internal/domain/customer"
	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

// GetCustomerUseCase 客户详情用例
type GetCustomerUseCase struct {
	repo customer.Repository
}

// NewGetCustomerUseCase 创建客户详情用例
func NewGetCustomerUseCase(repo customer.Repository) *GetCustomerUseCase {
	return &GetCustomerUseCase{repo: repo}
}

// Execute 按编号查询客户,编号不区分大小写
func (uc *GetCustomerUseCase) Execute(ctx context.Context, id string) (*CustomerDTO, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidation([]apperrors.FieldError{
			{Field: "customer_id", Message: "不能为空"},
		})
	}

	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDTO(c), nil
}
