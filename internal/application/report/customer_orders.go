package report

import (
	"context"
	"strings"

	"github.com/xiebiao/northwind/internal/domain/customer"
	"github.com/xiebiao/northwind/internal/domain/report"
	"github.com/xiebiao/northwind/pkg/validator"
)

// customerIDInput 报表按客户查询时的编号参数
type customerIDInput struct {
	CustomerID string `json:"customer_id" validate:"required,len=5"`
}

func normalizeCustomerID(id string) (string, error) {
	in := customerIDInput{CustomerID: strings.TrimSpace(id)}
	if err := validator.Struct(&in); err != nil {
		return "", err
	}
	return customer.NormalizeID(in.CustomerID), nil
}

// CustomerOrdersUseCase 客户订单报表用例
// 包含两个报表:存储过程返回的历史订单,以及带客户概要的订单列表
type CustomerOrdersUseCase struct {
	reports   report.Repository
	customers customer.Repository
}

// NewCustomerOrdersUseCase 创建客户订单报表用例
func NewCustomerOrdersUseCase(reports report.Repository, customers customer.Repository) *CustomerOrdersUseCase {
	return &CustomerOrdersUseCase{
		reports:   reports,
		customers: customers,
	}
}

// History 客户历史订单(存储过程SP_ObtenerHistorialPedidos)
func (uc *CustomerOrdersUseCase) History(ctx context.Context, customerID string) ([]*HistoryDTO, error) {
	id, err := normalizeCustomerID(customerID)
	if err != nil {
		return nil, err
	}

	rows, err := uc.reports.CustomerHistory(ctx, id)
	if err != nil {
		return nil, err
	}

	list := make([]*HistoryDTO, len(rows))
	for i, r := range rows {
		list[i] = &HistoryDTO{
			OrderID:   r.OrderID,
			OrderDate: optionalDate(r.OrderDate),
			Total:     money(r.Total),
		}
	}
	return list, nil
}

// Orders 客户概要及订单列表
// 1. 先查客户,不存在返回customer.ErrCustomerNotFound
// 2. 再查订单,按下单日期降序
func (uc *CustomerOrdersUseCase) Orders(ctx context.Context, customerID string) (*CustomerOrdersResponse, error) {
	id, err := normalizeCustomerID(customerID)
	if err != nil {
		return nil, err
	}

	// 1. 客户概要
	c, err := uc.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 订单
	rows, err := uc.reports.OrdersByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	orders := make([]*CustomerOrderDTO, len(rows))
	for i, r := range rows {
		orders[i] = &CustomerOrderDTO{
			OrderID:      r.OrderID,
			OrderDate:    date(r.OrderDate),
			RequiredDate: date(r.RequiredDate),
			ShippedDate:  optionalDate(r.ShippedDate),
			Freight:      money(r.Freight),
			ShipCountry:  r.ShipCountry,
		}
	}

	return &CustomerOrdersResponse{
		Customer: &CustomerSummary{
			CustomerID:  c.ID,
			CompanyName: c.CompanyName,
			ContactName: c.ContactName,
			City:        deref(c.City),
			Country:     deref(c.Country),
		},
		Orders: orders,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
