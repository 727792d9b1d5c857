package report

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/northwind/internal/domain/report"
	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

// SalesReportUseCase 销售汇总报表用例
// 报表出错时直接返回错误,不返回空列表掩盖失败
type SalesReportUseCase struct {
	repo report.Repository
}

// NewSalesReportUseCase 创建销售汇总报表用例
func NewSalesReportUseCase(repo report.Repository) *SalesReportUseCase {
	return &SalesReportUseCase{repo: repo}
}

// AverageOrderValue 客户年度平均订单金额
func (uc *SalesReportUseCase) AverageOrderValue(ctx context.Context) ([]*AverageOrderDTO, error) {
	rows, err := uc.repo.AverageOrderValue(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*AverageOrderDTO, len(rows))
	for i, r := range rows {
		list[i] = &AverageOrderDTO{
			CustomerID:   r.CustomerID,
			CompanyName:  r.CompanyName,
			Year:         r.Year,
			AverageOrder: money(r.AverageOrder),
			YearTotal:    money(r.YearTotal),
		}
	}
	return list, nil
}

// SalesByCustomerYear 客户年度销售额
func (uc *SalesReportUseCase) SalesByCustomerYear(ctx context.Context) ([]*CustomerSalesDTO, error) {
	rows, err := uc.repo.SalesByCustomerYear(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*CustomerSalesDTO, len(rows))
	for i, r := range rows {
		list[i] = &CustomerSalesDTO{
			CustomerID:  r.CustomerID,
			CompanyName: r.CompanyName,
			Year:        r.Year,
			Total:       money(r.Total),
		}
	}
	return list, nil
}

// SalesByCustomerMonth 客户月度销售额
func (uc *SalesReportUseCase) SalesByCustomerMonth(ctx context.Context) ([]*CustomerSalesDTO, error) {
	rows, err := uc.repo.SalesByCustomerMonth(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*CustomerSalesDTO, len(rows))
	for i, r := range rows {
		list[i] = &CustomerSalesDTO{
			CustomerID:  r.CustomerID,
			CompanyName: r.CompanyName,
			Year:        r.Year,
			Month:       r.Month,
			Total:       money(r.Total),
		}
	}
	return list, nil
}

// SalesByEmployeeYear 销售员年度销售额
func (uc *SalesReportUseCase) SalesByEmployeeYear(ctx context.Context) ([]*EmployeeSalesDTO, error) {
	rows, err := uc.repo.SalesByEmployeeYear(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*EmployeeSalesDTO, len(rows))
	for i, r := range rows {
		list[i] = &EmployeeSalesDTO{
			EmployeeName: r.EmployeeName,
			Year:         r.Year,
			Total:        money(r.Total),
		}
	}
	return list, nil
}

// TotalSales 客户累计销售额,空过滤条件表示全部
// 超过执行时间上限时返回apperrors.ErrTimeout
func (uc *SalesReportUseCase) TotalSales(ctx context.Context, filter report.TotalSalesFilter) (*TotalSalesResponse, error) {
	rows, err := uc.repo.TotalSales(ctx, filter)
	if err != nil {
		return nil, err
	}

	grand := decimal.Zero
	list := make([]*TotalSalesDTO, len(rows))
	for i, r := range rows {
		grand = grand.Add(r.Total)
		list[i] = &TotalSalesDTO{
			CustomerID:  r.CustomerID,
			CompanyName: r.CompanyName,
			Region:      r.Region,
			Total:       money(r.Total),
		}
	}

	return &TotalSalesResponse{Rows: list, GrandTotal: money(grand)}, nil
}

// CustomersByCountry 某个国家的客户
func (uc *SalesReportUseCase) CustomersByCountry(ctx context.Context, country string) ([]*CountryCustomerDTO, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, apperrors.NewValidation([]apperrors.FieldError{
			{Field: "country", Message: "不能为空"},
		})
	}

	rows, err := uc.repo.CustomersByCountry(ctx, country)
	if err != nil {
		return nil, err
	}

	list := make([]*CountryCustomerDTO, len(rows))
	for i, r := range rows {
		list[i] = &CountryCustomerDTO{
			CustomerID:  r.CustomerID,
			CompanyName: r.CompanyName,
			ContactName: r.ContactName,
			Country:     r.Country,
		}
	}
	return list, nil
}
