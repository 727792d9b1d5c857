package dto

import "github.com/xiebiao/northwind/internal/domain/report"

// TotalSalesQuery 累计销售额过滤条件,留空表示不过滤
type TotalSalesQuery struct {
	CustomerID string `form:"customer_id" example:"QUICK"`
	Region     string `form:"region" example:"Germany"`
}

// ToFilter 转换为报表过滤条件
func (q *TotalSalesQuery) ToFilter() report.TotalSalesFilter {
	return report.TotalSalesFilter{
		CustomerID: q.CustomerID,
		Region:     q.Region,
	}
}

// CountryQuery 按国家查询客户
type CountryQuery struct {
	Country string `form:"country" example:"Mexico"`
}
