package dto

import (
	appcustomer "github.com/xiebiao/northwind/internal/application/customer"
)

// ListCustomersQuery 客户列表查询参数
type ListCustomersQuery struct {
	Page   int    `form:"page" example:"1"`
	Search string `form:"search" example:"trujillo"`
}

// CustomerRequest 新建/修改客户请求
// 字段规则在应用层统一校验,这里只负责绑定
// 修改时customer_id取自路径,请求体中的值被忽略
type CustomerRequest struct {
	CustomerID  string `json:"customer_id" example:"ALFKI"`
	CompanyName string `json:"company_name" example:"Alfreds Futterkiste"`
	ContactName string `json:"contact_name" example:"Maria Anders"`
	Address     string `json:"address" example:"Obere Str. 57"`
	City        string `json:"city" example:"Berlin"`
	Region      string `json:"region" example:""`
	PostalCode  string `json:"postal_code" example:"12209"`
	Country     string `json:"country" example:"Germany"`
	Phone       string `json:"phone" example:"030-0074321"`
	Fax         string `json:"fax" example:"030-0076545"`
}

// ToInput 转换为应用层输入
func (r *CustomerRequest) ToInput() appcustomer.CustomerInput {
	return appcustomer.CustomerInput{
		ID:          r.CustomerID,
		CompanyName: r.CompanyName,
		ContactName: r.ContactName,
		Address:     r.Address,
		City:        r.City,
		Region:      r.Region,
		PostalCode:  r.PostalCode,
		Country:     r.Country,
		Phone:       r.Phone,
		Fax:         r.Fax,
	}
}
