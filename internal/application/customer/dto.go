package customer

import (
	"strings"

	"github.com/xiebiao/northwind/internal/domain/customer"
)

// CustomerInput 新建/修改客户的输入
// 字段长度与Northwind库Customers表的列宽一致
type CustomerInput struct {
	ID          string `json:"customer_id" validate:"required,len=5"`
	CompanyName string `json:"company_name" validate:"required,max=40"`
	ContactName string `json:"contact_name" validate:"required,max=30"`
	Address     string `json:"address" validate:"max=60"`
	City        string `json:"city" validate:"max=15"`
	Region      string `json:"region" validate:"max=15"`
	PostalCode  string `json:"postal_code" validate:"max=10"`
	Country     string `json:"country" validate:"max=15"`
	Phone       string `json:"phone" validate:"max=24"`
	Fax         string `json:"fax" validate:"max=24"`
}

// trim 去除所有字段首尾空白,校验在trim之后进行
func (in *CustomerInput) trim() {
	in.ID = strings.TrimSpace(in.ID)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.Region = strings.TrimSpace(in.Region)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
	in.Country = strings.TrimSpace(in.Country)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Fax = strings.TrimSpace(in.Fax)
}

func (in *CustomerInput) toEntity() *customer.Customer {
	return &customer.Customer{
		ID:          customer.NormalizeID(in.ID),
		CompanyName: in.CompanyName,
		ContactName: in.ContactName,
		Address:     optional(in.Address),
		City:        optional(in.City),
		Region:      optional(in.Region),
		PostalCode:  optional(in.PostalCode),
		Country:     optional(in.Country),
		Phone:       optional(in.Phone),
		Fax:         optional(in.Fax),
	}
}

// CustomerDTO 客户信息
// 可空列为NULL时返回空字符串
type CustomerDTO struct {
	ID          string `json:"customer_id"`
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Region      string `json:"region"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
	Fax         string `json:"fax"`
}

// ToDTO 领域实体转DTO
func ToDTO(c *customer.Customer) *CustomerDTO {
	return &CustomerDTO{
		ID:          c.ID,
		CompanyName: c.CompanyName,
		ContactName: c.ContactName,
		Address:     deref(c.Address),
		City:        deref(c.City),
		Region:      deref(c.Region),
		PostalCode:  deref(c.PostalCode),
		Country:     deref(c.Country),
		Phone:       deref(c.Phone),
		Fax:         deref(c.Fax),
	}
}

// optional 空字符串写入NULL
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
