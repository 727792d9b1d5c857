package customer

import "strings"

// IDLength 客户编号固定为5个字符（如ALFKI）
const IDLength = 5

// Customer 客户实体
// 设计说明:
// 1. ID是业务主键,由录入人员指定,写入和查询前统一转大写
// 2. CompanyName、ContactName必填,其余字段可为空
// 3. 可空字段使用*string,nil对应数据库NULL(区别于空字符串)
type Customer struct {
	ID          string
	CompanyName string
	ContactName string
	Address     *string
	City        *string
	Region      *string
	PostalCode  *string
	Country     *string
	Phone       *string
	Fax         *string
}

// NormalizeID 客户编号规范化(去除首尾空白并转大写)
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Normalize 写入前规范化
func (c *Customer) Normalize() {
	c.ID = NormalizeID(c.ID)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Search   string // 搜索关键词(匹配编号、公司名、联系人、国家)
}

// Offset 当前页的起始行
func (p ListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
