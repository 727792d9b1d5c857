package handler

import (
	"github.com/gin-gonic/gin"

	appreport "github.com/xiebiao/northwind/internal/application/report"
	"github.com/xiebiao/northwind/internal/interface/http/dto"
	"github.com/xiebiao/northwind/pkg/response"
)

// ReportHandler 报表HTTP处理器
type ReportHandler struct {
	customerOrders *appreport.CustomerOrdersUseCase
	sales          *appreport.SalesReportUseCase
}

// NewReportHandler 创建报表处理器
func NewReportHandler(customerOrders *appreport.CustomerOrdersUseCase, sales *appreport.SalesReportUseCase) *ReportHandler {
	return &ReportHandler{
		customerOrders: customerOrders,
		sales:          sales,
	}
}

// CustomerOrders 客户的订单
// @Summary      客户的订单
// @Description  客户概要及订单列表,按下单日期降序
// @Tags         报表
// @Produce      json
// @Param        id path string true "客户编号"
// @Success      200 {object} response.Response{data=appreport.CustomerOrdersResponse}
// @Failure      200 {object} response.Response "40401 客户不存在"
// @Router       /api/v1/customers/{id}/orders [get]
func (h *ReportHandler) CustomerOrders(c *gin.Context) {
	result, err := h.customerOrders.Orders(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CustomerHistory 客户历史订单
// @Summary      客户历史订单
// @Description  由存储过程SP_ObtenerHistorialPedidos返回
// @Tags         报表
// @Produce      json
// @Param        id path string true "客户编号"
// @Success      200 {object} response.Response{data=[]appreport.HistoryDTO}
// @Router       /api/v1/customers/{id}/history [get]
func (h *ReportHandler) CustomerHistory(c *gin.Context) {
	result, err := h.customerOrders.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SalesByEmployee 销售员年度销售额
// @Summary      销售员年度销售额
// @Tags         报表
// @Produce      json
// @Success      200 {object} response.Response{data=[]appreport.EmployeeSalesDTO}
// @Router       /api/v1/reports/sales-by-employee [get]
func (h *ReportHandler) SalesByEmployee(c *gin.Context) {
	result, err := h.sales.SalesByEmployeeYear(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SalesByCustomerYear 客户年度销售额
// @Summary      客户年度销售额
// @Tags         报表
// @Produce      json
// @Success      200 {object} response.Response{data=[]appreport.CustomerSalesDTO}
// @Router       /api/v1/reports/sales-by-customer-year [get]
func (h *ReportHandler) SalesByCustomerYear(c *gin.Context) {
	result, err := h.sales.SalesByCustomerYear(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SalesByCustomerMonth 客户月度销售额
// @Summary      客户月度销售额
// @Tags         报表
// @Produce      json
// @Success      200 {object} response.Response{data=[]appreport.CustomerSalesDTO}
// @Router       /api/v1/reports/sales-by-customer-month [get]
func (h *ReportHandler) SalesByCustomerMonth(c *gin.Context) {
	result, err := h.sales.SalesByCustomerMonth(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AverageOrderValue 客户年度平均订单金额
// @Summary      客户年度平均订单金额
// @Tags         报表
// @Produce      json
// @Success      200 {object} response.Response{data=[]appreport.AverageOrderDTO}
// @Router       /api/v1/reports/average-order-value [get]
func (h *ReportHandler) AverageOrderValue(c *gin.Context) {
	result, err := h.sales.AverageOrderValue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// TotalSales 客户累计销售额
// @Summary      客户累计销售额
// @Description  customer_id、region留空表示不过滤;执行超过上限返回50004
// @Tags         报表
// @Produce      json
// @Param        customer_id query string false "客户编号"
// @Param        region      query string false "客户所在国家"
// @Success      200 {object} response.Response{data=appreport.TotalSalesResponse}
// @Failure      200 {object} response.Response "50004 查询超时"
// @Router       /api/v1/reports/total-sales [get]
func (h *ReportHandler) TotalSales(c *gin.Context) {
	var q dto.TotalSalesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.sales.TotalSales(c.Request.Context(), q.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CustomersByCountry 某个国家的客户
// @Summary      按国家查询客户
// @Tags         报表
// @Produce      json
// @Param        country query string true "国家" example(Mexico)
// @Success      200 {object} response.Response{data=[]appreport.CountryCustomerDTO}
// @Router       /api/v1/reports/customers-by-country [get]
func (h *ReportHandler) CustomersByCountry(c *gin.Context) {
	var q dto.CountryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.sales.CustomersByCountry(c.Request.Context(), q.Country)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
