package handler

import (
	"github.com/gin-gonic/gin"

	appcustomer "github.com/xiebiao/northwind/internal/application/customer"
	"github.com/xiebiao/northwind/internal/interface/http/dto"
	"github.com/xiebiao/northwind/pkg/response"
)

// CustomerHandler 客户HTTP处理器
type CustomerHandler struct {
	listUseCase   *appcustomer.ListCustomersUseCase
	getUseCase    *appcustomer.GetCustomerUseCase
	createUseCase *appcustomer.CreateCustomerUseCase
	updateUseCase *appcustomer.UpdateCustomerUseCase
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler(
	listUseCase *appcustomer.ListCustomersUseCase,
	getUseCase *appcustomer.GetCustomerUseCase,
	createUseCase *appcustomer.CreateCustomerUseCase,
	updateUseCase *appcustomer.UpdateCustomerUseCase,
) *CustomerHandler {
	return &CustomerHandler{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
	}
}

// List 客户列表
// @Summary      客户列表
// @Description  分页查询客户,search匹配编号、公司名、联系人、国家(不区分大小写);页码越界时返回最后一页
// @Tags         客户
// @Produce      json
// @Param        page   query int    false "页码" default(1)
// @Param        search query string false "搜索关键词"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcustomer.CustomerDTO}}
// @Router       /api/v1/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var q dto.ListCustomersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appcustomer.ListCustomersRequest{
		Page:   q.Page,
		Search: q.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.List, result.Total, result.Page, result.PageSize)
}

// Get 客户详情
// @Summary      客户详情
// @Tags         客户
// @Produce      json
// @Param        id path string true "客户编号" example(ALFKI)
// @Success      200 {object} response.Response{data=appcustomer.CustomerDTO}
// @Failure      200 {object} response.Response "40401 客户不存在"
// @Router       /api/v1/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create 新建客户
// @Summary      新建客户
// @Description  客户编号固定5个字符,保存时转大写;编号已存在返回40009
// @Tags         客户
// @Accept       json
// @Produce      json
// @Param        request body dto.CustomerRequest true "客户信息"
// @Success      200 {object} response.Response{data=appcustomer.CustomerDTO}
// @Failure      200 {object} response.Response "40900 参数校验失败 / 40009 编号重复"
// @Router       /api/v1/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	// 1. 参数绑定
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	// 2. 调用应用层用例(含字段校验)
	result, err := h.createUseCase.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Update 修改客户
// @Summary      修改客户
// @Description  整行覆盖,编号取自路径
// @Tags         客户
// @Accept       json
// @Produce      json
// @Param        id      path string              true "客户编号"
// @Param        request body dto.CustomerRequest true "客户信息"
// @Success      200 {object} response.Response{data=appcustomer.CustomerDTO}
// @Failure      200 {object} response.Response "40900 参数校验失败 / 40401 客户不存在"
// @Router       /api/v1/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
