package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/northwind/internal/application/order"
	appreport "github.com/xiebiao/northwind/internal/application/report"
	"github.com/xiebiao/northwind/internal/interface/http/dto"
	"github.com/xiebiao/northwind/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createUseCase  *apporder.CreateOrderUseCase
	summaryUseCase *apporder.GetDeleteSummaryUseCase
	deleteUseCase  *apporder.DeleteOrderUseCase
	linesUseCase   *appreport.OrderLinesUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createUseCase *apporder.CreateOrderUseCase,
	summaryUseCase *apporder.GetDeleteSummaryUseCase,
	deleteUseCase *apporder.DeleteOrderUseCase,
	linesUseCase *appreport.OrderLinesUseCase,
) *OrderHandler {
	return &OrderHandler{
		createUseCase:  createUseCase,
		summaryUseCase: summaryUseCase,
		deleteUseCase:  deleteUseCase,
		linesUseCase:   linesUseCase,
	}
}

// Create 下单
// @Summary      下单
// @Description  调用存储过程一次写入订单头和第一条明细。带Idempotency-Key时重复提交返回同一订单号
// @Tags         订单
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string                 false "幂等键"
// @Param        request         body   dto.CreateOrderRequest true  "订单信息"
// @Success      200 {object} response.Response{data=apporder.CreateOrderResponse}
// @Failure      200 {object} response.Response "40900 参数校验失败 / 40006 订单未能登记 / 40010 请求处理中"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	// 1. 参数绑定
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	// 2. 调用应用层用例
	result, err := h.createUseCase.Execute(c.Request.Context(), c.GetHeader(dto.IdempotencyKeyHeader), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteSummary 删除确认信息
// @Summary      删除确认信息
// @Tags         订单
// @Produce      json
// @Param        id path int true "订单号" example(10248)
// @Success      200 {object} response.Response{data=apporder.DeleteSummaryResponse}
// @Failure      200 {object} response.Response "40403 订单不存在"
// @Router       /api/v1/orders/{id}/summary [get]
func (h *OrderHandler) DeleteSummary(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	result, err := h.summaryUseCase.Execute(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除订单
// @Summary      删除订单
// @Description  同一事务中删除明细和订单头;订单不存在时不删除任何数据
// @Tags         订单
// @Produce      json
// @Param        id path int true "订单号"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40403 订单不存在 / 50001 数据库执行错误"
// @Router       /api/v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), orderID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"order_id": orderID})
}

// Lines 订单明细
// @Summary      订单明细
// @Description  按产品编号升序,附逐行累计金额和订单合计
// @Tags         订单
// @Produce      json
// @Param        id path int true "订单号"
// @Success      200 {object} response.Response{data=appreport.OrderLinesResponse}
// @Failure      200 {object} response.Response "40404 没有明细"
// @Router       /api/v1/orders/{id}/lines [get]
func (h *OrderHandler) Lines(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	result, err := h.linesUseCase.Execute(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
