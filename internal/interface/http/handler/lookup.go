package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/northwind/internal/application/order"
	"github.com/xiebiao/northwind/pkg/response"
)

// LookupHandler 下拉选项处理器
type LookupHandler struct {
	optionsUseCase *apporder.OrderOptionsUseCase
}

// NewLookupHandler 创建下拉选项处理器
func NewLookupHandler(optionsUseCase *apporder.OrderOptionsUseCase) *LookupHandler {
	return &LookupHandler{optionsUseCase: optionsUseCase}
}

// OrderOptions 下单可选的销售员和承运商
// @Summary      下单选项
// @Tags         选项
// @Produce      json
// @Success      200 {object} response.Response{data=apporder.OrderOptions}
// @Router       /api/v1/lookups/order-options [get]
func (h *LookupHandler) OrderOptions(c *gin.Context) {
	response.Success(c, h.optionsUseCase.Execute())
}
