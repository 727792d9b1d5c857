package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/northwind/pkg/errors"
	"github.com/xiebiao/northwind/pkg/response"
)

// bindError 请求体或查询参数格式错误(如类型不匹配)
func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error())
}

// orderIDParam 解析路径中的订单号,失败时已写入响应
func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperrors.NewValidation([]apperrors.FieldError{
			{Field: "order_id", Message: "必须是整数"},
		}))
		return 0, false
	}
	return id, true
}
