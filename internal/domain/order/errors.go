package order

import (
	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrOrderRejected 存储过程没有返回新订单号
	ErrOrderRejected = apperrors.New(apperrors.ErrCodeOrderRejected, "订单未能登记,请检查输入数据")

	// ErrRequestPending 相同幂等键的下单请求仍在处理中
	ErrRequestPending = apperrors.New(apperrors.ErrCodeRequestPending, "相同的下单请求正在处理,请稍后查询")
)
