package customer

import (
	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

// 客户领域错误定义
var (
	// ErrCustomerNotFound 客户不存在
	ErrCustomerNotFound = apperrors.New(apperrors.ErrCodeCustomerNotFound, "客户不存在")

	// ErrCustomerDuplicate 客户编号已存在
	ErrCustomerDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "客户编号已存在,请使用其他编号")
)
