// Package validator 声明式字段校验
//
// 基于go-playground/validator，在任何数据库调用之前执行。
// 所有不合法的字段一次性收集返回（不在第一个错误处中断），
// 调用方拿到的是apperrors.AppError，Fields里逐条列出字段错误。
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

var (
	once     sync.Once
	instance *playground.Validate
)

// engine 懒加载校验器实例（validator.Validate并发安全，且会缓存结构体元信息）
func engine() *playground.Validate {
	once.Do(func() {
		v := playground.New(playground.WithRequiredStructEnabled())

		// 字段名使用json tag，与接口返回保持一致
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// 金额字段按float64参与gte/lte等数值规则
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

		instance = v
	})
	return instance
}

// Struct 校验结构体
// 返回nil表示通过；否则返回包含全部字段错误的AppError
func Struct(s interface{}) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError：传入的不是结构体，属于编程错误
		return apperrors.Wrap(err, "参数校验器调用错误")
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return apperrors.NewValidation(fields)
}

// message 把校验规则翻译成中文提示
func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "不能为空"
	case "len":
		return fmt.Sprintf("长度必须为%s个字符", fe.Param())
	case "max":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("不能大于%s", fe.Param())
		}
		return fmt.Sprintf("长度不能超过%s个字符", fe.Param())
	case "min":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("不能小于%s", fe.Param())
		}
		return fmt.Sprintf("长度不能少于%s个字符", fe.Param())
	case "gte":
		return fmt.Sprintf("必须大于或等于%s", fe.Param())
	case "lte":
		return fmt.Sprintf("必须小于或等于%s", fe.Param())
	case "gt":
		return fmt.Sprintf("必须大于%s", fe.Param())
	case "datetime":
		return fmt.Sprintf("日期格式必须为%s", fe.Param())
	default:
		return fmt.Sprintf("不满足校验规则%s", fe.Tag())
	}
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
