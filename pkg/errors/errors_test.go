package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapDB_KeepsDriverMessage(t *testing.T) {
	cause := errors.New("Error 1205: Lock wait timeout exceeded")

	err := WrapDB(cause, "删除订单失败")

	assert.Equal(t, ErrCodeDatabaseError, err.Code)
	assert.Contains(t, err.Message, "删除订单失败")
	assert.Contains(t, err.Message, "Lock wait timeout exceeded")
	assert.ErrorIs(t, err, cause, "应能通过errors.Is找到底层错误")

	// 驱动信息只出现一次
	assert.Equal(t, "[50001] 删除订单失败: Error 1205: Lock wait timeout exceeded", err.Error())
}

func TestGetAppError(t *testing.T) {
	t.Run("已是AppError", func(t *testing.T) {
		wrapped := fmt.Errorf("上层: %w", ErrTimeout)
		assert.Same(t, ErrTimeout, GetAppError(wrapped))
	})

	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		appErr := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
	})
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(fmt.Errorf("x: %w", ErrConfiguration), ErrCodeConfiguration))
	assert.False(t, HasCode(ErrConfiguration, ErrCodeTimeout))
	assert.False(t, HasCode(errors.New("plain"), ErrCodeInternal))
}

func TestNewValidation(t *testing.T) {
	err := NewValidation([]FieldError{
		{Field: "customer_id", Message: "必填"},
		{Field: "quantity", Message: "超出范围"},
	})

	assert.Equal(t, ErrCodeInvalidParams, err.Code)
	assert.Len(t, err.Fields, 2)
	assert.Equal(t, "[40900] 参数校验失败", err.Error())
}
