package mysql

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/xiebiao/northwind/internal/domain/customer"
	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(fmt.Errorf("insert: %w", &mysqldriver.MySQLError{Number: 1062})))
	assert.False(t, isDuplicateError(&mysqldriver.MySQLError{Number: 1452}))
	assert.False(t, isDuplicateError(errors.New("Duplicate entry")))
}

func TestExecError(t *testing.T) {
	// 已经是业务错误的原样返回
	assert.Same(t, customer.ErrCustomerNotFound, execError(customer.ErrCustomerNotFound, "x"))

	// 普通语句超时也是执行错误,不是超时错误
	err := execError(context.DeadlineExceeded, "查询客户失败")
	assert.False(t, errors.Is(err, apperrors.ErrTimeout))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDatabaseError))

	// 其他错误带上驱动信息
	err = execError(errors.New("Deadlock found when trying to get lock"), "删除订单失败")
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
	assert.Equal(t, "删除订单失败: Deadlock found when trying to get lock", appErr.Message)
	assert.Equal(t, "[50001] 删除订单失败: Deadlock found when trying to get lock", err.Error())
}

func TestTimeoutError(t *testing.T) {
	ctx := context.Background()

	assert.Same(t, apperrors.ErrConfiguration, timeoutError(ctx, apperrors.ErrConfiguration, "x"))

	// 服务端执行时间超限
	err := timeoutError(ctx, &mysqldriver.MySQLError{Number: 3024, Message: "maximum statement execution time exceeded"}, "x")
	assert.ErrorIs(t, err, apperrors.ErrTimeout)

	// 驱动直接返回DeadlineExceeded
	assert.ErrorIs(t, timeoutError(ctx, context.DeadlineExceeded, "x"), apperrors.ErrTimeout)

	// context已超时,驱动返回的是其他错误
	expired, cancel := context.WithTimeout(ctx, time.Nanosecond)
	defer cancel()
	<-expired.Done()
	assert.ErrorIs(t, timeoutError(expired, errors.New("invalid connection"), "x"), apperrors.ErrTimeout)

	// 未超时的错误仍是执行错误
	err = timeoutError(ctx, errors.New("Unknown column 'Region'"), "查询累计销售额失败")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDatabaseError))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "alfreds", escapeLike("alfreds"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}

func TestTxManager_Unconfigured(t *testing.T) {
	tm := NewTxManager(unconfigured())

	called := false
	err := tm.Transaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	assert.False(t, called)
}
