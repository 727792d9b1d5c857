package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	apperrors "github.com/xiebiao/northwind/pkg/errors"
	"github.com/xiebiao/northwind/pkg/metrics"
	"github.com/xiebiao/northwind/pkg/tracing"
)

const tracerName = "northwind/mysql"

// MySQL错误码
const (
	errDuplicateEntry     = 1062 // Duplicate entry 'xxx' for key 'yyy'
	errMaxExecutionTimeEx = 3024 // Query execution was interrupted, maximum statement execution time exceeded
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// GORM v2的错误判断（需开启TranslateError）
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == errDuplicateEntry
	}
	return false
}

// isTimeout 判断是否为执行超时
// ctx是执行语句时使用的context，超时后驱动返回的错误不一定是DeadlineExceeded
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == errMaxExecutionTimeEx
	}
	return false
}

// execError 把执行错误转换为业务错误
// 已经是AppError的原样返回（如配置错误、领域错误）
func execError(err error, message string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.WrapDB(err, message)
}

// timeoutError 有执行时间上限的查询专用
// ctx是带上限的context，超时返回ErrTimeout，其他错误同execError
func timeoutError(ctx context.Context, err error, message string) error {
	if !apperrors.IsAppError(err) && isTimeout(ctx, err) {
		return apperrors.ErrTimeout
	}
	return execError(err, message)
}

// escapeLike 转义LIKE通配符，搜索词按字面匹配
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// observe 记录仓储操作的Span和耗时
//
//	ctx, done := observe(ctx, "customer", "FindByID")
//	defer func() { done(err) }()
func observe(ctx context.Context, repository, operation string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, repository+"."+operation)

	return ctx, func(err error) {
		code := 0
		if err != nil {
			code = apperrors.GetAppError(err).Code
		}
		metrics.ObserveQuery(repository, operation, start, code)
		tracing.EndSpan(span, err)
	}
}

// rowDecoder 把当前行解码为实体
type rowDecoder[T any] func(rows *sql.Rows) (T, error)

// queryRows 执行查询并逐行解码
// rows在所有返回路径上都会关闭，连接随之归还连接池
func queryRows[T any](db *gorm.DB, decode rowDecoder[T], query string, args ...interface{}) ([]T, error) {
	rows, err := db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := decode(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// nullTime NULL → nil
func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
