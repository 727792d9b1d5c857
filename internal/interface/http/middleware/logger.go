package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 请求ID的HTTP头
const RequestIDHeader = "X-Request-ID"

// requestIDKey gin.Context中保存请求ID的键(response.Error记录日志时读取)
const requestIDKey = "request_id"

// RequestID 请求ID中间件
// 客户端带了X-Request-ID时沿用,否则生成UUID,并写回响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID 获取当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Logger 访问日志中间件
// 1. 5xx记ERROR
// 2. 耗时超过slow记WARN(slow为0时不判断)
// 3. 其余记INFO
func Logger(slow time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		attrs := []any{
			slog.String("request_id", GetRequestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.String("client_ip", c.ClientIP()),
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			slog.ErrorContext(ctx, "请求处理失败", attrs...)
		case slow > 0 && latency > slow:
			slog.WarnContext(ctx, "慢请求", attrs...)
		default:
			slog.InfoContext(ctx, "请求完成", attrs...)
		}
	}
}
