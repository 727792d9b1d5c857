package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/northwind/pkg/tracing"
)

// TraceIDHeader 追踪ID的HTTP头
const TraceIDHeader = "X-Trace-ID"

// Tracing 为每个请求创建根Span,仓储操作的Span挂在它下面
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartSpan(c.Request.Context(), "northwind/http", c.Request.Method+" "+c.FullPath())
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
			attribute.String("request_id", GetRequestID(c)),
		)

		if traceID := tracing.ExtractTraceID(ctx); traceID != "" {
			c.Header(TraceIDHeader, traceID)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}
