// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三组：
//   - HTTP：请求总数、耗时分布、正在处理的请求数
//   - 数据库：每个仓储操作的耗时与错误数（按repository/operation打标签）
//   - 订单业务：下单成功/被拒绝、删除订单次数
//
// 所有指标在包加载时通过promauto注册到默认Registry，
// 由cmd/api通过promhttp.Handler()暴露在/metrics。
//
// 标签基数注意：path标签使用gin的路由模板（/api/v1/customers/:id），
// 不要使用真实URL，否则每个客户ID都会产生一条新的时间序列。
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板）、status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// DBQueryDuration 仓储操作耗时（秒）
	// 报表查询可能到几十秒（总销售额报表上限60秒），桶上限放宽到60
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "仓储操作耗时（秒）",
			Buckets: []float64{0.005, 0.02, 0.1, 0.5, 1, 5, 15, 60},
		},
		[]string{"repository", "operation"},
	)

	// DBQueryErrorsTotal 仓储操作失败次数
	// code标签为业务错误码（如40401客户不存在、50004超时）
	DBQueryErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "仓储操作失败次数",
		},
		[]string{"repository", "operation", "code"},
	)

	// OrdersCreatedTotal 通过存储过程成功创建的订单数
	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "成功创建的订单总数",
		},
	)

	// OrdersRejectedTotal 被存储过程拒绝的下单请求数
	OrdersRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "被存储过程拒绝的下单请求数",
		},
	)

	// OrdersDeletedTotal 删除的订单数
	OrdersDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_deleted_total",
			Help: "删除的订单总数",
		},
	)
)

// ObserveQuery 记录一次仓储操作
// code为0表示成功，否则同时累加错误计数
func ObserveQuery(repository, operation string, start time.Time, code int) {
	DBQueryDuration.WithLabelValues(repository, operation).Observe(time.Since(start).Seconds())
	if code != 0 {
		DBQueryErrorsTotal.WithLabelValues(repository, operation, strconv.Itoa(code)).Inc()
	}
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
