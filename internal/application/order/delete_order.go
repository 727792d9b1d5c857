package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/northwind/internal/domain/order"
	apperrors "github.com/xiebiao/northwind/pkg/errors"
	"github.com/xiebiao/northwind/pkg/metrics"
)

// DeleteSummaryResponse 删除确认信息
type DeleteSummaryResponse struct {
	OrderID     int64  `json:"order_id"`
	OrderDate   string `json:"order_date"` // 为NULL时返回空字符串
	CompanyName string `json:"company_name"`
}

// GetDeleteSummaryUseCase 删除确认用例
// 删除前向用户展示订单日期和客户公司名
type GetDeleteSummaryUseCase struct {
	repo order.Repository
}

// NewGetDeleteSummaryUseCase 创建删除确认用例
func NewGetDeleteSummaryUseCase(repo order.Repository) *GetDeleteSummaryUseCase {
	return &GetDeleteSummaryUseCase{repo: repo}
}

// Execute 查询删除确认信息
func (uc *GetDeleteSummaryUseCase) Execute(ctx context.Context, orderID int64) (*DeleteSummaryResponse, error) {
	if err := checkOrderID(orderID); err != nil {
		return nil, err
	}

	s, err := uc.repo.FindDeleteSummary(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resp := &DeleteSummaryResponse{
		OrderID:     s.OrderID,
		CompanyName: s.CompanyName,
	}
	if s.OrderDate != nil {
		resp.OrderDate = s.OrderDate.Format(time.DateOnly)
	}
	return resp, nil
}

// DeleteOrderUseCase 删除订单用例
// 明细和订单头在同一事务中删除,订单不存在时什么都不删
type DeleteOrderUseCase struct {
	repo order.Repository
}

// NewDeleteOrderUseCase 创建删除订单用例
func NewDeleteOrderUseCase(repo order.Repository) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{repo: repo}
}

// Execute 删除订单
func (uc *DeleteOrderUseCase) Execute(ctx context.Context, orderID int64) error {
	if err := checkOrderID(orderID); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, orderID); err != nil {
		return err
	}

	metrics.IncCounter(metrics.OrdersDeletedTotal)
	slog.InfoContext(ctx, "订单已删除", slog.Int64("order_id", orderID))
	return nil
}

func checkOrderID(orderID int64) error {
	if orderID < 1 {
		return apperrors.NewValidation([]apperrors.FieldError{
			{Field: "order_id", Message: "必须大于0"},
		})
	}
	return nil
}
