package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/northwind/internal/domain/report"
	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

// OrderLinesUseCase 订单明细用例
// 逐行累加金额,最后一行的累计金额就是订单合计
type OrderLinesUseCase struct {
	repo report.Repository
}

// NewOrderLinesUseCase 创建订单明细用例
func NewOrderLinesUseCase(repo report.Repository) *OrderLinesUseCase {
	return &OrderLinesUseCase{repo: repo}
}

// Execute 查询订单明细,没有明细时返回report.ErrNoOrderLines
func (uc *OrderLinesUseCase) Execute(ctx context.Context, orderID int64) (*OrderLinesResponse, error) {
	if orderID < 1 {
		return nil, apperrors.NewValidation([]apperrors.FieldError{
			{Field: "order_id", Message: "必须大于0"},
		})
	}

	items, err := uc.repo.OrderLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, report.ErrNoOrderLines
	}

	running := decimal.Zero
	lines := make([]*LineDTO, len(items))
	for i, item := range items {
		total := item.Total()
		running = running.Add(total)
		lines[i] = &LineDTO{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			UnitPrice:    money(item.UnitPrice),
			Quantity:     item.Quantity,
			Discount:     item.Discount.String(),
			Total:        money(total),
			RunningTotal: money(running),
		}
	}

	return &OrderLinesResponse{
		OrderID:    orderID,
		Lines:      lines,
		GrandTotal: money(running),
	}, nil
}
