package order

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/northwind/internal/domain/order"
	"github.com/xiebiao/northwind/pkg/metrics"
	"github.com/xiebiao/northwind/pkg/validator"
)

// requiredDateLayout 要求送达日期的输入格式
const requiredDateLayout = "2006-01-02"

// idemWriteTimeout 登记/释放幂等键的超时
// 请求context可能已经取消,写入使用独立的context
const idemWriteTimeout = 3 * time.Second

// CreateOrderUseCase 下单用例
// 设计说明:
// 1. 订单头和第一条明细由存储过程在一个事务中写入,这里只做校验和调用
// 2. 请求带Idempotency-Key时,相同的键只会登记一次订单
// 3. Redis未启用(idem为nil)时不做幂等处理
type CreateOrderUseCase struct {
	proc order.Procedure
	idem order.IdempotencyStore
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(proc order.Procedure, idem order.IdempotencyStore) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		proc: proc,
		idem: idem,
	}
}

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	CustomerID   string          `json:"customer_id" validate:"required,len=5"`
	EmployeeID   int             `json:"employee_id" validate:"required,min=1,max=9"`
	RequiredDate string          `json:"required_date" validate:"required,datetime=2006-01-02"`
	ShipVia      int             `json:"ship_via" validate:"required,min=1,max=3"`
	Freight      decimal.Decimal `json:"freight" validate:"gte=0"`
	ShipName     string          `json:"ship_name" validate:"max=40"`
	ShipAddress  string          `json:"ship_address" validate:"max=60"`
	ShipCity     string          `json:"ship_city" validate:"max=15"`
	ShipCountry  string          `json:"ship_country" validate:"max=15"`
	ProductID    int             `json:"product_id" validate:"required,min=1"`
	Quantity     int             `json:"quantity" validate:"required,min=1,max=100"`
	Discount     float64         `json:"discount" validate:"gte=0,lte=0.5"`
}

// CreateOrderResponse 下单结果
type CreateOrderResponse struct {
	OrderID  int64 `json:"order_id"`
	Replayed bool  `json:"replayed"` // 相同幂等键的重复提交,返回之前登记的订单号
}

// Execute 执行下单
// 1. 参数校验(全部字段一次返回)
// 2. 占用幂等键
// 3. 调用存储过程
// 4. 登记或释放幂等键
func (uc *CreateOrderUseCase) Execute(ctx context.Context, idempotencyKey string, in CreateOrderInput) (*CreateOrderResponse, error) {
	// 1. 参数校验
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.RequiredDate = strings.TrimSpace(in.RequiredDate)
	if err := validator.Struct(&in); err != nil {
		return nil, err
	}

	cmd, err := in.toCommand()
	if err != nil {
		return nil, err
	}

	// 2. 幂等键
	key := strings.TrimSpace(idempotencyKey)
	useIdem := key != "" && uc.idem != nil
	if useIdem {
		reserved, existing, err := uc.idem.Reserve(ctx, key)
		if err != nil {
			return nil, err
		}
		if !reserved {
			if existing > 0 {
				return &CreateOrderResponse{OrderID: existing, Replayed: true}, nil
			}
			return nil, order.ErrRequestPending
		}
	}

	// 3. 存储过程
	orderID, err := uc.proc.CreateFullOrder(ctx, cmd)
	if err != nil {
		if errors.Is(err, order.ErrOrderRejected) {
			metrics.IncCounter(metrics.OrdersRejectedTotal)
		}
		if useIdem {
			if relErr := uc.releaseKey(ctx, key); relErr != nil {
				slog.WarnContext(ctx, "释放幂等键失败", slog.String("key", key), slog.Any("error", relErr))
			}
		}
		return nil, err
	}

	// 4. 订单已经写入,登记失败只记日志
	if useIdem {
		if err := uc.completeKey(ctx, key, orderID); err != nil {
			slog.WarnContext(ctx, "登记幂等键失败", slog.String("key", key), slog.Int64("order_id", orderID), slog.Any("error", err))
		}
	}

	metrics.IncCounter(metrics.OrdersCreatedTotal)
	slog.InfoContext(ctx, "订单已登记",
		slog.Int64("order_id", orderID),
		slog.String("customer_id", cmd.CustomerID),
	)

	return &CreateOrderResponse{OrderID: orderID}, nil
}

// releaseKey 释放幂等键
// 请求被取消时也必须释放,否则重试会一直得到处理中
func (uc *CreateOrderUseCase) releaseKey(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), idemWriteTimeout)
	defer cancel()
	return uc.idem.Release(ctx, key)
}

// completeKey 登记订单号,订单已经写入,不受请求取消影响
func (uc *CreateOrderUseCase) completeKey(ctx context.Context, key string, orderID int64) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), idemWriteTimeout)
	defer cancel()
	return uc.idem.Complete(ctx, key, orderID)
}

func (in *CreateOrderInput) toCommand() (*order.NewOrder, error) {
	requiredDate, err := time.Parse(requiredDateLayout, in.RequiredDate)
	if err != nil {
		// 已经通过datetime规则,这里不会失败
		return nil, err
	}

	cmd := &order.NewOrder{
		CustomerID:   in.CustomerID,
		EmployeeID:   in.EmployeeID,
		RequiredDate: requiredDate,
		ShipVia:      in.ShipVia,
		Freight:      in.Freight,
		ShipName:     in.ShipName,
		ShipAddress:  in.ShipAddress,
		ShipCity:     in.ShipCity,
		ShipCountry:  in.ShipCountry,
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		Discount:     in.Discount,
	}
	cmd.Normalize()
	return cmd, nil
}
