package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/northwind/internal/domain/order"
	"github.com/xiebiao/northwind/internal/infrastructure/config"
	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

const (
	idempotencyKeyPrefix = "northwind:order:idem:"
	pendingValue         = "pending"
)

// IdempotencyStore 下单幂等键存储
// Key设计：northwind:order:idem:{Idempotency-Key}
// 值为"pending"（处理中）或新订单号
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore 创建幂等键存储
// client为nil（Redis未启用）时返回nil，用例跳过幂等处理
func NewIdempotencyStore(client *redis.Client, cfg *config.Config) order.IdempotencyStore {
	if client == nil {
		return nil
	}
	return &IdempotencyStore{client: client, ttl: cfg.Redis.IdempotencyTTL}
}

// Reserve 占用幂等键
// 1. SETNX写入pending，成功表示第一次请求
// 2. 已存在时读取当前值：pending表示仍在处理，数字表示已登记的订单号
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, int64, error) {
	ok, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, pendingValue, s.ttl).Result()
	if err != nil {
		return false, 0, wrapRedis(err, "占用幂等键失败")
	}
	if ok {
		return true, 0, nil
	}

	val, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		// SETNX和GET之间键刚好过期，按处理中返回，客户端重试即可
		return false, 0, nil
	}
	if err != nil {
		return false, 0, wrapRedis(err, "读取幂等键失败")
	}

	return false, parseOrderID(val), nil
}

// Complete 记录订单号，保留到TTL结束
func (s *IdempotencyStore) Complete(ctx context.Context, key string, orderID int64) error {
	if err := s.client.Set(ctx, idempotencyKeyPrefix+key, orderID, s.ttl).Err(); err != nil {
		return wrapRedis(err, "记录幂等键失败")
	}
	return nil
}

// Release 删除幂等键
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return wrapRedis(err, "释放幂等键失败")
	}
	return nil
}

// parseOrderID pending或无法解析的值返回0
func parseOrderID(val string) int64 {
	if val == pendingValue {
		return 0
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func wrapRedis(err error, message string) *apperrors.AppError {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeRedisError,
		Message: message,
		Err:     err,
	}
}
