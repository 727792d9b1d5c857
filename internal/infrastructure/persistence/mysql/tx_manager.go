package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey context中事务DB的key（不导出的类型，避免与其他包冲突）
type txKey struct{}

// TxManager 事务管理器
// 设计说明:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 支持嵌套事务(GORM自动使用Savepoint)
type TxManager struct {
	conns ConnProvider
}

// NewTxManager 创建事务管理器
func NewTxManager(conns ConnProvider) *TxManager {
	return &TxManager{conns: conns}
}

// Transaction 执行事务
// 1. fn内通过ConnProvider获取的连接都在同一事务中
// 2. fn返回error时自动ROLLBACK,返回nil时自动COMMIT
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    db, err := conns.Conn(ctx) // 事务连接
//	    if err != nil {
//	        return err
//	    }
//	    if err := db.Exec("DELETE FROM `Order Details` WHERE OrderID = ?", id).Error; err != nil {
//	        return err // 自动回滚
//	    }
//	    return db.Exec("DELETE FROM Orders WHERE OrderID = ?", id).Error
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	db, err := m.conns.Conn(ctx)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok
}
