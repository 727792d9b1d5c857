package mysql

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/northwind/internal/infrastructure/config"
	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 表结构和存储过程属于Northwind库，不做AutoMigrate
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	// TranslateError把1062等驱动错误转换为gorm.ErrDuplicatedKey
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	slog.Info("数据库连接成功",
		slog.String("host", cfg.Database.Host),
		slog.String("dbname", cfg.Database.DBName),
	)

	return db, nil
}

// ConnProvider 连接提供者
// 仓储通过它获取连接，而不是直接持有*gorm.DB：
// 1. 未配置数据库时每次调用返回配置错误（服务仍可启动）
// 2. context中存在事务时返回事务连接
type ConnProvider interface {
	Conn(ctx context.Context) (*gorm.DB, error)
}

type dbProvider struct {
	db *gorm.DB
}

// NewDBProvider 根据配置创建连接提供者
// 数据库未配置时不返回错误，由每次操作返回apperrors.ErrConfiguration
func NewDBProvider(cfg *config.Config) (ConnProvider, func(), error) {
	if !cfg.Database.Configured() {
		slog.Warn("数据库连接未配置，所有数据操作将返回配置错误")
		return &dbProvider{}, func() {}, nil
	}

	db, err := NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return &dbProvider{db: db}, cleanup, nil
}

// NewStaticProvider 使用已有连接创建提供者（测试、集成测试使用）
func NewStaticProvider(db *gorm.DB) ConnProvider {
	return &dbProvider{db: db}
}

// Conn 获取连接
// 优先使用context中的事务DB（由TxManager注入）
func (p *dbProvider) Conn(ctx context.Context) (*gorm.DB, error) {
	if tx, ok := txFromContext(ctx); ok {
		return tx, nil
	}
	if p.db == nil {
		return nil, apperrors.ErrConfiguration
	}
	return p.db.WithContext(ctx), nil
}

// CustomerModel GORM客户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，列名沿用Northwind库的大驼峰命名
// 2. domain/customer是领域实体，不依赖GORM
// 3. 可空列使用*string，与领域实体一一对应
type CustomerModel struct {
	CustomerID  string  `gorm:"column:CustomerID;primaryKey;size:5"`
	CompanyName string  `gorm:"column:CompanyName;size:40;not null"`
	ContactName string  `gorm:"column:ContactName;size:30"`
	Address     *string `gorm:"column:Address;size:60"`
	City        *string `gorm:"column:City;size:15"`
	Region      *string `gorm:"column:Region;size:15"`
	PostalCode  *string `gorm:"column:PostalCode;size:10"`
	Country     *string `gorm:"column:Country;size:15"`
	Phone       *string `gorm:"column:Phone;size:24"`
	Fax         *string `gorm:"column:Fax;size:24"`
}

// TableName 指定表名
func (CustomerModel) TableName() string {
	return "Customers"
}
