package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/northwind/internal/domain/customer"
)

// customerRepository 客户仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/customer/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如编号重复),转换为业务错误
type customerRepository struct {
	conns ConnProvider
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(conns ConnProvider) customer.Repository {
	return &customerRepository{conns: conns}
}

// List 分页查询客户列表
// 搜索词不为空时匹配编号、公司名、联系人、国家(不区分大小写的子串匹配)
func (r *customerRepository) List(ctx context.Context, params customer.ListParams) (list []*customer.Customer, total int64, err error) {
	ctx, done := observe(ctx, "customer", "List")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return nil, 0, err
	}

	// 构建过滤条件(Count和Find各用一个新的Statement)
	filtered := func() *gorm.DB {
		q := db.Model(&CustomerModel{})
		if term := strings.TrimSpace(params.Search); term != "" {
			like := "%" + escapeLike(strings.ToLower(term)) + "%"
			q = q.Where("LOWER(CustomerID) LIKE ? OR LOWER(CompanyName) LIKE ? OR LOWER(ContactName) LIKE ? OR LOWER(Country) LIKE ?",
				like, like, like, like)
		}
		return q
	}

	// 1. 查询总数
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, execError(err, "查询客户总数失败")
	}

	// 2. 查询当前页(超出范围时返回空列表)
	var models []CustomerModel
	err = filtered().
		Order("CustomerID ASC").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, execError(err, "查询客户列表失败")
	}

	// 3. 转换为领域实体
	list = make([]*customer.Customer, len(models))
	for i := range models {
		list[i] = toCustomerEntity(&models[i])
	}

	return list, total, nil
}

// FindByID 根据编号查询客户
func (r *customerRepository) FindByID(ctx context.Context, id string) (c *customer.Customer, err error) {
	ctx, done := observe(ctx, "customer", "FindByID")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var model CustomerModel
	err = db.Where("CustomerID = ?", customer.NormalizeID(id)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, execError(err, "查询客户失败")
	}

	return toCustomerEntity(&model), nil
}

// Create 新建客户
func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) (err error) {
	ctx, done := observe(ctx, "customer", "Create")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return err
	}

	// 1. 编号转大写后写入
	c.Normalize()
	model := toCustomerModel(c)

	// 2. 插入数据库
	if err := db.Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return customer.ErrCustomerDuplicate
		}
		return execError(err, "创建客户失败")
	}

	return nil
}

// Update 更新客户(除编号外的所有字段)
// DSN开启了clientFoundRows,RowsAffected为匹配行数,值未变化也不会误判为不存在
func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) (err error) {
	ctx, done := observe(ctx, "customer", "Update")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return err
	}

	c.Normalize()

	// 使用map更新,nil字段写入NULL
	result := db.Model(&CustomerModel{}).
		Where("CustomerID = ?", c.ID).
		Updates(map[string]interface{}{
			"CompanyName": c.CompanyName,
			"ContactName": c.ContactName,
			"Address":     c.Address,
			"City":        c.City,
			"Region":      c.Region,
			"PostalCode":  c.PostalCode,
			"Country":     c.Country,
			"Phone":       c.Phone,
			"Fax":         c.Fax,
		})

	if result.Error != nil {
		return execError(result.Error, "更新客户失败")
	}

	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toCustomerEntity GORM模型 → 领域实体
func toCustomerEntity(model *CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:          model.CustomerID,
		CompanyName: model.CompanyName,
		ContactName: model.ContactName,
		Address:     model.Address,
		City:        model.City,
		Region:      model.Region,
		PostalCode:  model.PostalCode,
		Country:     model.Country,
		Phone:       model.Phone,
		Fax:         model.Fax,
	}
}

// toCustomerModel 领域实体 → GORM模型
func toCustomerModel(c *customer.Customer) *CustomerModel {
	return &CustomerModel{
		CustomerID:  c.ID,
		CompanyName: c.CompanyName,
		ContactName: c.ContactName,
		Address:     c.Address,
		City:        c.City,
		Region:      c.Region,
		PostalCode:  c.PostalCode,
		Country:     c.Country,
		Phone:       c.Phone,
		Fax:         c.Fax,
	}
}
