package customer

import (
	"context"

	"github.com/xiebiao/northwind/internal/domain/customer"
	"github.com/xiebiao/northwind/internal/infrastructure/config"
)

// ListCustomersUseCase 客户列表查询用例
// 设计说明:
// 1. 每页条数固定(app.page_size),客户端只传页码和搜索词
// 2. 页码超出最后一页时修正为最后一页,返回修正后的页码
type ListCustomersUseCase struct {
	repo     customer.Repository
	pageSize int
}

// NewListCustomersUseCase 创建列表查询用例
func NewListCustomersUseCase(repo customer.Repository, cfg *config.Config) *ListCustomersUseCase {
	pageSize := cfg.App.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return &ListCustomersUseCase{
		repo:     repo,
		pageSize: pageSize,
	}
}

// ListCustomersRequest 列表查询请求
type ListCustomersRequest struct {
	Page   int    // 页码(从1开始)
	Search string // 搜索关键词(匹配编号、公司名、联系人、国家)
}

// ListCustomersResponse 列表查询响应
type ListCustomersResponse struct {
	List       []*CustomerDTO `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
	Search     string         `json:"search"`
}

// Execute 执行列表查询
// 1. 页码小于1时修正为1
// 2. 查询当前页和匹配总数
// 3. 当前页为空且总数大于0说明页码越界,改查最后一页
func (uc *ListCustomersUseCase) Execute(ctx context.Context, req ListCustomersRequest) (*ListCustomersResponse, error) {
	// 1. 页码默认值
	page := req.Page
	if page < 1 {
		page = 1
	}

	// 2. 查询
	params := customer.ListParams{Page: page, PageSize: uc.pageSize, Search: req.Search}
	customers, total, err := uc.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	totalPages := pageCount(total, uc.pageSize)

	// 3. 页码越界
	if len(customers) == 0 && total > 0 && page > totalPages {
		page = totalPages
		params.Page = page
		customers, total, err = uc.repo.List(ctx, params)
		if err != nil {
			return nil, err
		}
		totalPages = pageCount(total, uc.pageSize)
	}

	list := make([]*CustomerDTO, len(customers))
	for i, c := range customers {
		list[i] = ToDTO(c)
	}

	return &ListCustomersResponse{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   uc.pageSize,
		TotalPages: totalPages,
		Search:     req.Search,
	}, nil
}

func pageCount(total int64, pageSize int) int {
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}
