package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/northwind/internal/domain/customer"
	"github.com/xiebiao/northwind/internal/domain/order"
	"github.com/xiebiao/northwind/internal/domain/report"
	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

// fakeReports 报表仓储替身,只填充用到的字段
type fakeReports struct {
	lines    []*order.LineItem
	history  []*report.HistoryRow
	orders   []*report.CustomerOrderRow
	averages []*report.AverageOrderRow
	yearly   []*report.CustomerYearSalesRow
	monthly  []*report.CustomerMonthSalesRow
	employee []*report.EmployeeYearSalesRow
	totals   []*report.TotalSalesRow
	byCtry   []*report.CustomerRow

	lastCustomerID string
	lastFilter     report.TotalSalesFilter
	err            error
}

func (f *fakeReports) OrderLines(ctx context.Context, orderID int64) ([]*order.LineItem, error) {
	return f.lines, f.err
}

func (f *fakeReports) CustomerHistory(ctx context.Context, customerID string) ([]*report.HistoryRow, error) {
	f.lastCustomerID = customerID
	return f.history, f.err
}

func (f *fakeReports) OrdersByCustomer(ctx context.Context, customerID string) ([]*report.CustomerOrderRow, error) {
	f.lastCustomerID = customerID
	return f.orders, f.err
}

func (f *fakeReports) AverageOrderValue(ctx context.Context) ([]*report.AverageOrderRow, error) {
	return f.averages, f.err
}

func (f *fakeReports) SalesByCustomerYear(ctx context.Context) ([]*report.CustomerYearSalesRow, error) {
	return f.yearly, f.err
}

func (f *fakeReports) SalesByCustomerMonth(ctx context.Context) ([]*report.CustomerMonthSalesRow, error) {
	return f.monthly, f.err
}

func (f *fakeReports) SalesByEmployeeYear(ctx context.Context) ([]*report.EmployeeYearSalesRow, error) {
	return f.employee, f.err
}

func (f *fakeReports) TotalSales(ctx context.Context, filter report.TotalSalesFilter) ([]*report.TotalSalesRow, error) {
	f.lastFilter = filter
	return f.totals, f.err
}

func (f *fakeReports) CustomersByCountry(ctx context.Context, country string) ([]*report.CustomerRow, error) {
	return f.byCtry, f.err
}

type fakeCustomers struct {
	c *customer.Customer
}

func (f *fakeCustomers) List(ctx context.Context, params customer.ListParams) ([]*customer.Customer, int64, error) {
	return nil, 0, nil
}

func (f *fakeCustomers) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	if f.c == nil || f.c.ID != id {
		return nil, customer.ErrCustomerNotFound
	}
	return f.c, nil
}

func (f *fakeCustomers) Create(ctx context.Context, c *customer.Customer) error { return nil }

func (f *fakeCustomers) Update(ctx context.Context, c *customer.Customer) error { return nil }

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOrderLines_RunningTotal(t *testing.T) {
	repo := &fakeReports{lines: []*order.LineItem{
		{OrderID: 10248, ProductID: 11, ProductName: "Queso Cabrales", UnitPrice: d("14"), Quantity: 12, Discount: decimal.Zero},
		{OrderID: 10248, ProductID: 42, ProductName: "Singaporean Hokkien Fried Mee", UnitPrice: d("9.8"), Quantity: 10, Discount: d("0.15")},
		{OrderID: 10248, ProductID: 72, ProductName: "Mozzarella di Giovanni", UnitPrice: d("34.8"), Quantity: 5, Discount: decimal.Zero},
	}}
	uc := NewOrderLinesUseCase(repo)

	resp, err := uc.Execute(context.Background(), 10248)
	require.NoError(t, err)
	require.Len(t, resp.Lines, 3)

	assert.Equal(t, "168.00", resp.Lines[0].Total)
	assert.Equal(t, "83.30", resp.Lines[1].Total)
	assert.Equal(t, "251.30", resp.Lines[1].RunningTotal)
	assert.Equal(t, "425.30", resp.Lines[2].RunningTotal)
	assert.Equal(t, "425.30", resp.GrandTotal)
	assert.Equal(t, "0.15", resp.Lines[1].Discount)
}

func TestOrderLines_Empty(t *testing.T) {
	uc := NewOrderLinesUseCase(&fakeReports{})

	_, err := uc.Execute(context.Background(), 10248)
	assert.ErrorIs(t, err, report.ErrNoOrderLines)

	_, err = uc.Execute(context.Background(), -1)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidParams))
}

func TestCustomerHistory(t *testing.T) {
	date := time.Date(1997, 8, 25, 0, 0, 0, 0, time.UTC)
	repo := &fakeReports{history: []*report.HistoryRow{
		{OrderID: 10643, OrderDate: &date, Total: d("814.5")},
		{OrderID: 0, OrderDate: nil, Total: decimal.Zero},
	}}
	uc := NewCustomerOrdersUseCase(repo, &fakeCustomers{})

	list, err := uc.History(context.Background(), " alfki ")
	require.NoError(t, err)
	assert.Equal(t, "ALFKI", repo.lastCustomerID)

	require.Len(t, list, 2)
	assert.Equal(t, "1997-08-25", list[0].OrderDate)
	assert.Equal(t, "814.50", list[0].Total)
	assert.Empty(t, list[1].OrderDate)

	_, err = uc.History(context.Background(), "AB")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidParams))
}

func TestCustomerOrders(t *testing.T) {
	city := "Berlin"
	shipped := time.Date(1998, 3, 24, 0, 0, 0, 0, time.UTC)
	repo := &fakeReports{orders: []*report.CustomerOrderRow{
		{OrderID: 11011, OrderDate: time.Date(1998, 4, 9, 0, 0, 0, 0, time.UTC), RequiredDate: time.Date(1998, 5, 7, 0, 0, 0, 0, time.UTC), Freight: d("1.21"), ShipCountry: "Germany"},
		{OrderID: 10952, OrderDate: time.Date(1998, 3, 16, 0, 0, 0, 0, time.UTC), RequiredDate: time.Date(1998, 4, 27, 0, 0, 0, 0, time.UTC), ShippedDate: &shipped, Freight: d("40.42"), ShipCountry: "Germany"},
	}}
	customers := &fakeCustomers{c: &customer.Customer{ID: "ALFKI", CompanyName: "Alfreds Futterkiste", ContactName: "Maria Anders", City: &city}}
	uc := NewCustomerOrdersUseCase(repo, customers)

	resp, err := uc.Orders(context.Background(), "alfki")
	require.NoError(t, err)

	assert.Equal(t, "Alfreds Futterkiste", resp.Customer.CompanyName)
	assert.Equal(t, "Berlin", resp.Customer.City)
	assert.Empty(t, resp.Customer.Country)
	require.Len(t, resp.Orders, 2)
	assert.Empty(t, resp.Orders[0].ShippedDate)
	assert.Equal(t, "1998-03-24", resp.Orders[1].ShippedDate)
	assert.Equal(t, "1.21", resp.Orders[0].Freight)
}

func TestCustomerOrders_UnknownCustomer(t *testing.T) {
	repo := &fakeReports{}
	uc := NewCustomerOrdersUseCase(repo, &fakeCustomers{})

	_, err := uc.Orders(context.Background(), "ZZZZZ")
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
	// 客户不存在时不查订单
	assert.Empty(t, repo.lastCustomerID)
}

func TestSalesReports(t *testing.T) {
	repo := &fakeReports{
		averages: []*report.AverageOrderRow{{CustomerID: "TESTC", CompanyName: "Test Company", Year: 1997, AverageOrder: d("75"), YearTotal: d("150")}},
		yearly:   []*report.CustomerYearSalesRow{{CustomerID: "TESTC", CompanyName: "Test Company", Year: 1997, Total: d("150")}},
		monthly:  []*report.CustomerMonthSalesRow{{CustomerID: "TESTC", CompanyName: "Test Company", Year: 1997, Month: 9, Total: d("50")}},
		employee: []*report.EmployeeYearSalesRow{{EmployeeName: "Nancy Davolio", Year: 1997, Total: d("100")}},
	}
	uc := NewSalesReportUseCase(repo)
	ctx := context.Background()

	averages, err := uc.AverageOrderValue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "75.00", averages[0].AverageOrder)
	assert.Equal(t, "150.00", averages[0].YearTotal)

	yearly, err := uc.SalesByCustomerYear(ctx)
	require.NoError(t, err)
	assert.Equal(t, "150.00", yearly[0].Total)
	assert.Zero(t, yearly[0].Month)

	monthly, err := uc.SalesByCustomerMonth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, monthly[0].Month)

	employee, err := uc.SalesByEmployeeYear(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Nancy Davolio", employee[0].EmployeeName)
}

func TestTotalSales_GrandTotal(t *testing.T) {
	repo := &fakeReports{totals: []*report.TotalSalesRow{
		{CustomerID: "QUICK", CompanyName: "QUICK-Stop", Region: "Germany", Total: d("110277.31")},
		{CustomerID: "ERNSH", CompanyName: "Ernst Handel", Region: "Austria", Total: d("104874.98")},
	}}
	uc := NewSalesReportUseCase(repo)

	resp, err := uc.TotalSales(context.Background(), report.TotalSalesFilter{Region: "Germany"})
	require.NoError(t, err)
	assert.Equal(t, "215152.29", resp.GrandTotal)
	assert.Equal(t, "Germany", repo.lastFilter.Region)
}

func TestTotalSales_Timeout(t *testing.T) {
	uc := NewSalesReportUseCase(&fakeReports{err: apperrors.ErrTimeout})

	_, err := uc.TotalSales(context.Background(), report.TotalSalesFilter{})
	assert.ErrorIs(t, err, apperrors.ErrTimeout)
}

func TestSalesReports_ErrorsAreSurfaced(t *testing.T) {
	uc := NewSalesReportUseCase(&fakeReports{err: apperrors.WrapDB(errors.New("Unknown column"), "查询失败")})
	ctx := context.Background()

	rows, err := uc.SalesByEmployeeYear(ctx)
	assert.Nil(t, rows)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDatabaseError))

	_, err = uc.AverageOrderValue(ctx)
	assert.Error(t, err)
}

func TestCustomersByCountry(t *testing.T) {
	repo := &fakeReports{byCtry: []*report.CustomerRow{
		{CustomerID: "ANATR", CompanyName: "Ana Trujillo Emparedados y helados", ContactName: "Ana Trujillo", Country: "Mexico"},
	}}
	uc := NewSalesReportUseCase(repo)

	list, err := uc.CustomersByCountry(context.Background(), "Mexico")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ANATR", list[0].CustomerID)

	_, err = uc.CustomersByCountry(context.Background(), " ")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidParams))
}
