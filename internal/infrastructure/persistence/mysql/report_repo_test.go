package mysql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/northwind/internal/domain/report"
	"github.com/xiebiao/northwind/internal/infrastructure/config"
	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

func newReportRepo(t *testing.T, timeout time.Duration) (report.Repository, sqlmock.Sqlmock) {
	conns, mock := newMockProvider(t)
	return NewReportRepository(conns, config.ReportConfig{TotalSalesTimeout: timeout}), mock
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReportRepository_OrderLines(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	// Discount是FLOAT列,0.15读出来是0.15000000596046448
	mock.ExpectQuery(regexp.QuoteMeta(orderLinesSQL)).
		WithArgs(int64(10248)).
		WillReturnRows(sqlmock.NewRows([]string{"ProductID", "ProductName", "UnitPrice", "Quantity", "Discount"}).
			AddRow(11, "Queso Cabrales", "14.00", 12, 0.0).
			AddRow(42, "Singaporean Hokkien Fried Mee", "9.80", 10, 0.15000000596046448))

	lines, err := repo.OrderLines(context.Background(), 10248)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, 11, lines[0].ProductID)
	assert.True(t, lines[0].Total().Equal(dec("168")))

	assert.Equal(t, int64(10248), lines[1].OrderID)
	assert.True(t, lines[1].Discount.Equal(dec("0.15")))
	assert.True(t, lines[1].Total().Equal(dec("83.3")), "got %s", lines[1].Total())
}

func TestReportRepository_CustomerHistory_NullSafe(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	orderDate := time.Date(1997, 8, 25, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(customerHistorySQL)).
		WithArgs("ALFKI").
		WillReturnRows(sqlmock.NewRows([]string{"OrderID", "OrderDate", "Total"}).
			AddRow(10643, orderDate, "814.50").
			AddRow(nil, nil, nil))

	rows, err := repo.CustomerHistory(context.Background(), "alfki")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(10643), rows[0].OrderID)
	assert.True(t, rows[0].Total.Equal(dec("814.5")))
	require.NotNil(t, rows[0].OrderDate)

	assert.Zero(t, rows[1].OrderID)
	assert.Nil(t, rows[1].OrderDate)
	assert.True(t, rows[1].Total.IsZero())
}

func TestReportRepository_CustomerHistory_ReadsColumnsByName(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	// 存储过程多返回了一列,列顺序也和本地库不同
	orderDate := time.Date(1997, 10, 3, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(customerHistorySQL)).
		WithArgs("ALFKI").
		WillReturnRows(sqlmock.NewRows([]string{"Total", "CompanyName", "OrderDate", "OrderID"}).
			AddRow("330.00", "Alfreds Futterkiste", orderDate, 10692))

	rows, err := repo.CustomerHistory(context.Background(), "ALFKI")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, int64(10692), rows[0].OrderID)
	require.NotNil(t, rows[0].OrderDate)
	assert.True(t, orderDate.Equal(*rows[0].OrderDate))
	assert.True(t, rows[0].Total.Equal(dec("330")))
}

func TestReportRepository_OrdersByCustomer(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }
	mock.ExpectQuery(regexp.QuoteMeta(ordersByCustomerSQL)).
		WithArgs("ALFKI").
		WillReturnRows(sqlmock.NewRows([]string{"OrderID", "OrderDate", "RequiredDate", "ShippedDate", "Freight", "ShipCountry"}).
			AddRow(11011, d(1998, 4, 9), d(1998, 5, 7), nil, "1.21", "Germany").
			AddRow(10952, d(1998, 3, 16), d(1998, 4, 27), d(1998, 3, 24), "40.42", "Germany"))

	rows, err := repo.OrdersByCustomer(context.Background(), "ALFKI")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Nil(t, rows[0].ShippedDate)
	assert.True(t, rows[0].Freight.Equal(dec("1.21")))
	require.NotNil(t, rows[1].ShippedDate)
	assert.Equal(t, "Germany", rows[1].ShipCountry)
}

func TestReportRepository_SalesByCustomerYear(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	// 两个订单100.00 + 50.00,数据库按客户年度汇总为150.00
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY c.CustomerID, c.CompanyName, YEAR(o.OrderDate)")).
		WillReturnRows(sqlmock.NewRows([]string{"CustomerID", "CompanyName", "SalesYear", "Total"}).
			AddRow("TESTC", "Test Company", 1997, "150.00"))

	rows, err := repo.SalesByCustomerYear(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 1997, rows[0].Year)
	assert.True(t, rows[0].Total.Equal(dec("150")))
}

func TestReportRepository_AverageOrderValue(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("WITH OrderTotals AS (")).
		WillReturnRows(sqlmock.NewRows([]string{"CustomerID", "CompanyName", "OrderYear", "AverageOrder", "YearTotal"}).
			AddRow("TESTC", "Test Company", 1997, "75.00", "150.00"))

	rows, err := repo.AverageOrderValue(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.True(t, rows[0].AverageOrder.Equal(dec("75")))
	assert.True(t, rows[0].YearTotal.Equal(dec("150")))
}

func TestReportRepository_SalesByCustomerMonth(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY SalesYear DESC, SalesMonth DESC, Total DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"CustomerID", "CompanyName", "SalesYear", "SalesMonth", "Total"}).
			AddRow("ERNSH", "Ernst Handel", 1998, 5, "2286.00").
			AddRow("QUICK", "QUICK-Stop", 1998, 4, "10588.50"))

	rows, err := repo.SalesByCustomerMonth(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 5, rows[0].Month)
	assert.Equal(t, "QUICK", rows[1].CustomerID)
}

func TestReportRepository_SalesByEmployeeYear(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("CONCAT(e.FirstName, ' ', e.LastName) AS EmployeeName")).
		WillReturnRows(sqlmock.NewRows([]string{"EmployeeName", "SalesYear", "Total"}).
			AddRow("Andrew Fuller", 1996, "21965.20").
			AddRow("Andrew Fuller", 1997, "70444.14"))

	rows, err := repo.SalesByEmployeeYear(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Andrew Fuller", rows[0].EmployeeName)
	assert.Equal(t, 1996, rows[0].Year)
}

func TestReportRepository_TotalSales_EmptyFilterIsWildcard(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (? = '' OR c.CustomerID = ?)")).
		WithArgs("", "", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"CustomerID", "CompanyName", "Region", "Total"}).
			AddRow("QUICK", "QUICK-Stop", "Germany", "110277.31").
			AddRow("ERNSH", "Ernst Handel", "Austria", "104874.98"))

	rows, err := repo.TotalSales(context.Background(), report.TotalSalesFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestReportRepository_TotalSales_Filters(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (? = '' OR c.CustomerID = ?)")).
		WithArgs("QUICK", "QUICK", "Germany", "Germany").
		WillReturnRows(sqlmock.NewRows([]string{"CustomerID", "CompanyName", "Region", "Total"}).
			AddRow("QUICK", "QUICK-Stop", "Germany", "110277.31"))

	rows, err := repo.TotalSales(context.Background(), report.TotalSalesFilter{CustomerID: " quick", Region: "Germany "})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Germany", rows[0].Region)
}

func TestReportRepository_TotalSales_Timeout(t *testing.T) {
	repo, mock := newReportRepo(t, 20*time.Millisecond)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (? = '' OR c.CustomerID = ?)")).
		WillDelayFor(500 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"CustomerID", "CompanyName", "Region", "Total"}))

	_, err := repo.TotalSales(context.Background(), report.TotalSalesFilter{})

	// 超时是独立的错误类型,不是一般的执行错误
	assert.ErrorIs(t, err, apperrors.ErrTimeout)
}

func TestReportRepository_CustomersByCountry(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(customersByCountrySQL)).
		WithArgs("Mexico").
		WillReturnRows(sqlmock.NewRows([]string{"CustomerID", "CompanyName", "ContactName", "Country"}).
			AddRow("ANATR", "Ana Trujillo Emparedados y helados", "Ana Trujillo", "Mexico").
			AddRow("ANTON", "Antonio Moreno Taquería", nil, "Mexico"))

	rows, err := repo.CustomersByCountry(context.Background(), " Mexico ")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Empty(t, rows[1].ContactName)
}

func TestReportRepository_ErrorsAreSurfaced(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("WITH OrderTotals AS (")).
		WillReturnError(errors.New("Unknown column 'od.Discount' in 'field list'"))

	rows, err := repo.AverageOrderValue(context.Background())
	assert.Nil(t, rows)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
	assert.Contains(t, appErr.Message, "Unknown column")
}

func TestReportRepository_DecodeError(t *testing.T) {
	repo, mock := newReportRepo(t, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY c.CustomerID, c.CompanyName, YEAR(o.OrderDate)")).
		WillReturnRows(sqlmock.NewRows([]string{"CustomerID", "CompanyName", "SalesYear", "Total"}).
			AddRow("TESTC", "Test Company", "not-a-year", "1.00"))

	_, err := repo.SalesByCustomerYear(context.Background())
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDatabaseError))
}

func TestReportRepository_Unconfigured(t *testing.T) {
	repo := NewReportRepository(unconfigured(), config.ReportConfig{TotalSalesTimeout: time.Second})
	ctx := context.Background()

	_, err := repo.OrderLines(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	_, err = repo.TotalSales(ctx, report.TotalSalesFilter{})
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	_, err = repo.SalesByEmployeeYear(ctx)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}
