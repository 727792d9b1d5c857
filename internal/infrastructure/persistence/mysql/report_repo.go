package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/northwind/internal/domain/customer"
	"github.com/xiebiao/northwind/internal/domain/order"
	"github.com/xiebiao/northwind/internal/domain/report"
	"github.com/xiebiao/northwind/internal/infrastructure/config"
)

// 报表SQL
// 金额 = UnitPrice * Quantity * (1 - Discount),逐行累加后保留两位小数
const (
	orderLinesSQL = "SELECT od.ProductID, p.ProductName, od.UnitPrice, od.Quantity, od.Discount " +
		"FROM `Order Details` AS od JOIN Products AS p ON p.ProductID = od.ProductID " +
		"WHERE od.OrderID = ? ORDER BY od.ProductID"

	customerHistorySQL = "CALL SP_ObtenerHistorialPedidos(?)"

	ordersByCustomerSQL = "SELECT OrderID, OrderDate, RequiredDate, ShippedDate, Freight, ShipCountry " +
		"FROM Orders WHERE CustomerID = ? ORDER BY OrderDate DESC"

	averageOrderValueSQL = `WITH OrderTotals AS (
    SELECT o.OrderID, o.CustomerID, YEAR(o.OrderDate) AS OrderYear,
           SUM(od.UnitPrice * od.Quantity * (1 - od.Discount)) AS OrderTotal
    FROM Orders o
    JOIN ` + "`Order Details`" + ` od ON o.OrderID = od.OrderID
    GROUP BY o.OrderID, o.CustomerID, YEAR(o.OrderDate)
)
SELECT c.CustomerID, c.CompanyName, t.OrderYear,
       CAST(AVG(t.OrderTotal) AS DECIMAL(12,2)) AS AverageOrder,
       CAST(SUM(t.OrderTotal) AS DECIMAL(12,2)) AS YearTotal
FROM OrderTotals t
JOIN Customers c ON t.CustomerID = c.CustomerID
GROUP BY c.CustomerID, c.CompanyName, t.OrderYear
ORDER BY t.OrderYear DESC, YearTotal DESC`

	salesByCustomerYearSQL = `SELECT c.CustomerID, c.CompanyName, YEAR(o.OrderDate) AS SalesYear,
       CAST(SUM(od.UnitPrice * od.Quantity * (1 - od.Discount)) AS DECIMAL(12,2)) AS Total
FROM Customers c
JOIN Orders o ON c.CustomerID = o.CustomerID
JOIN ` + "`Order Details`" + ` od ON o.OrderID = od.OrderID
GROUP BY c.CustomerID, c.CompanyName, YEAR(o.OrderDate)
ORDER BY SalesYear DESC, Total DESC`

	salesByCustomerMonthSQL = `SELECT c.CustomerID, c.CompanyName, YEAR(o.OrderDate) AS SalesYear, MONTH(o.OrderDate) AS SalesMonth,
       CAST(SUM(od.UnitPrice * od.Quantity * (1 - od.Discount)) AS DECIMAL(12,2)) AS Total
FROM Customers c
JOIN Orders o ON c.CustomerID = o.CustomerID
JOIN ` + "`Order Details`" + ` od ON o.OrderID = od.OrderID
GROUP BY c.CustomerID, c.CompanyName, YEAR(o.OrderDate), MONTH(o.OrderDate)
ORDER BY SalesYear DESC, SalesMonth DESC, Total DESC`

	// 没有用户输入,不带参数
	salesByEmployeeYearSQL = `SELECT CONCAT(e.FirstName, ' ', e.LastName) AS EmployeeName, YEAR(o.OrderDate) AS SalesYear,
       CAST(SUM(od.UnitPrice * od.Quantity * (1 - od.Discount)) AS DECIMAL(12,2)) AS Total
FROM Employees e
JOIN Orders o ON e.EmployeeID = o.EmployeeID
JOIN ` + "`Order Details`" + ` od ON o.OrderID = od.OrderID
GROUP BY e.EmployeeID, e.FirstName, e.LastName, YEAR(o.OrderDate)
ORDER BY EmployeeName, SalesYear`

	// 空字符串表示不过滤;Region按客户国家匹配
	totalSalesSQL = `SELECT c.CustomerID, c.CompanyName, COALESCE(c.Country, '') AS Region,
       CAST(SUM(od.UnitPrice * od.Quantity * (1 - od.Discount)) AS DECIMAL(12,2)) AS Total
FROM Customers c
JOIN Orders o ON c.CustomerID = o.CustomerID
JOIN ` + "`Order Details`" + ` od ON o.OrderID = od.OrderID
WHERE (? = '' OR c.CustomerID = ?)
  AND (? = '' OR c.Country = ?)
GROUP BY c.CustomerID, c.CompanyName, c.Country
ORDER BY Total DESC`

	customersByCountrySQL = "SELECT CustomerID, CompanyName, ContactName, COALESCE(Country, '') " +
		"FROM Customers WHERE Country = ? ORDER BY CustomerID"
)

// reportRepository 报表仓储实现(MySQL)
// 所有报表都是只读查询,每次调用从连接池取一个连接,rows关闭后归还
type reportRepository struct {
	conns             ConnProvider
	totalSalesTimeout time.Duration
}

// NewReportRepository 创建报表仓储
func NewReportRepository(conns ConnProvider, cfg config.ReportConfig) report.Repository {
	return &reportRepository{
		conns:             conns,
		totalSalesTimeout: cfg.TotalSalesTimeout,
	}
}

// OrderLines 订单明细
func (r *reportRepository) OrderLines(ctx context.Context, orderID int64) (lines []*order.LineItem, err error) {
	ctx, done := observe(ctx, "report", "OrderLines")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return nil, err
	}

	lines, err = queryRows(db, decodeLineItem(orderID), orderLinesSQL, orderID)
	if err != nil {
		return nil, execError(err, "查询订单明细失败")
	}
	return lines, nil
}

// CustomerHistory 客户历史订单(存储过程)
func (r *reportRepository) CustomerHistory(ctx context.Context, customerID string) (rows []*report.HistoryRow, err error) {
	ctx, done := observe(ctx, "report", "CustomerHistory")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var records []historyRecord
	if err = db.Raw(customerHistorySQL, customer.NormalizeID(customerID)).Scan(&records).Error; err != nil {
		return nil, execError(err, "执行客户历史订单存储过程失败")
	}

	rows = make([]*report.HistoryRow, 0, len(records))
	for i := range records {
		rows = append(rows, records[i].toRow())
	}
	return rows, nil
}

// OrdersByCustomer 客户的订单
func (r *reportRepository) OrdersByCustomer(ctx context.Context, customerID string) (rows []*report.CustomerOrderRow, err error) {
	ctx, done := observe(ctx, "report", "OrdersByCustomer")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err = queryRows(db, decodeCustomerOrderRow, ordersByCustomerSQL, customer.NormalizeID(customerID))
	if err != nil {
		return nil, execError(err, "查询客户订单失败")
	}
	return rows, nil
}

// AverageOrderValue 客户年度平均订单金额
// 先按订单汇总金额,再按客户、年份求平均和合计
func (r *reportRepository) AverageOrderValue(ctx context.Context) (rows []*report.AverageOrderRow, err error) {
	ctx, done := observe(ctx, "report", "AverageOrderValue")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err = queryRows(db, decodeAverageOrderRow, averageOrderValueSQL)
	if err != nil {
		return nil, execError(err, "查询平均订单金额失败")
	}
	return rows, nil
}

// SalesByCustomerYear 客户年度销售额
func (r *reportRepository) SalesByCustomerYear(ctx context.Context) (rows []*report.CustomerYearSalesRow, err error) {
	ctx, done := observe(ctx, "report", "SalesByCustomerYear")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err = queryRows(db, decodeCustomerYearSalesRow, salesByCustomerYearSQL)
	if err != nil {
		return nil, execError(err, "查询客户年度销售额失败")
	}
	return rows, nil
}

// SalesByCustomerMonth 客户月度销售额
func (r *reportRepository) SalesByCustomerMonth(ctx context.Context) (rows []*report.CustomerMonthSalesRow, err error) {
	ctx, done := observe(ctx, "report", "SalesByCustomerMonth")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err = queryRows(db, decodeCustomerMonthSalesRow, salesByCustomerMonthSQL)
	if err != nil {
		return nil, execError(err, "查询客户月度销售额失败")
	}
	return rows, nil
}

// SalesByEmployeeYear 销售员年度销售额
func (r *reportRepository) SalesByEmployeeYear(ctx context.Context) (rows []*report.EmployeeYearSalesRow, err error) {
	ctx, done := observe(ctx, "report", "SalesByEmployeeYear")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err = queryRows(db, decodeEmployeeYearSalesRow, salesByEmployeeYearSQL)
	if err != nil {
		return nil, execError(err, "查询销售员年度销售额失败")
	}
	return rows, nil
}

// TotalSales 客户累计销售额
// 语句在totalSalesTimeout内未完成返回apperrors.ErrTimeout
func (r *reportRepository) TotalSales(ctx context.Context, filter report.TotalSalesFilter) (rows []*report.TotalSalesRow, err error) {
	ctx, done := observe(ctx, "report", "TotalSales")
	defer func() { done(err) }()

	ctx, cancel := context.WithTimeout(ctx, r.totalSalesTimeout)
	defer cancel()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return nil, err
	}

	customerID := customer.NormalizeID(filter.CustomerID)
	region := strings.TrimSpace(filter.Region)

	rows, err = queryRows(db, decodeTotalSalesRow, totalSalesSQL,
		customerID, customerID,
		region, region,
	)
	if err != nil {
		return nil, timeoutError(ctx, err, "查询累计销售额失败")
	}
	return rows, nil
}

// CustomersByCountry 某个国家的客户
func (r *reportRepository) CustomersByCountry(ctx context.Context, country string) (rows []*report.CustomerRow, err error) {
	ctx, done := observe(ctx, "report", "CustomersByCountry")
	defer func() { done(err) }()

	db, err := r.conns.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err = queryRows(db, decodeCustomerRow, customersByCountrySQL, strings.TrimSpace(country))
	if err != nil {
		return nil, execError(err, "按国家查询客户失败")
	}
	return rows, nil
}

// =========================================
// 行解码
// =========================================

// decodeLineItem Discount是FLOAT列,按float读取后保留4位小数
func decodeLineItem(orderID int64) rowDecoder[*order.LineItem] {
	return func(rows *sql.Rows) (*order.LineItem, error) {
		var (
			li       = &order.LineItem{OrderID: orderID}
			discount float64
		)
		if err := rows.Scan(&li.ProductID, &li.ProductName, &li.UnitPrice, &li.Quantity, &discount); err != nil {
			return nil, err
		}
		li.Discount = decimal.NewFromFloat(discount).Round(4)
		return li, nil
	}
}

// historyRecord 历史订单存储过程的结果行
// 存储过程不属于本服务,按列名读取,多出的列忽略;各列都可能为NULL
type historyRecord struct {
	OrderID   sql.NullInt64       `gorm:"column:OrderID"`
	OrderDate sql.NullTime        `gorm:"column:OrderDate"`
	Total     decimal.NullDecimal `gorm:"column:Total"`
}

func (h *historyRecord) toRow() *report.HistoryRow {
	row := &report.HistoryRow{
		OrderID:   h.OrderID.Int64,
		OrderDate: nullTime(h.OrderDate),
		Total:     decimal.Zero,
	}
	if h.Total.Valid {
		row.Total = h.Total.Decimal
	}
	return row
}

func decodeCustomerOrderRow(rows *sql.Rows) (*report.CustomerOrderRow, error) {
	var (
		row          report.CustomerOrderRow
		orderDate    sql.NullTime
		requiredDate sql.NullTime
		shippedDate  sql.NullTime
		freight      decimal.NullDecimal
		shipCountry  sql.NullString
	)
	if err := rows.Scan(&row.OrderID, &orderDate, &requiredDate, &shippedDate, &freight, &shipCountry); err != nil {
		return nil, err
	}

	row.OrderDate = orderDate.Time
	row.RequiredDate = requiredDate.Time
	row.ShippedDate = nullTime(shippedDate)
	row.Freight = decimal.Zero
	if freight.Valid {
		row.Freight = freight.Decimal
	}
	row.ShipCountry = shipCountry.String
	return &row, nil
}

func decodeAverageOrderRow(rows *sql.Rows) (*report.AverageOrderRow, error) {
	var row report.AverageOrderRow
	if err := rows.Scan(&row.CustomerID, &row.CompanyName, &row.Year, &row.AverageOrder, &row.YearTotal); err != nil {
		return nil, err
	}
	return &row, nil
}

func decodeCustomerYearSalesRow(rows *sql.Rows) (*report.CustomerYearSalesRow, error) {
	var row report.CustomerYearSalesRow
	if err := rows.Scan(&row.CustomerID, &row.CompanyName, &row.Year, &row.Total); err != nil {
		return nil, err
	}
	return &row, nil
}

func decodeCustomerMonthSalesRow(rows *sql.Rows) (*report.CustomerMonthSalesRow, error) {
	var row report.CustomerMonthSalesRow
	if err := rows.Scan(&row.CustomerID, &row.CompanyName, &row.Year, &row.Month, &row.Total); err != nil {
		return nil, err
	}
	return &row, nil
}

func decodeEmployeeYearSalesRow(rows *sql.Rows) (*report.EmployeeYearSalesRow, error) {
	var row report.EmployeeYearSalesRow
	if err := rows.Scan(&row.EmployeeName, &row.Year, &row.Total); err != nil {
		return nil, err
	}
	return &row, nil
}

func decodeTotalSalesRow(rows *sql.Rows) (*report.TotalSalesRow, error) {
	var row report.TotalSalesRow
	if err := rows.Scan(&row.CustomerID, &row.CompanyName, &row.Region, &row.Total); err != nil {
		return nil, err
	}
	return &row, nil
}

func decodeCustomerRow(rows *sql.Rows) (*report.CustomerRow, error) {
	var (
		row         report.CustomerRow
		contactName sql.NullString
	)
	if err := rows.Scan(&row.CustomerID, &row.CompanyName, &contactName, &row.Country); err != nil {
		return nil, err
	}
	row.ContactName = contactName.String
	return &row, nil
}
