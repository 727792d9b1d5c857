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

	"github.com/xiebiao/northwind/internal/domain/order"
	apperrors "github.com/xiebiao/northwind/pkg/errors"
)

func newOrderRepo(t *testing.T) (order.Repository, sqlmock.Sqlmock) {
	conns, mock := newMockProvider(t)
	return NewOrderRepository(conns, NewTxManager(conns)), mock
}

func TestOrderRepository_FindDeleteSummary(t *testing.T) {
	repo, mock := newOrderRepo(t)

	orderDate := time.Date(1996, 7, 4, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(deleteSummarySQL)).
		WithArgs(int64(10248)).
		WillReturnRows(sqlmock.NewRows([]string{"OrderDate", "CompanyName"}).
			AddRow(orderDate, "Vins et alcools Chevalier"))

	s, err := repo.FindDeleteSummary(context.Background(), 10248)
	require.NoError(t, err)

	assert.Equal(t, int64(10248), s.OrderID)
	require.NotNil(t, s.OrderDate)
	assert.True(t, orderDate.Equal(*s.OrderDate))
	assert.Equal(t, "Vins et alcools Chevalier", s.CompanyName)
}

func TestOrderRepository_FindDeleteSummary_NotFound(t *testing.T) {
	repo, mock := newOrderRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(deleteSummarySQL)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"OrderDate", "CompanyName"}))

	_, err := repo.FindDeleteSummary(context.Background(), 1)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestOrderRepository_Delete_Commits(t *testing.T) {
	repo, mock := newOrderRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteOrderDetailsSQL)).
		WithArgs(int64(10248)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(deleteOrderSQL)).
		WithArgs(int64(10248)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(context.Background(), 10248))
}

func TestOrderRepository_Delete_UnknownOrderRollsBack(t *testing.T) {
	repo, mock := newOrderRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteOrderDetailsSQL)).
		WithArgs(int64(99999)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteOrderSQL)).
		WithArgs(int64(99999)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 99999)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestOrderRepository_Delete_HeaderFailureRollsBackDetails(t *testing.T) {
	repo, mock := newOrderRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteOrderDetailsSQL)).
		WithArgs(int64(10248)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(deleteOrderSQL)).
		WithArgs(int64(10248)).
		WillReturnError(errors.New("Lock wait timeout exceeded; try restarting transaction"))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 10248)
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
	assert.Contains(t, appErr.Message, "Lock wait timeout")
}

func TestOrderRepository_Delete_DetailsFailure(t *testing.T) {
	repo, mock := newOrderRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteOrderDetailsSQL)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 10248)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDatabaseError))
}

func TestOrderRepository_Unconfigured(t *testing.T) {
	conns := unconfigured()
	repo := NewOrderRepository(conns, NewTxManager(conns))

	_, err := repo.FindDeleteSummary(context.Background(), 10248)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	err = repo.Delete(context.Background(), 10248)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func newOrderCommand() *order.NewOrder {
	return &order.NewOrder{
		CustomerID:   "VINET",
		EmployeeID:   5,
		RequiredDate: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		ShipVia:      3,
		Freight:      decimal.RequireFromString("32.38"),
		ShipName:     "Vins et alcools Chevalier",
		ShipAddress:  "59 rue de l'Abbaye",
		ShipCity:     "Reims",
		ShipCountry:  "France",
		ProductID:    11,
		Quantity:     12,
		Discount:     0.1,
	}
}

func TestOrderProcedure_CreateFullOrder(t *testing.T) {
	conns, mock := newMockProvider(t)
	proc := NewOrderProcedure(conns)
	o := newOrderCommand()

	mock.ExpectQuery(regexp.QuoteMeta("CALL SP_RegistrarNuevoPedidoCompleto(")).
		WithArgs(
			"VINET", 5, o.RequiredDate, 3, o.Freight,
			"Vins et alcools Chevalier", "59 rue de l'Abbaye", "Reims",
			nil, nil, // ShipRegion, ShipPostalCode
			"France", 11, 12, 0.1,
		).
		WillReturnRows(sqlmock.NewRows([]string{"NewOrderID"}).AddRow(11078))

	id, err := proc.CreateFullOrder(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, int64(11078), id)
}

func TestOrderProcedure_CreateFullOrder_ReadsNewOrderIDByName(t *testing.T) {
	conns, mock := newMockProvider(t)
	proc := NewOrderProcedure(conns)

	// 订单号不在第一列
	mock.ExpectQuery(regexp.QuoteMeta("CALL SP_RegistrarNuevoPedidoCompleto(")).
		WillReturnRows(sqlmock.NewRows([]string{"Status", "NewOrderID"}).AddRow(1, 11079))

	id, err := proc.CreateFullOrder(context.Background(), newOrderCommand())
	require.NoError(t, err)
	assert.Equal(t, int64(11079), id)
}

func TestOrderProcedure_CreateFullOrder_Rejected(t *testing.T) {
	tests := []struct {
		name string
		rows *sqlmock.Rows
	}{
		{"没有返回行", sqlmock.NewRows([]string{"NewOrderID"})},
		{"返回NULL", sqlmock.NewRows([]string{"NewOrderID"}).AddRow(nil)},
		{"返回-1", sqlmock.NewRows([]string{"NewOrderID"}).AddRow(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conns, mock := newMockProvider(t)
			proc := NewOrderProcedure(conns)

			mock.ExpectQuery(regexp.QuoteMeta("CALL SP_RegistrarNuevoPedidoCompleto(")).
				WillReturnRows(tt.rows)

			_, err := proc.CreateFullOrder(context.Background(), newOrderCommand())
			assert.ErrorIs(t, err, order.ErrOrderRejected)
		})
	}
}

func TestOrderProcedure_CreateFullOrder_ProcedureError(t *testing.T) {
	conns, mock := newMockProvider(t)
	proc := NewOrderProcedure(conns)

	mock.ExpectQuery(regexp.QuoteMeta("CALL SP_RegistrarNuevoPedidoCompleto(")).
		WillReturnError(errors.New("Cannot add or update a child row: a foreign key constraint fails"))

	_, err := proc.CreateFullOrder(context.Background(), newOrderCommand())

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
	assert.Contains(t, appErr.Message, "foreign key constraint")
}
