// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/postgres"
	"github.com/taibuivan/medora/internal/product"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestCreate_SingleTransaction(t *testing.T) {
	mock := newMock(t)
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBeginTx(postgres.ReadWriteTx)
	mock.ExpectQuery(regexp.QuoteMeta(queryInsertOrder)).
		WithArgs(pgxmock.AnyArg(), buyerID, 4.7,
			"12 Tran Phu", "Hue", "Thua Thien Hue", "530000", "VN", 0.0, 0.0, "Card", "pending").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta(queryInsertItems)).
		WithArgs(pgxmock.AnyArg(), []string{gloveID}, []string{"Gloves"}, []float64{2.35}, []int32{2}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	products := catalog{gloveID: {ID: gloveID, Name: "Gloves", Price: 2.35}}
	service := NewService(NewPostgresRepository(mock), products, postgres.NewTxManager(mock), zap.NewNop())

	input := validInput(ItemInput{ProductID: gloveID, Quantity: 2})
	input.PaymentMethod = PaymentCard
	order, err := service.Create(context.Background(), buyerID, input)
	require.NoError(t, err)
	assert.Equal(t, now, order.CreatedAt)
}

func TestListByUser_AttachesItems(t *testing.T) {
	mock := newMock(t)
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	orderID := "0190c8e4-0000-7000-8000-0000000000c1"

	mock.ExpectQuery(regexp.QuoteMeta(queryOrdersByUser)).
		WithArgs(buyerID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "total_price", "street", "city", "state", "postal_code", "country",
			"latitude", "longitude", "payment_method", "status", "created_at", "updated_at",
		}).AddRow(orderID, buyerID, 0.3, "12 Tran Phu", "Hue", "TTH", "530000", "VN", 16.4, 107.5, "COD", "shipped", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(queryItemsForOrders)).
		WithArgs([]string{orderID}).
		WillReturnRows(pgxmock.NewRows([]string{"order_id", "product_id", "product_name", "unit_price", "quantity"}).
			AddRow(orderID, maskID, "Mask", 0.1, 3))

	orders, err := NewPostgresRepository(mock).ListByUser(context.Background(), buyerID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, StatusShipped, orders[0].Status)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 3, orders[0].Items[0].Quantity)
}

func TestUpdateStatus_Missing(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(queryUpdateOrderStatus)).
		WithArgs(noOrder, "delivered").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := NewPostgresRepository(mock).UpdateStatus(context.Background(), noOrder, StatusDelivered)
	assert.ErrorIs(t, err, ErrNotFound)
}

var _ ProductLookup = (*product.Service)(nil)
