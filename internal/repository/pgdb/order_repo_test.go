package pgdb

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{
	"id", "session_id", "status", "is_b2b", "customer_name", "customer_email", "customer_phone",
	"shipping_address", "gst_number", "currency", "percentage",
	"subtotal", "amount_due_now", "balance_due",
	"payment_session_id", "payment_id", "created_at", "paid_at",
}

var itemCols = []string{"id", "order_id", "product_id", "name", "unit_price", "quantity"}

func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return mock
}

func strPtr(s string) *string { return &s }

func orderRows(status domain.OrderStatus, paymentID *string, paidAt *time.Time) *pgxmock.Rows {
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return pgxmock.NewRows(orderCols).AddRow(
		int64(7), "sess-1", string(status), true, "Asha Rao", "asha@example.com", "+91 98000 00000",
		"12 Oak Street, Pune", "27ABCDE1234F1Z5", "₹", int32(30),
		"300.0000", "90.0000", "210.0000",
		strPtr("ps-7"), paymentID, createdAt, paidAt,
	)
}

func itemRows() *pgxmock.Rows {
	return pgxmock.NewRows(itemCols).
		AddRow(int64(1), int64(7), int64(2), "Ash Chair", int64(10000), int32(3))
}

func TestOrderRepo_MarkPaid(t *testing.T) {
	ctx := context.Background()
	markPaid := `UPDATE orders\s+SET status = \$1, payment_id = \$2, paid_at = NOW\(\)\s+WHERE id = \$3 AND status = \$4`

	t.Run("pending order becomes paid", func(t *testing.T) {
		mock := newMockDB(t)
		repo := NewOrderRepo(mock, converter.New().Order())
		paidAt := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)

		mock.ExpectQuery(markPaid).
			WithArgs("paid", "pay-1", int64(7), "pending").
			WillReturnRows(orderRows(domain.OrderPaid, strPtr("pay-1"), &paidAt))
		mock.ExpectQuery(`FROM order_items`).
			WithArgs([]int64{7}).
			WillReturnRows(itemRows())

		order, err := repo.MarkPaid(ctx, 7, "pay-1")
		require.NoError(t, err)

		assert.True(t, order.IsPaid())
		assert.Equal(t, "pay-1", order.PaymentID)
		assert.Equal(t, "ps-7", order.PaymentSessionID)
		assert.Equal(t, "90", order.AmountDueNow.String())
		require.Len(t, order.Items, 1)
		assert.Equal(t, 3, order.Items[0].Quantity)
		assert.Equal(t, "100", order.Items[0].UnitPrice.String())
	})

	t.Run("already paid order is rejected", func(t *testing.T) {
		mock := newMockDB(t)
		repo := NewOrderRepo(mock, converter.New().Order())
		paidAt := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)

		mock.ExpectQuery(markPaid).
			WithArgs("paid", "pay-2", int64(7), "pending").
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery(`FROM orders WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(orderRows(domain.OrderPaid, strPtr("pay-1"), &paidAt))
		mock.ExpectQuery(`FROM order_items`).
			WithArgs([]int64{7}).
			WillReturnRows(itemRows())

		_, err := repo.MarkPaid(ctx, 7, "pay-2")
		require.ErrorIs(t, err, e.ErrOrderAlreadyPaid)
	})

	t.Run("unknown order", func(t *testing.T) {
		mock := newMockDB(t)
		repo := NewOrderRepo(mock, converter.New().Order())

		mock.ExpectQuery(markPaid).
			WithArgs("paid", "pay-3", int64(99), "pending").
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery(`FROM orders WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.MarkPaid(ctx, 99, "pay-3")
		require.ErrorIs(t, err, e.ErrOrderNotFound)
	})
}

func TestOrderRepo_SetPaymentSession(t *testing.T) {
	mock := newMockDB(t)
	repo := NewOrderRepo(mock, converter.New().Order())
	ctx := context.Background()

	mock.ExpectExec(`UPDATE orders SET payment_session_id = \$1 WHERE id = \$2`).
		WithArgs("ps-7", int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.SetPaymentSession(ctx, 7, "ps-7"))

	mock.ExpectExec(`UPDATE orders SET payment_session_id = \$1 WHERE id = \$2`).
		WithArgs("ps-8", int64(8)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, repo.SetPaymentSession(ctx, 8, "ps-8"), e.ErrOrderNotFound)
}

func TestOrderRepo_List(t *testing.T) {
	mock := newMockDB(t)
	repo := NewOrderRepo(mock, converter.New().Order())

	mock.ExpectQuery(`FROM orders ORDER BY created_at DESC, id DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(50, 0).
		WillReturnRows(orderRows(domain.OrderPending, nil, nil))
	mock.ExpectQuery(`FROM order_items`).
		WithArgs([]int64{7}).
		WillReturnRows(itemRows())

	orders, err := repo.List(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.False(t, orders[0].IsPaid())
	assert.Empty(t, orders[0].PaymentID)
	assert.Nil(t, orders[0].PaidAt)
	assert.Len(t, orders[0].Items, 1)
}

func TestOrderRepo_GetLatestPending(t *testing.T) {
	ctx := context.Background()
	latestPending := `(?s)FROM orders\s+WHERE session_id = \$1 AND status = \$2\s+ORDER BY created_at DESC, id DESC\s+LIMIT 1`

	t.Run("found", func(t *testing.T) {
		mock := newMockDB(t)
		repo := NewOrderRepo(mock, converter.New().Order())

		mock.ExpectQuery(latestPending).
			WithArgs("sess-1", "pending").
			WillReturnRows(orderRows(domain.OrderPending, nil, nil))
		mock.ExpectQuery(`FROM order_items`).
			WithArgs([]int64{7}).
			WillReturnRows(itemRows())

		order, err := repo.GetLatestPending(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, int64(7), order.ID)
		assert.Len(t, order.Items, 1)
	})

	t.Run("none", func(t *testing.T) {
		mock := newMockDB(t)
		repo := NewOrderRepo(mock, converter.New().Order())

		mock.ExpectQuery(latestPending).
			WithArgs("sess-2", "pending").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetLatestPending(ctx, "sess-2")
		require.ErrorIs(t, err, e.ErrOrderNotFound)
	})
}
