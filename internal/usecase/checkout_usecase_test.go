package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutDeps struct {
	carts    *fakeCartRepo
	orders   *fakeOrderRepo
	outbox   *fakeOutbox
	payments *fakePayments
	tx       *fakeTx
}

const testSession = "6f1c2f7e-5a0b-4c55-9d5e-1f1a2b3c4d5e"

func newCheckout(pct int) (*CheckoutUseCase, *checkoutDeps) {
	d := &checkoutDeps{
		carts:    newFakeCartRepo(),
		orders:   newFakeOrderRepo(),
		outbox:   &fakeOutbox{},
		payments: &fakePayments{},
		tx:       &fakeTx{},
	}
	uc := NewCheckoutUC(
		d.carts, d.orders, d.outbox, fakeEncoder{}, d.payments,
		fakePricing{pc: domain.PricingContext{Currency: "₹", PartialPercentage: pct}},
		d.tx, testLog,
	)
	return uc, d
}

func fillCart(d *checkoutDeps) {
	d.carts.carts[testSession] = []domain.LineItem{
		{Product: domain.Product{ID: 1, Name: "Oak Table", Price: decimal.NewFromInt(600)}, Quantity: 1},
		{Product: domain.Product{ID: 2, Name: "Ash Chair", Price: decimal.NewFromInt(200)}, Quantity: 2},
	}
}

func b2bReq() *CheckoutReq {
	return &CheckoutReq{
		B2B:      true,
		Customer: domain.Customer{Name: "Acme", ShippingAddress: "12 MG Road, Pune", GSTNumber: "27AAAAA0000A1Z5"},
	}
}

func TestCheckoutUseCase_Checkout(t *testing.T) {
	t.Run("b2b passes amount due now verbatim", func(t *testing.T) {
		uc, d := newCheckout(40)
		fillCart(d)

		res, err := uc.Checkout(context.Background(), testSession, b2bReq())
		require.NoError(t, err)

		assert.Equal(t, domain.OrderPending, res.Order.Status)
		assert.True(t, decimal.NewFromInt(1000).Equal(res.Order.Subtotal))
		assert.True(t, decimal.NewFromInt(400).Equal(res.Order.AmountDueNow))
		assert.True(t, decimal.NewFromInt(600).Equal(res.Order.BalanceDue))

		require.Len(t, d.payments.reqs, 1)
		assert.True(t, res.Order.AmountDueNow.Equal(d.payments.reqs[0].Amount))
		assert.Equal(t, "order-1", d.payments.reqs[0].IdempotencyKey)
		assert.Equal(t, "pay_1", d.orders.sessions[res.Order.ID])
		assert.Equal(t, "pay_1", res.Order.PaymentSessionID)

		require.Len(t, d.outbox.events, 1)
		assert.Equal(t, OrderCreated, d.outbox.events[0].EventType)
		assert.Equal(t, "order.created:1:400", string(d.outbox.events[0].Payload))

		// корзина остаётся до подтверждения оплаты
		assert.Len(t, d.carts.carts[testSession], 2)
	})

	t.Run("retail pays full subtotal", func(t *testing.T) {
		uc, d := newCheckout(40)
		fillCart(d)
		req := b2bReq()
		req.B2B = false

		res, err := uc.Checkout(context.Background(), testSession, req)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1000).Equal(d.payments.reqs[0].Amount))
		assert.True(t, res.Order.BalanceDue.IsZero())
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		uc, d := newCheckout(50)

		_, err := uc.Checkout(context.Background(), testSession, b2bReq())
		require.ErrorIs(t, err, e.ErrEmptyCart)
		assert.Empty(t, d.payments.reqs)
		assert.Equal(t, 0, d.tx.calls)
	})

	t.Run("missing shipping address", func(t *testing.T) {
		uc, d := newCheckout(50)
		fillCart(d)
		req := b2bReq()
		req.Customer.ShippingAddress = ""

		_, err := uc.Checkout(context.Background(), testSession, req)
		require.ErrorIs(t, err, e.ErrMissingFields)
	})

	t.Run("payment failure leaves order pending", func(t *testing.T) {
		uc, d := newCheckout(50)
		fillCart(d)
		d.payments.err = e.Wrap("gateway", e.ErrPaymentUnavailable)

		_, err := uc.Checkout(context.Background(), testSession, b2bReq())
		require.ErrorIs(t, err, e.ErrPaymentUnavailable)
		require.Len(t, d.orders.orders, 1)
		assert.Equal(t, domain.OrderPending, d.orders.orders[1].Status)
	})

	t.Run("retry after payment failure reuses pending order", func(t *testing.T) {
		uc, d := newCheckout(50)
		fillCart(d)
		d.payments.err = e.Wrap("gateway", e.ErrPaymentUnavailable)

		_, err := uc.Checkout(context.Background(), testSession, b2bReq())
		require.ErrorIs(t, err, e.ErrPaymentUnavailable)

		d.payments.err = nil
		res, err := uc.Checkout(context.Background(), testSession, b2bReq())
		require.NoError(t, err)

		assert.Equal(t, int64(1), res.Order.ID)
		assert.Len(t, d.orders.orders, 1)
		assert.Len(t, d.outbox.events, 1)
		assert.Equal(t, 1, d.tx.calls)
		require.Len(t, d.payments.reqs, 2)
		assert.Equal(t, d.payments.reqs[0].IdempotencyKey, d.payments.reqs[1].IdempotencyKey)
		assert.Equal(t, "pay_1", res.Order.PaymentSessionID)
	})

	t.Run("changed cart gets a new order", func(t *testing.T) {
		uc, d := newCheckout(50)
		fillCart(d)
		d.payments.err = e.Wrap("gateway", e.ErrPaymentUnavailable)

		_, err := uc.Checkout(context.Background(), testSession, b2bReq())
		require.ErrorIs(t, err, e.ErrPaymentUnavailable)

		d.payments.err = nil
		d.carts.carts[testSession][1].Quantity = 3
		res, err := uc.Checkout(context.Background(), testSession, b2bReq())
		require.NoError(t, err)

		assert.Equal(t, int64(2), res.Order.ID)
		assert.Len(t, d.outbox.events, 2)
		assert.Equal(t, "order-2", d.payments.reqs[1].IdempotencyKey)
	})

	t.Run("transaction failure skips payment", func(t *testing.T) {
		uc, d := newCheckout(50)
		fillCart(d)
		d.tx.failAfter = errors.New("commit failed")

		_, err := uc.Checkout(context.Background(), testSession, b2bReq())
		require.Error(t, err)
		assert.Empty(t, d.payments.reqs)
	})
}

func TestCheckoutUseCase_ConfirmPayment(t *testing.T) {
	uc, d := newCheckout(50)
	fillCart(d)

	res, err := uc.Checkout(context.Background(), testSession, b2bReq())
	require.NoError(t, err)

	order, err := uc.ConfirmPayment(context.Background(), &ConfirmPaymentReq{OrderID: res.Order.ID, PaymentID: "pay_123"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, order.Status)
	assert.Equal(t, "pay_123", order.PaymentID)
	assert.Empty(t, d.carts.carts[testSession])
	require.Len(t, d.outbox.events, 2)
	assert.Equal(t, OrderPaid, d.outbox.events[1].EventType)

	_, err = uc.ConfirmPayment(context.Background(), &ConfirmPaymentReq{OrderID: res.Order.ID, PaymentID: "pay_123"})
	require.ErrorIs(t, err, e.ErrOrderAlreadyPaid)

	_, err = uc.ConfirmPayment(context.Background(), &ConfirmPaymentReq{OrderID: 77, PaymentID: "pay_1"})
	require.ErrorIs(t, err, e.ErrOrderNotFound)

	_, err = uc.ConfirmPayment(context.Background(), &ConfirmPaymentReq{OrderID: res.Order.ID})
	require.ErrorIs(t, err, e.ErrMissingFields)
}

func TestCheckoutUseCase_ListOrders(t *testing.T) {
	uc, d := newCheckout(50)
	for i := 0; i < 3; i++ {
		fillCart(d)
		_, err := uc.Checkout(context.Background(), testSession, b2bReq())
		require.NoError(t, err)
	}

	orders, err := uc.ListOrders(context.Background(), &ListOrdersReq{})
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	orders, err = uc.ListOrders(context.Background(), &ListOrdersReq{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(3), orders[0].ID)
}
