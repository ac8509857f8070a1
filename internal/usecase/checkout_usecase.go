package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/google/uuid"
)

const (
	defaultOrdersLimit = 50
	maxOrdersLimit     = 200
)

// CheckoutUseCase оформляет заказы по корзине и подтверждает их оплату.
type CheckoutUseCase struct {
	carts     CartRepository
	orders    OrderRepository
	outbox    OutboxRepository
	encoder   EventEncoder
	payments  PaymentGateway
	settings  PricingProvider
	txManager TxManager
	logger    logger.Logger
	now       func() time.Time
}

func NewCheckoutUC(
	carts CartRepository,
	orders OrderRepository,
	outbox OutboxRepository,
	encoder EventEncoder,
	payments PaymentGateway,
	settings PricingProvider,
	txManager TxManager,
	logger logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		carts:     carts,
		orders:    orders,
		outbox:    outbox,
		encoder:   encoder,
		payments:  payments,
		settings:  settings,
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// Checkout создаёт заказ по корзине сессии и открывает платёжную сессию на сумму к оплате сейчас.
// Если у сессии уже есть неоплаченный заказ с тем же содержимым (например, после сбоя шлюза),
// он используется повторно с тем же ключом идемпотентности. Корзина очищается только после подтверждения оплаты.
func (c *CheckoutUseCase) Checkout(ctx context.Context, sessionID string, req *CheckoutReq) (*CheckoutRes, error) {
	const op = "CheckoutUseCase.Checkout"

	if err := validateSession(sessionID); err != nil {
		return nil, e.Wrap(op, err)
	}

	cart, err := c.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if cart.IsEmpty() {
		return nil, e.Wrap(op, e.ErrEmptyCart)
	}

	if strings.TrimSpace(req.Customer.ShippingAddress) == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	pc, err := c.settings.PricingContext(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	totals := domain.Quote(cart.Items(), pc, req.B2B)
	draft := domain.NewOrder(sessionID, req.Customer, cart.Items(), totals, req.B2B)

	order, err := c.reusablePendingOrder(ctx, draft)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if order == nil {
		err = c.txManager.Do(ctx, func(ctx context.Context) error {
			created, err := c.orders.Create(ctx, draft)
			if err != nil {
				return err
			}
			order = created

			return c.writeEvent(ctx, OrderCreated, order)
		})
		if err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	payment, err := c.payments.InitiatePayment(ctx, &InitiatePaymentReq{
		OrderID:        order.ID,
		Amount:         order.AmountDueNow,
		Currency:       order.Currency,
		IdempotencyKey: "order-" + strconv.FormatInt(order.ID, 10),
	})
	if err != nil {
		c.logger.Warnf("Payment initiation failed, order %d left pending: %v", order.ID, e.Wrap(op, err))
		return nil, e.Wrap(op, err)
	}

	if err := c.orders.SetPaymentSession(ctx, order.ID, payment.ID); err != nil {
		return nil, e.Wrap(op, err)
	}
	order.PaymentSessionID = payment.ID

	return &CheckoutRes{Order: order, Payment: payment}, nil
}

// ConfirmPayment помечает заказ оплаченным и очищает корзину сессии.
func (c *CheckoutUseCase) ConfirmPayment(ctx context.Context, req *ConfirmPaymentReq) (*domain.Order, error) {
	const op = "CheckoutUseCase.ConfirmPayment"

	if req.OrderID <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}
	if strings.TrimSpace(req.PaymentID) == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	var order *domain.Order
	err := c.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := c.orders.GetByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if current.IsPaid() {
			return e.ErrOrderAlreadyPaid
		}

		order, err = c.orders.MarkPaid(ctx, req.OrderID, req.PaymentID)
		if err != nil {
			return err
		}

		return c.writeEvent(ctx, OrderPaid, order)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := c.carts.Delete(ctx, order.SessionID); err != nil {
		c.logger.Warnf("Failed to clear cart %s after payment: %v", order.SessionID, e.Wrap(op, err))
	}

	return order, nil
}

func (c *CheckoutUseCase) ListOrders(ctx context.Context, req *ListOrdersReq) ([]domain.Order, error) {
	const op = "CheckoutUseCase.ListOrders"

	limit := req.Limit
	if limit <= 0 {
		limit = defaultOrdersLimit
	}
	limit = min(limit, maxOrdersLimit)

	offset := max(req.Offset, 0)

	orders, err := c.orders.List(ctx, limit, offset)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}

func (c *CheckoutUseCase) reusablePendingOrder(ctx context.Context, draft *domain.Order) (*domain.Order, error) {
	prev, err := c.orders.GetLatestPending(ctx, draft.SessionID)
	if err != nil {
		if errors.Is(err, e.ErrOrderNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !prev.SameContents(draft) {
		return nil, nil
	}

	c.logger.Infof("Reusing pending order %d for session %s", prev.ID, draft.SessionID)
	return prev, nil
}

// writeEvent пишет событие о заказе в outbox в текущей транзакции.
func (c *CheckoutUseCase) writeEvent(ctx context.Context, eventType OutboxEventType, order *domain.Order) error {
	evt := &OrderEvent{
		EventID:      uuid.NewString(),
		Type:         eventType,
		OrderID:      order.ID,
		SessionID:    order.SessionID,
		IsB2B:        order.IsB2B,
		Currency:     order.Currency,
		Subtotal:     order.Subtotal,
		AmountDueNow: order.AmountDueNow,
		BalanceDue:   order.BalanceDue,
		PaymentID:    order.PaymentID,
		OccurredAt:   c.now().UTC(),
	}

	payload, err := c.encoder.EncodeOrderEvent(evt)
	if err != nil {
		return err
	}

	_, err = c.outbox.Create(ctx, NewOutboxEvent(evt, payload))
	return err
}
