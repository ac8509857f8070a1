package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
)

// Customer контактные данные и адрес доставки покупателя.
type Customer struct {
	Name            string
	Email           string
	Phone           string
	ShippingAddress string
	GSTNumber       string // Только для B2B
}

// OrderItem — позиция заказа, цена фиксируется на момент оформления.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Order описывает оформленный заказ
type Order struct {
	ID               int64
	SessionID        string
	Status           OrderStatus
	IsB2B            bool
	Customer         Customer
	Items            []OrderItem
	Currency         string
	Percentage       int
	Subtotal         decimal.Decimal
	AmountDueNow     decimal.Decimal
	BalanceDue       decimal.Decimal
	PaymentSessionID string
	PaymentID        string
	CreatedAt        time.Time
	PaidAt           *time.Time
}

// NewOrder фиксирует содержимое корзины и посчитанные итоги в заказ со статусом pending.
func NewOrder(sessionID string, customer Customer, items []LineItem, totals Totals, b2b bool) *Order {
	orderItems := make([]OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, OrderItem{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			UnitPrice: it.Product.Price,
			Quantity:  it.Quantity,
		})
	}

	return &Order{
		SessionID:    sessionID,
		Status:       OrderPending,
		IsB2B:        b2b,
		Customer:     customer,
		Items:        orderItems,
		Currency:     totals.Currency,
		Percentage:   totals.Percentage,
		Subtotal:     totals.Subtotal,
		AmountDueNow: totals.AmountDueNow,
		BalanceDue:   totals.BalanceDue,
	}
}

func (o *Order) IsPaid() bool {
	return o.Status == OrderPaid
}

// SameContents сравнивает покупателя, позиции и итоги двух заказов без учёта id и статуса оплаты.
func (o *Order) SameContents(other *Order) bool {
	if o.IsB2B != other.IsB2B ||
		o.Customer != other.Customer ||
		o.Currency != other.Currency ||
		o.Percentage != other.Percentage ||
		!o.Subtotal.Equal(other.Subtotal) ||
		!o.AmountDueNow.Equal(other.AmountDueNow) ||
		len(o.Items) != len(other.Items) {
		return false
	}

	for i := range o.Items {
		a, b := o.Items[i], other.Items[i]
		if a.ProductID != b.ProductID || a.Quantity != b.Quantity || !a.UnitPrice.Equal(b.UnitPrice) {
			return false
		}
	}

	return true
}
