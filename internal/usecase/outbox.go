package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
	Failed     OutboxStatus = "failed"
)

type OutboxEventType string

const (
	OrderCreated OutboxEventType = "order.created"
	OrderPaid    OutboxEventType = "order.paid"
)

// OutboxEvent — событие, записанное в одной транзакции с заказом и ожидающее отправки в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// OrderEvent — содержимое события о заказе до сериализации.
type OrderEvent struct {
	EventID      string
	Type         OutboxEventType
	OrderID      int64
	SessionID    string
	IsB2B        bool
	Currency     string
	Subtotal     decimal.Decimal
	AmountDueNow decimal.Decimal
	BalanceDue   decimal.Decimal
	PaymentID    string
	OccurredAt   time.Time
}

// WriteRawMessageReq — уже сериализованное сообщение для Kafka.
type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}

func NewOutboxEvent(evt *OrderEvent, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   evt.EventID,
		EventType: evt.Type,
		OrderID:   evt.OrderID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: evt.OccurredAt,
	}
}
