package kafka

import (
	"testing"
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestProtoEventEncoder_EncodeOrderEvent(t *testing.T) {
	evt := &usecase.OrderEvent{
		EventID:      "6f1c1a2e-0000-4000-8000-000000000001",
		Type:         usecase.OrderCreated,
		OrderID:      42,
		SessionID:    "sess",
		IsB2B:        true,
		Currency:     "₹",
		Subtotal:     decimal.RequireFromString("1000.10"),
		AmountDueNow: decimal.RequireFromString("500.05"),
		BalanceDue:   decimal.RequireFromString("500.05"),
		OccurredAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	payload, err := NewProtoEventEncoder().EncodeOrderEvent(evt)
	require.NoError(t, err)

	var decoded structpb.Struct
	require.NoError(t, proto.Unmarshal(payload, &decoded))
	m := decoded.AsMap()

	assert.Equal(t, "order.created", m["event_type"])
	assert.Equal(t, float64(42), m["order_id"])
	assert.Equal(t, true, m["is_b2b"])
	assert.Equal(t, "1000.1", m["subtotal"])
	assert.Equal(t, "500.05", m["amount_due_now"])
	assert.Equal(t, "2026-01-02T03:04:05Z", m["occurred_at"])
	_, hasPayment := m["payment_id"]
	assert.False(t, hasPayment)
}

func TestOrderMessage_KeyedByOrderID(t *testing.T) {
	msg := orderMessage(usecase.NewWriteRawMessageReq(1234, []byte("x")))
	assert.Equal(t, "1234", string(msg.Key))
	assert.Equal(t, []byte("x"), msg.Value)
}
