package kafka

import (
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtoEventEncoder кодирует события о заказах в google.protobuf.Struct.
// Денежные суммы передаются строками, чтобы не терять точность.
type ProtoEventEncoder struct{}

func NewProtoEventEncoder() *ProtoEventEncoder {
	return &ProtoEventEncoder{}
}

func (ProtoEventEncoder) EncodeOrderEvent(evt *usecase.OrderEvent) ([]byte, error) {
	fields := map[string]any{
		"event_id":       evt.EventID,
		"event_type":     string(evt.Type),
		"order_id":       float64(evt.OrderID),
		"session_id":     evt.SessionID,
		"is_b2b":         evt.IsB2B,
		"currency":       evt.Currency,
		"subtotal":       evt.Subtotal.String(),
		"amount_due_now": evt.AmountDueNow.String(),
		"balance_due":    evt.BalanceDue.String(),
		"occurred_at":    evt.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
	if evt.PaymentID != "" {
		fields["payment_id"] = evt.PaymentID
	}

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	payload, err := proto.Marshal(msg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return payload, nil
}
