package usecase

import "context"

type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	CleanupImages(keys []string)
	PublicURL(key string) string
}

type PaymentGateway interface {
	InitiatePayment(ctx context.Context, req *InitiatePaymentReq) (*PaymentSession, error)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// EventEncoder сериализует события о заказах в формат сообщения Kafka.
type EventEncoder interface {
	EncodeOrderEvent(evt *OrderEvent) ([]byte, error)
}
