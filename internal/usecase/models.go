package usecase

import (
	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// CATALOG

// AddNewProductReq — запрос на добавление нового товара.
type AddNewProductReq struct {
	Name          string
	Description   string
	CategoryName  string
	Price         decimal.Decimal
	IsNew         bool
	StockQuantity *int32
	Images        []ProductImage
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// CART

// CartView — содержимое корзины сессии вместе с итогами.
type CartView struct {
	SessionID string
	State     domain.CartState
	Items     []domain.LineItem
	ItemCount int
	Subtotal  decimal.Decimal
}

// QuoteRes — итоги корзины к оплате.
type QuoteRes struct {
	SessionID string
	B2B       bool
	Totals    domain.Totals
}

// CHECKOUT

// CheckoutReq — данные оформления заказа.
type CheckoutReq struct {
	B2B      bool
	Customer domain.Customer
}

// CheckoutRes — созданный заказ и платёжная сессия, на которую нужно перевести покупателя.
type CheckoutRes struct {
	Order   *domain.Order
	Payment *PaymentSession
}

// ConfirmPaymentReq — подтверждение оплаты от платёжного шлюза.
type ConfirmPaymentReq struct {
	OrderID   int64
	PaymentID string
}

// ListOrdersReq — постраничный запрос заказов для админки.
type ListOrdersReq struct {
	Limit  int
	Offset int
}

// SETTINGS

// UpdateSettingsReq — изменения настроек магазина. Пустые поля не меняются.
type UpdateSettingsReq struct {
	Currency                    *string
	B2BPartialPaymentPercentage *int
}

// INFRASTUCTURE

// InitiatePaymentReq — запрос на создание платёжной сессии. Amount передаётся как есть.
type InitiatePaymentReq struct {
	OrderID        int64
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
}

// PaymentSession — платёжная сессия шлюза.
type PaymentSession struct {
	ID          string
	RedirectURL string
}

// UploadImagesRes — результат загрузки изображений (ключи в MinIO).
type UploadImagesRes struct {
	ImagesKeys []string
}

// UploadImagesReq — запрос на загрузку изображений товара.
type UploadImagesReq struct {
	Name   string
	Images []ProductImage
}

// MAPPERS

func NewUploadImagesReq(name string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Name:   name,
		Images: images,
	}
}

func NewUploadImagesRes(imagesKeys []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: imagesKeys,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewCartView(sessionID string, cart *domain.Cart) *CartView {
	return &CartView{
		SessionID: sessionID,
		State:     cart.State(),
		Items:     cart.Items(),
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
	}
}
