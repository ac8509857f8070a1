package http

import (
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
)

// Денежные суммы в ответах передаются строками.

type ProductResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Price         string `json:"price"`
	ImageURL      string `json:"image_url"`
	IsNew         bool   `json:"is_new"`
	StockQuantity *int32 `json:"stock_quantity,omitempty"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}

type LineItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartResponse struct {
	SessionID string             `json:"session_id"`
	State     string             `json:"state"`
	Items     []LineItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  string             `json:"subtotal"`
}

type TotalsResponse struct {
	Currency     string `json:"currency"`
	ItemCount    int    `json:"item_count"`
	Percentage   int    `json:"percentage"`
	Subtotal     string `json:"subtotal"`
	AmountDueNow string `json:"amount_due_now"`
	BalanceDue   string `json:"balance_due"`
}

type QuoteResponse struct {
	SessionID string         `json:"session_id"`
	B2B       bool           `json:"b2b"`
	Totals    TotalsResponse `json:"totals"`
}

type CustomerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ShippingAddress string `json:"shipping_address"`
	GSTNumber       string `json:"gst_number,omitempty"`
}

type CheckoutRequest struct {
	B2B      bool            `json:"b2b"`
	Customer CustomerRequest `json:"customer"`
}

type OrderItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type OrderResponse struct {
	ID               int64               `json:"id"`
	SessionID        string              `json:"session_id"`
	Status           string              `json:"status"`
	B2B              bool                `json:"b2b"`
	Customer         CustomerRequest     `json:"customer"`
	Items            []OrderItemResponse `json:"items"`
	Currency         string              `json:"currency"`
	Percentage       int                 `json:"percentage"`
	Subtotal         string              `json:"subtotal"`
	AmountDueNow     string              `json:"amount_due_now"`
	BalanceDue       string              `json:"balance_due"`
	PaymentSessionID string              `json:"payment_session_id,omitempty"`
	PaymentID        string              `json:"payment_id,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	PaidAt           *time.Time          `json:"paid_at,omitempty"`
}

type CheckoutResponse struct {
	Order            OrderResponse `json:"order"`
	PaymentSessionID string        `json:"payment_session_id"`
	RedirectURL      string        `json:"redirect_url"`
}

type ConfirmPaymentRequest struct {
	PaymentID string `json:"payment_id"`
}

type SettingsResponse struct {
	Currency                    string `json:"currency"`
	B2BPartialPaymentPercentage int    `json:"b2b_partial_payment_percentage"`
}

type UpdateSettingsRequest struct {
	Currency                    *string `json:"currency,omitempty"`
	B2BPartialPaymentPercentage *int    `json:"b2b_partial_payment_percentage,omitempty"`
}

// MAPPERS

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price.String(),
		ImageURL:      p.ImageURL,
		IsNew:         p.IsNew,
		StockQuantity: p.StockQuantity,
	}
}

func toProductsResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}
	return res
}

func toCategoriesResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return res
}

func toCartResponse(view *usecase.CartView) CartResponse {
	items := make([]LineItemResponse, 0, len(view.Items))
	for _, li := range view.Items {
		items = append(items, LineItemResponse{
			ProductID: li.Product.ID,
			Name:      li.Product.Name,
			ImageURL:  li.Product.ImageURL,
			UnitPrice: li.Product.Price.String(),
			Quantity:  li.Quantity,
			LineTotal: li.LineTotal().String(),
		})
	}

	return CartResponse{
		SessionID: view.SessionID,
		State:     string(view.State),
		Items:     items,
		ItemCount: view.ItemCount,
		Subtotal:  view.Subtotal.String(),
	}
}

func toTotalsResponse(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		Currency:     t.Currency,
		ItemCount:    t.ItemCount,
		Percentage:   t.Percentage,
		Subtotal:     t.Subtotal.String(),
		AmountDueNow: t.AmountDueNow.String(),
		BalanceDue:   t.BalanceDue.String(),
	}
}

func toCustomer(c CustomerRequest) domain.Customer {
	return domain.Customer{
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		ShippingAddress: c.ShippingAddress,
		GSTNumber:       c.GSTNumber,
	}
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice.String(),
			Quantity:  it.Quantity,
		})
	}

	return OrderResponse{
		ID:        o.ID,
		SessionID: o.SessionID,
		Status:    string(o.Status),
		B2B:       o.IsB2B,
		Customer: CustomerRequest{
			Name:            o.Customer.Name,
			Email:           o.Customer.Email,
			Phone:           o.Customer.Phone,
			ShippingAddress: o.Customer.ShippingAddress,
			GSTNumber:       o.Customer.GSTNumber,
		},
		Items:            items,
		Currency:         o.Currency,
		Percentage:       o.Percentage,
		Subtotal:         o.Subtotal.String(),
		AmountDueNow:     o.AmountDueNow.String(),
		BalanceDue:       o.BalanceDue.String(),
		PaymentSessionID: o.PaymentSessionID,
		PaymentID:        o.PaymentID,
		CreatedAt:        o.CreatedAt,
		PaidAt:           o.PaidAt,
	}
}

func toSettingsResponse(s *domain.StoreSettings) SettingsResponse {
	return SettingsResponse{
		Currency:                    s.Currency,
		B2BPartialPaymentPercentage: s.B2BPartialPaymentPercentage,
	}
}
