package usecase

import (
	"context"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
)

type CatalogUC interface {
	ListProducts(ctx context.Context, state domain.FilterState) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	RegisterNewProduct(ctx context.Context, req *AddNewProductReq) (*domain.Product, error)
	ArchiveProduct(ctx context.Context, id int64) error
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	ArchiveCategory(ctx context.Context, id int64) error
}

type CartUC interface {
	NewSession(ctx context.Context) (string, error)
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID string, productID int64) (*CartView, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, delta int) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*CartView, error)
	ClearCart(ctx context.Context, sessionID string) error
	Quote(ctx context.Context, sessionID string, b2b bool) (*QuoteRes, error)
}

type CheckoutUC interface {
	Checkout(ctx context.Context, sessionID string, req *CheckoutReq) (*CheckoutRes, error)
	ConfirmPayment(ctx context.Context, req *ConfirmPaymentReq) (*domain.Order, error)
	ListOrders(ctx context.Context, req *ListOrdersReq) ([]domain.Order, error)
}

type SettingsUC interface {
	PricingContext(ctx context.Context) (domain.PricingContext, error)
	GetSettings(ctx context.Context) (*domain.StoreSettings, error)
	UpdateSettings(ctx context.Context, req *UpdateSettingsReq) (*domain.StoreSettings, error)
}
