package usecase

import (
	"context"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
)

type ProductRepository interface {
	Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateImageURL(ctx context.Context, id int64, imageURL string) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetActive(ctx context.Context) ([]domain.Product, error)
	Archive(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetAll(ctx context.Context) ([]domain.Category, error)
	Archive(ctx context.Context, id int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetLatestPending(ctx context.Context, sessionID string) (*domain.Order, error)
	SetPaymentSession(ctx context.Context, id int64, paymentSessionID string) error
	MarkPaid(ctx context.Context, id int64, paymentID string) (*domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]domain.Order, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.StoreSettings, error)
	Upsert(ctx context.Context, settings *domain.StoreSettings) (*domain.StoreSettings, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsFailed(ctx context.Context, id int64) error
	ReturnToPending(ctx context.Context, id int64) error
}

// CacheRepository хранит снимок активного каталога.
// Снимок, прочитанный до инвалидации, не записывается: SetCatalog сверяет версию,
// полученную из CatalogVersion до чтения БД.
type CacheRepository interface {
	GetCatalog(ctx context.Context) ([]domain.Product, error)
	CatalogVersion(ctx context.Context) (int64, error)
	SetCatalog(ctx context.Context, products []domain.Product, version int64) error
	InvalidateCatalog(ctx context.Context) error
}

// CartRepository хранит корзины сессий. Update выполняет read-modify-write атомарно.
type CartRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Update(ctx context.Context, sessionID string, mutate func(cart *domain.Cart)) (*domain.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

// TxManager выполняет fn в транзакции, доступной репозиториям через контекст.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
