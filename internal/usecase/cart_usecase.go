package usecase

import (
	"context"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/google/uuid"
)

// ProductReader — часть каталога, нужная корзине.
type ProductReader interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// PricingProvider отдаёт актуальный контекст расчёта итогов.
type PricingProvider interface {
	PricingContext(ctx context.Context) (domain.PricingContext, error)
}

// CartUseCase управляет корзинами сессий.
type CartUseCase struct {
	carts    CartRepository
	catalog  ProductReader
	settings PricingProvider
	logger   logger.Logger
}

func NewCartUC(carts CartRepository, catalog ProductReader, settings PricingProvider, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		carts:    carts,
		catalog:  catalog,
		settings: settings,
		logger:   logger,
	}
}

// NewSession выдаёт идентификатор новой корзины. Корзина появляется в хранилище при первом изменении.
func (c *CartUseCase) NewSession(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (c *CartUseCase) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	const op = "CartUseCase.GetCart"

	if err := validateSession(sessionID); err != nil {
		return nil, e.Wrap(op, err)
	}

	cart, err := c.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(sessionID, cart), nil
}

// AddItem добавляет товар из каталога или увеличивает его количество на 1.
func (c *CartUseCase) AddItem(ctx context.Context, sessionID string, productID int64) (*CartView, error) {
	const op = "CartUseCase.AddItem"

	if err := validateSession(sessionID); err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := c.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.mutate(ctx, op, sessionID, func(cart *domain.Cart) {
		cart.Add(*product)
	})
}

// UpdateQuantity меняет количество на delta. Количество не опускается ниже 1, отсутствующий товар игнорируется.
func (c *CartUseCase) UpdateQuantity(ctx context.Context, sessionID string, productID int64, delta int) (*CartView, error) {
	const op = "CartUseCase.UpdateQuantity"

	if err := validateSession(sessionID); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.mutate(ctx, op, sessionID, func(cart *domain.Cart) {
		cart.UpdateQuantity(productID, delta)
	})
}

func (c *CartUseCase) RemoveItem(ctx context.Context, sessionID string, productID int64) (*CartView, error) {
	const op = "CartUseCase.RemoveItem"

	if err := validateSession(sessionID); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.mutate(ctx, op, sessionID, func(cart *domain.Cart) {
		cart.Remove(productID)
	})
}

func (c *CartUseCase) ClearCart(ctx context.Context, sessionID string) error {
	const op = "CartUseCase.ClearCart"

	if err := validateSession(sessionID); err != nil {
		return e.Wrap(op, err)
	}

	if err := c.carts.Delete(ctx, sessionID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Quote считает итоги корзины: розница к оплате полностью, B2B — на процент предоплаты.
func (c *CartUseCase) Quote(ctx context.Context, sessionID string, b2b bool) (*QuoteRes, error) {
	const op = "CartUseCase.Quote"

	if err := validateSession(sessionID); err != nil {
		return nil, e.Wrap(op, err)
	}

	cart, err := c.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	pc, err := c.settings.PricingContext(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &QuoteRes{
		SessionID: sessionID,
		B2B:       b2b,
		Totals:    domain.Quote(cart.Items(), pc, b2b),
	}, nil
}

func (c *CartUseCase) mutate(ctx context.Context, op, sessionID string, fn func(cart *domain.Cart)) (*CartView, error) {
	cart, err := c.carts.Update(ctx, sessionID, fn)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(sessionID, cart), nil
}

func validateSession(sessionID string) error {
	if _, err := uuid.Parse(sessionID); err != nil {
		return e.ErrInvalidSessionID
	}
	return nil
}
