package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
)

// CatalogUseCase реализует бизнес-логику каталога: выдачу витрины и управление товарами из админки.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	txManager    TxManager
	imagesInfra  ImagesInfra
	logger       logger.Logger
	cacheRepo    CacheRepository
}

func NewCatalogUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	txManager TxManager,
	imagesInfra ImagesInfra,
	logger logger.Logger,
	cacheRepo CacheRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		txManager:    txManager,
		imagesInfra:  imagesInfra,
		logger:       logger,
		cacheRepo:    cacheRepo,
	}
}

// ListProducts загружает снимок каталога и применяет к нему фильтр и сортировку.
// Ошибка загрузки возвращается вызывающему, пустой список означает только пустую выдачу.
func (c *CatalogUseCase) ListProducts(ctx context.Context, state domain.FilterState) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	products, err := c.loadCatalog(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return domain.FilterProducts(products, state), nil
}

func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "CatalogUseCase.ListCategories"

	categories, err := c.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

func (c *CatalogUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}

	product, err := c.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// RegisterNewProduct добавляет товар с изображениями и категорией.
// Категория и товар создаются идемпотентно в одной транзакции; при ошибке загруженные изображения удаляются.
func (c *CatalogUseCase) RegisterNewProduct(ctx context.Context, req *AddNewProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.RegisterNewProduct"

	if err := c.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var (
		imagesRes *UploadImagesRes
		product   *domain.Product
	)

	err := c.txManager.Do(ctx, func(ctx context.Context) error {
		// идемпотентное создание категории
		category, err := c.categoryRepo.Create(ctx, domain.NewCategory(strings.TrimSpace(req.CategoryName)))
		if err != nil {
			return err
		}

		// идемпотентное создание товара
		p := domain.NewProduct(strings.TrimSpace(req.Name), req.Description, req.Price, category.ID, req.IsNew)
		p.StockQuantity = req.StockQuantity
		product, err = c.productRepo.Upsert(ctx, p)
		if err != nil {
			return err
		}
		product.Category = category.Name

		// Сохранение изображений в MinIO
		imagesRes, err = c.imagesInfra.UploadImages(ctx, NewUploadImagesReq(product.Name, req.Images))
		if err != nil {
			return err
		}

		product.ImageURL = c.imagesInfra.PublicURL(imagesRes.ImagesKeys[0])
		return c.productRepo.UpdateImageURL(ctx, product.ID, product.ImageURL)
	})
	if err != nil {
		if imagesRes != nil {
			c.logger.Warnf(
				"Cleaning up orphaned images after transaction failure. product_name: %s, error: %v",
				req.Name,
				e.Wrap(op, err),
			)
			c.imagesInfra.CleanupImages(imagesRes.ImagesKeys)
		}

		return nil, e.Wrap(op, err)
	}

	c.invalidateCatalog(ctx, op)

	return product, nil
}

func (c *CatalogUseCase) ArchiveProduct(ctx context.Context, id int64) error {
	const op = "CatalogUseCase.ArchiveProduct"

	if id <= 0 {
		return e.Wrap(op, e.ErrInvalidID)
	}

	if err := c.productRepo.Archive(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	c.invalidateCatalog(ctx, op)
	return nil
}

func (c *CatalogUseCase) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	const op = "CatalogUseCase.CreateCategory"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, e.Wrap(op, e.ErrCategoryNameRequired)
	}

	category, err := c.categoryRepo.Create(ctx, domain.NewCategory(name))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.invalidateCatalog(ctx, op)
	return category, nil
}

// ArchiveCategory скрывает категорию, а вместе с ней и её товары из выдачи витрины.
func (c *CatalogUseCase) ArchiveCategory(ctx context.Context, id int64) error {
	const op = "CatalogUseCase.ArchiveCategory"

	if id <= 0 {
		return e.Wrap(op, e.ErrInvalidID)
	}

	if err := c.categoryRepo.Archive(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	c.invalidateCatalog(ctx, op)
	return nil
}

// loadCatalog возвращает снимок активных товаров: из кэша, а при промахе из БД с фоновым заполнением кэша.
func (c *CatalogUseCase) loadCatalog(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogUseCase.loadCatalog"

	products, err := c.cacheRepo.GetCatalog(ctx)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, e.ErrCacheMiss) {
		c.logger.Warnf("Failed to read catalog from cache: %v", e.Wrap(op, err))
	}

	// Версию читаем до БД, чтобы не вернуть в кэш снимок старше инвалидации
	version, versionErr := c.cacheRepo.CatalogVersion(ctx)

	products, err = c.productRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	if versionErr != nil {
		c.logger.Warnf("Skipping catalog caching, version unavailable: %v", e.Wrap(op, versionErr))
		return products, nil
	}

	// Фоновое добавление снимка в кэш
	snapshot := make([]domain.Product, len(products))
	copy(snapshot, products)
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetCatalog(bgCtx, snapshot, version); err != nil {
			c.logger.Warnf("Failed to cache catalog in background: %v", e.Wrap(op, err))
		}
	}()

	return products, nil
}

func (c *CatalogUseCase) invalidateCatalog(ctx context.Context, op string) {
	if err := c.cacheRepo.InvalidateCatalog(ctx); err != nil {
		c.logger.Warnf("Failed to invalidate catalog cache: %v", e.Wrap(op, err))
	}
}

// validateProduct проверяет корректность входных данных запроса на добавление товара.
func (c *CatalogUseCase) validateProduct(req *AddNewProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if strings.TrimSpace(req.CategoryName) == "" {
		return e.ErrCategoryNameRequired
	}

	if req.Price.IsNegative() {
		return e.ErrInvalidPrice
	}

	if len(req.Images) == 0 {
		return e.ErrNoImages
	}

	return nil
}
