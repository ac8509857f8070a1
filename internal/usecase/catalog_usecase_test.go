package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogDeps struct {
	products   *fakeProductRepo
	categories *fakeCategoryRepo
	tx         *fakeTx
	images     *fakeImages
	cache      *fakeCache
}

func newCatalog(products ...domain.Product) (*CatalogUseCase, *catalogDeps) {
	d := &catalogDeps{
		products:   newFakeProductRepo(products...),
		categories: newFakeCategoryRepo(),
		tx:         &fakeTx{},
		images:     &fakeImages{},
		cache:      &fakeCache{},
	}
	return NewCatalogUC(d.products, d.categories, d.tx, d.images, testLog, d.cache), d
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Ash Chair", Category: "Seating", Price: decimal.NewFromInt(120)},
		{ID: 2, Name: "Oak Table", Category: "Tables", Price: decimal.NewFromInt(450), IsNew: true},
	}
}

func TestCatalogUseCase_ListProducts(t *testing.T) {
	t.Run("cache miss loads from db and fills cache", func(t *testing.T) {
		uc, d := newCatalog(seedProducts()...)

		out, err := uc.ListProducts(context.Background(), domain.FilterState{Category: domain.AllCategories, Sort: domain.SortNewest})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "Oak Table", out[0].Name)
		assert.Equal(t, 1, d.products.activeCalls)

		assert.Eventually(t, func() bool { return d.cache.setCount() == 1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("snapshot read before invalidation is not cached", func(t *testing.T) {
		uc, d := newCatalog(seedProducts()...)
		// Админка меняет каталог, пока витрина читает БД
		d.products.onGetActive = func() {
			require.NoError(t, uc.ArchiveProduct(context.Background(), 1))
		}

		stale, err := uc.ListProducts(context.Background(), domain.FilterState{})
		require.NoError(t, err)
		assert.Len(t, stale, 2)

		assert.Eventually(t, func() bool { return d.cache.staleSetCount() == 1 }, time.Second, 5*time.Millisecond)
		assert.Equal(t, 0, d.cache.setCount())

		d.products.onGetActive = nil
		out, err := uc.ListProducts(context.Background(), domain.FilterState{})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Oak Table", out[0].Name)
	})

	t.Run("cache hit skips db", func(t *testing.T) {
		uc, d := newCatalog()
		d.cache.catalog = seedProducts()

		out, err := uc.ListProducts(context.Background(), domain.FilterState{Query: "ash"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, 0, d.products.activeCalls)
	})

	t.Run("cache error falls back to db", func(t *testing.T) {
		uc, d := newCatalog(seedProducts()...)
		d.cache.getErr = errors.New("redis down")

		out, err := uc.ListProducts(context.Background(), domain.FilterState{})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("load failure is returned, not an empty list", func(t *testing.T) {
		uc, d := newCatalog()
		d.products.activeErr = errors.New("connection refused")

		out, err := uc.ListProducts(context.Background(), domain.FilterState{})
		require.Error(t, err)
		assert.Nil(t, out)
	})
}

func TestCatalogUseCase_GetProduct(t *testing.T) {
	uc, _ := newCatalog(seedProducts()...)

	p, err := uc.GetProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Oak Table", p.Name)

	_, err = uc.GetProduct(context.Background(), 99)
	require.ErrorIs(t, err, e.ErrProductNotFound)

	_, err = uc.GetProduct(context.Background(), 0)
	require.ErrorIs(t, err, e.ErrInvalidID)
}

func newProductReq() *AddNewProductReq {
	return &AddNewProductReq{
		Name:         "Teak Bench",
		CategoryName: "Seating",
		Price:        decimal.RequireFromString("249.99"),
		Images:       []ProductImage{{Name: "front", MimeType: "image/jpeg", Data: []byte{1}, Size: 1}},
	}
}

func TestCatalogUseCase_RegisterNewProduct(t *testing.T) {
	t.Run("creates product with image url and invalidates cache", func(t *testing.T) {
		uc, d := newCatalog()

		p, err := uc.RegisterNewProduct(context.Background(), newProductReq())
		require.NoError(t, err)

		assert.Equal(t, "Seating", p.Category)
		assert.Equal(t, "http://cdn/Teak Bench/front", p.ImageURL)
		assert.Equal(t, p.ImageURL, d.products.imageURLs[p.ID])
		assert.Equal(t, 1, d.tx.calls)
		assert.Equal(t, 1, d.cache.invalidated)
		assert.Empty(t, d.images.cleaned)
	})

	t.Run("validation", func(t *testing.T) {
		uc, _ := newCatalog()

		req := newProductReq()
		req.Name = "  "
		_, err := uc.RegisterNewProduct(context.Background(), req)
		require.ErrorIs(t, err, e.ErrProductNameRequired)

		req = newProductReq()
		req.Price = decimal.NewFromInt(-1)
		_, err = uc.RegisterNewProduct(context.Background(), req)
		require.ErrorIs(t, err, e.ErrInvalidPrice)

		req = newProductReq()
		req.Images = nil
		_, err = uc.RegisterNewProduct(context.Background(), req)
		require.ErrorIs(t, err, e.ErrNoImages)

		req = newProductReq()
		req.CategoryName = ""
		_, err = uc.RegisterNewProduct(context.Background(), req)
		require.ErrorIs(t, err, e.ErrCategoryNameRequired)
	})

	t.Run("commit failure cleans up uploaded images", func(t *testing.T) {
		uc, d := newCatalog()
		d.tx.failAfter = errors.New("commit failed")

		_, err := uc.RegisterNewProduct(context.Background(), newProductReq())
		require.Error(t, err)
		assert.Equal(t, []string{"Teak Bench/front"}, d.images.cleaned)
		assert.Equal(t, 0, d.cache.invalidated)
	})

	t.Run("upload failure has nothing to clean", func(t *testing.T) {
		uc, d := newCatalog()
		d.images.uploadErr = errors.New("s3 down")

		_, err := uc.RegisterNewProduct(context.Background(), newProductReq())
		require.Error(t, err)
		assert.Empty(t, d.images.cleaned)
	})
}

func TestCatalogUseCase_ArchiveAndCategories(t *testing.T) {
	uc, d := newCatalog(seedProducts()...)

	require.NoError(t, uc.ArchiveProduct(context.Background(), 1))
	assert.Equal(t, []int64{1}, d.products.archived)
	assert.Equal(t, 1, d.cache.invalidated)

	_, err := uc.CreateCategory(context.Background(), " ")
	require.ErrorIs(t, err, e.ErrCategoryNameRequired)

	c, err := uc.CreateCategory(context.Background(), "Beds")
	require.NoError(t, err)
	assert.Equal(t, "Beds", c.Name)

	require.NoError(t, uc.ArchiveCategory(context.Background(), c.ID))
	assert.Equal(t, []int64{c.ID}, d.categories.archived)
	assert.Equal(t, 3, d.cache.invalidated)

	cats, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}
