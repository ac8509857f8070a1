package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/lignum-storefront/internal/cfg"
	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const (
	catalogKey        = "catalog:active"
	catalogVersionKey = "catalog:version"
)

var errStaleCatalog = errors.New("catalog snapshot is older than the last invalidation")

// CacheRepo хранит снимок активного каталога в Redis.
type CacheRepo struct {
	client r.UniversalClient
	conv   converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client r.UniversalClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetCatalog возвращает снимок каталога или e.ErrCacheMiss.
// Повреждённое значение удаляется и считается промахом.
func (c *CacheRepo) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	data, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrCacheMiss
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.CatalogRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		c.drop(ctx)
		return nil, e.ErrCacheMiss
	}

	products, err := c.conv.ToArrEntity(model.Products)
	if err != nil {
		c.logger.Warnf("Cached catalog is corrupted: %v", e.Wrap(whereami.WhereAmI(), err))
		c.drop(ctx)
		return nil, e.ErrCacheMiss
	}

	return products, nil
}

// CatalogVersion возвращает счётчик инвалидаций каталога. Отсутствующий ключ равен 0.
func (c *CacheRepo) CatalogVersion(ctx context.Context) (int64, error) {
	version, err := getVersion(ctx, c.client)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return version, nil
}

// SetCatalog сохраняет снимок каталога с TTL из конфигурации, если с момента чтения version
// каталог не инвалидировали. Устаревший снимок молча отбрасывается.
func (c *CacheRepo) SetCatalog(ctx context.Context, products []domain.Product, version int64) error {
	data, err := json.Marshal(converter.CatalogRedisModel{Products: c.conv.ToArrRedisModel(products)})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	err = c.client.Watch(ctx, func(tx *r.Tx) error {
		current, err := getVersion(ctx, tx)
		if err != nil {
			return err
		}
		if current != version {
			return errStaleCatalog
		}

		_, err = tx.TxPipelined(ctx, func(pipe r.Pipeliner) error {
			pipe.Set(ctx, catalogKey, data, c.cfg.CatalogTTL)
			return nil
		})
		return err
	}, catalogVersionKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errStaleCatalog), errors.Is(err, r.TxFailedErr):
		c.logger.Debugf("Catalog snapshot v%d discarded: invalidated while loading", version)
		return nil
	default:
		return e.Wrap(whereami.WhereAmI(), err)
	}
}

// InvalidateCatalog удаляет снимок и увеличивает версию, чтобы отбросить снимки, читаемые сейчас.
func (c *CacheRepo) InvalidateCatalog(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe r.Pipeliner) error {
		pipe.Incr(ctx, catalogVersionKey)
		pipe.Del(ctx, catalogKey)
		return nil
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func getVersion(ctx context.Context, cmd r.Cmdable) (int64, error) {
	version, err := cmd.Get(ctx, catalogVersionKey).Int64()
	if errors.Is(err, r.Nil) {
		return 0, nil
	}
	return version, err
}

func (c *CacheRepo) drop(ctx context.Context) {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}
