package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/cfg"
	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/jitter"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// CartRepo хранит корзины сессий в Redis с TTL.
// Изменения выполняются через WATCH/MULTI и повторяются при конфликте.
type CartRepo struct {
	client r.UniversalClient
	conv   converter.CartConverter
	cfg    *cfg.RedisCfg
	retry  jitter.Policy
	logger logger.Logger
}

func NewCartRepo(client r.UniversalClient, conv converter.CartConverter, cfg *cfg.RedisCfg, logger logger.Logger) *CartRepo {
	attempts := cfg.MaxRetries
	if attempts <= 0 {
		attempts = 3
	}

	return &CartRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		retry: jitter.Policy{
			Attempts: attempts + 1,
			Base:     10 * time.Millisecond,
			Max:      200 * time.Millisecond,
		},
		logger: logger,
	}
}

// Get возвращает корзину сессии. Если корзины нет, возвращается пустая.
func (c *CartRepo) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := c.load(ctx, c.client, cartKey(sessionID))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return cart, nil
}

// Update атомарно применяет mutate к корзине. Пустая после изменения корзина удаляется.
func (c *CartRepo) Update(ctx context.Context, sessionID string, mutate func(cart *domain.Cart)) (*domain.Cart, error) {
	key := cartKey(sessionID)

	var result *domain.Cart
	txf := func(tx *r.Tx) error {
		cart, err := c.load(ctx, tx, key)
		if err != nil {
			return err
		}

		mutate(cart)

		var data []byte
		if !cart.IsEmpty() {
			data, err = json.Marshal(c.conv.ToRedisModel(cart))
			if err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe r.Pipeliner) error {
			if cart.IsEmpty() {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, data, c.cfg.CartTTL)
			return nil
		})
		if err != nil {
			return err
		}

		result = cart
		return nil
	}

	err := jitter.Retry(ctx, c.retry, isTxConflict, func(attempt int) error {
		if attempt > 0 {
			c.logger.Debugf("cart %s modified concurrently, retry %d", sessionID, attempt)
		}
		return c.client.Watch(ctx, txf, key)
	})
	if err != nil {
		if isTxConflict(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCartConflict)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (c *CartRepo) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CartRepo) load(ctx context.Context, cmd r.Cmdable, key string) (*domain.Cart, error) {
	data, err := cmd.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return domain.NewCart(), nil
		}
		return nil, err
	}

	var model converter.CartRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return c.conv.ToEntity(&model)
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

func isTxConflict(err error) bool {
	return errors.Is(err, r.TxFailedErr)
}
