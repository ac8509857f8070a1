// Package jitter добавляет случайность в интервалы повторов,
// чтобы одновременные клиенты не повторяли запросы синхронно.
package jitter

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает d с добавленным джиттером в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	j := globalRand.Float64() * jitterFactor * float64(d)
	randMutex.Unlock()
	return d + time.Duration(j)
}

// ExponentialBackoff возвращает base*2^attempt, ограниченное max, с джиттером.
// attempt нумеруется с нуля.
func ExponentialBackoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > max {
			backoff = max
			break
		}
	}
	return Duration(backoff, jitterFactor)
}

// Policy описывает параметры повторов.
type Policy struct {
	Attempts int
	Base     time.Duration
	Max      time.Duration
}

// Retry вызывает fn до Attempts раз, пока она возвращает ошибку, для которой retryable == true.
// Между попытками ждёт ExponentialBackoff с DefaultJitter. Возвращает последнюю ошибку.
func Retry(ctx context.Context, p Policy, retryable func(error) bool, fn func(attempt int) error) error {
	if p.Attempts <= 0 {
		p.Attempts = 1
	}

	var err error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		err = fn(attempt)
		if err == nil || !retryable(err) || attempt == p.Attempts-1 {
			return err
		}

		select {
		case <-time.After(ExponentialBackoff(p.Base, p.Max, attempt, DefaultJitter)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return err
}
