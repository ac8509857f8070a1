package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/repository/pgdb"
	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	defaultOutboxBatchSize    = 10
	defaultOutboxPollInterval = 30 * time.Second
	notificationWaitTimeout   = 30 * time.Second
	listenReconnectDelay      = 5 * time.Second
)

// OutboxWorker пересылает события из outbox_events в Kafka.
// Просыпается по NOTIFY outbox_pending и раз в pollInterval, чтобы подобрать события,
// вернувшиеся в pending после временной ошибки, и брошенные в processing.
type OutboxWorker struct {
	repo         usecase.OutboxRepository
	logger       logger.Logger
	producer     usecase.MessageProducer
	cancel       context.CancelFunc
	stopOnce     sync.Once
	wg           sync.WaitGroup
	dbConnStr    string
	batchSize    int
	pollInterval time.Duration
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dbConnStr string,
	batchSize int,
	pollInterval time.Duration,
) *OutboxWorker {
	if batchSize <= 0 {
		batchSize = defaultOutboxBatchSize
	}
	if pollInterval <= 0 {
		pollInterval = defaultOutboxPollInterval
	}

	return &OutboxWorker{
		repo:         repo,
		logger:       logger,
		producer:     producer,
		cancel:       func() {},
		dbConnStr:    dbConnStr,
		batchSize:    batchSize,
		pollInterval: pollInterval,
	}
}

// Start запускает воркер на контексте, производном от ctx. Его отменяет Stop.
func (w *OutboxWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()

	// Запускаем слушатель уведомлений
	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx)
	}()
}

// Stop прерывает ожидание NOTIFY и дожидается завершения горутин воркера.
func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() { w.cancel() })
	w.wg.Wait()
}

func (w *OutboxWorker) run(ctx context.Context) {
	// Обрабатываем "остатки" при старте
	w.logger.Infof("Draining pending outbox events on startup...")
	if err := w.drain(ctx); err != nil {
		w.logger.Warnf("startup batch failed: %v", err)
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Outbox worker stopped")
			return
		case <-ticker.C:
			if err := w.drain(ctx); err != nil && ctx.Err() == nil {
				w.logger.Warnf("periodic batch failed: %v", err)
			}
		}
	}
}

func (w *OutboxWorker) drain(ctx context.Context) error {
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			return err
		}
		if !hasMore {
			return nil
		}
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	var conn *pgx.Conn

	connect := func() error {
		c, err := pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err = c.Exec(ctx, "LISTEN "+pgdb.OutboxNotifyChannel); err != nil {
			c.Close(context.Background())
			return e.Wrap("failed to LISTEN", err)
		}

		conn = c
		w.logger.Infof("Subscribed to '%s' channel", pgdb.OutboxNotifyChannel)
		return nil
	}

	// Без LISTEN воркер продолжает работать по таймеру и пытается переподключиться
	if err := connect(); err != nil {
		w.logger.Warnf("Initial connect failed: %v", err)
	}
	defer func() {
		if conn != nil {
			conn.Close(context.Background())
		}
	}()

	for ctx.Err() == nil {
		if conn == nil {
			if !sleepCtx(ctx, listenReconnectDelay) {
				return
			}
			if err := connect(); err != nil {
				w.logger.Warnf("Reconnect failed: %v", err)
			}
			continue
		}

		waitCtx, cancel := context.WithTimeout(ctx, notificationWaitTimeout)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			conn.Close(context.Background())
			conn = nil
			continue
		}

		if notif != nil && notif.Channel == pgdb.OutboxNotifyChannel {
			w.logger.Debugf("Received outbox notification, draining outbox events")
			if err := w.drain(ctx); err != nil && ctx.Err() == nil {
				w.logger.Warnf("Batch processing failed: %v", err)
			}
		}
	}
}

// sleepCtx ждёт d и возвращает false, если контекст отменён раньше.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// processBatch отправляет очередную пачку событий. Временные ошибки Kafka возвращают
// событие в pending и прерывают разбор, постоянные помечают событие как failed.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	hasMore := len(events) == w.batchSize
	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			if isRetryableError(err) {
				w.logger.Warnf("Temporary Kafka failure for event %s, will retry: %v", event.EventID, err)
				if err := w.repo.ReturnToPending(ctx, event.ID); err != nil {
					w.logger.Warnf("return to pending failed: %v", err)
				}
				hasMore = false
				continue
			}

			w.logger.Errorf(err, "Permanent Kafka failure for event %s", event.EventID)
			if err := w.repo.MarkAsFailed(ctx, event.ID); err != nil {
				w.logger.Warnf("mark failed failed: %v", err)
			}
			continue
		}

		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return hasMore, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	return w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.OrderID, event.Payload))
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"leader not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
