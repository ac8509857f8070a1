package pgdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/tr"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var outboxCols = []string{"id", "event_id", "event_type", "order_id", "payload", "status", "created_at", "processed_at"}

const claimQuery = `(?s)UPDATE outbox_events\s+SET status = \$1, processing_started_at = NOW\(\).*` +
	`WHERE status = \$2\s+OR \(status = \$1 AND processing_started_at < NOW\(\) - make_interval\(secs => \$4\)\).*` +
	`FOR UPDATE SKIP LOCKED`

func TestOutboxEventRepo_GetAndMarkAsProcessing(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("claims pending and stale events", func(t *testing.T) {
		mock := newMockDB(t)
		repo := NewOutboxEventRepo(mock, converter.New().OutboxEvent(), 2*time.Minute)

		mock.ExpectBegin()
		mock.ExpectQuery(claimQuery).
			WithArgs("processing", "pending", 10, float64(120)).
			WillReturnRows(pgxmock.NewRows(outboxCols).
				AddRow(int64(1), "evt-1", "order.created", int64(7), []byte{0x0a}, "processing", createdAt, nil).
				AddRow(int64(2), "evt-2", "order.paid", int64(7), []byte{0x0b}, "processing", createdAt, nil))
		mock.ExpectCommit()

		events, err := repo.GetAndMarkAsProcessing(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, usecase.OrderCreated, events[0].EventType)
		assert.Equal(t, usecase.Processing, events[1].Status)
		assert.Nil(t, events[0].ProcessedAt)
	})

	t.Run("default stale cutoff", func(t *testing.T) {
		mock := newMockDB(t)
		repo := NewOutboxEventRepo(mock, converter.New().OutboxEvent(), 0)

		mock.ExpectBegin()
		mock.ExpectQuery(claimQuery).
			WithArgs("processing", "pending", 5, defaultStaleAfter.Seconds()).
			WillReturnRows(pgxmock.NewRows(outboxCols))
		mock.ExpectCommit()

		events, err := repo.GetAndMarkAsProcessing(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("query failure rolls back", func(t *testing.T) {
		mock := newMockDB(t)
		repo := NewOutboxEventRepo(mock, converter.New().OutboxEvent(), time.Minute)

		mock.ExpectBegin()
		mock.ExpectQuery(claimQuery).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := repo.GetAndMarkAsProcessing(ctx, 10)
		require.Error(t, err)
	})
}

func TestOutboxEventRepo_Transitions(t *testing.T) {
	mock := newMockDB(t)
	repo := NewOutboxEventRepo(mock, converter.New().OutboxEvent(), time.Minute)
	ctx := context.Background()

	mock.ExpectExec(`SET status = \$1, processed_at = NOW\(\)\s+WHERE id = \$2 AND status = \$3`).
		WithArgs("processed", int64(1), "processing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`SET status = \$1, processed_at = NOW\(\)\s+WHERE id = \$2 AND status = \$3`).
		WithArgs("failed", int64(2), "processing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	// Событие уже забрал другой воркер: ноль строк не считается ошибкой
	mock.ExpectExec(`SET status = \$1, processing_started_at = NULL\s+WHERE id = \$2 AND status = \$3`).
		WithArgs("pending", int64(3), "processing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.MarkAsProcessed(ctx, 1))
	require.NoError(t, repo.MarkAsFailed(ctx, 2))
	require.NoError(t, repo.ReturnToPending(ctx, 3))
}

func TestOutboxEventRepo_Create(t *testing.T) {
	ctx := context.Background()
	occurredAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	event := &usecase.OutboxEvent{
		EventID:   "evt-1",
		EventType: usecase.OrderCreated,
		OrderID:   7,
		Payload:   []byte{0x0a},
		Status:    usecase.Pending,
		CreatedAt: occurredAt,
	}

	t.Run("inserts and notifies inside transaction", func(t *testing.T) {
		mock := newMockDB(t)
		repo := NewOutboxEventRepo(mock, converter.New().OutboxEvent(), time.Minute)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO outbox_events`).
			WithArgs("evt-1", "order.created", int64(7), []byte{0x0a}, "pending", occurredAt).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), occurredAt))
		mock.ExpectExec(`NOTIFY outbox_pending`).
			WillReturnResult(pgxmock.NewResult("NOTIFY", 0))

		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		created, err := repo.Create(tr.WithTx(ctx, tx), event)
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ID)
		assert.Equal(t, usecase.Pending, created.Status)
	})

	t.Run("requires transaction", func(t *testing.T) {
		repo := NewOutboxEventRepo(newMockDB(t), converter.New().OutboxEvent(), time.Minute)

		_, err := repo.Create(ctx, event)
		require.ErrorIs(t, err, e.ErrTransactionNotFound)
	})
}
