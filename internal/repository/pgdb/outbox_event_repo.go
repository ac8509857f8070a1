package pgdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/tr"
	"github.com/jimlawless/whereami"
)

// OutboxNotifyChannel — канал NOTIFY, по которому воркер узнаёт о новых событиях.
const OutboxNotifyChannel = "outbox_pending"

const defaultStaleAfter = 5 * time.Minute

type OutboxEventRepo struct {
	pool       DB
	conv       converter.OutboxEventConverter
	staleAfter time.Duration
}

// NewOutboxEventRepo создаёт репозиторий outbox. События, висящие в processing дольше
// staleAfter, считаются брошенными упавшим воркером и забираются повторно.
func NewOutboxEventRepo(pool DB, conv converter.OutboxEventConverter, staleAfter time.Duration) *OutboxEventRepo {
	if staleAfter <= 0 {
		staleAfter = defaultStaleAfter
	}

	return &OutboxEventRepo{
		pool:       pool,
		conv:       conv,
		staleAfter: staleAfter,
	}
}

// Create пишет событие в outbox в текущей транзакции и уведомляет воркер после коммита.
func (o *OutboxEventRepo) Create(ctx context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(event)
	query := `
		INSERT INTO outbox_events (
			event_id,
			event_type,
			order_id,
			payload,
			status,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.EventID,
		model.EventType,
		model.OrderID,
		model.Payload,
		model.Status,
		model.CreatedAt,
	).Scan(&model.ID, &model.CreatedAt); err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: event with id %s already exists", whereami.WhereAmI(), event.EventID)
		}

		return nil, fmt.Errorf("%s: failed to insert event: %w", whereami.WhereAmI(), err)
	}

	_, err = tx.Exec(ctx, "NOTIFY "+OutboxNotifyChannel)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(model), nil
}

// GetAndMarkAsProcessing забирает пачку pending-событий и просроченных processing,
// не блокируясь на чужих строках.
func (o *OutboxEventRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) (_ []*usecase.OutboxEvent, err error) {
	tx, err := o.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", whereami.WhereAmI(), err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	query := `
		UPDATE outbox_events
		SET status = $1, processing_started_at = NOW()
		WHERE id IN (
			SELECT id FROM outbox_events
			WHERE status = $2
				OR (status = $1 AND processing_started_at < NOW() - make_interval(secs => $4))
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, event_id, event_type, order_id, payload, status, created_at, processed_at
	`

	rows, err := tx.Query(ctx, query,
		string(usecase.Processing),
		string(usecase.Pending),
		limit,
		o.staleAfter.Seconds(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query pending events: %w", whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []*converter.OutboxEventModel
	for rows.Next() {
		var model converter.OutboxEventModel
		var processedAt sql.NullTime

		err = rows.Scan(
			&model.ID,
			&model.EventID,
			&model.EventType,
			&model.OrderID,
			&model.Payload,
			&model.Status,
			&model.CreatedAt,
			&processedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan event: %w", whereami.WhereAmI(), err)
		}

		if processedAt.Valid {
			model.ProcessedAt = &processedAt.Time
		}

		models = append(models, &model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iterator error: %w", whereami.WhereAmI(), err)
	}
	rows.Close()

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", whereami.WhereAmI(), err)
	}

	return o.conv.ToArrEntity(models), nil
}

func (o *OutboxEventRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return o.transition(ctx, id, usecase.Processed, "processed_at = NOW()")
}

// MarkAsFailed откладывает событие, которое нельзя доставить повторной попыткой.
func (o *OutboxEventRepo) MarkAsFailed(ctx context.Context, id int64) error {
	return o.transition(ctx, id, usecase.Failed, "processed_at = NOW()")
}

// ReturnToPending возвращает событие в очередь после временной ошибки Kafka.
func (o *OutboxEventRepo) ReturnToPending(ctx context.Context, id int64) error {
	return o.transition(ctx, id, usecase.Pending, "processing_started_at = NULL")
}

func (o *OutboxEventRepo) transition(ctx context.Context, id int64, to usecase.OutboxStatus, extra string) error {
	query := `
		UPDATE outbox_events
		SET status = $1, ` + extra + `
		WHERE id = $2 AND status = $3
	`

	// Событие уже могло быть обработано другим воркером, это не ошибка
	if _, err := o.pool.Exec(ctx, query, string(to), id, string(usecase.Processing)); err != nil {
		return fmt.Errorf("%s: failed to mark event %d as %s: %w", whereami.WhereAmI(), id, to, err)
	}

	return nil
}
