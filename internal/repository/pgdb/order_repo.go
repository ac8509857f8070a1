package pgdb

import (
	"context"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"
)

const orderColumns = `
	id, session_id, status, is_b2b, customer_name, customer_email, customer_phone,
	shipping_address, gst_number, currency, percentage,
	subtotal::text, amount_due_now::text, balance_due::text,
	payment_session_id, payment_id, created_at, paid_at`

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
type OrderRepo struct {
	pool DB
	conv converter.OrderConverter
}

func NewOrderRepo(pool DB, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{pool: pool, conv: conv}
}

// Create сохраняет заказ и его позиции. Вызывается только внутри транзакции.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	m := o.conv.ToModel(order)
	query := `
		INSERT INTO orders (
			session_id, status, is_b2b, customer_name, customer_email, customer_phone,
			shipping_address, gst_number, currency, percentage,
			subtotal, amount_due_now, balance_due
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::numeric, $12::numeric, $13::numeric)
		RETURNING` + orderColumns

	var created converter.OrderModel
	if err := scanOrder(tx.QueryRow(ctx, query,
		m.SessionID, m.Status, m.IsB2B, m.CustomerName, m.CustomerEmail, m.CustomerPhone,
		m.ShippingAddress, m.GSTNumber, m.Currency, m.Percentage,
		m.Subtotal, m.AmountDueNow, m.BalanceDue,
	), &created); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	order.ID = created.ID
	items := o.conv.ToItemModels(order)
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{it.OrderID, it.ProductID, it.Name, it.UnitPrice, it.Quantity})
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"order_items"},
		[]string{"order_id", "product_id", "name", "unit_price", "quantity"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := o.conv.ToEntity(&created, items)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (o *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	q := tr.QuerierFromCtx(ctx, o.pool)

	var m converter.OrderModel
	if err := scanOrder(q.QueryRow(ctx, `SELECT`+orderColumns+` FROM orders WHERE id = $1`, id), &m); err != nil {
		if noRows(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := o.loadItems(ctx, q, []int64{id})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	order, err := o.conv.ToEntity(&m, items[id])
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return order, nil
}

// GetLatestPending возвращает последний неоплаченный заказ сессии.
func (o *OrderRepo) GetLatestPending(ctx context.Context, sessionID string) (*domain.Order, error) {
	q := tr.QuerierFromCtx(ctx, o.pool)

	query := `SELECT` + orderColumns + ` FROM orders
		WHERE session_id = $1 AND status = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	var m converter.OrderModel
	if err := scanOrder(q.QueryRow(ctx, query, sessionID, string(domain.OrderPending)), &m); err != nil {
		if noRows(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := o.loadItems(ctx, q, []int64{m.ID})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	order, err := o.conv.ToEntity(&m, items[m.ID])
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return order, nil
}

func (o *OrderRepo) SetPaymentSession(ctx context.Context, id int64, paymentSessionID string) error {
	q := tr.QuerierFromCtx(ctx, o.pool)

	tag, err := q.Exec(ctx, `UPDATE orders SET payment_session_id = $1 WHERE id = $2`, paymentSessionID, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
	}

	return nil
}

// MarkPaid переводит заказ из pending в paid.
func (o *OrderRepo) MarkPaid(ctx context.Context, id int64, paymentID string) (*domain.Order, error) {
	q := tr.QuerierFromCtx(ctx, o.pool)

	query := `
		UPDATE orders
		SET status = $1, payment_id = $2, paid_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING` + orderColumns

	var m converter.OrderModel
	if err := scanOrder(q.QueryRow(ctx, query, string(domain.OrderPaid), paymentID, id, string(domain.OrderPending)), &m); err != nil {
		if noRows(err) {
			if _, getErr := o.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderAlreadyPaid)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := o.loadItems(ctx, q, []int64{id})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	order, err := o.conv.ToEntity(&m, items[id])
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return order, nil
}

// List возвращает заказы от новых к старым.
func (o *OrderRepo) List(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	rows, err := o.pool.Query(ctx, `SELECT`+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.OrderModel, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var m converter.OrderModel
		if err := scanOrder(rows, &m); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := o.loadItems(ctx, o.pool, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make([]domain.Order, 0, len(models))
	for i := range models {
		order, err := o.conv.ToEntity(&models[i], items[models[i].ID])
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *order)
	}

	return result, nil
}

func (o *OrderRepo) loadItems(ctx context.Context, q tr.Querier, orderIDs []int64) (map[int64][]converter.OrderItemModel, error) {
	result := make(map[int64][]converter.OrderItemModel, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	rows, err := q.Query(ctx, `
		SELECT id, order_id, product_id, name, unit_price, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it converter.OrderItemModel
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, err
		}
		result[it.OrderID] = append(result[it.OrderID], it)
	}

	return result, rows.Err()
}

func scanOrder(row rowScanner, m *converter.OrderModel) error {
	return row.Scan(
		&m.ID, &m.SessionID, &m.Status, &m.IsB2B, &m.CustomerName, &m.CustomerEmail, &m.CustomerPhone,
		&m.ShippingAddress, &m.GSTNumber, &m.Currency, &m.Percentage,
		&m.Subtotal, &m.AmountDueNow, &m.BalanceDue,
		&m.PaymentSessionID, &m.PaymentID, &m.CreatedAt, &m.PaidAt,
	)
}
