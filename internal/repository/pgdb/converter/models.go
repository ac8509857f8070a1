package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL (с названием категории из JOIN).
type ProductModel struct {
	ID            int64      `db:"id"`
	Name          string     `db:"name"`
	Description   string     `db:"description"`
	Price         int64      `db:"price"` // Цена хранится в минимальных единицах валюты
	CategoryID    int64      `db:"category_id"`
	CategoryName  string     `db:"category_name"`
	ImageURL      string     `db:"image_url"`
	IsNew         bool       `db:"is_new"`
	StockQuantity *int32     `db:"stock_quantity"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
	IsArchived    bool       `db:"is_archived"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID         int64      `db:"id"`
	Name       string     `db:"name"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
	IsArchived bool       `db:"is_archived"`
}

// OrderModel представляет запись таблицы orders. Денежные поля — NUMERIC в виде строки.
type OrderModel struct {
	ID               int64      `db:"id"`
	SessionID        string     `db:"session_id"`
	Status           string     `db:"status"`
	IsB2B            bool       `db:"is_b2b"`
	CustomerName     string     `db:"customer_name"`
	CustomerEmail    string     `db:"customer_email"`
	CustomerPhone    string     `db:"customer_phone"`
	ShippingAddress  string     `db:"shipping_address"`
	GSTNumber        string     `db:"gst_number"`
	Currency         string     `db:"currency"`
	Percentage       int32      `db:"percentage"`
	Subtotal         string     `db:"subtotal"`
	AmountDueNow     string     `db:"amount_due_now"`
	BalanceDue       string     `db:"balance_due"`
	PaymentSessionID *string    `db:"payment_session_id"`
	PaymentID        *string    `db:"payment_id"`
	CreatedAt        time.Time  `db:"created_at"`
	PaidAt           *time.Time `db:"paid_at"`
}

// OrderItemModel представляет запись таблицы order_items.
type OrderItemModel struct {
	ID        int64  `db:"id"`
	OrderID   int64  `db:"order_id"`
	ProductID int64  `db:"product_id"`
	Name      string `db:"name"`
	UnitPrice int64  `db:"unit_price"`
	Quantity  int32  `db:"quantity"`
}

// OutboxEventModel представляет запись таблицы outbox_events.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}

// SettingsModel представляет единственную запись таблицы store_settings.
type SettingsModel struct {
	Currency                    string    `db:"currency"`
	B2BPartialPaymentPercentage int32     `db:"b2b_partial_payment_percentage"`
	UpdatedAt                   time.Time `db:"updated_at"`
}
