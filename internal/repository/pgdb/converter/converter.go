package converter

import (
	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []ProductModel) []domain.Product
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter interface {
	ToModel(entity *domain.Category) *CategoryModel
	ToEntity(model *CategoryModel) *domain.Category
}

// OrderConverter преобразует заказ и его позиции между domain и моделями PostgreSQL.
type OrderConverter interface {
	ToModel(entity *domain.Order) *OrderModel
	ToEntity(model *OrderModel, items []OrderItemModel) (*domain.Order, error)
	ToItemModels(entity *domain.Order) []OrderItemModel
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

// SettingsConverter преобразует настройки магазина между domain и моделью PostgreSQL.
type SettingsConverter interface {
	ToModel(entity *domain.StoreSettings) *SettingsModel
	ToEntity(model *SettingsModel) *domain.StoreSettings
}

// Converter реализует все конвертеры пакета.
type Converter struct{}

func New() *Converter {
	return &Converter{}
}

// CentsToDecimal переводит сумму в минимальных единицах валюты в decimal.
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// DecimalToCents переводит decimal в минимальные единицы валюты, отбрасывая доли.
func DecimalToCents(d decimal.Decimal) int64 {
	return d.Shift(2).IntPart()
}

type productConverter struct{}

type categoryConverter struct{}

type orderConverter struct{}

type outboxEventConverter struct{}

type settingsConverter struct{}

func (c *Converter) Product() ProductConverter         { return productConverter{} }
func (c *Converter) Category() CategoryConverter       { return categoryConverter{} }
func (c *Converter) Order() OrderConverter             { return orderConverter{} }
func (c *Converter) OutboxEvent() OutboxEventConverter { return outboxEventConverter{} }
func (c *Converter) Settings() SettingsConverter       { return settingsConverter{} }

func (productConverter) ToModel(p *domain.Product) *ProductModel {
	if p == nil {
		return nil
	}
	return &ProductModel{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         DecimalToCents(p.Price),
		CategoryID:    p.CategoryID,
		CategoryName:  p.Category,
		ImageURL:      p.ImageURL,
		IsNew:         p.IsNew,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		IsArchived:    p.IsArchived,
	}
}

func (productConverter) ToEntity(m *ProductModel) *domain.Product {
	if m == nil {
		return nil
	}
	return &domain.Product{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         CentsToDecimal(m.Price),
		CategoryID:    m.CategoryID,
		Category:      m.CategoryName,
		ImageURL:      m.ImageURL,
		IsNew:         m.IsNew,
		StockQuantity: m.StockQuantity,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		IsArchived:    m.IsArchived,
	}
}

func (c productConverter) ToArrEntity(models []ProductModel) []domain.Product {
	out := make([]domain.Product, 0, len(models))
	for i := range models {
		out = append(out, *c.ToEntity(&models[i]))
	}
	return out
}

func (categoryConverter) ToModel(c *domain.Category) *CategoryModel {
	if c == nil {
		return nil
	}
	return &CategoryModel{
		ID:         c.ID,
		Name:       c.Name,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		IsArchived: !c.IsActive,
	}
}

func (categoryConverter) ToEntity(m *CategoryModel) *domain.Category {
	if m == nil {
		return nil
	}
	return &domain.Category{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		IsActive:  !m.IsArchived,
	}
}

func (orderConverter) ToModel(o *domain.Order) *OrderModel {
	if o == nil {
		return nil
	}
	return &OrderModel{
		ID:               o.ID,
		SessionID:        o.SessionID,
		Status:           string(o.Status),
		IsB2B:            o.IsB2B,
		CustomerName:     o.Customer.Name,
		CustomerEmail:    o.Customer.Email,
		CustomerPhone:    o.Customer.Phone,
		ShippingAddress:  o.Customer.ShippingAddress,
		GSTNumber:        o.Customer.GSTNumber,
		Currency:         o.Currency,
		Percentage:       int32(o.Percentage),
		Subtotal:         o.Subtotal.String(),
		AmountDueNow:     o.AmountDueNow.String(),
		BalanceDue:       o.BalanceDue.String(),
		PaymentSessionID: optionalString(o.PaymentSessionID),
		PaymentID:        optionalString(o.PaymentID),
		CreatedAt:        o.CreatedAt,
		PaidAt:           o.PaidAt,
	}
}

func (orderConverter) ToEntity(m *OrderModel, items []OrderItemModel) (*domain.Order, error) {
	subtotal, err := decimal.NewFromString(m.Subtotal)
	if err != nil {
		return nil, err
	}
	due, err := decimal.NewFromString(m.AmountDueNow)
	if err != nil {
		return nil, err
	}
	balance, err := decimal.NewFromString(m.BalanceDue)
	if err != nil {
		return nil, err
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: CentsToDecimal(it.UnitPrice),
			Quantity:  int(it.Quantity),
		})
	}

	return &domain.Order{
		ID:        m.ID,
		SessionID: m.SessionID,
		Status:    domain.OrderStatus(m.Status),
		IsB2B:     m.IsB2B,
		Customer: domain.Customer{
			Name:            m.CustomerName,
			Email:           m.CustomerEmail,
			Phone:           m.CustomerPhone,
			ShippingAddress: m.ShippingAddress,
			GSTNumber:       m.GSTNumber,
		},
		Items:            orderItems,
		Currency:         m.Currency,
		Percentage:       int(m.Percentage),
		Subtotal:         subtotal,
		AmountDueNow:     due,
		BalanceDue:       balance,
		PaymentSessionID: derefString(m.PaymentSessionID),
		PaymentID:        derefString(m.PaymentID),
		CreatedAt:        m.CreatedAt,
		PaidAt:           m.PaidAt,
	}, nil
}

func (orderConverter) ToItemModels(o *domain.Order) []OrderItemModel {
	out := make([]OrderItemModel, 0, len(o.Items))
	for _, it := range o.Items {
		out = append(out, OrderItemModel{
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: DecimalToCents(it.UnitPrice),
			Quantity:  int32(it.Quantity),
		})
	}
	return out
}

func (outboxEventConverter) ToModel(e *usecase.OutboxEvent) *OutboxEventModel {
	if e == nil {
		return nil
	}
	return &OutboxEventModel{
		ID:          e.ID,
		EventID:     e.EventID,
		EventType:   string(e.EventType),
		OrderID:     e.OrderID,
		Payload:     e.Payload,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		ProcessedAt: e.ProcessedAt,
	}
}

func (outboxEventConverter) ToEntity(m *OutboxEventModel) *usecase.OutboxEvent {
	if m == nil {
		return nil
	}
	return &usecase.OutboxEvent{
		ID:          m.ID,
		EventID:     m.EventID,
		EventType:   usecase.OutboxEventType(m.EventType),
		OrderID:     m.OrderID,
		Payload:     m.Payload,
		Status:      usecase.OutboxStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		ProcessedAt: m.ProcessedAt,
	}
}

func (c outboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	out := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		out = append(out, c.ToEntity(m))
	}
	return out
}

func (settingsConverter) ToModel(s *domain.StoreSettings) *SettingsModel {
	if s == nil {
		return nil
	}
	return &SettingsModel{
		Currency:                    s.Currency,
		B2BPartialPaymentPercentage: int32(s.B2BPartialPaymentPercentage),
		UpdatedAt:                   s.UpdatedAt,
	}
}

func (settingsConverter) ToEntity(m *SettingsModel) *domain.StoreSettings {
	if m == nil {
		return nil
	}
	return &domain.StoreSettings{
		Currency:                    m.Currency,
		B2BPartialPaymentPercentage: int(m.B2BPartialPaymentPercentage),
		UpdatedAt:                   m.UpdatedAt,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
