package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает товар каталога. Витрина читает только снимки товаров,
// изменяет их исключительно админка.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal // Неотрицательная цена за единицу
	CategoryID    int64
	Category      string // Название категории, по которому работает фильтр
	ImageURL      string
	IsNew         bool
	StockQuantity *int32 // Справочно, лимит количества в корзине не проверяется
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	IsArchived    bool
}

func NewProduct(name, description string, price decimal.Decimal, categoryID int64, isNew bool) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
		IsNew:       isNew,
	}
}
