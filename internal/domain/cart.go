package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// CartState — внешне значимое состояние корзины.
type CartState string

const (
	CartEmpty     CartState = "empty"
	CartPopulated CartState = "populated"
)

// LineItem — снимок товара и его количество в корзине. Quantity всегда >= 1.
type LineItem struct {
	Product  Product
	Quantity int
}

// LineTotal возвращает price × quantity для позиции.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart — упорядоченный набор позиций без повторяющихся товаров.
// Позиция исчезает из корзины только через Remove или Clear.
type Cart struct {
	items []LineItem
}

func NewCart() *Cart {
	return &Cart{}
}

// RestoreCart собирает корзину из сохранённых позиций.
// Дубликаты схлопываются в первую позицию, количество меньше 1 поднимается до 1.
func RestoreCart(items []LineItem) *Cart {
	c := &Cart{items: make([]LineItem, 0, len(items))}
	for _, it := range items {
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if i := c.index(it.Product.ID); i >= 0 {
			c.items[i].Quantity += it.Quantity
			continue
		}
		c.items = append(c.items, it)
	}

	return c
}

// Add увеличивает количество товара на 1 или добавляет новую позицию с количеством 1.
func (c *Cart) Add(p Product) {
	if i := c.index(p.ID); i >= 0 {
		if c.items[i].Quantity < math.MaxInt {
			c.items[i].Quantity++
		}
		return
	}

	c.items = append(c.items, LineItem{Product: p, Quantity: 1})
}

// UpdateQuantity меняет количество на delta, не опуская его ниже 1.
// Сумма насыщается на math.MaxInt.
// Для отсутствующего товара ничего не делает.
func (c *Cart) UpdateQuantity(productID int64, delta int) {
	i := c.index(productID)
	if i < 0 {
		return
	}

	q := c.items[i].Quantity
	if delta > 0 && q > math.MaxInt-delta {
		c.items[i].Quantity = math.MaxInt
		return
	}

	c.items[i].Quantity = max(1, q+delta)
}

// Remove удаляет позицию, если она есть.
func (c *Cart) Remove(productID int64) {
	if i := c.index(productID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// Items возвращает копию позиций в порядке добавления.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Subtotal() decimal.Decimal {
	return Subtotal(c.items)
}

// ItemCount возвращает сумму количеств, а не число различных товаров.
func (c *Cart) ItemCount() int {
	return itemCount(c.items)
}

func itemCount(items []LineItem) int {
	n := 0
	for _, it := range items {
		if n > math.MaxInt-it.Quantity {
			return math.MaxInt
		}
		n += it.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) State() CartState {
	if c.IsEmpty() {
		return CartEmpty
	}
	return CartPopulated
}

func (c *Cart) index(productID int64) int {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
