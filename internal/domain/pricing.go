package domain

import "github.com/shopspring/decimal"

// DefaultPartialPaymentPercentage применяется, когда процент предоплаты B2B не задан.
const DefaultPartialPaymentPercentage = 50

const fullPaymentPercentage = 100

// PricingContext — настройки расчёта итогов.
type PricingContext struct {
	Currency          string // Символ валюты, только для отображения
	PartialPercentage int    // 0 означает "не задано"
}

// EffectivePercentage возвращает процент предоплаты с учётом значения по умолчанию.
// Значения вне [1,100] не корректируются.
func (pc PricingContext) EffectivePercentage() int {
	if pc.PartialPercentage == 0 {
		return DefaultPartialPaymentPercentage
	}
	return pc.PartialPercentage
}

// PercentageInRange сообщает, лежит ли процент в ожидаемом диапазоне [1,100].
func (pc PricingContext) PercentageInRange() bool {
	p := pc.EffectivePercentage()
	return p >= 1 && p <= 100
}

// Totals итоги к отображению и оплате.
type Totals struct {
	Currency     string
	ItemCount    int
	Percentage   int
	Subtotal     decimal.Decimal
	AmountDueNow decimal.Decimal
	BalanceDue   decimal.Decimal
}

// Subtotal возвращает Σ price × quantity без округления.
func Subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// AmountDueNow возвращает subtotal × pct / 100. Нулевой pct заменяется на 50.
func AmountDueNow(subtotal decimal.Decimal, pct int) decimal.Decimal {
	if pct == 0 {
		pct = DefaultPartialPaymentPercentage
	}
	return subtotal.Mul(decimal.NewFromInt(int64(pct))).Shift(-2)
}

// BalanceDue возвращает subtotal − due.
func BalanceDue(subtotal, due decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(due)
}

// Quote считает итоги по позициям. Розничный заказ оплачивается полностью,
// B2B — на процент из настроек.
func Quote(items []LineItem, pc PricingContext, b2b bool) Totals {
	pct := fullPaymentPercentage
	if b2b {
		pct = pc.EffectivePercentage()
	}

	subtotal := Subtotal(items)
	due := AmountDueNow(subtotal, pct)

	return Totals{
		Currency:     pc.Currency,
		ItemCount:    itemCount(items),
		Percentage:   pct,
		Subtotal:     subtotal,
		AmountDueNow: due,
		BalanceDue:   BalanceDue(subtotal, due),
	}
}
