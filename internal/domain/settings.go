package domain

import "time"

// StoreSettings — настройки магазина, которые редактирует админка.
type StoreSettings struct {
	Currency                    string
	B2BPartialPaymentPercentage int
	UpdatedAt                   time.Time
}

func (s StoreSettings) PricingContext() PricingContext {
	return PricingContext{
		Currency:          s.Currency,
		PartialPercentage: s.B2BPartialPaymentPercentage,
	}
}
