package pgdb

import (
	"context"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/jimlawless/whereami"
)

// SettingsRepo хранит единственную строку store_settings (id = 1).
type SettingsRepo struct {
	pool DB
	conv converter.SettingsConverter
}

func NewSettingsRepo(pool DB, conv converter.SettingsConverter) *SettingsRepo {
	return &SettingsRepo{pool: pool, conv: conv}
}

func (s *SettingsRepo) Get(ctx context.Context) (*domain.StoreSettings, error) {
	var m converter.SettingsModel
	err := s.pool.QueryRow(ctx, `
		SELECT currency, b2b_partial_payment_percentage, updated_at
		FROM store_settings
		WHERE id = 1
	`).Scan(&m.Currency, &m.B2BPartialPaymentPercentage, &m.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrSettingsNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(&m), nil
}

// Upsert сохраняет настройки как есть, без проверки диапазона процента.
func (s *SettingsRepo) Upsert(ctx context.Context, settings *domain.StoreSettings) (*domain.StoreSettings, error) {
	in := s.conv.ToModel(settings)

	var m converter.SettingsModel
	err := s.pool.QueryRow(ctx, `
		INSERT INTO store_settings (id, currency, b2b_partial_payment_percentage)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET
			currency = EXCLUDED.currency,
			b2b_partial_payment_percentage = EXCLUDED.b2b_partial_payment_percentage,
			updated_at = NOW()
		RETURNING currency, b2b_partial_payment_percentage, updated_at
	`, in.Currency, in.B2BPartialPaymentPercentage).Scan(&m.Currency, &m.B2BPartialPaymentPercentage, &m.UpdatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(&m), nil
}
