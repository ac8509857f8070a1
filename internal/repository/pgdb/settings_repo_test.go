package pgdb

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settingsCols = []string{"currency", "b2b_partial_payment_percentage", "updated_at"}

func TestSettingsRepo_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row", func(t *testing.T) {
		mock := newMockDB(t)
		repo := NewSettingsRepo(mock, converter.New().Settings())

		mock.ExpectQuery(`FROM store_settings\s+WHERE id = 1`).WillReturnError(pgx.ErrNoRows)

		_, err := repo.Get(ctx)
		require.ErrorIs(t, err, e.ErrSettingsNotFound)
	})

	t.Run("stored row", func(t *testing.T) {
		mock := newMockDB(t)
		repo := NewSettingsRepo(mock, converter.New().Settings())
		updatedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`FROM store_settings\s+WHERE id = 1`).
			WillReturnRows(pgxmock.NewRows(settingsCols).AddRow("₹", int32(40), updatedAt))

		s, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "₹", s.Currency)
		assert.Equal(t, 40, s.B2BPartialPaymentPercentage)
	})
}

func TestSettingsRepo_UpsertKeepsPercentageAsIs(t *testing.T) {
	mock := newMockDB(t)
	repo := NewSettingsRepo(mock, converter.New().Settings())
	updatedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)INSERT INTO store_settings .*ON CONFLICT \(id\) DO UPDATE`).
		WithArgs("$", int32(150)).
		WillReturnRows(pgxmock.NewRows(settingsCols).AddRow("$", int32(150), updatedAt))

	s, err := repo.Upsert(context.Background(), &domain.StoreSettings{Currency: "$", B2BPartialPaymentPercentage: 150})
	require.NoError(t, err)
	assert.Equal(t, 150, s.B2BPartialPaymentPercentage)
	assert.Equal(t, updatedAt, s.UpdatedAt)
}
