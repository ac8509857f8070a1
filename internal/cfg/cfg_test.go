package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logger.Logger {
	return logger.NewNop()
}

func setRequired(t *testing.T) {
	t.Setenv("POSTGRES_USER", "lignum")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "storefront")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	c, err := Load(testLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "storefront.orders", c.Kafka.Topic)
	assert.Equal(t, "8080", c.Http.Port)
	assert.Equal(t, 72*time.Hour, c.Redis.CartTTL)
	assert.Equal(t, 50, c.Pricing.B2BPartialPaymentPercent)
	assert.Equal(t, "₹", c.Pricing.Currency)
	assert.Equal(t, "payment-service:50061", c.Payment.Addr)
	assert.Equal(t, "http://minio:9000/product-images", c.Minio.PublicBaseURL)
	assert.Equal(t, 30*time.Second, c.Kafka.OutboxPollInterval)
	assert.Equal(t, 5*time.Minute, c.Kafka.OutboxStaleAfter)
}

func TestLoad_OutboxTimings(t *testing.T) {
	setRequired(t)
	t.Setenv("OUTBOX_POLL_INTERVAL", "5s")
	t.Setenv("OUTBOX_STALE_AFTER", "2m")

	c, err := Load(testLogger())
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.Kafka.OutboxPollInterval)
	assert.Equal(t, 2*time.Minute, c.Kafka.OutboxStaleAfter)

	t.Setenv("OUTBOX_STALE_AFTER", "soon")
	_, err = Load(testLogger())
	require.Error(t, err)
}

func TestLoad_RequiredVariables(t *testing.T) {
	t.Run("missing POSTGRES_USER", func(t *testing.T) {
		setRequired(t)
		t.Setenv("POSTGRES_USER", "")
		_, err := Load(testLogger())
		require.Error(t, err)
	})

	t.Run("missing KAFKA_BROKERS", func(t *testing.T) {
		setRequired(t)
		t.Setenv("KAFKA_BROKERS", "")
		_, err := Load(testLogger())
		require.Error(t, err)
	})
}

func TestLoad_PricingPercentagePassesThrough(t *testing.T) {
	setRequired(t)
	t.Setenv("B2B_PARTIAL_PAYMENT_PERCENTAGE", "150")

	c, err := Load(testLogger())
	require.NoError(t, err)
	assert.Equal(t, 150, c.Pricing.B2BPartialPaymentPercent)
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	_, err := parseIntEnv("SOME_INT", 1)
	require.ErrorIs(t, err, e.ErrIncorrectEnvVariable)

	v, err := parseIntEnv("UNSET_INT_VARIABLE", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
