package tr

import (
	"context"
	"testing"

	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxFromCtx_NoTransaction(t *testing.T) {
	_, err := TxFromCtx(context.Background())
	require.ErrorIs(t, err, e.ErrTransactionNotFound)
}

func TestTxFromCtx_WrongType(t *testing.T) {
	ctx := WithTx(context.Background(), "not a tx")
	_, err := TxFromCtx(ctx)
	require.ErrorIs(t, err, e.ErrTransactionNotFound)
}

func TestQuerierFromCtx_Fallback(t *testing.T) {
	assert.Nil(t, QuerierFromCtx(context.Background(), nil))
}
