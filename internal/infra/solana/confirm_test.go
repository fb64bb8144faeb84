// internal/infra/solana/confirm_test.go
package solana

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryBackoffCurve(t *testing.T) {
	assert.Equal(t, 1*time.Second, retryBackoff(0))
	assert.Equal(t, 2*time.Second, retryBackoff(1))
	assert.Equal(t, 4*time.Second, retryBackoff(2))
	assert.Equal(t, 5*time.Second, retryBackoff(3))
	assert.Equal(t, 5*time.Second, retryBackoff(6))
}

func TestAwaitConfirmationImmediate(t *testing.T) {
	chain := newFakeChain()
	confirmed := rpc.CommitmentConfirmed
	chain.statuses = []*rpc.SignatureStatus{{ConfirmationStatus: &confirmed}}

	err := awaitConfirmation(context.Background(), chain, "sig", chain.blockhash.LatestValidBlockHeight)
	require.NoError(t, err)
}

func TestAwaitConfirmationExpiry(t *testing.T) {
	chain := newFakeChain()
	chain.blockHeight = 2_000 // beyond lastValidBlockHeight

	err := awaitConfirmation(context.Background(), chain, "sig", 1_000)
	require.ErrorIs(t, err, ErrTransactionExpired)
}

func TestAwaitConfirmationOnChainFailure(t *testing.T) {
	chain := newFakeChain()
	chain.statuses = []*rpc.SignatureStatus{{Err: map[string]any{"InstructionError": []any{}}}}

	err := awaitConfirmation(context.Background(), chain, "sig", 1_000)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTransactionExpired)
}

func TestConfirmWithRetryExpiredIsFatal(t *testing.T) {
	chain := newFakeChain()
	chain.blockHeight = 2_000

	start := time.Now()
	err := confirmWithRetry(context.Background(), chain, "sig", 1_000)
	require.ErrorIs(t, err, ErrTransactionExpired)
	// fatal on the first attempt, no backoff sleeps
	assert.Less(t, time.Since(start), time.Second)
}

func TestSubmitWithRetrySucceeds(t *testing.T) {
	chain := newFakeChain()
	chain.sendSigs = []string{"abc123"}

	sig, err := submitWithRetry(context.Background(), chain, fixtureTx(t))
	require.NoError(t, err)
	assert.Equal(t, "abc123", sig)
}

func TestSubmitWithRetryNonRetryableFailsFast(t *testing.T) {
	chain := newFakeChain()
	chain.sendErr = errors.New("Transaction simulation failed: insufficient lamports")

	_, err := submitWithRetry(context.Background(), chain, fixtureTx(t))
	require.ErrorIs(t, err, ErrInsufficientBalance)
}
