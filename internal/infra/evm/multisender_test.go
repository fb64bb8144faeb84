// internal/infra/evm/multisender_test.go
package evm

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	nonce    uint64
	gasPrice *big.Int

	sent      []*types.Transaction
	failOnTx  int // 1-based index of SendTransaction call to fail, 0 = never
	sendCalls int
}

func (b *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return b.nonce, nil
}

func (b *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	if b.gasPrice == nil {
		return big.NewInt(1_000_000_000), nil
	}
	return b.gasPrice, nil
}

func (b *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	b.sendCalls++
	if b.failOnTx != 0 && b.sendCalls == b.failOnTx {
		return errors.New("nonce too low")
	}
	b.sent = append(b.sent, tx)
	return nil
}

const (
	testToken = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	addrA     = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	addrB     = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
	addrC     = "0x90F79bf6EB2c4f870365E785982E1f101E93b906"
)

func newTestMultisender(t *testing.T, backend *fakeBackend) *Multisender {
	t.Helper()
	m, err := NewMultisender(backend, big.NewInt(11155111))
	require.NoError(t, err)
	return m
}

func TestMultisendAllSucceed(t *testing.T) {
	backend := &fakeBackend{nonce: 7}
	m := newTestMultisender(t, backend)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	res, err := m.Send(context.Background(), key, testToken, 18, []MultisendRecipient{
		{Address: addrA, Amount: 1.5},
		{Address: addrB, Amount: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 2, res.Total)
	require.Len(t, backend.sent, 2)
	assert.Equal(t, uint64(7), backend.sent[0].Nonce())
	assert.Equal(t, uint64(8), backend.sent[1].Nonce(), "nonce advances per submitted transfer")
	for i, rec := range res.Records {
		assert.NotEmpty(t, rec.TxHash, "record %d", i)
		assert.Empty(t, rec.Error, "record %d", i)
	}
}

func TestMultisendPartialFailureContinues(t *testing.T) {
	backend := &fakeBackend{failOnTx: 2}
	m := newTestMultisender(t, backend)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	res, err := m.Send(context.Background(), key, testToken, 9, []MultisendRecipient{
		{Address: addrA, Amount: 10},
		{Address: addrB, Amount: 20},
		{Address: addrC, Amount: 30},
	})
	require.NoError(t, err, "per-recipient failure is reported, not thrown")

	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Records, 3)
	assert.Empty(t, res.Records[0].Error)
	assert.NotEmpty(t, res.Records[1].Error)
	assert.Empty(t, res.Records[2].Error, "recipients after a failure still get their transfer")

	// failed submission does not consume a nonce
	require.Len(t, backend.sent, 2)
	assert.Equal(t, backend.sent[0].Nonce()+1, backend.sent[1].Nonce())
}

func TestMultisendInvalidRecipientAddress(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestMultisender(t, backend)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	res, err := m.Send(context.Background(), key, testToken, 9, []MultisendRecipient{
		{Address: "not-an-address", Amount: 1},
		{Address: addrA, Amount: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Succeeded)
	assert.NotEmpty(t, res.Records[0].Error)
	assert.Len(t, backend.sent, 1, "invalid address never reaches the backend")
}

func TestMultisendRejectsNonPositiveAmount(t *testing.T) {
	m := newTestMultisender(t, &fakeBackend{})
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	res, err := m.Send(context.Background(), key, testToken, 9, []MultisendRecipient{
		{Address: addrA, Amount: 0},
		{Address: addrB, Amount: -3},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Succeeded)
	for _, rec := range res.Records {
		assert.NotEmpty(t, rec.Error)
	}
}

func TestMultisendInputValidation(t *testing.T) {
	m := newTestMultisender(t, &fakeBackend{})
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	ctx := context.Background()

	_, err = m.Send(ctx, key, testToken, 9, nil)
	assert.ErrorIs(t, err, ErrMultisendNoRecipients)

	_, err = m.Send(ctx, key, "0x123", 9, []MultisendRecipient{{Address: addrA, Amount: 1}})
	assert.ErrorIs(t, err, ErrMultisendBadToken)

	_, err = m.Send(ctx, nil, testToken, 9, []MultisendRecipient{{Address: addrA, Amount: 1}})
	assert.ErrorIs(t, err, ErrMultisendNotConfigured)
}
