// internal/infra/solana/tools_test.go
package solana

import (
	"context"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokdom "aiqx/internal/domain/token"
)

type toolsFixture struct {
	chain *fakeChain
	tools *Tools
	payer types.Account
	mint  types.Account
}

func newToolsFixture(t *testing.T) *toolsFixture {
	t.Helper()
	chain := newFakeChain()
	confirmed := rpc.CommitmentConfirmed
	chain.statuses = []*rpc.SignatureStatus{{ConfirmationStatus: &confirmed}}

	payer := types.NewAccount()
	mint := types.NewAccount()
	return &toolsFixture{
		chain: chain,
		tools: NewTools(chain, staticRegistry(payer), tokdom.NetworkDevnet),
		payer: payer,
		mint:  mint,
	}
}

func (f *toolsFixture) installMint(mintAuth, freezeAuth *common.PublicKey, decimals uint8) {
	f.chain.putMint(f.mint.PublicKey.ToBase58(), mintData(mintAuth, freezeAuth, 0, decimals))
}

func (f *toolsFixture) installHolding(owner common.PublicKey, amount uint64, frozen bool) common.PublicKey {
	ata, _, _ := common.FindAssociatedTokenAddress(owner, f.mint.PublicKey)
	f.chain.putTokenAccount(ata.ToBase58(), tokenAccountData(f.mint.PublicKey, owner, amount, frozen))
	return ata
}

func TestMintMoreRequiresMintAuthority(t *testing.T) {
	f := newToolsFixture(t)
	other := types.NewAccount().PublicKey
	f.installMint(&other, nil, 9)

	_, err := f.tools.MintMore(context.Background(), f.mint.PublicKey.ToBase58(), "", "100")
	require.ErrorIs(t, err, ErrNotMintAuthority)
	assert.Empty(t, f.chain.sent)
}

func TestMintMoreRevokedAuthority(t *testing.T) {
	f := newToolsFixture(t)
	f.installMint(nil, nil, 9)

	_, err := f.tools.MintMore(context.Background(), f.mint.PublicKey.ToBase58(), "", "100")
	require.ErrorIs(t, err, ErrMintAuthorityRevoked)
}

func TestMintMoreCreatesMissingATA(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, nil, 6)

	res, err := f.tools.MintMore(context.Background(), f.mint.PublicKey.ToBase58(), "", "25.5")
	require.NoError(t, err)
	assert.NotEmpty(t, res.TransactionSignature)
	require.Len(t, f.chain.sent, 1)
}

func TestBurnRejectsOverBalance(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, nil, 6)
	f.installHolding(f.payer.PublicKey, 1_000_000, false) // 1.0 token

	_, err := f.tools.Burn(context.Background(), f.mint.PublicKey.ToBase58(), "2")
	require.Error(t, err)
	assert.True(t, tokdom.IsInvalid(err))
	assert.Empty(t, f.chain.sent)
}

func TestBurnWithinBalance(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, nil, 6)
	f.installHolding(f.payer.PublicKey, 5_000_000, false)

	res, err := f.tools.Burn(context.Background(), f.mint.PublicKey.ToBase58(), "3")
	require.NoError(t, err)
	assert.NotEmpty(t, res.TransactionSignature)
}

func TestFreezeRequiresFreezeAuthorityOnMint(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, nil, 9) // no freeze authority at all

	_, err := f.tools.Freeze(context.Background(), f.mint.PublicKey.ToBase58(), types.NewAccount().PublicKey.ToBase58())
	require.ErrorIs(t, err, ErrFreezeNotEnabled)
	assert.Empty(t, f.chain.sent)
}

func TestFreezeRequiresCallerIsAuthority(t *testing.T) {
	f := newToolsFixture(t)
	other := types.NewAccount().PublicKey
	f.installMint(&other, &other, 9)

	_, err := f.tools.Freeze(context.Background(), f.mint.PublicKey.ToBase58(), types.NewAccount().PublicKey.ToBase58())
	require.ErrorIs(t, err, ErrNotFreezeAuthority)
}

func TestFreezeAlreadyFrozen(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, &auth, 9)
	holder := types.NewAccount().PublicKey
	f.installHolding(holder, 100, true)

	_, err := f.tools.Freeze(context.Background(), f.mint.PublicKey.ToBase58(), holder.ToBase58())
	require.ErrorIs(t, err, ErrAlreadyInDesiredState)
}

func TestFreezeThenState(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, &auth, 9)
	holder := types.NewAccount().PublicKey
	f.installHolding(holder, 100, false)

	res, err := f.tools.Freeze(context.Background(), f.mint.PublicKey.ToBase58(), holder.ToBase58())
	require.NoError(t, err)
	assert.NotEmpty(t, res.TransactionSignature)
}

func TestUnfreezeNotFrozen(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, &auth, 9)
	holder := types.NewAccount().PublicKey
	f.installHolding(holder, 100, false)

	_, err := f.tools.Unfreeze(context.Background(), f.mint.PublicKey.ToBase58(), holder.ToBase58())
	require.ErrorIs(t, err, ErrAlreadyInDesiredState)
}

func TestRevokeAuthorityChecksHolder(t *testing.T) {
	f := newToolsFixture(t)
	other := types.NewAccount().PublicKey
	f.installMint(&other, nil, 9)

	_, err := f.tools.RevokeAuthority(context.Background(), f.mint.PublicKey.ToBase58(), AuthorityMint)
	require.ErrorIs(t, err, ErrNotMintAuthority)
}

func TestTransferAuthority(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, nil, 9)

	res, err := f.tools.TransferAuthority(
		context.Background(),
		f.mint.PublicKey.ToBase58(),
		AuthorityMint,
		types.NewAccount().PublicKey.ToBase58(),
	)
	require.NoError(t, err)
	assert.NotEmpty(t, res.TransactionSignature)
}

func TestMultisendSingleTransaction(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, nil, 6)
	f.installHolding(f.payer.PublicKey, 100_000_000, false) // 100 tokens

	// one recipient with an ATA, one without
	withATA := types.NewAccount().PublicKey
	f.installHolding(withATA, 0, false)

	res, err := f.tools.Multisend(context.Background(), f.mint.PublicKey.ToBase58(), []MultisendRecipient{
		{Wallet: withATA.ToBase58(), Amount: 1.5},
		{Wallet: types.NewAccount().PublicKey.ToBase58(), Amount: 2},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.TransactionSignature)
	require.Len(t, f.chain.sent, 1)
}

func TestMultisendRejectsOverBalance(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, nil, 6)
	f.installHolding(f.payer.PublicKey, 1_000_000, false) // 1 token

	_, err := f.tools.Multisend(context.Background(), f.mint.PublicKey.ToBase58(), []MultisendRecipient{
		{Wallet: types.NewAccount().PublicKey.ToBase58(), Amount: 5},
	})
	require.Error(t, err)
	assert.True(t, tokdom.IsInvalid(err))
	assert.Empty(t, f.chain.sent)
}

func TestMultisendRejectsBadAmounts(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, nil, 6)
	f.installHolding(f.payer.PublicKey, 1_000_000, false)

	_, err := f.tools.Multisend(context.Background(), f.mint.PublicKey.ToBase58(), []MultisendRecipient{
		{Wallet: types.NewAccount().PublicKey.ToBase58(), Amount: -1},
	})
	require.Error(t, err)

	_, err = f.tools.Multisend(context.Background(), f.mint.PublicKey.ToBase58(), nil)
	require.Error(t, err)
}

func TestMultisendRejectsAmountBeyondUint64(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, nil, 6)
	f.installHolding(f.payer.PublicKey, 1_000_000, false)

	// 1e30 scaled by 10^6 is far outside the u64 range
	_, err := f.tools.Multisend(context.Background(), f.mint.PublicKey.ToBase58(), []MultisendRecipient{
		{Wallet: types.NewAccount().PublicKey.ToBase58(), Amount: 1e30},
	})
	require.Error(t, err)
	assert.True(t, tokdom.IsInvalid(err))
	assert.Empty(t, f.chain.sent)
}

func TestMultisendRejectsWrappingBatchTotal(t *testing.T) {
	f := newToolsFixture(t)
	auth := f.payer.PublicKey
	f.installMint(&auth, nil, 6)
	f.installHolding(f.payer.PublicKey, 1_000_000, false)

	// each recipient fits in u64 alone, the sum does not
	_, err := f.tools.Multisend(context.Background(), f.mint.PublicKey.ToBase58(), []MultisendRecipient{
		{Wallet: types.NewAccount().PublicKey.ToBase58(), Amount: 1.2e13},
		{Wallet: types.NewAccount().PublicKey.ToBase58(), Amount: 1.2e13},
	})
	require.Error(t, err)
	assert.True(t, tokdom.IsInvalid(err))
	assert.Empty(t, f.chain.sent)
}
