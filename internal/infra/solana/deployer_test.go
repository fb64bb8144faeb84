// internal/infra/solana/deployer_test.go
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

// SPL token instruction tags (first data byte).
const (
	tagInitializeMint byte = 0
	tagSetAuthority   byte = 6
	tagMintTo         byte = 7
)

func planFixture(enableMint, enableFreeze bool, supply uint64) InstructionPlan {
	payer := types.NewAccount()
	mint := types.NewAccount()
	ata, _, _ := common.FindAssociatedTokenAddress(payer.PublicKey, mint.PublicKey)
	return InstructionPlan{
		Payer:                 payer.PublicKey,
		Mint:                  mint.PublicKey,
		ATA:                   ata,
		MetadataAccount:       types.NewAccount().PublicKey,
		Name:                  "Aurora Credits",
		Symbol:                "AUR",
		URI:                   "https://example.com/meta.json",
		Decimals:              9,
		SupplyBaseUnits:       supply,
		MintRent:              1_461_600,
		EnableMintAuthority:   enableMint,
		EnableFreezeAuthority: enableFreeze,
		EnableUpdateAuthority: true,
	}
}

func TestBuildDeployInstructionsOrder(t *testing.T) {
	ins := BuildDeployInstructions(planFixture(false, true, 1_000_000_000))
	require.Len(t, ins, 6)

	assert.Equal(t, common.SystemProgramID, ins[0].ProgramID)

	assert.Equal(t, common.TokenProgramID, ins[1].ProgramID)
	assert.Equal(t, tagInitializeMint, ins[1].Data[0])

	assert.Equal(t, common.MetaplexTokenMetaProgramID, ins[2].ProgramID)
	assert.Equal(t, common.SPLAssociatedTokenAccountProgramID, ins[3].ProgramID)

	assert.Equal(t, common.TokenProgramID, ins[4].ProgramID)
	assert.Equal(t, tagMintTo, ins[4].Data[0])

	assert.Equal(t, common.TokenProgramID, ins[5].ProgramID)
	assert.Equal(t, tagSetAuthority, ins[5].Data[0])
}

func TestBuildDeployInstructionsZeroSupplyStillRevokes(t *testing.T) {
	ins := BuildDeployInstructions(planFixture(false, false, 0))
	require.Len(t, ins, 5)

	// no mint-to, but the revoke still lands last
	for _, in := range ins {
		if in.ProgramID == common.TokenProgramID {
			assert.NotEqual(t, tagMintTo, in.Data[0])
		}
	}
	last := ins[len(ins)-1]
	assert.Equal(t, common.TokenProgramID, last.ProgramID)
	assert.Equal(t, tagSetAuthority, last.Data[0])
}

func TestBuildDeployInstructionsKeepsMintAuthority(t *testing.T) {
	ins := BuildDeployInstructions(planFixture(true, false, 500))
	require.Len(t, ins, 5)

	last := ins[len(ins)-1]
	assert.Equal(t, tagMintTo, last.Data[0])
}

func TestTruncateBytes(t *testing.T) {
	assert.Equal(t, "short", truncateBytes("  short  ", 32))
	assert.Len(t, truncateBytes("averyveryverylongtokennamethatexceedsthelimit", 32), 32)
	assert.Equal(t, "ABCDEFGHIJ", truncateBytes("ABCDEFGHIJKLM", 10))
}

func TestDeploySubmitsAndConfirms(t *testing.T) {
	payer := types.NewAccount()
	chain := newFakeChain()
	confirmed := rpc.CommitmentFinalized
	chain.statuses = []*rpc.SignatureStatus{{ConfirmationStatus: &confirmed}}

	d := NewDeployer(chain, staticRegistry(payer), tokdom.NetworkDevnet)
	res, err := d.Deploy(context.Background(), DeployParams{
		Name:                "Aurora Credits",
		Symbol:              "AUR",
		Decimals:            9,
		TotalSupply:         "1000000",
		Network:             tokdom.NetworkDevnet,
		MetadataURI:         "https://example.com/meta.json",
		EnableMintAuthority: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.MintAddress)
	assert.NotEmpty(t, res.TransactionSignature)
	assert.Len(t, chain.sent, 1)
}

func TestDeployRejectsWrongNetwork(t *testing.T) {
	payer := types.NewAccount()
	chain := newFakeChain()
	chain.genesisHash = genesisMainnet

	d := NewDeployer(chain, staticRegistry(payer), tokdom.NetworkDevnet)
	_, err := d.Deploy(context.Background(), DeployParams{
		Name:        "Aurora Credits",
		Symbol:      "AUR",
		Decimals:    9,
		TotalSupply: "1000",
		Network:     tokdom.NetworkDevnet,
	})
	require.ErrorIs(t, err, ErrWrongNetwork)
	assert.Empty(t, chain.sent)
}

func TestDeployRejectsBadSupply(t *testing.T) {
	payer := types.NewAccount()
	chain := newFakeChain()

	d := NewDeployer(chain, staticRegistry(payer), tokdom.NetworkDevnet)
	_, err := d.Deploy(context.Background(), DeployParams{
		Name:        "Aurora Credits",
		Symbol:      "AUR",
		Decimals:    9,
		TotalSupply: "not-a-number",
		Network:     tokdom.NetworkDevnet,
	})
	require.Error(t, err)
	assert.True(t, tokdom.IsInvalid(err))
}

func TestDeployNoSigner(t *testing.T) {
	chain := newFakeChain()
	d := NewDeployer(chain, NewSignerRegistry(), tokdom.NetworkDevnet)
	_, err := d.Deploy(context.Background(), DeployParams{
		Name:        "Aurora Credits",
		Symbol:      "AUR",
		Decimals:    9,
		TotalSupply: "1000",
		Network:     tokdom.NetworkDevnet,
	})
	require.ErrorIs(t, err, ErrNoWalletConnected)
}
