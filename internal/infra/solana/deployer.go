// internal/infra/solana/deployer.go
package solana

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	tokdom "aiqx/internal/domain/token"
)

// Metaplex metadata field limits.
const (
	maxMetadataNameBytes   = 32
	maxMetadataSymbolBytes = 10
)

// lamports charged per transaction signature
const lamportsPerSignature = 5000

// DeployParams is the input of one deployment attempt. MetadataURI is
// resolved upstream (pinning) before the pipeline runs.
type DeployParams struct {
	Name        string
	Symbol      string
	Decimals    uint8
	TotalSupply string
	Network     tokdom.Network
	MetadataURI string

	EnableMintAuthority   bool
	EnableFreezeAuthority bool
	EnableUpdateAuthority bool
}

// DeployResult is created exactly once per successful deployment.
type DeployResult struct {
	MintAddress          string
	TransactionSignature string
}

// Deployer owns the create-token pipeline: resolve signer, ensure network,
// assemble the instruction sequence, sign, submit, confirm.
type Deployer struct {
	Client  ChainClient
	Signers *SignerRegistry
	Network tokdom.Network
}

func NewDeployer(c ChainClient, signers *SignerRegistry, network tokdom.Network) *Deployer {
	return &Deployer{Client: c, Signers: signers, Network: network}
}

// Deploy runs one logical attempt, strictly ordered.
func (d *Deployer) Deploy(ctx context.Context, p DeployParams) (DeployResult, error) {
	if d == nil || d.Client == nil {
		return DeployResult{}, fmt.Errorf("solana: deployer not configured")
	}

	// 1) signer
	payer, err := d.Signers.Resolve(ctx)
	if err != nil {
		return DeployResult{}, err
	}

	// 2) network ensure (tolerant of an unavailable check, fatal on mismatch)
	if err := EnsureNetwork(ctx, d.Client, d.Network); err != nil {
		return DeployResult{}, err
	}

	// 3) supply in base units, exact string arithmetic
	supply, err := tokdom.ParseTokenAmount(p.TotalSupply, int(p.Decimals))
	if err != nil {
		return DeployResult{}, tokdom.WrapInvalid(err, "totalSupply")
	}
	supplyUnits, err := tokdom.BaseUnitsUint64(supply)
	if err != nil {
		return DeployResult{}, tokdom.WrapInvalid(err, "totalSupply")
	}

	// 4) fresh mint keypair: the token's on-chain identity
	mint := types.NewAccount()

	// 5) derived accounts
	ata, _, err := common.FindAssociatedTokenAddress(payer.PublicKey, mint.PublicKey)
	if err != nil {
		return DeployResult{}, fmt.Errorf("solana: derive ata: %w", err)
	}
	metadataAccount, err := token_metadata.GetTokenMetaPubkey(mint.PublicKey)
	if err != nil {
		return DeployResult{}, fmt.Errorf("solana: derive metadata pda: %w", err)
	}

	mintRent, err := d.Client.GetMinimumBalanceForRentExemption(ctx, token.MintAccountSize)
	if err != nil {
		return DeployResult{}, fmt.Errorf("solana: rent exemption: %w", classifyRPCError(err))
	}

	// 6) instruction sequence, fixed order
	instructions := BuildDeployInstructions(InstructionPlan{
		Payer:                 payer.PublicKey,
		Mint:                  mint.PublicKey,
		ATA:                   ata,
		MetadataAccount:       metadataAccount,
		Name:                  p.Name,
		Symbol:                p.Symbol,
		URI:                   p.MetadataURI,
		Decimals:              p.Decimals,
		SupplyBaseUnits:       supplyUnits,
		MintRent:              mintRent,
		EnableMintAuthority:   p.EnableMintAuthority,
		EnableFreezeAuthority: p.EnableFreezeAuthority,
		EnableUpdateAuthority: p.EnableUpdateAuthority,
	})

	// 7) blockhash at finalized commitment, sign with mint keypair + payer
	latest, err := d.Client.GetLatestBlockhash(ctx)
	if err != nil {
		return DeployResult{}, fmt.Errorf("solana: latest blockhash: %w", classifyRPCError(err))
	}

	tx, err := types.NewTransaction(types.NewTransactionParam{
		Signers: []types.Account{mint, payer},
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        payer.PublicKey,
			RecentBlockhash: latest.Blockhash,
			Instructions:    instructions,
		}),
	})
	if err != nil {
		return DeployResult{}, fmt.Errorf("solana: build transaction: %w", err)
	}

	// 8) submit with bounded retries, then confirm
	sig, err := submitWithRetry(ctx, d.Client, tx)
	if err != nil {
		return DeployResult{}, err
	}

	log.Printf("[solana_deployer] submitted mint=%s tx=%s network=%s instructions=%d",
		maskShort(mint.PublicKey.ToBase58()), maskShort(sig), d.Network, len(instructions))

	if err := confirmWithRetry(ctx, d.Client, sig, latest.LatestValidBlockHeight); err != nil {
		return DeployResult{}, err
	}

	log.Printf("[solana_deployer] confirmed mint=%s tx=%s", maskShort(mint.PublicKey.ToBase58()), maskShort(sig))

	return DeployResult{
		MintAddress:          mint.PublicKey.ToBase58(),
		TransactionSignature: sig,
	}, nil
}

// EstimateDeployFee returns the lamports a deployment needs: mint rent,
// metadata rent allowance and two signatures.
func (d *Deployer) EstimateDeployFee(ctx context.Context) (uint64, error) {
	mintRent, err := d.Client.GetMinimumBalanceForRentExemption(ctx, token.MintAccountSize)
	if err != nil {
		return 0, fmt.Errorf("solana: rent exemption: %w", classifyRPCError(err))
	}
	// metadata account size is variable; 679 bytes covers DataV2 with
	// 32/10-byte name/symbol and a 200-byte uri
	metaRent, err := d.Client.GetMinimumBalanceForRentExemption(ctx, 679)
	if err != nil {
		return 0, fmt.Errorf("solana: rent exemption: %w", classifyRPCError(err))
	}
	ataRent, err := d.Client.GetMinimumBalanceForRentExemption(ctx, 165)
	if err != nil {
		return 0, fmt.Errorf("solana: rent exemption: %w", classifyRPCError(err))
	}
	return mintRent + metaRent + ataRent + 2*lamportsPerSignature, nil
}

// ============================================================
// Instruction assembly (pure)
// ============================================================

// InstructionPlan carries everything the instruction builder needs; no RPC
// access, so the sequence is directly testable.
type InstructionPlan struct {
	Payer           common.PublicKey
	Mint            common.PublicKey
	ATA             common.PublicKey
	MetadataAccount common.PublicKey

	Name     string
	Symbol   string
	URI      string
	Decimals uint8

	SupplyBaseUnits uint64
	MintRent        uint64

	EnableMintAuthority   bool
	EnableFreezeAuthority bool
	EnableUpdateAuthority bool
}

// BuildDeployInstructions assembles the deployment sequence in its fixed,
// canonical order:
//
//	create-mint-account, initialize-mint, create-metadata-v3, create-ata,
//	[mint-to iff supply > 0], [revoke mint authority iff disabled]
//
// The revoke instruction is emitted even when the initial supply is zero.
func BuildDeployInstructions(p InstructionPlan) []types.Instruction {
	var freezeAuth *common.PublicKey
	if p.EnableFreezeAuthority {
		freezeAuth = &p.Payer
	}

	instructions := []types.Instruction{
		system.CreateAccount(system.CreateAccountParam{
			From:     p.Payer,
			New:      p.Mint,
			Owner:    common.TokenProgramID,
			Lamports: p.MintRent,
			Space:    token.MintAccountSize,
		}),
		token.InitializeMint(token.InitializeMintParam{
			Decimals:   p.Decimals,
			Mint:       p.Mint,
			MintAuth:   p.Payer,
			FreezeAuth: freezeAuth,
		}),
		token_metadata.CreateMetadataAccountV3(token_metadata.CreateMetadataAccountV3Param{
			Metadata:                p.MetadataAccount,
			Mint:                    p.Mint,
			MintAuthority:           p.Payer,
			UpdateAuthority:         p.Payer,
			Payer:                   p.Payer,
			UpdateAuthorityIsSigner: true,
			IsMutable:               p.EnableUpdateAuthority,
			Data: token_metadata.DataV2{
				Name:   truncateBytes(p.Name, maxMetadataNameBytes),
				Symbol: truncateBytes(p.Symbol, maxMetadataSymbolBytes),
				Uri:    p.URI,
			},
		}),
		associated_token_account.CreateAssociatedTokenAccount(
			associated_token_account.CreateAssociatedTokenAccountParam{
				Funder:                 p.Payer,
				Owner:                  p.Payer,
				Mint:                   p.Mint,
				AssociatedTokenAccount: p.ATA,
			},
		),
	}

	if p.SupplyBaseUnits > 0 {
		instructions = append(instructions, token.MintTo(token.MintToParam{
			Mint:   p.Mint,
			To:     p.ATA,
			Auth:   p.Payer,
			Amount: p.SupplyBaseUnits,
		}))
	}

	if !p.EnableMintAuthority {
		instructions = append(instructions, token.SetAuthority(token.SetAuthorityParam{
			Account:  p.Mint,
			NewAuth:  nil,
			AuthType: token.AuthorityTypeMintTokens,
			Auth:     p.Payer,
		}))
	}

	return instructions
}

// truncateBytes cuts s to at most n bytes (metadata fields are byte-limited,
// not rune-limited).
func truncateBytes(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
