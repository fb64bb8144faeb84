// internal/infra/solana/multisend.go
package solana

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	tokdom "aiqx/internal/domain/token"
)

// transfers plus conditional ATA creates; beyond this the transaction
// risks exceeding the packet size limit
const maxMultisendRecipients = 10

// MultisendRecipient is one entry of a batch distribution. Amount is in
// UI units (float64); conversion multiplies by 10^decimals.
type MultisendRecipient struct {
	Wallet string  `json:"wallet"`
	Amount float64 `json:"amount"`
}

// Multisend sends tokens from the caller's ATA to every recipient in one
// atomic transaction. Either all transfers land or none do; a missing
// recipient ATA is created in the same transaction at the caller's cost.
func (t *Tools) Multisend(ctx context.Context, mintAddr string, recipients []MultisendRecipient) (OperationResult, error) {
	if len(recipients) == 0 {
		return OperationResult{}, tokdom.WrapInvalid(nil, "no recipients")
	}
	if len(recipients) > maxMultisendRecipients {
		return OperationResult{}, tokdom.WrapInvalid(nil,
			fmt.Sprintf("too many recipients: %d, max %d per batch", len(recipients), maxMultisendRecipients))
	}

	payer, err := t.Signers.Resolve(ctx)
	if err != nil {
		return OperationResult{}, err
	}

	mintAcc, err := t.fetchMint(ctx, mintAddr)
	if err != nil {
		return OperationResult{}, err
	}
	mint := common.PublicKeyFromString(mintAddr)

	sourceATA, _, err := common.FindAssociatedTokenAddress(payer.PublicKey, mint)
	if err != nil {
		return OperationResult{}, fmt.Errorf("solana: derive source ata: %w", err)
	}
	holding, err := t.fetchTokenAccount(ctx, sourceATA.ToBase58())
	if err != nil {
		return OperationResult{}, err
	}

	factor := math.Pow(10, float64(mintAcc.Decimals))
	instructions := make([]types.Instruction, 0, 2*len(recipients))
	var total uint64

	for i, r := range recipients {
		wallet := strings.TrimSpace(r.Wallet)
		if wallet == "" {
			return OperationResult{}, tokdom.WrapInvalid(nil, fmt.Sprintf("recipient %d: wallet is required", i))
		}
		if r.Amount <= 0 || math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
			return OperationResult{}, tokdom.WrapInvalid(nil, fmt.Sprintf("recipient %d: amount must be positive", i))
		}
		scaled := math.Round(r.Amount * factor)
		if scaled >= float64(math.MaxUint64) {
			return OperationResult{}, tokdom.WrapInvalid(nil, fmt.Sprintf("recipient %d: amount exceeds the u64 range", i))
		}
		units := uint64(scaled)
		if units == 0 {
			return OperationResult{}, tokdom.WrapInvalid(nil, fmt.Sprintf("recipient %d: amount below one base unit", i))
		}
		if total > math.MaxUint64-units {
			return OperationResult{}, tokdom.WrapInvalid(nil, "batch total exceeds the u64 range")
		}
		total += units

		owner := common.PublicKeyFromString(wallet)
		ata, _, err := common.FindAssociatedTokenAddress(owner, mint)
		if err != nil {
			return OperationResult{}, fmt.Errorf("solana: derive recipient ata: %w", err)
		}

		exists, err := t.accountExists(ctx, ata.ToBase58())
		if err != nil {
			return OperationResult{}, fmt.Errorf("solana: check recipient ata: %w", err)
		}
		if !exists {
			instructions = append(instructions, createATAInstruction(payer.PublicKey, owner, mint, ata))
		}

		instructions = append(instructions, token.Transfer(token.TransferParam{
			From:   sourceATA,
			To:     ata,
			Auth:   payer.PublicKey,
			Amount: units,
		}))
	}

	if holding.Amount < total {
		return OperationResult{}, fmt.Errorf("%w: balance %d, sending %d base units",
			tokdom.ErrInvalid, holding.Amount, total)
	}

	log.Printf("[solana_tools] multisend mint=%s recipients=%d instructions=%d",
		maskShort(mintAddr), len(recipients), len(instructions))

	return t.execute(ctx, payer, instructions)
}
