// internal/infra/solana/tools.go
package solana

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	tokdom "aiqx/internal/domain/token"
)

// Tools executes post-deployment operations against an existing mint:
// mint more, burn, freeze/unfreeze, authority changes and multisend.
// Authority preconditions are checked against on-chain state before any
// transaction is submitted.
type Tools struct {
	Client  ChainClient
	Signers *SignerRegistry
	Network tokdom.Network
}

func NewTools(c ChainClient, signers *SignerRegistry, network tokdom.Network) *Tools {
	return &Tools{Client: c, Signers: signers, Network: network}
}

// OperationResult reports the signature of a submitted tool transaction.
type OperationResult struct {
	TransactionSignature string
}

// MintMore mints additional supply to a recipient wallet. The caller must
// hold the mint authority; amount is a decimal string parsed against the
// mint's on-chain decimals.
func (t *Tools) MintMore(ctx context.Context, mintAddr, recipientWallet, amount string) (OperationResult, error) {
	payer, err := t.Signers.Resolve(ctx)
	if err != nil {
		return OperationResult{}, err
	}

	mintAcc, err := t.fetchMint(ctx, mintAddr)
	if err != nil {
		return OperationResult{}, err
	}
	if mintAcc.MintAuthority == nil {
		return OperationResult{}, ErrMintAuthorityRevoked
	}
	if *mintAcc.MintAuthority != payer.PublicKey {
		return OperationResult{}, ErrNotMintAuthority
	}

	units, err := parseAmountUnits(amount, mintAcc.Decimals)
	if err != nil {
		return OperationResult{}, err
	}

	mint := common.PublicKeyFromString(mintAddr)
	owner := payer.PublicKey
	if w := strings.TrimSpace(recipientWallet); w != "" {
		owner = common.PublicKeyFromString(w)
	}
	ata, _, err := common.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return OperationResult{}, fmt.Errorf("solana: derive ata: %w", err)
	}

	instructions := make([]types.Instruction, 0, 2)
	exists, err := t.accountExists(ctx, ata.ToBase58())
	if err != nil {
		return OperationResult{}, fmt.Errorf("solana: check recipient ata: %w", err)
	}
	if !exists {
		instructions = append(instructions, createATAInstruction(payer.PublicKey, owner, mint, ata))
	}
	instructions = append(instructions, token.MintTo(token.MintToParam{
		Mint:   mint,
		To:     ata,
		Auth:   payer.PublicKey,
		Amount: units,
	}))

	log.Printf("[solana_tools] mint-more mint=%s to=%s amount=%s", maskShort(mintAddr), maskShort(owner.ToBase58()), amount)
	return t.execute(ctx, payer, instructions)
}

// Burn destroys tokens held by the caller's associated token account.
func (t *Tools) Burn(ctx context.Context, mintAddr, amount string) (OperationResult, error) {
	payer, err := t.Signers.Resolve(ctx)
	if err != nil {
		return OperationResult{}, err
	}

	mintAcc, err := t.fetchMint(ctx, mintAddr)
	if err != nil {
		return OperationResult{}, err
	}
	units, err := parseAmountUnits(amount, mintAcc.Decimals)
	if err != nil {
		return OperationResult{}, err
	}

	mint := common.PublicKeyFromString(mintAddr)
	ata, _, err := common.FindAssociatedTokenAddress(payer.PublicKey, mint)
	if err != nil {
		return OperationResult{}, fmt.Errorf("solana: derive ata: %w", err)
	}

	holding, err := t.fetchTokenAccount(ctx, ata.ToBase58())
	if err != nil {
		return OperationResult{}, err
	}
	if holding.Amount < units {
		return OperationResult{}, fmt.Errorf("%w: balance %d, burn %d base units",
			tokdom.ErrInvalid, holding.Amount, units)
	}

	log.Printf("[solana_tools] burn mint=%s amount=%s", maskShort(mintAddr), amount)
	return t.execute(ctx, payer, []types.Instruction{
		token.Burn(token.BurnParam{
			Account: ata,
			Mint:    mint,
			Auth:    payer.PublicKey,
			Amount:  units,
		}),
	})
}

// ============================================================
// Shared plumbing
// ============================================================

// execute signs the instructions with the resolved payer, submits once and
// waits for a single confirmation attempt. Tool operations do not retry
// submission: the caller decides whether to repeat an idempotent op.
func (t *Tools) execute(ctx context.Context, payer types.Account, instructions []types.Instruction) (OperationResult, error) {
	latest, err := t.Client.GetLatestBlockhash(ctx)
	if err != nil {
		return OperationResult{}, fmt.Errorf("solana: latest blockhash: %w", classifyRPCError(err))
	}

	tx, err := types.NewTransaction(types.NewTransactionParam{
		Signers: []types.Account{payer},
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        payer.PublicKey,
			RecentBlockhash: latest.Blockhash,
			Instructions:    instructions,
		}),
	})
	if err != nil {
		return OperationResult{}, fmt.Errorf("solana: build transaction: %w", err)
	}

	sig, err := t.Client.SendTransaction(ctx, tx)
	if err != nil {
		return OperationResult{}, fmt.Errorf("solana: send transaction: %w", classifyRPCError(err))
	}

	if err := awaitConfirmation(ctx, t.Client, sig, latest.LatestValidBlockHeight); err != nil {
		return OperationResult{}, err
	}
	return OperationResult{TransactionSignature: sig}, nil
}

func (t *Tools) fetchMint(ctx context.Context, mintAddr string) (token.MintAccount, error) {
	addr := strings.TrimSpace(mintAddr)
	if addr == "" {
		return token.MintAccount{}, tokdom.WrapInvalid(nil, "mint address is required")
	}
	info, err := t.Client.GetAccountInfo(ctx, addr)
	if err != nil {
		if isAccountMissingErr(err) {
			return token.MintAccount{}, fmt.Errorf("%w: mint %s", ErrAccountNotFound, maskShort(addr))
		}
		return token.MintAccount{}, fmt.Errorf("solana: get mint account: %w", classifyRPCError(err))
	}
	if len(info.Data) == 0 {
		return token.MintAccount{}, fmt.Errorf("%w: mint %s", ErrAccountNotFound, maskShort(addr))
	}
	acc, err := token.MintAccountFromData(info.Data)
	if err != nil {
		return token.MintAccount{}, fmt.Errorf("solana: parse mint account: %w", err)
	}
	return acc, nil
}

func (t *Tools) fetchTokenAccount(ctx context.Context, addr string) (token.TokenAccount, error) {
	info, err := t.Client.GetAccountInfo(ctx, addr)
	if err != nil {
		if isAccountMissingErr(err) {
			return token.TokenAccount{}, fmt.Errorf("%w: token account %s", ErrAccountNotFound, maskShort(addr))
		}
		return token.TokenAccount{}, fmt.Errorf("solana: get token account: %w", classifyRPCError(err))
	}
	if len(info.Data) == 0 {
		return token.TokenAccount{}, fmt.Errorf("%w: token account %s", ErrAccountNotFound, maskShort(addr))
	}
	acc, err := token.TokenAccountFromData(info.Data)
	if err != nil {
		return token.TokenAccount{}, fmt.Errorf("solana: parse token account: %w", err)
	}
	return acc, nil
}

func (t *Tools) accountExists(ctx context.Context, address string) (bool, error) {
	addr := strings.TrimSpace(address)
	if addr == "" {
		return false, nil
	}
	info, err := t.Client.GetAccountInfo(ctx, addr)
	if err == nil {
		return len(info.Data) > 0 || info.Lamports > 0, nil
	}
	if isAccountMissingErr(err) {
		return false, nil
	}
	return false, err
}

// resolveTokenAccount interprets target as a wallet address first (derive
// its ATA for the mint); when that derived account does not exist, target
// is treated as a literal token account address.
func (t *Tools) resolveTokenAccount(ctx context.Context, mint common.PublicKey, target string) (common.PublicKey, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return common.PublicKey{}, tokdom.WrapInvalid(nil, "target address is required")
	}

	owner := common.PublicKeyFromString(target)
	ata, _, err := common.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("solana: derive ata: %w", err)
	}

	exists, err := t.accountExists(ctx, ata.ToBase58())
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("solana: check ata: %w", err)
	}
	if exists {
		return ata, nil
	}

	// fall back to treating the input as a token account itself
	exists, err = t.accountExists(ctx, target)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("solana: check token account: %w", err)
	}
	if !exists {
		return common.PublicKey{}, fmt.Errorf("%w: no token account for %s", ErrAccountNotFound, maskShort(target))
	}
	return common.PublicKeyFromString(target), nil
}

func createATAInstruction(funder, owner, mint, ata common.PublicKey) types.Instruction {
	return associated_token_account.CreateAssociatedTokenAccount(
		associated_token_account.CreateAssociatedTokenAccountParam{
			Funder:                 funder,
			Owner:                  owner,
			Mint:                   mint,
			AssociatedTokenAccount: ata,
		},
	)
}

func parseAmountUnits(amount string, decimals uint8) (uint64, error) {
	v, err := tokdom.ParseTokenAmount(amount, int(decimals))
	if err != nil {
		return 0, tokdom.WrapInvalid(err, "amount")
	}
	units, err := tokdom.BaseUnitsUint64(v)
	if err != nil {
		return 0, tokdom.WrapInvalid(err, "amount")
	}
	if units == 0 {
		return 0, tokdom.WrapInvalid(nil, "amount must be greater than zero")
	}
	return units, nil
}
