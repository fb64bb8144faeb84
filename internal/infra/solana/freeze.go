// internal/infra/solana/freeze.go
package solana

import (
	"context"
	"fmt"
	"log"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"
)

// Freeze freezes the token account behind target (wallet address or token
// account address) for the given mint. All preconditions are verified
// before anything is submitted: the mint must carry a freeze authority,
// the caller must hold it, and the account must not already be frozen.
func (t *Tools) Freeze(ctx context.Context, mintAddr, target string) (OperationResult, error) {
	return t.setFrozen(ctx, mintAddr, target, true)
}

// Unfreeze thaws a frozen token account. Same preconditions as Freeze,
// inverted for the current state.
func (t *Tools) Unfreeze(ctx context.Context, mintAddr, target string) (OperationResult, error) {
	return t.setFrozen(ctx, mintAddr, target, false)
}

func (t *Tools) setFrozen(ctx context.Context, mintAddr, target string, freeze bool) (OperationResult, error) {
	payer, err := t.Signers.Resolve(ctx)
	if err != nil {
		return OperationResult{}, err
	}

	mintAcc, err := t.fetchMint(ctx, mintAddr)
	if err != nil {
		return OperationResult{}, err
	}
	if mintAcc.FreezeAuthority == nil {
		return OperationResult{}, ErrFreezeNotEnabled
	}
	if *mintAcc.FreezeAuthority != payer.PublicKey {
		return OperationResult{}, ErrNotFreezeAuthority
	}

	mint := common.PublicKeyFromString(mintAddr)
	account, err := t.resolveTokenAccount(ctx, mint, target)
	if err != nil {
		return OperationResult{}, err
	}

	holding, err := t.fetchTokenAccount(ctx, account.ToBase58())
	if err != nil {
		return OperationResult{}, err
	}
	frozen := holding.State == token.TokenAccountFrozen
	if frozen == freeze {
		return OperationResult{}, ErrAlreadyInDesiredState
	}

	var ins types.Instruction
	if freeze {
		ins = token.FreezeAccount(token.FreezeAccountParam{
			Account: account,
			Mint:    mint,
			Auth:    payer.PublicKey,
		})
	} else {
		ins = token.ThawAccount(token.ThawAccountParam{
			Account: account,
			Mint:    mint,
			Auth:    payer.PublicKey,
		})
	}

	action := "freeze"
	if !freeze {
		action = "unfreeze"
	}
	log.Printf("[solana_tools] %s mint=%s account=%s", action, maskShort(mintAddr), maskShort(account.ToBase58()))

	res, err := t.execute(ctx, payer, []types.Instruction{ins})
	if err != nil {
		return OperationResult{}, fmt.Errorf("solana: %s account: %w", action, err)
	}
	return res, nil
}
