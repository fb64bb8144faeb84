// internal/infra/solana/authority.go
package solana

import (
	"context"
	"log"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	tokdom "aiqx/internal/domain/token"
)

// AuthorityKind selects which mint-level authority an operation targets.
type AuthorityKind string

const (
	AuthorityMint   AuthorityKind = "mint"
	AuthorityFreeze AuthorityKind = "freeze"
)

// TransferAuthority hands the selected authority to a new address. The
// caller must currently hold the authority.
func (t *Tools) TransferAuthority(ctx context.Context, mintAddr string, kind AuthorityKind, newAuthority string) (OperationResult, error) {
	addr := strings.TrimSpace(newAuthority)
	if addr == "" {
		return OperationResult{}, tokdom.WrapInvalid(nil, "new authority address is required")
	}
	pk := common.PublicKeyFromString(addr)
	return t.setAuthority(ctx, mintAddr, kind, &pk)
}

// RevokeAuthority sets the selected authority to none, permanently. For the
// mint authority this caps the supply forever.
func (t *Tools) RevokeAuthority(ctx context.Context, mintAddr string, kind AuthorityKind) (OperationResult, error) {
	return t.setAuthority(ctx, mintAddr, kind, nil)
}

func (t *Tools) setAuthority(ctx context.Context, mintAddr string, kind AuthorityKind, newAuth *common.PublicKey) (OperationResult, error) {
	payer, err := t.Signers.Resolve(ctx)
	if err != nil {
		return OperationResult{}, err
	}

	mintAcc, err := t.fetchMint(ctx, mintAddr)
	if err != nil {
		return OperationResult{}, err
	}

	var authType token.AuthorityType
	switch kind {
	case AuthorityMint:
		authType = token.AuthorityTypeMintTokens
		if mintAcc.MintAuthority == nil {
			return OperationResult{}, ErrMintAuthorityRevoked
		}
		if *mintAcc.MintAuthority != payer.PublicKey {
			return OperationResult{}, ErrNotMintAuthority
		}
	case AuthorityFreeze:
		authType = token.AuthorityTypeFreezeAccount
		if mintAcc.FreezeAuthority == nil {
			return OperationResult{}, ErrFreezeNotEnabled
		}
		if *mintAcc.FreezeAuthority != payer.PublicKey {
			return OperationResult{}, ErrNotFreezeAuthority
		}
	default:
		return OperationResult{}, tokdom.WrapInvalid(nil, "unknown authority kind")
	}

	target := "none"
	if newAuth != nil {
		target = maskShort(newAuth.ToBase58())
	}
	log.Printf("[solana_tools] set-authority mint=%s kind=%s new=%s", maskShort(mintAddr), kind, target)

	return t.execute(ctx, payer, []types.Instruction{
		token.SetAuthority(token.SetAuthorityParam{
			Account:  common.PublicKeyFromString(mintAddr),
			NewAuth:  newAuth,
			AuthType: authType,
			Auth:     payer.PublicKey,
		}),
	})
}
