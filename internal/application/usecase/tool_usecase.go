// internal/application/usecase/tool_usecase.go
package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tokdom "aiqx/internal/domain/token"
	"aiqx/internal/infra/solana"
)

// ToolInput is the common shape of a tool request. Fields beyond Mint are
// interpreted per operation.
type ToolInput struct {
	Mint         string                      `json:"mint"`
	Target       string                      `json:"target,omitempty"`
	Amount       string                      `json:"amount,omitempty"`
	NewAuthority string                      `json:"newAuthority,omitempty"`
	Authority    string                      `json:"authority,omitempty"` // "mint" | "freeze"
	Recipients   []solana.MultisendRecipient `json:"recipients,omitempty"`

	ActorAddress string `json:"actorAddress,omitempty"`
}

// ToolOutput reports the submitted signature.
type ToolOutput struct {
	TransactionSignature string `json:"transactionSignature"`
}

// ToolUsecase routes tool requests to the executor and records an audit
// entry per completed operation.
type ToolUsecase struct {
	Executor ToolExecutor
	Ops      tokdom.OperationRepository // optional audit trail
	Network  tokdom.Network

	Now func() time.Time
}

func NewToolUsecase(executor ToolExecutor, ops tokdom.OperationRepository, network tokdom.Network) *ToolUsecase {
	return &ToolUsecase{Executor: executor, Ops: ops, Network: network, Now: time.Now}
}

func (uc *ToolUsecase) Mint(ctx context.Context, in ToolInput) (ToolOutput, error) {
	res, err := uc.Executor.MintMore(ctx, in.Mint, in.Target, in.Amount)
	if err != nil {
		return ToolOutput{}, err
	}
	uc.audit(ctx, tokdom.OpMint, in, res)
	return ToolOutput{TransactionSignature: res.TransactionSignature}, nil
}

func (uc *ToolUsecase) Burn(ctx context.Context, in ToolInput) (ToolOutput, error) {
	res, err := uc.Executor.Burn(ctx, in.Mint, in.Amount)
	if err != nil {
		return ToolOutput{}, err
	}
	uc.audit(ctx, tokdom.OpBurn, in, res)
	return ToolOutput{TransactionSignature: res.TransactionSignature}, nil
}

func (uc *ToolUsecase) Freeze(ctx context.Context, in ToolInput) (ToolOutput, error) {
	res, err := uc.Executor.Freeze(ctx, in.Mint, in.Target)
	if err != nil {
		return ToolOutput{}, err
	}
	uc.audit(ctx, tokdom.OpFreeze, in, res)
	return ToolOutput{TransactionSignature: res.TransactionSignature}, nil
}

func (uc *ToolUsecase) Unfreeze(ctx context.Context, in ToolInput) (ToolOutput, error) {
	res, err := uc.Executor.Unfreeze(ctx, in.Mint, in.Target)
	if err != nil {
		return ToolOutput{}, err
	}
	uc.audit(ctx, tokdom.OpUnfreeze, in, res)
	return ToolOutput{TransactionSignature: res.TransactionSignature}, nil
}

func (uc *ToolUsecase) TransferAuthority(ctx context.Context, in ToolInput) (ToolOutput, error) {
	kind, err := parseAuthorityKind(in.Authority)
	if err != nil {
		return ToolOutput{}, err
	}
	res, err := uc.Executor.TransferAuthority(ctx, in.Mint, kind, in.NewAuthority)
	if err != nil {
		return ToolOutput{}, err
	}
	uc.audit(ctx, tokdom.OpTransferAuthority, in, res)
	return ToolOutput{TransactionSignature: res.TransactionSignature}, nil
}

func (uc *ToolUsecase) RevokeAuthority(ctx context.Context, in ToolInput) (ToolOutput, error) {
	kind, err := parseAuthorityKind(in.Authority)
	if err != nil {
		return ToolOutput{}, err
	}
	res, err := uc.Executor.RevokeAuthority(ctx, in.Mint, kind)
	if err != nil {
		return ToolOutput{}, err
	}
	uc.audit(ctx, tokdom.OpRevokeAuthority, in, res)
	return ToolOutput{TransactionSignature: res.TransactionSignature}, nil
}

func (uc *ToolUsecase) Multisend(ctx context.Context, in ToolInput) (ToolOutput, error) {
	res, err := uc.Executor.Multisend(ctx, in.Mint, in.Recipients)
	if err != nil {
		return ToolOutput{}, err
	}
	uc.audit(ctx, tokdom.OpMultisend, in, res)
	return ToolOutput{TransactionSignature: res.TransactionSignature}, nil
}

// History lists the audit trail of a mint, newest first.
func (uc *ToolUsecase) History(ctx context.Context, mintAddress string) ([]tokdom.TokenOperation, error) {
	if uc.Ops == nil {
		return nil, nil
	}
	return uc.Ops.ListByMint(ctx, strings.TrimSpace(mintAddress))
}

func (uc *ToolUsecase) audit(ctx context.Context, opType tokdom.OperationType, in ToolInput, res solana.OperationResult) {
	if uc.Ops == nil {
		return
	}
	now := time.Now
	if uc.Now != nil {
		now = uc.Now
	}
	op, err := tokdom.NewOperation(opType, in.Mint, uc.Network, now())
	if err != nil {
		log.Printf("[tool_usecase] audit record rejected: %v", err)
		return
	}
	op.Signature = res.TransactionSignature
	op.ActorAddress = strings.TrimSpace(in.ActorAddress)
	op.Target = strings.TrimSpace(in.Target)
	op.Amount = strings.TrimSpace(in.Amount)
	if _, err := uc.Ops.Create(ctx, op); err != nil {
		log.Printf("[tool_usecase] audit record not persisted: %v", err)
	}
}

func parseAuthorityKind(s string) (solana.AuthorityKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mint":
		return solana.AuthorityMint, nil
	case "freeze":
		return solana.AuthorityFreeze, nil
	default:
		return "", fmt.Errorf("%w: authority must be \"mint\" or \"freeze\"", tokdom.ErrInvalid)
	}
}
