// internal/domain/token/operation.go
package token

import (
	"errors"
	"strings"
	"time"
)

// OperationType identifies a post-deployment tool action against a mint.
type OperationType string

const (
	OpMint              OperationType = "mint"
	OpBurn              OperationType = "burn"
	OpFreeze            OperationType = "freeze"
	OpUnfreeze          OperationType = "unfreeze"
	OpTransferAuthority OperationType = "transferAuthority"
	OpRevokeAuthority   OperationType = "revokeAuthority"
	OpMultisend         OperationType = "multisend"
)

var (
	ErrInvalidOperationType = errors.New("token: invalid operation type")
	ErrInvalidOperationMint = errors.New("token: operation mintAddress is empty")
)

// TokenOperation is the audit record persisted for every tool action
// (Firestore, "tokenOperations").
type TokenOperation struct {
	ID          string        `json:"id"`
	Type        OperationType `json:"type"`
	MintAddress string        `json:"mintAddress"`
	Network     Network       `json:"network"`

	// amount in UI units for mint/burn, recipient count for multisend
	Amount       string `json:"amount,omitempty"`
	Target       string `json:"target,omitempty"` // frozen account, new authority, ...
	Signature    string `json:"signature,omitempty"`
	ActorAddress string `json:"actorAddress,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func IsValidOperationType(t OperationType) bool {
	switch t {
	case OpMint, OpBurn, OpFreeze, OpUnfreeze, OpTransferAuthority, OpRevokeAuthority, OpMultisend:
		return true
	default:
		return false
	}
}

// NewOperation validates and normalizes an audit record.
func NewOperation(typ OperationType, mintAddress string, network Network, now time.Time) (TokenOperation, error) {
	if !IsValidOperationType(typ) {
		return TokenOperation{}, ErrInvalidOperationType
	}
	mintAddress = strings.TrimSpace(mintAddress)
	if mintAddress == "" {
		return TokenOperation{}, ErrInvalidOperationMint
	}
	if !IsValidNetwork(network) {
		return TokenOperation{}, ErrInvalidNetwork
	}
	return TokenOperation{
		Type:        typ,
		MintAddress: mintAddress,
		Network:     network,
		CreatedAt:   now.UTC(),
	}, nil
}
