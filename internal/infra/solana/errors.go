// internal/infra/solana/errors.go
package solana

import (
	"errors"
	"strings"
)

// Deployment / tool error taxonomy. Every fatal error maps to a short,
// actionable message via UserMessage; none are swallowed.
var (
	ErrNoWalletConnected = errors.New("solana: no wallet connected")
	ErrWrongNetwork      = errors.New("solana: wallet is on the wrong network")
	ErrMetadataUpload    = errors.New("solana: metadata upload failed")

	ErrUserRejected        = errors.New("solana: signature request rejected")
	ErrInsufficientBalance = errors.New("solana: insufficient SOL balance")
	ErrTransactionExpired  = errors.New("solana: transaction expired")
	ErrRateLimited         = errors.New("solana: rpc rate limited")
	ErrConfirmationTimeout = errors.New("solana: confirmation timed out")
	ErrMintCollision       = errors.New("solana: mint address already in use")

	ErrFreezeNotEnabled      = errors.New("solana: freeze authority not enabled on mint")
	ErrNotFreezeAuthority    = errors.New("solana: caller is not the freeze authority")
	ErrNotMintAuthority      = errors.New("solana: caller is not the mint authority")
	ErrMintAuthorityRevoked  = errors.New("solana: mint authority has been revoked")
	ErrAlreadyInDesiredState = errors.New("solana: account already in desired state")

	ErrAccountNotFound = errors.New("solana: account not found")
)

// classifyRPCError maps raw RPC error text onto the taxonomy. Unknown
// errors pass through unchanged (generic wrapped failure).
func classifyRPCError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "user rejected") || strings.Contains(msg, "rejected the request"):
		return ErrUserRejected
	case strings.Contains(msg, "insufficient lamports") || strings.Contains(msg, "insufficient funds"):
		return ErrInsufficientBalance
	case strings.Contains(msg, "blockhash not found") || strings.Contains(msg, "block height exceeded"):
		return ErrTransactionExpired
	case strings.Contains(msg, "429") || strings.Contains(msg, "too many requests") || strings.Contains(msg, "rate limit"):
		return ErrRateLimited
	case strings.Contains(msg, "already in use"):
		return ErrMintCollision
	default:
		return err
	}
}

func isAccountMissingErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") ||
		strings.Contains(msg, "could not find account") ||
		strings.Contains(msg, "invalid param") ||
		strings.Contains(msg, "account does not exist")
}

// UserMessage renders the taxonomy as the short messages surfaced to the
// UI; anything unclassified falls back to the raw error text.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoWalletConnected):
		return "No wallet connected. Configure a signer and try again."
	case errors.Is(err, ErrWrongNetwork):
		return "Wrong network. Please switch your wallet to the requested network."
	case errors.Is(err, ErrMetadataUpload):
		return "Uploading token metadata failed. Check the pinning service and retry."
	case errors.Is(err, ErrUserRejected):
		return "Signature request was rejected. Approve the transaction to continue."
	case errors.Is(err, ErrInsufficientBalance):
		return "Not enough SOL to cover rent and fees. Top up the fee payer and retry."
	case errors.Is(err, ErrTransactionExpired):
		return "The transaction expired before confirmation. Please try again."
	case errors.Is(err, ErrRateLimited):
		return "The RPC endpoint is rate limiting requests. Wait a moment and retry."
	case errors.Is(err, ErrConfirmationTimeout):
		return "Confirmation timed out. The transaction may still succeed; check the signature before retrying."
	case errors.Is(err, ErrMintCollision):
		return "The generated mint address collided with an existing account. Retry the deployment."
	case errors.Is(err, ErrFreezeNotEnabled):
		return "This token was created without a freeze authority, so accounts cannot be frozen."
	case errors.Is(err, ErrNotFreezeAuthority):
		return "The connected wallet does not hold the freeze authority for this token."
	case errors.Is(err, ErrNotMintAuthority):
		return "The connected wallet does not hold the mint authority for this token."
	case errors.Is(err, ErrMintAuthorityRevoked):
		return "The mint authority has been revoked; no further supply can be minted."
	case errors.Is(err, ErrAlreadyInDesiredState):
		return "The token account is already in the requested state."
	default:
		return err.Error()
	}
}
