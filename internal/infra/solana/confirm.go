// internal/infra/solana/confirm.go
package solana

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
)

const (
	maxSubmitAttempts  = 3
	maxConfirmAttempts = 3
	confirmTimeout     = 60 * time.Second
	statusPollInterval = 2 * time.Second
)

// retryBackoff is the shared delay curve: 1s, 2s, 4s, capped at 5s.
func retryBackoff(attempt int) time.Duration {
	d := time.Duration(1<<attempt) * time.Second
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

// submitWithRetry sends a signed transaction with bounded retries. Rate
// limiting is retried after backoff; everything else fails immediately
// since the signed payload cannot change between attempts.
func submitWithRetry(ctx context.Context, c ChainClient, tx types.Transaction) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxSubmitAttempts; attempt++ {
		if attempt > 0 {
			log.Printf("[solana_confirm] resubmitting, attempt %d/%d", attempt+1, maxSubmitAttempts)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(retryBackoff(attempt)):
			}
		}

		sig, err := c.SendTransaction(ctx, tx)
		if err == nil {
			return sig, nil
		}

		classified := classifyRPCError(err)
		if !errors.Is(classified, ErrRateLimited) {
			return "", fmt.Errorf("solana: send transaction: %w", classified)
		}
		lastErr = classified
	}
	return "", fmt.Errorf("solana: send transaction: %w", lastErr)
}

// confirmWithRetry waits for a submitted signature to reach confirmed
// commitment. Each attempt polls the signature status for up to 60
// seconds; transient failures are retried up to three attempts with
// exponential backoff. Blockhash expiry is fatal immediately since the
// transaction can never land after its last valid block height.
func confirmWithRetry(ctx context.Context, c ChainClient, sig string, lastValidBlockHeight uint64) error {
	var lastErr error
	for attempt := 0; attempt < maxConfirmAttempts; attempt++ {
		if attempt > 0 {
			backoff := retryBackoff(attempt)
			log.Printf("[solana_confirm] retrying confirmation of %s in %s (attempt %d/%d)",
				maskShort(sig), backoff, attempt+1, maxConfirmAttempts)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := awaitConfirmation(ctx, c, sig, lastValidBlockHeight)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrTransactionExpired) || errors.Is(err, context.Canceled) {
			return err
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = ErrConfirmationTimeout
	}
	return fmt.Errorf("%w: %v", ErrConfirmationTimeout, lastErr)
}

// awaitConfirmation is one bounded confirmation attempt.
func awaitConfirmation(ctx context.Context, c ChainClient, sig string, lastValidBlockHeight uint64) error {
	attemptCtx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()

	for {
		status, err := c.GetSignatureStatus(attemptCtx, sig)
		if err != nil {
			// status unavailable this round; expiry check below decides
			// whether waiting still makes sense
			log.Printf("[solana_confirm] signature status unavailable for %s: %v", maskShort(sig), err)
		} else if status != nil {
			if status.Err != nil {
				return fmt.Errorf("solana: transaction failed on chain: %v", status.Err)
			}
			if confirmed(status) {
				return nil
			}
		}

		if lastValidBlockHeight > 0 {
			height, hErr := c.GetBlockHeight(attemptCtx)
			if hErr == nil && height > lastValidBlockHeight {
				return ErrTransactionExpired
			}
		}

		select {
		case <-attemptCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return ErrConfirmationTimeout
		case <-ticker.C:
		}
	}
}

func confirmed(status *rpc.SignatureStatus) bool {
	if status.ConfirmationStatus != nil {
		s := *status.ConfirmationStatus
		return s == rpc.CommitmentConfirmed || s == rpc.CommitmentFinalized
	}
	// old validators omit the commitment field; fall back to vote count
	return status.Confirmations == nil || (status.Confirmations != nil && *status.Confirmations > 0)
}
