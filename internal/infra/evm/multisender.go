// internal/infra/evm/multisender.go
package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrMultisendNotConfigured = errors.New("evm_multisender: not configured")
	ErrMultisendNoRecipients  = errors.New("evm_multisender: recipient list is empty")
	ErrMultisendBadToken      = errors.New("evm_multisender: token address is invalid")
	ErrMultisendBadRecipient  = errors.New("evm_multisender: recipient address is invalid")
)

const transferGasLimit = 65000

const erc20TransferABIJSON = `[{"name":"transfer","type":"function","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"}]`

// ethBackend is the slice of ethclient.Client the multisender needs.
type ethBackend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// MultisendRecipient is one entry of the ordered recipient list. Duplicate
// addresses are allowed and sent as separate transfers in order.
type MultisendRecipient struct {
	Address string  `json:"address"`
	Amount  float64 `json:"amount"`
}

// MultisendRecord is the per-recipient outcome.
type MultisendRecord struct {
	Address string  `json:"address"`
	Amount  float64 `json:"amount"`
	TxHash  string  `json:"txHash,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// MultisendResult reports succeeded/total instead of throwing: partial
// failure is tolerated on the EVM path.
type MultisendResult struct {
	Succeeded int               `json:"succeeded"`
	Total     int               `json:"total"`
	Records   []MultisendRecord `json:"records"`
}

// Multisender sends one ERC-20 transfer transaction per recipient, strictly
// sequentially, awaiting submission of each before starting the next. A
// failed recipient never aborts the remaining ones.
type Multisender struct {
	Backend ethBackend
	ChainID *big.Int

	transferABI abi.ABI
}

func NewMultisender(backend ethBackend, chainID *big.Int) (*Multisender, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20TransferABIJSON))
	if err != nil {
		return nil, fmt.Errorf("evm_multisender: parse transfer abi: %w", err)
	}
	return &Multisender{
		Backend:     backend,
		ChainID:     chainID,
		transferABI: parsed,
	}, nil
}

// Send transfers `decimals`-scaled amounts of tokenAddress to each recipient.
//
// Amounts are converted with float64 multiplication by 10^decimals. This is
// a lower precision guarantee than the deployment path's exact string
// parsing and is kept intentionally (see DESIGN.md).
func (m *Multisender) Send(
	ctx context.Context,
	key *ecdsa.PrivateKey,
	tokenAddress string,
	decimals int,
	recipients []MultisendRecipient,
) (MultisendResult, error) {
	if m == nil || m.Backend == nil || m.ChainID == nil {
		return MultisendResult{}, ErrMultisendNotConfigured
	}
	if key == nil {
		return MultisendResult{}, ErrMultisendNotConfigured
	}
	if len(recipients) == 0 {
		return MultisendResult{}, ErrMultisendNoRecipients
	}
	if !common.IsHexAddress(strings.TrimSpace(tokenAddress)) {
		return MultisendResult{}, ErrMultisendBadToken
	}

	token := common.HexToAddress(strings.TrimSpace(tokenAddress))
	from := crypto.PubkeyToAddress(key.PublicKey)
	signer := types.LatestSignerForChainID(m.ChainID)

	nonce, err := m.Backend.PendingNonceAt(ctx, from)
	if err != nil {
		return MultisendResult{}, fmt.Errorf("evm_multisender: pending nonce: %w", err)
	}
	gasPrice, err := m.Backend.SuggestGasPrice(ctx)
	if err != nil {
		return MultisendResult{}, fmt.Errorf("evm_multisender: gas price: %w", err)
	}

	result := MultisendResult{Total: len(recipients), Records: make([]MultisendRecord, 0, len(recipients))}

	for i, rcpt := range recipients {
		rec := MultisendRecord{Address: rcpt.Address, Amount: rcpt.Amount}

		hash, err := m.sendOne(ctx, key, signer, token, nonce, gasPrice, decimals, rcpt)
		if err != nil {
			rec.Error = err.Error()
			log.Printf("[evm_multisender] transfer %d/%d failed to=%s err=%v", i+1, len(recipients), rcpt.Address, err)
		} else {
			rec.TxHash = hash
			result.Succeeded++
			nonce++
			log.Printf("[evm_multisender] transfer %d/%d submitted to=%s tx=%s", i+1, len(recipients), rcpt.Address, hash)
		}

		result.Records = append(result.Records, rec)
	}

	log.Printf("[evm_multisender] done token=%s sent=%d/%d", tokenAddress, result.Succeeded, result.Total)
	return result, nil
}

func (m *Multisender) sendOne(
	ctx context.Context,
	key *ecdsa.PrivateKey,
	signer types.Signer,
	token common.Address,
	nonce uint64,
	gasPrice *big.Int,
	decimals int,
	rcpt MultisendRecipient,
) (string, error) {
	if !common.IsHexAddress(strings.TrimSpace(rcpt.Address)) {
		return "", ErrMultisendBadRecipient
	}
	if rcpt.Amount <= 0 {
		return "", fmt.Errorf("evm_multisender: non-positive amount %v", rcpt.Amount)
	}

	// float64 base-unit conversion, same as the original transfer path
	units, _ := new(big.Float).Mul(
		big.NewFloat(rcpt.Amount),
		big.NewFloat(math.Pow10(decimals)),
	).Int(nil)

	data, err := m.transferABI.Pack("transfer", common.HexToAddress(strings.TrimSpace(rcpt.Address)), units)
	if err != nil {
		return "", fmt.Errorf("evm_multisender: pack transfer: %w", err)
	}

	tx := types.NewTransaction(nonce, token, big.NewInt(0), transferGasLimit, gasPrice, data)
	signed, err := types.SignTx(tx, signer, key)
	if err != nil {
		return "", fmt.Errorf("evm_multisender: sign: %w", err)
	}

	if err := m.Backend.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("evm_multisender: send: %w", err)
	}
	return signed.Hash().Hex(), nil
}
