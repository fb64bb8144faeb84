// internal/infra/solana/fake_chain_test.go
package solana

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
)

// fakeChain scripts RPC behavior per test.
type fakeChain struct {
	rent        uint64
	blockhash   rpc.GetLatestBlockhashValue
	blockHeight uint64
	genesisHash string

	accounts map[string]client.AccountInfo

	sendErr  error
	sendSigs []string
	sent     []types.Transaction

	statuses   []*rpc.SignatureStatus
	statusErrs []error
	statusIdx  int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		rent: 1_461_600,
		blockhash: rpc.GetLatestBlockhashValue{
			Blockhash:            "9sHcv6xwn9YkB8nxTUGKDwPwNnmqfp5hfZvVy5ScHcqx",
			LatestValidBlockHeight: 1_000,
		},
		blockHeight: 10,
		genesisHash: genesisDevnet,
		accounts:    map[string]client.AccountInfo{},
	}
}

func (f *fakeChain) GetMinimumBalanceForRentExemption(_ context.Context, _ uint64) (uint64, error) {
	return f.rent, nil
}

func (f *fakeChain) GetLatestBlockhash(_ context.Context) (rpc.GetLatestBlockhashValue, error) {
	return f.blockhash, nil
}

func (f *fakeChain) SendTransaction(_ context.Context, tx types.Transaction) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, tx)
	if len(f.sendSigs) > 0 {
		sig := f.sendSigs[0]
		f.sendSigs = f.sendSigs[1:]
		return sig, nil
	}
	return "fakeSig1111111111111111111111111111111111111", nil
}

func (f *fakeChain) GetAccountInfo(_ context.Context, addr string) (client.AccountInfo, error) {
	info, ok := f.accounts[addr]
	if !ok {
		return client.AccountInfo{}, errors.New("rpc: account not found")
	}
	return info, nil
}

func (f *fakeChain) GetSignatureStatus(_ context.Context, _ string) (*rpc.SignatureStatus, error) {
	i := f.statusIdx
	if i >= len(f.statuses) && i >= len(f.statusErrs) {
		if len(f.statuses) > 0 {
			return f.statuses[len(f.statuses)-1], nil
		}
		return nil, nil
	}
	f.statusIdx++
	if i < len(f.statusErrs) && f.statusErrs[i] != nil {
		return nil, f.statusErrs[i]
	}
	if i < len(f.statuses) {
		return f.statuses[i], nil
	}
	return nil, nil
}

func (f *fakeChain) GetBlockHeight(_ context.Context) (uint64, error) {
	return f.blockHeight, nil
}

func (f *fakeChain) GetGenesisHash(_ context.Context) (string, error) {
	if f.genesisHash == "" {
		return "", errors.New("rpc: unavailable")
	}
	return f.genesisHash, nil
}

func (f *fakeChain) GetBalance(_ context.Context, _ string) (uint64, error) {
	return 10_000_000_000, nil
}

// ---- on-chain account data builders (SPL token layouts) ----

func optionPubkey(buf []byte, pk *common.PublicKey) {
	if pk != nil {
		binary.LittleEndian.PutUint32(buf[:4], 1)
		copy(buf[4:36], pk.Bytes())
	}
}

// mintData serializes an 82-byte SPL mint account.
func mintData(mintAuth, freezeAuth *common.PublicKey, supply uint64, decimals uint8) []byte {
	data := make([]byte, 82)
	optionPubkey(data[0:36], mintAuth)
	binary.LittleEndian.PutUint64(data[36:44], supply)
	data[44] = decimals
	data[45] = 1 // initialized
	optionPubkey(data[46:82], freezeAuth)
	return data
}

// tokenAccountData serializes a 165-byte SPL token account.
func tokenAccountData(mint, owner common.PublicKey, amount uint64, frozen bool) []byte {
	data := make([]byte, 165)
	copy(data[0:32], mint.Bytes())
	copy(data[32:64], owner.Bytes())
	binary.LittleEndian.PutUint64(data[64:72], amount)
	if frozen {
		data[108] = 2
	} else {
		data[108] = 1
	}
	return data
}

func (f *fakeChain) putMint(addr string, data []byte) {
	f.accounts[addr] = client.AccountInfo{
		Owner:    common.TokenProgramID,
		Lamports: 1_461_600,
		Data:     data,
	}
}

func (f *fakeChain) putTokenAccount(addr string, data []byte) {
	f.accounts[addr] = client.AccountInfo{
		Owner:    common.TokenProgramID,
		Lamports: 2_039_280,
		Data:     data,
	}
}

// fixtureTx builds a minimal signed transaction for submit tests.
func fixtureTx(t testingT) types.Transaction {
	payer := types.NewAccount()
	tx, err := types.NewTransaction(types.NewTransactionParam{
		Signers: []types.Account{payer},
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        payer.PublicKey,
			RecentBlockhash: "9sHcv6xwn9YkB8nxTUGKDwPwNnmqfp5hfZvVy5ScHcqx",
			Instructions: []types.Instruction{
				system.Transfer(system.TransferParam{
					From:   payer.PublicKey,
					To:     types.NewAccount().PublicKey,
					Amount: 1,
				}),
			},
		}),
	})
	if err != nil {
		t.Fatalf("build fixture tx: %v", err)
	}
	return tx
}

type testingT interface {
	Fatalf(format string, args ...any)
}

// staticRegistry returns a registry resolving to a fixed keypair.
func staticRegistry(acc types.Account) *SignerRegistry {
	r := NewSignerRegistry()
	r.Register("static", func(_ context.Context) (types.Account, error) {
		return acc, nil
	})
	return r
}
