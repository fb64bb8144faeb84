// internal/infra/solana/chain_client.go
package solana

import (
	"context"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
)

// ChainClient is the slice of the RPC client the deployer and tools use.
// *Client satisfies it; tests substitute fakes.
type ChainClient interface {
	GetMinimumBalanceForRentExemption(ctx context.Context, dataLen uint64) (uint64, error)
	GetLatestBlockhash(ctx context.Context) (rpc.GetLatestBlockhashValue, error)
	SendTransaction(ctx context.Context, tx types.Transaction) (string, error)
	GetAccountInfo(ctx context.Context, addr string) (client.AccountInfo, error)
	GetSignatureStatus(ctx context.Context, sig string) (*rpc.SignatureStatus, error)
	GetBlockHeight(ctx context.Context) (uint64, error)
	GetGenesisHash(ctx context.Context) (string, error)
	GetBalance(ctx context.Context, addr string) (uint64, error)
}

// Client wraps the SDK client. The wrap exists because getBlockHeight is
// only exposed on the raw JSON-RPC layer, not on client.Client.
type Client struct {
	*client.Client
}

func WrapClient(c *client.Client) *Client {
	return &Client{Client: c}
}

// GetBlockHeight returns the node's current block height via the JSON-RPC
// layer, unwrapping the response envelope.
func (c *Client) GetBlockHeight(ctx context.Context) (uint64, error) {
	res, err := c.Client.RpcClient.GetBlockHeight(ctx)
	if err != nil {
		return 0, err
	}
	if err := res.GetError(); err != nil {
		return 0, err
	}
	return res.Result, nil
}

var _ ChainClient = (*Client)(nil)
