// internal/infra/solana/network.go
package solana

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"

	tokdom "aiqx/internal/domain/token"
)

// Cluster genesis hashes, the stable identity of each network.
const (
	genesisMainnet = "5eykt4UsFv8P8NJdTREpY1vzqKqZKvdpKuc147dw2N9d"
	genesisDevnet  = "EtWTRABZaYq6iMfeYKouRu166VU2xqa1wcaWoxPkrZBG"
	genesisTestnet = "4uhcVJyU9pJkvQyS88uRDiswHXSCkY3zQawwpjk2NsNY"
)

// RPCEndpoint resolves the upstream endpoint for a network. An explicit
// override (per-network env) wins so a provider key can stay server-side.
func RPCEndpoint(network tokdom.Network, override string) string {
	if u := strings.TrimSpace(override); u != "" {
		return u
	}
	switch network {
	case tokdom.NetworkMainnet:
		return rpc.MainnetRPCEndpoint
	case tokdom.NetworkTestnet:
		return rpc.TestnetRPCEndpoint
	default:
		return rpc.DevnetRPCEndpoint
	}
}

// NewClient builds an RPC client for the network.
func NewClient(network tokdom.Network, override string) *Client {
	return WrapClient(client.NewClient(RPCEndpoint(network, override)))
}

func expectedGenesisHash(network tokdom.Network) string {
	switch network {
	case tokdom.NetworkMainnet:
		return genesisMainnet
	case tokdom.NetworkTestnet:
		return genesisTestnet
	default:
		return genesisDevnet
	}
}

// EnsureNetwork verifies the endpoint actually serves the requested
// cluster by comparing genesis hashes. A check that cannot run is logged
// and tolerated; a confirmed mismatch is fatal.
func EnsureNetwork(ctx context.Context, c ChainClient, network tokdom.Network) error {
	got, err := c.GetGenesisHash(ctx)
	if err != nil {
		log.Printf("[solana] network check skipped (genesis hash unavailable): %v", err)
		return nil
	}

	want := expectedGenesisHash(network)
	if got != want {
		return fmt.Errorf("%w: endpoint genesis=%s want network=%s", ErrWrongNetwork, got, network)
	}
	return nil
}
