// internal/infra/solana/chain_client_test.go
package solana

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonRPCServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientGetBlockHeight(t *testing.T) {
	srv := jsonRPCServer(t, `{"jsonrpc":"2.0","result":4242,"id":1}`)
	c := WrapClient(client.NewClient(srv.URL))

	height, err := c.GetBlockHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(4242), height)
}

func TestClientGetBlockHeightRPCError(t *testing.T) {
	srv := jsonRPCServer(t, `{"jsonrpc":"2.0","error":{"code":-32601,"message":"Method not found"},"id":1}`)
	c := WrapClient(client.NewClient(srv.URL))

	_, err := c.GetBlockHeight(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Method not found")
}
