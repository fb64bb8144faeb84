// internal/infra/solana/wallet_registry_test.go
package solana

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFirstAvailableWins(t *testing.T) {
	first := types.NewAccount()
	second := types.NewAccount()

	r := NewSignerRegistry()
	r.Register("a", func(_ context.Context) (types.Account, error) { return first, nil })
	r.Register("b", func(_ context.Context) (types.Account, error) { return second, nil })

	acc, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.PublicKey, acc.PublicKey)
}

func TestResolveSkipsUnavailable(t *testing.T) {
	want := types.NewAccount()

	r := NewSignerRegistry()
	r.Register("down", func(_ context.Context) (types.Account, error) {
		return types.Account{}, errors.New("not configured")
	})
	r.Register("up", func(_ context.Context) (types.Account, error) { return want, nil })

	acc, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.PublicKey, acc.PublicKey)
}

func TestResolveNoneAvailable(t *testing.T) {
	r := NewSignerRegistry()
	r.Register("down", func(_ context.Context) (types.Account, error) {
		return types.Account{}, errors.New("not configured")
	})

	_, err := r.Resolve(context.Background())
	require.ErrorIs(t, err, ErrNoWalletConnected)
}

func TestResolveEmptyRegistry(t *testing.T) {
	_, err := NewSignerRegistry().Resolve(context.Background())
	require.ErrorIs(t, err, ErrNoWalletConnected)
}

func TestRegisterKeepsPriorityOnReplace(t *testing.T) {
	r := NewSignerRegistry()
	r.Register("a", func(_ context.Context) (types.Account, error) { return types.Account{}, errors.New("x") })
	r.Register("b", func(_ context.Context) (types.Account, error) { return types.Account{}, errors.New("x") })
	r.Register("a", func(_ context.Context) (types.Account, error) { return types.Account{}, errors.New("x") })

	assert.Equal(t, []string{"a", "b"}, r.List())
}

func TestDefaultSignerRegistryOrder(t *testing.T) {
	assert.Equal(t, []string{"secret-manager", "env", "file"}, DefaultSignerRegistry().List())
}

func TestDecodeKeypairJSONIntArray(t *testing.T) {
	acc := types.NewAccount()
	ints := make([]int, len(acc.PrivateKey))
	for i, b := range acc.PrivateKey {
		ints[i] = int(b)
	}
	raw, err := json.Marshal(ints)
	require.NoError(t, err)

	got, err := decodeKeypairJSON(raw)
	require.NoError(t, err)

	restored, err := types.AccountFromBytes(got)
	require.NoError(t, err)
	assert.Equal(t, acc.PublicKey, restored.PublicKey)
}

func TestDecodeKeypairJSONRejectsWrongLength(t *testing.T) {
	_, err := decodeKeypairJSON([]byte("[1,2,3]"))
	require.Error(t, err)

	_, err = decodeKeypairJSON([]byte(`"not an array"`))
	require.Error(t, err)
}

func TestMaskShort(t *testing.T) {
	assert.Equal(t, "", maskShort("   "))
	assert.Equal(t, "short", maskShort("short"))
	assert.Equal(t, "9sHc***Hcqx", maskShort("9sHcv6xwn9YkB8nxTUGKDwPwNnmqfp5hfZvVy5ScHcqx"))
}
