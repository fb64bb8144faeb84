// internal/infra/evm/abi_test.go
package evm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokdom "aiqx/internal/domain/token"
)

func abiNames(entries []ABIEntry) map[string]bool {
	out := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			out[e.Name] = true
		}
	}
	return out
}

func TestBuildABIStandard(t *testing.T) {
	entries := BuildABI(tokdom.Features{})
	names := abiNames(entries)

	for _, want := range []string{"name", "symbol", "decimals", "totalSupply", "balanceOf", "allowance", "transfer", "approve", "transferFrom"} {
		assert.True(t, names[want], "missing %s", want)
	}
	assert.False(t, names["owner"], "standard variant has no ownership surface")
	assert.False(t, names["mint"])

	require.Equal(t, "constructor", entries[0].Type)
	assert.Len(t, entries[0].Inputs, 4)
}

func TestBuildABIAdvancedConstructor(t *testing.T) {
	entries := BuildABI(tokdom.Features{IsMintable: true})
	require.Equal(t, "constructor", entries[0].Type)
	assert.Len(t, entries[0].Inputs, 13, "advanced constructor takes the full parameter set")
}

func TestBuildABIMatchesFlags(t *testing.T) {
	for mask := 1; mask < 64; mask++ {
		f := featuresFromBits(mask)
		names := abiNames(BuildABI(f))

		assert.True(t, names["owner"], "mask=%d", mask)
		assert.True(t, names["transferOwnership"], "mask=%d", mask)

		assert.Equal(t, f.IsMintable, names["mint"], "mask=%d", mask)
		assert.Equal(t, f.IsBurnable, names["burn"], "mask=%d", mask)
		assert.Equal(t, f.IsPausable, names["pause"], "mask=%d", mask)
		assert.Equal(t, f.IsPausable, names["paused"], "mask=%d", mask)
		assert.Equal(t, f.IsCapped, names["cap"], "mask=%d", mask)
		assert.Equal(t, f.HasTax, names["taxPercentage"], "mask=%d", mask)
		assert.Equal(t, f.HasBlacklist, names["isBlacklisted"], "mask=%d", mask)
	}
}

func TestBuildABIJSONRoundTrips(t *testing.T) {
	raw, err := BuildABIJSON(tokdom.Features{IsMintable: true, HasTax: true})
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotEmpty(t, decoded)
}

func TestGetArtifacts(t *testing.T) {
	std, err := GetArtifacts(tokdom.VariantStandard)
	require.NoError(t, err)
	assert.NotEmpty(t, std.ABI)
	assert.NotEmpty(t, std.Bytecode)

	adv, err := GetArtifacts(tokdom.VariantAdvanced)
	require.NoError(t, err)
	assert.NotEqual(t, std.Bytecode, adv.Bytecode)
	assert.Contains(t, string(adv.ABI), `"mint"`, "advanced artifact abi carries the full feature surface")

	_, err = GetArtifacts(tokdom.ContractVariant("deluxe"))
	assert.Error(t, err)
}

func TestParseVariant(t *testing.T) {
	for in, want := range map[string]tokdom.ContractVariant{
		"standard":   tokdom.VariantStandard,
		" Advanced ": tokdom.VariantAdvanced,
		"ADVANCED":   tokdom.VariantAdvanced,
	} {
		got, err := ParseVariant(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseVariant("premium")
	assert.Error(t, err)
}
