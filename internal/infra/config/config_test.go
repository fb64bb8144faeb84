// internal/infra/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tokdom "aiqx/internal/domain/token"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SOLANA_NETWORK", "")
	t.Setenv("LOGO_BUCKET", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("WALLET_AUTH_REQUIRED", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, tokdom.NetworkDevnet, cfg.SolanaNetwork)
	assert.Equal(t, "aiqx-token-logos", cfg.LogoBucket)
	assert.Nil(t, cfg.AllowedOrigins)
	assert.False(t, cfg.WalletAuthRequired)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SOLANA_NETWORK", "mainnet")
	t.Setenv("SOLANA_RPC_MAINNET", "https://rpc.example/keyed")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example, https://staging.example")
	t.Setenv("WALLET_AUTH_REQUIRED", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, tokdom.NetworkMainnet, cfg.SolanaNetwork)
	assert.Equal(t, "https://rpc.example/keyed", cfg.RPCOverride(tokdom.NetworkMainnet))
	assert.Equal(t, "", cfg.RPCOverride(tokdom.NetworkDevnet))
	assert.Equal(t, []string{"https://app.example", "https://staging.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.WalletAuthRequired)
}

func TestLoadRejectsUnknownNetwork(t *testing.T) {
	t.Setenv("SOLANA_NETWORK", "moonnet")
	cfg := Load()
	assert.Equal(t, tokdom.NetworkDevnet, cfg.SolanaNetwork)
}
