// internal/infra/config/config.go
package config

import (
	"os"
	"strings"

	tokdom "aiqx/internal/domain/token"
)

// Config holds the environment configuration of the launchpad API.
type Config struct {
	Port               string
	GoogleCloudProject string

	// Default deployment network. Requests may still name another one.
	SolanaNetwork tokdom.Network
	// Keyed provider endpoints per network. Empty entries fall back to the
	// public cluster endpoints.
	RPCOverrides map[tokdom.Network]string

	PinningBaseURL string
	PinningAPIKey  string

	LogoBucket string

	SendGridAPIKey string
	NotifyFrom     string
	NotifyTo       string

	SolcPath string

	AllowedOrigins     []string
	WalletAuthRequired bool
}

// Load reads the environment and returns the resolved configuration.
func Load() *Config {
	cfg := &Config{
		Port:               getenvDefault("PORT", "8080"),
		GoogleCloudProject: getenvDefault("GOOGLE_CLOUD_PROJECT", os.Getenv("GCP_PROJECT_ID")),

		SolanaNetwork: tokdom.Network(getenvDefault("SOLANA_NETWORK", string(tokdom.NetworkDevnet))),
		RPCOverrides: map[tokdom.Network]string{
			tokdom.NetworkMainnet: os.Getenv("SOLANA_RPC_MAINNET"),
			tokdom.NetworkDevnet:  os.Getenv("SOLANA_RPC_DEVNET"),
			tokdom.NetworkTestnet: os.Getenv("SOLANA_RPC_TESTNET"),
		},

		PinningBaseURL: os.Getenv("PINNING_BASE_URL"),
		PinningAPIKey:  os.Getenv("PINNING_API_KEY"),

		LogoBucket: getenvDefault("LOGO_BUCKET", "aiqx-token-logos"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		NotifyFrom:     os.Getenv("NOTIFY_FROM_EMAIL"),
		NotifyTo:       os.Getenv("NOTIFY_TO_EMAIL"),

		SolcPath: os.Getenv("SOLC_PATH"),

		AllowedOrigins:     splitCSV(os.Getenv("ALLOWED_ORIGINS")),
		WalletAuthRequired: boolEnv("WALLET_AUTH_REQUIRED"),
	}

	if !tokdom.IsValidNetwork(cfg.SolanaNetwork) {
		cfg.SolanaNetwork = tokdom.NetworkDevnet
	}
	return cfg
}

// RPCOverride returns the configured endpoint of a network, "" when unset.
func (c *Config) RPCOverride(network tokdom.Network) string {
	if c == nil || c.RPCOverrides == nil {
		return ""
	}
	return c.RPCOverrides[network]
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func boolEnv(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
