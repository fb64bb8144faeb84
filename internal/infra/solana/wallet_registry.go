// internal/infra/solana/wallet_registry.go
package solana

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretspb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/blocto/solana-go-sdk/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SignerLoader yields the keypair of one wallet provider, or an error when
// that provider is not configured/available.
type SignerLoader func(ctx context.Context) (types.Account, error)

// SignerRegistry is an explicit provider registry: providers are registered
// in priority order and Resolve returns the first one that yields a
// keypair. No module-level singleton state.
type SignerRegistry struct {
	names   []string
	loaders map[string]SignerLoader
}

func NewSignerRegistry() *SignerRegistry {
	return &SignerRegistry{loaders: make(map[string]SignerLoader)}
}

// Register appends a provider. Re-registering a name replaces the loader
// but keeps its original priority position.
func (r *SignerRegistry) Register(name string, loader SignerLoader) {
	if r == nil || loader == nil {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if _, ok := r.loaders[name]; !ok {
		r.names = append(r.names, name)
	}
	r.loaders[name] = loader
}

// List returns provider names in resolution order.
func (r *SignerRegistry) List() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Resolve walks providers in order and returns the first keypair found.
func (r *SignerRegistry) Resolve(ctx context.Context) (types.Account, error) {
	if r == nil || len(r.names) == 0 {
		return types.Account{}, ErrNoWalletConnected
	}

	var lastErr error
	for _, name := range r.names {
		acc, err := r.loaders[name](ctx)
		if err != nil {
			lastErr = err
			log.Printf("[wallet_registry] provider %q unavailable: %v", name, err)
			continue
		}
		log.Printf("[wallet_registry] resolved signer provider=%s pubkey=%s", name, maskShort(acc.PublicKey.ToBase58()))
		return acc, nil
	}

	if lastErr != nil {
		return types.Account{}, fmt.Errorf("%w: %v", ErrNoWalletConnected, lastErr)
	}
	return types.Account{}, ErrNoWalletConnected
}

// ============================================================
// Built-in providers
// ============================================================

// SecretManagerLoader restores a solana-keygen keypair (JSON [u8;64]) from
// a GCP Secret Manager version named by env SOLANA_SIGNER_SECRET, e.g.
// "projects/<PROJECT_ID>/secrets/<SECRET_ID>/versions/latest".
func SecretManagerLoader() SignerLoader {
	return func(ctx context.Context) (types.Account, error) {
		secretName := strings.TrimSpace(os.Getenv("SOLANA_SIGNER_SECRET"))
		if secretName == "" {
			return types.Account{}, fmt.Errorf("SOLANA_SIGNER_SECRET not set")
		}

		sm, err := secretmanager.NewClient(ctx)
		if err != nil {
			return types.Account{}, fmt.Errorf("secretmanager.NewClient: %w", err)
		}
		defer sm.Close()

		resp, err := sm.AccessSecretVersion(ctx, &secretspb.AccessSecretVersionRequest{
			Name: secretName,
		})
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return types.Account{}, fmt.Errorf("signer secret %s not found", secretName)
			}
			return types.Account{}, fmt.Errorf("AccessSecretVersion: %w", err)
		}

		keyBytes, err := decodeKeypairJSON(resp.Payload.Data)
		if err != nil {
			return types.Account{}, err
		}
		acc, err := types.AccountFromBytes(keyBytes)
		if err != nil {
			return types.Account{}, fmt.Errorf("AccountFromBytes: %w", err)
		}

		log.Printf("[wallet_registry] loaded signer from Secret Manager: secret=%s pubkey=%s",
			secretName, maskShort(acc.PublicKey.ToBase58()))
		return acc, nil
	}
}

// EnvLoader reads the keypair JSON directly from env SOLANA_SIGNER_KEYPAIR.
func EnvLoader() SignerLoader {
	return func(_ context.Context) (types.Account, error) {
		raw := strings.TrimSpace(os.Getenv("SOLANA_SIGNER_KEYPAIR"))
		if raw == "" {
			return types.Account{}, fmt.Errorf("SOLANA_SIGNER_KEYPAIR not set")
		}
		keyBytes, err := decodeKeypairJSON([]byte(raw))
		if err != nil {
			return types.Account{}, err
		}
		acc, err := types.AccountFromBytes(keyBytes)
		if err != nil {
			return types.Account{}, fmt.Errorf("AccountFromBytes: %w", err)
		}
		return acc, nil
	}
}

// FileLoader reads a solana-keygen id.json from env SOLANA_SIGNER_FILE.
func FileLoader() SignerLoader {
	return func(_ context.Context) (types.Account, error) {
		path := strings.TrimSpace(os.Getenv("SOLANA_SIGNER_FILE"))
		if path == "" {
			return types.Account{}, fmt.Errorf("SOLANA_SIGNER_FILE not set")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return types.Account{}, fmt.Errorf("read keypair file: %w", err)
		}
		keyBytes, err := decodeKeypairJSON(data)
		if err != nil {
			return types.Account{}, err
		}
		acc, err := types.AccountFromBytes(keyBytes)
		if err != nil {
			return types.Account{}, fmt.Errorf("AccountFromBytes: %w", err)
		}
		return acc, nil
	}
}

// DefaultSignerRegistry wires the built-in providers in priority order.
func DefaultSignerRegistry() *SignerRegistry {
	r := NewSignerRegistry()
	r.Register("secret-manager", SecretManagerLoader())
	r.Register("env", EnvLoader())
	r.Register("file", FileLoader())
	return r
}

// decodeKeypairJSON restores the 64-byte key array from keypair JSON.
// Accepts both []byte and [int,...] encodings for compatibility with
// solana-keygen output stored in different tooling.
func decodeKeypairJSON(data []byte) ([]byte, error) {
	var keyBytes []byte
	if err := json.Unmarshal(data, &keyBytes); err == nil {
		if len(keyBytes) == ed25519.PrivateKeySize {
			return keyBytes, nil
		}
	}

	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, fmt.Errorf("unmarshal keypair json: %w", err)
	}
	if len(ints) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("unexpected secret key length: got %d, want %d", len(ints), ed25519.PrivateKeySize)
	}

	keyBytes = make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("keypair byte out of range at %d: %d", i, v)
		}
		keyBytes[i] = byte(v)
	}
	return keyBytes, nil
}

func maskShort(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	if len(t) <= 10 {
		return t
	}
	return t[:4] + "***" + t[len(t)-4:]
}
