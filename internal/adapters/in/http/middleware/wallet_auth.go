// internal/adapters/in/http/middleware/wallet_auth.go
package middleware

import (
	"crypto/ed25519"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mr-tron/base58"
)

// Wallet signature headers. The client signs a short-lived message
// ("aiqx:<unix-seconds>") with the wallet key; the server verifies the
// ed25519 signature against the claimed address.
const (
	HeaderWalletAddress   = "X-Wallet-Address"
	HeaderWalletSignature = "X-Wallet-Signature"
	HeaderWalletMessage   = "X-Wallet-Message"

	walletMessagePrefix = "aiqx:"
	walletMessageMaxAge = 5 * time.Minute
)

// WalletAuth verifies the wallet signature on mutating requests. GET and
// OPTIONS pass through so read endpoints stay public. When required is
// false the middleware only annotates logs and never rejects.
func WalletAuth(required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodOptions || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			addr := strings.TrimSpace(r.Header.Get(HeaderWalletAddress))
			sig := strings.TrimSpace(r.Header.Get(HeaderWalletSignature))
			msg := strings.TrimSpace(r.Header.Get(HeaderWalletMessage))

			if addr == "" || sig == "" || msg == "" {
				if required {
					unauthorized(w, "wallet signature headers missing")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if err := verifyWalletSignature(addr, msg, sig); err != nil {
				log.Printf("[wallet_auth] rejected addr=%s: %v", maskAddr(addr), err)
				unauthorized(w, "invalid wallet signature")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func verifyWalletSignature(addr, msg, sig string) error {
	pub, err := base58.Decode(addr)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return errInvalid("wallet address is not a valid public key")
	}
	sigBytes, err := base58.Decode(sig)
	if err != nil || len(sigBytes) != ed25519.SignatureSize {
		return errInvalid("signature is malformed")
	}

	if !strings.HasPrefix(msg, walletMessagePrefix) {
		return errInvalid("unexpected message prefix")
	}
	unix, err := strconv.ParseInt(strings.TrimPrefix(msg, walletMessagePrefix), 10, 64)
	if err != nil {
		return errInvalid("message timestamp is malformed")
	}
	age := time.Since(time.Unix(unix, 0))
	if age < -time.Minute || age > walletMessageMaxAge {
		return errInvalid("message expired")
	}

	if !ed25519.Verify(ed25519.PublicKey(pub), []byte(msg), sigBytes) {
		return errInvalid("signature does not match")
	}
	return nil
}

type errInvalid string

func (e errInvalid) Error() string { return string(e) }

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func maskAddr(s string) string {
	if len(s) <= 10 {
		return s
	}
	return s[:4] + "***" + s[len(s)-4:]
}
