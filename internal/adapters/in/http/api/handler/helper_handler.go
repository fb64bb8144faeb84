// internal/adapters/in/http/api/handler/helper_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	tokdom "aiqx/internal/domain/token"
	"aiqx/internal/infra/solana"
)

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": strings.TrimSpace(msg)})
}

// writeError maps domain and chain errors onto status codes and the short
// user-facing message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		return
	case tokdom.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case tokdom.IsInvalid(err) || isDomainValidation(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, tokdom.ErrStatusFinal), tokdom.IsConflict(err):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, solana.ErrNoWalletConnected),
		errors.Is(err, solana.ErrNotMintAuthority),
		errors.Is(err, solana.ErrNotFreezeAuthority):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": solana.UserMessage(err)})
	case errors.Is(err, solana.ErrWrongNetwork),
		errors.Is(err, solana.ErrFreezeNotEnabled),
		errors.Is(err, solana.ErrMintAuthorityRevoked),
		errors.Is(err, solana.ErrAlreadyInDesiredState),
		errors.Is(err, solana.ErrInsufficientBalance):
		writeJSON(w, http.StatusConflict, map[string]string{"error": solana.UserMessage(err)})
	case errors.Is(err, solana.ErrAccountNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": solana.UserMessage(err)})
	case errors.Is(err, solana.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": solana.UserMessage(err)})
	case errors.Is(err, solana.ErrTransactionExpired),
		errors.Is(err, solana.ErrConfirmationTimeout),
		errors.Is(err, solana.ErrMetadataUpload):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": solana.UserMessage(err)})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": solana.UserMessage(err)})
	}
}

func isDomainValidation(err error) bool {
	for _, target := range []error{
		tokdom.ErrInvalidID, tokdom.ErrInvalidName, tokdom.ErrInvalidSymbol,
		tokdom.ErrInvalidDecimals, tokdom.ErrInvalidSupply, tokdom.ErrInvalidNetwork,
		tokdom.ErrInvalidChain, tokdom.ErrInvalidStatus,
		tokdom.ErrInvalidOperationType, tokdom.ErrInvalidOperationMint,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// decodeJSON enforces a sane body limit and strict field matching.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		badRequest(w, "malformed request body: "+err.Error())
		return false
	}
	return true
}

// pathTail returns the path segment after prefix, "" when absent.
func pathTail(path, prefix string) string {
	tail := strings.TrimPrefix(path, prefix)
	tail = strings.Trim(tail, "/")
	if i := strings.Index(tail, "/"); i >= 0 {
		tail = tail[:i]
	}
	return tail
}
