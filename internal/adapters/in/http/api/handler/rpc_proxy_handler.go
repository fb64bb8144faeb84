// internal/adapters/in/http/api/handler/rpc_proxy_handler.go
package handler

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"time"

	tokdom "aiqx/internal/domain/token"
	"aiqx/internal/infra/solana"
)

// RPCProxyHandler serves POST /api/solana-rpc/{network}: forwards JSON-RPC
// requests to the upstream endpoint so provider API keys never reach the
// browser.
type RPCProxyHandler struct {
	// Overrides maps network name to a keyed provider endpoint.
	Overrides map[tokdom.Network]string

	client *http.Client
}

func NewRPCProxyHandler(overrides map[tokdom.Network]string) *RPCProxyHandler {
	return &RPCProxyHandler{
		Overrides: overrides,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (h *RPCProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	network := tokdom.Network(pathTail(r.URL.Path, "/api/solana-rpc"))
	if !tokdom.IsValidNetwork(network) {
		badRequest(w, "unknown network: "+string(network))
		return
	}
	endpoint := solana.RPCEndpoint(network, h.Overrides[network])

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		badRequest(w, "read request body: "+err.Error())
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "build upstream request"})
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		log.Printf("[rpc_proxy] upstream %s failed: %v", network, err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream rpc unreachable"})
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("[rpc_proxy] stream response failed: %v", err)
	}
}
