// internal/adapters/in/http/api/router.go
package api

import "net/http"

// Deps is the launchpad-facing handler set.
type Deps struct {
	Deploy   http.Handler
	Tokens   http.Handler
	Upload   http.Handler
	Metadata http.Handler
	RPCProxy http.Handler
	Contract http.Handler
	Tools    http.Handler
}

// Register registers the /api routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	if deps.Deploy != nil {
		mux.Handle("/api/deploy", deps.Deploy)
		mux.Handle("/api/deploy/", deps.Deploy)
	}

	if deps.Tokens != nil {
		mux.Handle("/api/tokens", deps.Tokens)
		mux.Handle("/api/tokens/", deps.Tokens)
	}

	if deps.Upload != nil {
		mux.Handle("/api/upload-image", deps.Upload)
	}

	if deps.Metadata != nil {
		mux.Handle("/api/create-metadata", deps.Metadata)
	}

	if deps.RPCProxy != nil {
		mux.Handle("/api/solana-rpc/", deps.RPCProxy)
	}

	if deps.Contract != nil {
		mux.Handle("/api/contracts/", deps.Contract)
	}

	if deps.Tools != nil {
		mux.Handle("/api/tools/", deps.Tools)
	}
}
