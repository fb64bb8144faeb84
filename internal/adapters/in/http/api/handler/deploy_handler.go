// internal/adapters/in/http/api/handler/deploy_handler.go
package handler

import (
	"log"
	"net/http"
	"strings"

	"aiqx/internal/adapters/in/http/middleware"
	"aiqx/internal/application/usecase"
)

// DeployHandler serves POST /api/deploy and GET /api/deploy/fee.
type DeployHandler struct {
	Usecase *usecase.DeployTokenUsecase
}

func NewDeployHandler(uc *usecase.DeployTokenUsecase) *DeployHandler {
	return &DeployHandler{Usecase: uc}
}

func (h *DeployHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && strings.TrimRight(r.URL.Path, "/") == "/api/deploy":
		h.deploy(w, r)
	case r.Method == http.MethodGet && strings.TrimRight(r.URL.Path, "/") == "/api/deploy/fee":
		h.fee(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *DeployHandler) deploy(w http.ResponseWriter, r *http.Request) {
	var in usecase.DeployTokenInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.DeployerAddress == "" {
		in.DeployerAddress = strings.TrimSpace(r.Header.Get(middleware.HeaderWalletAddress))
	}

	out, err := h.Usecase.Execute(r.Context(), in)
	if err != nil {
		log.Printf("[deploy_handler] deploy failed name=%q symbol=%q: %v", in.Name, in.Symbol, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *DeployHandler) fee(w http.ResponseWriter, r *http.Request) {
	lamports, err := h.Usecase.EstimateFee(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"lamports": lamports})
}
