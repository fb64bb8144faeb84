// internal/adapters/in/http/api/handler/contract_handler.go
package handler

import (
	"net/http"
	"strings"

	"aiqx/internal/application/usecase"
	tokdom "aiqx/internal/domain/token"
)

// ContractHandler serves the EVM contract endpoints:
//
//	POST /api/contracts/generate            (features -> source + abi)
//	POST /api/contracts/compile             (features -> source + abi + bytecode)
//	GET  /api/contracts/compile/{tokenType} (static artifacts per variant)
type ContractHandler struct {
	Usecase *usecase.ContractUsecase
}

func NewContractHandler(uc *usecase.ContractUsecase) *ContractHandler {
	return &ContractHandler{Usecase: uc}
}

type featuresRequest struct {
	IsMintable   bool `json:"isMintable"`
	IsBurnable   bool `json:"isBurnable"`
	IsPausable   bool `json:"isPausable"`
	IsCapped     bool `json:"isCapped"`
	HasTax       bool `json:"hasTax"`
	HasBlacklist bool `json:"hasBlacklist"`
}

func (f featuresRequest) domain() tokdom.Features {
	return tokdom.Features{
		IsMintable:   f.IsMintable,
		IsBurnable:   f.IsBurnable,
		IsPausable:   f.IsPausable,
		IsCapped:     f.IsCapped,
		HasTax:       f.HasTax,
		HasBlacklist: f.HasBlacklist,
	}
}

func (h *ContractHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimRight(r.URL.Path, "/")
	switch {
	case r.Method == http.MethodPost && path == "/api/contracts/generate":
		h.generate(w, r)
	case r.Method == http.MethodPost && path == "/api/contracts/compile":
		h.compile(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/api/contracts/compile/"):
		h.artifacts(w, pathTail(path, "/api/contracts/compile"))
	default:
		methodNotAllowed(w)
	}
}

func (h *ContractHandler) generate(w http.ResponseWriter, r *http.Request) {
	var in featuresRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	bundle, err := h.Usecase.Generate(in.domain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (h *ContractHandler) compile(w http.ResponseWriter, r *http.Request) {
	var in featuresRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	bundle, err := h.Usecase.Compile(r.Context(), in.domain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (h *ContractHandler) artifacts(w http.ResponseWriter, variant string) {
	if variant == "" {
		badRequest(w, "token type is required")
		return
	}
	arts, err := h.Usecase.Artifacts(variant)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, arts)
}
