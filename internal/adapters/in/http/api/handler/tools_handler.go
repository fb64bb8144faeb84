// internal/adapters/in/http/api/handler/tools_handler.go
package handler

import (
	"net/http"
	"strings"

	"aiqx/internal/adapters/in/http/middleware"
	"aiqx/internal/application/usecase"
)

// ToolsHandler serves POST /api/tools/{operation} and
// GET /api/tools/history?mint=...
type ToolsHandler struct {
	Usecase *usecase.ToolUsecase
}

func NewToolsHandler(uc *usecase.ToolUsecase) *ToolsHandler {
	return &ToolsHandler{Usecase: uc}
}

func (h *ToolsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	op := pathTail(r.URL.Path, "/api/tools")

	if r.Method == http.MethodGet {
		if op != "history" {
			methodNotAllowed(w)
			return
		}
		h.history(w, r)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var in usecase.ToolInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Mint) == "" {
		badRequest(w, "mint is required")
		return
	}
	if in.ActorAddress == "" {
		in.ActorAddress = strings.TrimSpace(r.Header.Get(middleware.HeaderWalletAddress))
	}

	var (
		out usecase.ToolOutput
		err error
	)
	switch op {
	case "mint":
		out, err = h.Usecase.Mint(r.Context(), in)
	case "burn":
		out, err = h.Usecase.Burn(r.Context(), in)
	case "freeze":
		out, err = h.Usecase.Freeze(r.Context(), in)
	case "unfreeze":
		out, err = h.Usecase.Unfreeze(r.Context(), in)
	case "authority":
		// transfer when a new authority is named, revoke otherwise
		if strings.TrimSpace(in.NewAuthority) != "" {
			out, err = h.Usecase.TransferAuthority(r.Context(), in)
		} else {
			out, err = h.Usecase.RevokeAuthority(r.Context(), in)
		}
	case "multisend":
		out, err = h.Usecase.Multisend(r.Context(), in)
	default:
		notFound(w)
		return
	}

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ToolsHandler) history(w http.ResponseWriter, r *http.Request) {
	mint := strings.TrimSpace(r.URL.Query().Get("mint"))
	if mint == "" {
		badRequest(w, "mint query parameter is required")
		return
	}
	ops, err := h.Usecase.History(r.Context(), mint)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"operations": ops})
}
