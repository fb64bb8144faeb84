// internal/adapters/in/http/api/handler/token_handler.go
package handler

import (
	"net/http"
	"strings"

	"aiqx/internal/application/usecase"
)

// TokenHandler serves the deployment record endpoints:
//
//	GET  /api/tokens
//	GET  /api/tokens/{id}
//	POST /api/tokens/{id}/status (client-side deployment outcome)
type TokenHandler struct {
	Query  *usecase.TokenQueryUsecase
	Deploy *usecase.DeployTokenUsecase
}

func NewTokenHandler(query *usecase.TokenQueryUsecase, deploy *usecase.DeployTokenUsecase) *TokenHandler {
	return &TokenHandler{Query: query, Deploy: deploy}
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tokens"), "/")

	switch {
	case r.Method == http.MethodGet && rest == "":
		h.list(w, r)
	case r.Method == http.MethodGet && !strings.Contains(rest, "/"):
		h.get(w, r, rest)
	case r.Method == http.MethodPost && strings.HasSuffix(rest, "/status"):
		h.reportStatus(w, r, strings.TrimSuffix(rest, "/status"))
	default:
		methodNotAllowed(w)
	}
}

func (h *TokenHandler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.Query.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tokens": list})
}

func (h *TokenHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	d, err := h.Query.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *TokenHandler) reportStatus(w http.ResponseWriter, r *http.Request, id string) {
	if h.Deploy == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "status reporting not configured"})
		return
	}
	id = strings.Trim(id, "/")
	if id == "" {
		badRequest(w, "token id is required")
		return
	}

	var report usecase.StatusReport
	if !decodeJSON(w, r, &report) {
		return
	}

	d, err := h.Deploy.ReportStatus(r.Context(), id, report)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
