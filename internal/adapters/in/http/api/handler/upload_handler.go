// internal/adapters/in/http/api/handler/upload_handler.go
package handler

import (
	"net/http"

	"aiqx/internal/application/usecase"
)

// UploadHandler serves POST /api/upload-image: pins a logo ahead of the
// deployment so the UI can preview the gateway URL.
type UploadHandler struct {
	Pinner usecase.MetadataPinner
}

func NewUploadHandler(pinner usecase.MetadataPinner) *UploadHandler {
	return &UploadHandler{Pinner: pinner}
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if h.Pinner == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "pinning service not configured"})
		return
	}

	var in struct {
		File string `json:"file"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.File == "" {
		badRequest(w, "file is required (data uri)")
		return
	}

	asset, err := h.Pinner.UploadImage(r.Context(), in.File)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}
