// internal/adapters/in/http/api/handler/metadata_handler.go
package handler

import (
	"net/http"
	"time"

	"aiqx/internal/application/usecase"
	tokdom "aiqx/internal/domain/token"
)

// MetadataHandler serves POST /api/create-metadata: builds and pins the
// metadata document without deploying, for wallets that sign client-side.
type MetadataHandler struct {
	Pinner  usecase.MetadataPinner
	Builder *usecase.TokenMetadataBuilder
}

func NewMetadataHandler(pinner usecase.MetadataPinner) *MetadataHandler {
	return &MetadataHandler{Pinner: pinner, Builder: usecase.NewTokenMetadataBuilder()}
}

func (h *MetadataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if h.Pinner == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "pinning service not configured"})
		return
	}

	var in struct {
		Name        string             `json:"name"`
		Symbol      string             `json:"symbol"`
		Description string             `json:"description,omitempty"`
		ImageURL    string             `json:"imageUrl,omitempty"`
		SocialLinks tokdom.SocialLinks `json:"socialLinks,omitempty"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}

	// only name/symbol matter for the document shape; supply a valid shell
	d, err := tokdom.NewDeployment("", tokdom.ChainSolana, in.Name, in.Symbol, 9, "0", tokdom.NetworkDevnet, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	d.Description = in.Description
	d.SocialLinks = in.SocialLinks

	doc, err := h.Builder.Build(d, in.ImageURL)
	if err != nil {
		writeError(w, err)
		return
	}
	uri, err := h.Pinner.UploadMetadata(r.Context(), doc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"metadataUri": uri})
}
