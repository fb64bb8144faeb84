// internal/adapters/out/pinning/http_pinner.go
package pinning

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"aiqx/internal/application/usecase"
)

// HTTPPinner talks to the pinning proxy (Cloud Run) that holds the
// provider credentials. The browser never sees the provider key.
type HTTPPinner struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewHTTPPinner(baseURL, apiKey string) *HTTPPinner {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &HTTPPinner{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

var _ usecase.MetadataPinner = (*HTTPPinner)(nil)

// UploadImage pins a logo. Accepts a data URI
// ("data:image/png;base64,...") or a bare base64 payload.
func (p *HTTPPinner) UploadImage(ctx context.Context, dataURI string) (usecase.UploadedAsset, error) {
	if p.baseURL == "" {
		return usecase.UploadedAsset{}, fmt.Errorf("pinning: endpoint not configured")
	}

	contentType, payload, err := decodeDataURI(dataURI)
	if err != nil {
		return usecase.UploadedAsset{}, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "logo"+extensionFor(contentType))
	if err != nil {
		return usecase.UploadedAsset{}, fmt.Errorf("pinning: build form: %w", err)
	}
	if _, err := fw.Write(payload); err != nil {
		return usecase.UploadedAsset{}, fmt.Errorf("pinning: write form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return usecase.UploadedAsset{}, fmt.Errorf("pinning: close form: %w", err)
	}

	body, err := p.post(ctx, "/upload/image", mw.FormDataContentType(), &buf)
	if err != nil {
		return usecase.UploadedAsset{}, err
	}

	var res struct {
		ImageURL    string `json:"imageUrl"`
		IpfsHash    string `json:"ipfsHash"`
		ContentType string `json:"contentType"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return usecase.UploadedAsset{}, fmt.Errorf("pinning: decode image response: %w", err)
	}
	if res.ImageURL == "" {
		return usecase.UploadedAsset{}, fmt.Errorf("pinning: image response has empty url")
	}

	log.Printf("[pinning] image pinned hash=%s type=%s", res.IpfsHash, res.ContentType)
	return usecase.UploadedAsset{
		URL:         res.ImageURL,
		Hash:        res.IpfsHash,
		ContentType: res.ContentType,
	}, nil
}

// UploadMetadata pins the metadata JSON document and returns its URI.
func (p *HTTPPinner) UploadMetadata(ctx context.Context, doc []byte) (string, error) {
	if len(doc) == 0 {
		return "", fmt.Errorf("pinning: metadata document is empty")
	}
	if p.baseURL == "" {
		return "", fmt.Errorf("pinning: endpoint not configured")
	}

	body, err := p.post(ctx, "/upload/json", "application/json", bytes.NewReader(doc))
	if err != nil {
		return "", err
	}

	var res struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("pinning: decode metadata response: %w", err)
	}
	if res.URI == "" {
		return "", fmt.Errorf("pinning: metadata response has empty uri")
	}

	log.Printf("[pinning] metadata pinned uri=%s", res.URI)
	return res.URI, nil
}

func (p *HTTPPinner) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("pinning: create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinning: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[pinning] %s failed status=%d body=%s", path, resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("pinning: %s failed: status=%d", path, resp.StatusCode)
	}
	return respBody, nil
}

// decodeDataURI splits "data:<type>;base64,<payload>". A bare base64
// string is accepted and defaults to image/png.
func decodeDataURI(dataURI string) (contentType string, payload []byte, err error) {
	s := strings.TrimSpace(dataURI)
	if s == "" {
		return "", nil, fmt.Errorf("pinning: image payload is empty")
	}

	contentType = "image/png"
	if strings.HasPrefix(s, "data:") {
		meta, rest, ok := strings.Cut(s[len("data:"):], ",")
		if !ok {
			return "", nil, fmt.Errorf("pinning: malformed data uri")
		}
		if ct := strings.TrimSuffix(meta, ";base64"); ct != "" {
			contentType = ct
		}
		if !strings.HasSuffix(meta, ";base64") {
			return "", nil, fmt.Errorf("pinning: only base64 data uris are supported")
		}
		s = rest
	}

	payload, err = base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", nil, fmt.Errorf("pinning: decode base64 payload: %w", err)
	}
	if len(payload) == 0 {
		return "", nil, fmt.Errorf("pinning: image payload is empty")
	}
	return contentType, payload, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
