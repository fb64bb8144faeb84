// internal/adapters/out/gcs/logo_mirror_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// LogoMirrorGCS copies a pinned logo from its gateway URL into a
// first-party bucket so the UI does not depend on gateway uptime.
type LogoMirrorGCS struct {
	Client *storage.Client
	Bucket string

	httpClient *http.Client
}

const defaultLogoBucket = "aiqx-token-logos"

func NewLogoMirrorGCS(client *storage.Client, bucket string) *LogoMirrorGCS {
	b := strings.TrimSpace(bucket)
	if b == "" {
		b = defaultLogoBucket
	}
	return &LogoMirrorGCS{
		Client: client,
		Bucket: b,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (m *LogoMirrorGCS) bucket() string {
	b := strings.TrimSpace(m.Bucket)
	if b == "" {
		return defaultLogoBucket
	}
	return b
}

// Mirror downloads imageURL and stores it under "{deploymentID}/logo",
// returning the public URL of the copy.
func (m *LogoMirrorGCS) Mirror(ctx context.Context, deploymentID, imageURL string) (string, error) {
	if m == nil || m.Client == nil {
		return "", errors.New("gcs: nil storage client")
	}
	deploymentID = strings.TrimSpace(deploymentID)
	if deploymentID == "" {
		return "", fmt.Errorf("gcs: deployment id is empty")
	}
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return "", fmt.Errorf("gcs: image url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("gcs: build download request: %w", err)
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gcs: download logo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gcs: download logo: status=%d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	objectPath := deploymentID + "/logo" + guessExtFromContentType(contentType)

	w := m.Client.Bucket(m.bucket()).Object(objectPath).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		w.Close()
		return "", fmt.Errorf("gcs: write logo object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: finalize logo object: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", m.bucket(), objectPath), nil
}

func guessExtFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}
