// internal/adapters/out/pinning/http_pinner_test.go
package pinning

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4E, 0x47})
}

func TestUploadImage(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload/image", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "logo.png", hdr.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"imageUrl":"https://gw.example/ipfs/Qm123","ipfsHash":"Qm123","contentType":"image/png"}`))
	}))
	defer srv.Close()

	p := NewHTTPPinner(srv.URL, "secret-key")
	asset, err := p.UploadImage(context.Background(), pngDataURI())
	require.NoError(t, err)
	assert.Equal(t, "https://gw.example/ipfs/Qm123", asset.URL)
	assert.Equal(t, "Qm123", asset.Hash)
	assert.Equal(t, "image/png", asset.ContentType)
	assert.Equal(t, "Bearer secret-key", gotAuth)
}

func TestUploadMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload/json", r.URL.Path)
		w.Write([]byte(`{"uri":"https://gw.example/ipfs/Qmmeta"}`))
	}))
	defer srv.Close()

	p := NewHTTPPinner(srv.URL+"/", "")
	uri, err := p.UploadMetadata(context.Background(), []byte(`{"name":"T"}`))
	require.NoError(t, err)
	assert.Equal(t, "https://gw.example/ipfs/Qmmeta", uri)
}

func TestUploadMetadataServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewHTTPPinner(srv.URL, "")
	_, err := p.UploadMetadata(context.Background(), []byte(`{}`))
	require.Error(t, err)
}

func TestUploadImageRejectsMalformedPayload(t *testing.T) {
	p := NewHTTPPinner("https://pin.example", "")

	_, err := p.UploadImage(context.Background(), "")
	require.Error(t, err)

	_, err = p.UploadImage(context.Background(), "data:image/png;base64")
	require.Error(t, err)

	_, err = p.UploadImage(context.Background(), "data:image/png,notbase64")
	require.Error(t, err)
}

func TestDecodeDataURIBareBase64(t *testing.T) {
	ct, payload, err := decodeDataURI(base64.StdEncoding.EncodeToString([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, []byte("x"), payload)
}
