// internal/application/usecase/token_metadata_builder.go
package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	tokdom "aiqx/internal/domain/token"
)

// TokenMetadataBuilder renders the off-chain metadata JSON document pinned
// alongside a deployment.
type TokenMetadataBuilder struct{}

func NewTokenMetadataBuilder() *TokenMetadataBuilder {
	return &TokenMetadataBuilder{}
}

// Build produces the metadata document for a deployment. imageURL is the
// already-pinned logo location ("" when the token has no logo).
func (b *TokenMetadataBuilder) Build(d tokdom.TokenDeployment, imageURL string) ([]byte, error) {
	name := strings.TrimSpace(d.Name)
	symbol := strings.TrimSpace(d.Symbol)
	if name == "" || symbol == "" {
		return nil, fmt.Errorf("usecase: token name or symbol is empty")
	}

	metadata := map[string]interface{}{
		"name":   name,
		"symbol": symbol,
	}

	if desc := strings.TrimSpace(d.Description); desc != "" {
		metadata["description"] = desc
	}
	if img := strings.TrimSpace(imageURL); img != "" {
		metadata["image"] = img
	}

	if !d.SocialLinks.IsZero() {
		ext := map[string]string{}
		if v := strings.TrimSpace(d.SocialLinks.Website); v != "" {
			ext["website"] = v
		}
		if v := strings.TrimSpace(d.SocialLinks.Twitter); v != "" {
			ext["twitter"] = v
		}
		if v := strings.TrimSpace(d.SocialLinks.Telegram); v != "" {
			ext["telegram"] = v
		}
		if v := strings.TrimSpace(d.SocialLinks.Discord); v != "" {
			ext["discord"] = v
		}
		if len(ext) > 0 {
			metadata["extensions"] = ext
		}
	}

	return json.Marshal(metadata)
}
