// internal/application/usecase/ports.go
package usecase

import (
	"context"

	tokdom "aiqx/internal/domain/token"
	"aiqx/internal/infra/solana"
)

// MetadataPinner uploads token assets to the pinning service and returns
// public URIs.
type MetadataPinner interface {
	// UploadImage accepts a data URI (or raw base64 payload) and returns
	// the public image URL.
	UploadImage(ctx context.Context, dataURI string) (UploadedAsset, error)
	// UploadMetadata pins a metadata JSON document and returns its URI.
	UploadMetadata(ctx context.Context, doc []byte) (string, error)
}

// UploadedAsset describes a pinned image.
type UploadedAsset struct {
	URL         string `json:"imageUrl"`
	Hash        string `json:"ipfsHash"`
	ContentType string `json:"contentType"`
}

// LogoMirror stores a copy of the token logo in first-party storage so the
// UI does not depend on gateway availability.
type LogoMirror interface {
	Mirror(ctx context.Context, deploymentID, imageURL string) (string, error)
}

// Notifier delivers best-effort deployment notifications. Failures are
// logged, never propagated.
type Notifier interface {
	DeploymentConfirmed(ctx context.Context, d tokdom.TokenDeployment) error
}

// TokenDeployer abstracts the on-chain deployment pipeline.
type TokenDeployer interface {
	Deploy(ctx context.Context, p solana.DeployParams) (solana.DeployResult, error)
	EstimateDeployFee(ctx context.Context) (uint64, error)
}

// ToolExecutor abstracts the post-deployment tool operations.
type ToolExecutor interface {
	MintMore(ctx context.Context, mintAddr, recipientWallet, amount string) (solana.OperationResult, error)
	Burn(ctx context.Context, mintAddr, amount string) (solana.OperationResult, error)
	Freeze(ctx context.Context, mintAddr, target string) (solana.OperationResult, error)
	Unfreeze(ctx context.Context, mintAddr, target string) (solana.OperationResult, error)
	TransferAuthority(ctx context.Context, mintAddr string, kind solana.AuthorityKind, newAuthority string) (solana.OperationResult, error)
	RevokeAuthority(ctx context.Context, mintAddr string, kind solana.AuthorityKind) (solana.OperationResult, error)
	Multisend(ctx context.Context, mintAddr string, recipients []solana.MultisendRecipient) (solana.OperationResult, error)
}
