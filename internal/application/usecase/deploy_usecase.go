// internal/application/usecase/deploy_usecase.go
package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tokdom "aiqx/internal/domain/token"
	"aiqx/internal/infra/solana"
)

// DeployTokenInput is the request of one Solana deployment.
type DeployTokenInput struct {
	Name        string             `json:"name"`
	Symbol      string             `json:"symbol"`
	Decimals    uint8              `json:"decimals"`
	TotalSupply string             `json:"totalSupply"`
	Network     tokdom.Network     `json:"network"`
	Description string             `json:"description,omitempty"`
	LogoDataURI string             `json:"logoDataUri,omitempty"`
	SocialLinks tokdom.SocialLinks `json:"socialLinks,omitempty"`

	EnableMintAuthority   bool `json:"enableMintAuthority"`
	EnableFreezeAuthority bool `json:"enableFreezeAuthority"`
	EnableUpdateAuthority bool `json:"enableUpdateAuthority"`

	DeployerAddress string `json:"deployerAddress,omitempty"`
}

// DeployTokenOutput is returned once the transaction confirmed and the
// record is persisted.
type DeployTokenOutput struct {
	Deployment tokdom.TokenDeployment `json:"deployment"`
}

// DeployTokenUsecase orchestrates one deployment end to end: persist a
// pending record, pin logo and metadata, run the on-chain pipeline, then
// flip the record exactly once.
type DeployTokenUsecase struct {
	Repo     tokdom.DeploymentRepository
	Deployer TokenDeployer
	Pinner   MetadataPinner
	Builder  *TokenMetadataBuilder
	Mirror   LogoMirror // optional
	Notifier Notifier   // optional

	Now func() time.Time
}

func NewDeployTokenUsecase(
	repo tokdom.DeploymentRepository,
	deployer TokenDeployer,
	pinner MetadataPinner,
) *DeployTokenUsecase {
	return &DeployTokenUsecase{
		Repo:     repo,
		Deployer: deployer,
		Pinner:   pinner,
		Builder:  NewTokenMetadataBuilder(),
		Now:      time.Now,
	}
}

func (uc *DeployTokenUsecase) Execute(ctx context.Context, in DeployTokenInput) (DeployTokenOutput, error) {
	if uc == nil || uc.Repo == nil || uc.Deployer == nil {
		return DeployTokenOutput{}, fmt.Errorf("usecase: deploy usecase not configured")
	}
	now := uc.now()

	d, err := tokdom.NewDeployment(
		"", tokdom.ChainSolana,
		in.Name, in.Symbol, in.Decimals, in.TotalSupply, in.Network, now,
	)
	if err != nil {
		return DeployTokenOutput{}, err
	}
	d.EnableMintAuthority = in.EnableMintAuthority
	d.EnableFreezeAuthority = in.EnableFreezeAuthority
	d.EnableUpdateAuthority = in.EnableUpdateAuthority
	d.Description = strings.TrimSpace(in.Description)
	d.SocialLinks = in.SocialLinks
	d.DeployerAddress = strings.TrimSpace(in.DeployerAddress)

	// the pending record exists before anything touches the chain, so a
	// crash mid-deploy leaves an auditable trail
	d, err = uc.Repo.Create(ctx, d)
	if err != nil {
		return DeployTokenOutput{}, fmt.Errorf("usecase: create deployment record: %w", err)
	}

	metadataURI, logoURL, err := uc.resolveMetadata(ctx, &d, in.LogoDataURI)
	if err != nil {
		uc.markFailed(ctx, &d, err)
		return DeployTokenOutput{}, err
	}
	d.LogoURL = logoURL
	d.SetMetadataURI(metadataURI)
	saved, err := uc.Repo.Save(ctx, d)
	if err != nil {
		err = fmt.Errorf("usecase: save metadata uri: %w", err)
		uc.markFailed(ctx, &d, err)
		return DeployTokenOutput{}, err
	}
	d = saved

	res, err := uc.Deployer.Deploy(ctx, solana.DeployParams{
		Name:                  d.Name,
		Symbol:                d.Symbol,
		Decimals:              d.Decimals,
		TotalSupply:           d.TotalSupply,
		Network:               d.Network,
		MetadataURI:           d.MetadataURI,
		EnableMintAuthority:   d.EnableMintAuthority,
		EnableFreezeAuthority: d.EnableFreezeAuthority,
		EnableUpdateAuthority: d.EnableUpdateAuthority,
	})
	if err != nil {
		uc.markFailed(ctx, &d, err)
		return DeployTokenOutput{}, err
	}

	if err := d.MarkConfirmed(res.MintAddress, res.TransactionSignature, uc.now()); err != nil {
		return DeployTokenOutput{}, err
	}
	if d, err = uc.Repo.Save(ctx, d); err != nil {
		return DeployTokenOutput{}, fmt.Errorf("usecase: save confirmed deployment: %w", err)
	}

	uc.notify(ctx, d)

	return DeployTokenOutput{Deployment: d}, nil
}

// resolveMetadata pins the logo and the metadata document. A token without
// logo, description and socials gets no metadata document at all. A logo
// that is already an HTTP(S) URL is referenced as-is: only the metadata
// document gets pinned.
func (uc *DeployTokenUsecase) resolveMetadata(ctx context.Context, d *tokdom.TokenDeployment, logo string) (metadataURI, logoURL string, err error) {
	logo = strings.TrimSpace(logo)
	hasExtras := logo != "" || strings.TrimSpace(d.Description) != "" || !d.SocialLinks.IsZero()
	if !hasExtras {
		return "", "", nil
	}
	if uc.Pinner == nil {
		return "", "", fmt.Errorf("%w: no pinning service configured", solana.ErrMetadataUpload)
	}

	if logo != "" {
		if isHTTPURL(logo) {
			logoURL = logo
		} else {
			asset, upErr := uc.Pinner.UploadImage(ctx, logo)
			if upErr != nil {
				return "", "", fmt.Errorf("%w: image: %v", solana.ErrMetadataUpload, upErr)
			}
			logoURL = asset.URL
		}

		if uc.Mirror != nil {
			if mirrored, mErr := uc.Mirror.Mirror(ctx, d.ID, logoURL); mErr != nil {
				log.Printf("[deploy_usecase] logo mirror failed (keeping gateway url): %v", mErr)
			} else if mirrored != "" {
				logoURL = mirrored
			}
		}
	}

	doc, err := uc.Builder.Build(*d, logoURL)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", solana.ErrMetadataUpload, err)
	}
	uri, err := uc.Pinner.UploadMetadata(ctx, doc)
	if err != nil {
		return "", "", fmt.Errorf("%w: document: %v", solana.ErrMetadataUpload, err)
	}
	return uri, logoURL, nil
}

func isHTTPURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (uc *DeployTokenUsecase) markFailed(ctx context.Context, d *tokdom.TokenDeployment, cause error) {
	if err := d.MarkFailed(solana.UserMessage(cause), uc.now()); err != nil {
		log.Printf("[deploy_usecase] mark failed rejected: %v", err)
		return
	}
	if _, err := uc.Repo.Save(ctx, *d); err != nil {
		log.Printf("[deploy_usecase] persist failed status: %v", err)
	}
}

func (uc *DeployTokenUsecase) notify(ctx context.Context, d tokdom.TokenDeployment) {
	if uc.Notifier == nil {
		return
	}
	if err := uc.Notifier.DeploymentConfirmed(ctx, d); err != nil {
		log.Printf("[deploy_usecase] notification failed: %v", err)
	}
}

func (uc *DeployTokenUsecase) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// EstimateFee surfaces the lamport cost of a deployment before the user
// commits.
func (uc *DeployTokenUsecase) EstimateFee(ctx context.Context) (uint64, error) {
	return uc.Deployer.EstimateDeployFee(ctx)
}

// StatusReport is the payload of a client-side deployment result: wallets
// that sign in the browser report the outcome here instead of running the
// server pipeline.
type StatusReport struct {
	Status               tokdom.DeploymentStatus `json:"status"`
	MintAddress          string                  `json:"mintAddress,omitempty"`
	TransactionSignature string                  `json:"transactionSignature,omitempty"`
	ErrorMessage         string                  `json:"errorMessage,omitempty"`
}

// ReportStatus applies a client-reported outcome to a pending record. The
// pending→final transition rules of the aggregate still apply.
func (uc *DeployTokenUsecase) ReportStatus(ctx context.Context, id string, report StatusReport) (tokdom.TokenDeployment, error) {
	if uc == nil || uc.Repo == nil {
		return tokdom.TokenDeployment{}, fmt.Errorf("usecase: deploy usecase not configured")
	}
	d, err := uc.Repo.GetByID(ctx, id)
	if err != nil {
		return tokdom.TokenDeployment{}, err
	}

	switch report.Status {
	case tokdom.StatusConfirmed:
		if err := d.MarkConfirmed(report.MintAddress, report.TransactionSignature, uc.now()); err != nil {
			return tokdom.TokenDeployment{}, err
		}
	case tokdom.StatusFailed:
		if err := d.MarkFailed(report.ErrorMessage, uc.now()); err != nil {
			return tokdom.TokenDeployment{}, err
		}
	default:
		return tokdom.TokenDeployment{}, tokdom.ErrInvalidStatus
	}

	d, err = uc.Repo.Save(ctx, d)
	if err != nil {
		return tokdom.TokenDeployment{}, fmt.Errorf("usecase: save reported status: %w", err)
	}
	if d.Status == tokdom.StatusConfirmed {
		uc.notify(ctx, d)
	}
	return d, nil
}
