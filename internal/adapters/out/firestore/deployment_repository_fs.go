// internal/adapters/out/firestore/deployment_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	tokdom "aiqx/internal/domain/token"
)

const deploymentsCollection = "deployments"

// DeploymentRepositoryFS implements token.DeploymentRepository using
// Firestore.
type DeploymentRepositoryFS struct {
	Client *firestore.Client
}

func NewDeploymentRepositoryFS(client *firestore.Client) *DeploymentRepositoryFS {
	return &DeploymentRepositoryFS{Client: client}
}

func (r *DeploymentRepositoryFS) Create(ctx context.Context, d tokdom.TokenDeployment) (tokdom.TokenDeployment, error) {
	if r.Client == nil {
		return tokdom.TokenDeployment{}, errors.New("firestore client is nil")
	}

	col := r.Client.Collection(deploymentsCollection)

	var docRef *firestore.DocumentRef
	if d.ID == "" {
		docRef = col.NewDoc()
		d.ID = docRef.ID
	} else {
		docRef = col.Doc(d.ID)
	}

	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = d.CreatedAt
	}

	if _, err := docRef.Create(ctx, deploymentToDoc(d)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return tokdom.TokenDeployment{}, tokdom.WrapInvalid(nil, "deployment "+d.ID+" already exists")
		}
		return tokdom.TokenDeployment{}, err
	}
	return d, nil
}

func (r *DeploymentRepositoryFS) Save(ctx context.Context, d tokdom.TokenDeployment) (tokdom.TokenDeployment, error) {
	if r.Client == nil {
		return tokdom.TokenDeployment{}, errors.New("firestore client is nil")
	}
	id := strings.TrimSpace(d.ID)
	if id == "" {
		return tokdom.TokenDeployment{}, tokdom.ErrInvalidID
	}

	if _, err := r.Client.Collection(deploymentsCollection).Doc(id).Set(ctx, deploymentToDoc(d)); err != nil {
		return tokdom.TokenDeployment{}, err
	}
	return d, nil
}

func (r *DeploymentRepositoryFS) GetByID(ctx context.Context, id string) (tokdom.TokenDeployment, error) {
	if r.Client == nil {
		return tokdom.TokenDeployment{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return tokdom.TokenDeployment{}, tokdom.ErrInvalidID
	}

	doc, err := r.Client.Collection(deploymentsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return tokdom.TokenDeployment{}, tokdom.WrapNotFound(nil, "deployment "+id)
		}
		return tokdom.TokenDeployment{}, err
	}
	return deploymentFromDoc(doc)
}

// List returns all deployments, newest first.
func (r *DeploymentRepositoryFS) List(ctx context.Context) ([]tokdom.TokenDeployment, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.Client.Collection(deploymentsCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer it.Stop()

	var out []tokdom.TokenDeployment
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		d, err := deploymentFromDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// deploymentToDoc maps the aggregate onto the stored document. Fields are
// mapped explicitly so schema changes stay visible here.
func deploymentToDoc(d tokdom.TokenDeployment) map[string]interface{} {
	data := map[string]interface{}{
		"chain":       string(d.Chain),
		"name":        d.Name,
		"symbol":      d.Symbol,
		"decimals":    int(d.Decimals),
		"totalSupply": d.TotalSupply,
		"network":     string(d.Network),

		"enableMintAuthority":   d.EnableMintAuthority,
		"enableFreezeAuthority": d.EnableFreezeAuthority,
		"enableUpdateAuthority": d.EnableUpdateAuthority,

		"features": map[string]interface{}{
			"isMintable":   d.Features.IsMintable,
			"isBurnable":   d.Features.IsBurnable,
			"isPausable":   d.Features.IsPausable,
			"isCapped":     d.Features.IsCapped,
			"hasTax":       d.Features.HasTax,
			"hasBlacklist": d.Features.HasBlacklist,
		},

		"status":    string(d.Status),
		"createdAt": d.CreatedAt,
		"updatedAt": d.UpdatedAt,
	}

	if d.LogoURL != "" {
		data["logoUrl"] = d.LogoURL
	}
	if d.Description != "" {
		data["description"] = d.Description
	}
	if !d.SocialLinks.IsZero() {
		data["socialLinks"] = map[string]interface{}{
			"website":  d.SocialLinks.Website,
			"twitter":  d.SocialLinks.Twitter,
			"telegram": d.SocialLinks.Telegram,
			"discord":  d.SocialLinks.Discord,
		}
	}
	if d.MetadataURI != "" {
		data["metadataUri"] = d.MetadataURI
	}
	if d.MintAddress != "" {
		data["mintAddress"] = d.MintAddress
	}
	if d.TransactionSignature != "" {
		data["transactionSignature"] = d.TransactionSignature
	}
	if d.ErrorMessage != "" {
		data["errorMessage"] = d.ErrorMessage
	}
	if d.DeployerAddress != "" {
		data["deployerAddress"] = d.DeployerAddress
	}
	return data
}

// deploymentDoc is the read-side shape.
type deploymentDoc struct {
	Chain       string `firestore:"chain"`
	Name        string `firestore:"name"`
	Symbol      string `firestore:"symbol"`
	Decimals    int    `firestore:"decimals"`
	TotalSupply string `firestore:"totalSupply"`
	Network     string `firestore:"network"`

	EnableMintAuthority   bool `firestore:"enableMintAuthority"`
	EnableFreezeAuthority bool `firestore:"enableFreezeAuthority"`
	EnableUpdateAuthority bool `firestore:"enableUpdateAuthority"`

	Features struct {
		IsMintable   bool `firestore:"isMintable"`
		IsBurnable   bool `firestore:"isBurnable"`
		IsPausable   bool `firestore:"isPausable"`
		IsCapped     bool `firestore:"isCapped"`
		HasTax       bool `firestore:"hasTax"`
		HasBlacklist bool `firestore:"hasBlacklist"`
	} `firestore:"features"`

	LogoURL     string `firestore:"logoUrl"`
	Description string `firestore:"description"`
	SocialLinks struct {
		Website  string `firestore:"website"`
		Twitter  string `firestore:"twitter"`
		Telegram string `firestore:"telegram"`
		Discord  string `firestore:"discord"`
	} `firestore:"socialLinks"`
	MetadataURI string `firestore:"metadataUri"`

	MintAddress          string `firestore:"mintAddress"`
	TransactionSignature string `firestore:"transactionSignature"`

	Status          string    `firestore:"status"`
	ErrorMessage    string    `firestore:"errorMessage"`
	DeployerAddress string    `firestore:"deployerAddress"`
	CreatedAt       time.Time `firestore:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt"`
}

func deploymentFromDoc(doc *firestore.DocumentSnapshot) (tokdom.TokenDeployment, error) {
	var raw deploymentDoc
	if err := doc.DataTo(&raw); err != nil {
		return tokdom.TokenDeployment{}, err
	}

	d := tokdom.TokenDeployment{
		ID:          doc.Ref.ID,
		Chain:       tokdom.Chain(raw.Chain),
		Name:        raw.Name,
		Symbol:      raw.Symbol,
		Decimals:    uint8(raw.Decimals),
		TotalSupply: raw.TotalSupply,
		Network:     tokdom.Network(raw.Network),

		EnableMintAuthority:   raw.EnableMintAuthority,
		EnableFreezeAuthority: raw.EnableFreezeAuthority,
		EnableUpdateAuthority: raw.EnableUpdateAuthority,

		Features: tokdom.Features{
			IsMintable:   raw.Features.IsMintable,
			IsBurnable:   raw.Features.IsBurnable,
			IsPausable:   raw.Features.IsPausable,
			IsCapped:     raw.Features.IsCapped,
			HasTax:       raw.Features.HasTax,
			HasBlacklist: raw.Features.HasBlacklist,
		},

		LogoURL:     raw.LogoURL,
		Description: raw.Description,
		SocialLinks: tokdom.SocialLinks{
			Website:  raw.SocialLinks.Website,
			Twitter:  raw.SocialLinks.Twitter,
			Telegram: raw.SocialLinks.Telegram,
			Discord:  raw.SocialLinks.Discord,
		},
		MetadataURI: raw.MetadataURI,

		MintAddress:          raw.MintAddress,
		TransactionSignature: raw.TransactionSignature,

		Status:          tokdom.DeploymentStatus(raw.Status),
		ErrorMessage:    raw.ErrorMessage,
		DeployerAddress: raw.DeployerAddress,
		CreatedAt:       raw.CreatedAt,
		UpdatedAt:       raw.UpdatedAt,
	}
	return d, nil
}
