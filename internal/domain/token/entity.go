// internal/domain/token/entity.go
package token

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ============================================================
// Types
// ============================================================

// Chain identifies the target chain family of a deployment.
type Chain string

const (
	ChainEVM    Chain = "evm"
	ChainSolana Chain = "solana"
)

// Network is the Solana cluster (or EVM network tag) a token is deployed to.
type Network string

const (
	NetworkDevnet  Network = "devnet"
	NetworkTestnet Network = "testnet"
	NetworkMainnet Network = "mainnet"
)

// DeploymentStatus mirrors the record lifecycle: a record is created as
// pending before the transaction is submitted and flipped exactly once.
type DeploymentStatus string

const (
	StatusPending   DeploymentStatus = "pending"
	StatusConfirmed DeploymentStatus = "confirmed"
	StatusFailed    DeploymentStatus = "failed"
)

// Shared repository/service errors.
var (
	ErrNotFound = errors.New("token: not found")
	ErrConflict = errors.New("token: conflict")
	ErrInvalid  = errors.New("token: invalid")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
func IsInvalid(err error) bool  { return errors.Is(err, ErrInvalid) }

// WrapInvalid keeps the cause while tagging the error as validation failure.
func WrapInvalid(err error, msg string) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrInvalid, msg)
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalid, msg, err)
}

func WrapNotFound(err error, msg string) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return fmt.Errorf("%w: %s: %v", ErrNotFound, msg, err)
}

// ============================================================
// SocialLinks
// ============================================================

// SocialLinks is embedded in the deployment record and in the off-chain
// metadata document. All fields optional.
type SocialLinks struct {
	Website  string `json:"website,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Discord  string `json:"discord,omitempty"`
}

func (s SocialLinks) IsZero() bool {
	return s.Website == "" && s.Twitter == "" && s.Telegram == "" && s.Discord == ""
}

// ============================================================
// TokenDeployment
// ============================================================

// Errors
var (
	ErrInvalidID          = errors.New("token: invalid id")
	ErrInvalidName        = errors.New("token: invalid name")
	ErrInvalidSymbol      = errors.New("token: invalid symbol")
	ErrInvalidDecimals    = errors.New("token: invalid decimals")
	ErrInvalidSupply      = errors.New("token: invalid totalSupply")
	ErrInvalidNetwork     = errors.New("token: invalid network")
	ErrInvalidChain       = errors.New("token: invalid chain")
	ErrInvalidStatus      = errors.New("token: invalid status")
	ErrInvalidMintAddress = errors.New("token: invalid mintAddress")
	ErrInvalidSignature   = errors.New("token: invalid transactionSignature")

	// confirmed/failed never transitions back to pending
	ErrStatusFinal = errors.New("token: deployment status is final")
)

var symbolRe = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)

// TokenDeployment is the persisted aggregate (Firestore, "deployments").
//
// TotalSupply stays a decimal string end to end: conversion to base units
// happens only at instruction-build time via ParseTokenAmount, never with
// floating point.
type TokenDeployment struct {
	ID     string `json:"id"`
	Chain  Chain  `json:"chain"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`

	Decimals    uint8   `json:"decimals"`
	TotalSupply string  `json:"totalSupply"`
	Network     Network `json:"network"`

	// Solana authority switches
	EnableMintAuthority   bool `json:"enableMintAuthority"`
	EnableFreezeAuthority bool `json:"enableFreezeAuthority"`
	EnableUpdateAuthority bool `json:"enableUpdateAuthority"`

	// EVM feature switches (zero value for Solana deployments)
	Features Features `json:"features"`

	LogoURL     string      `json:"logoUrl,omitempty"`
	Description string      `json:"description,omitempty"`
	SocialLinks SocialLinks `json:"socialLinks,omitempty"`
	MetadataURI string      `json:"metadataUri,omitempty"`

	// On-chain result. Set exactly once on success, immutable thereafter.
	MintAddress          string `json:"mintAddress,omitempty"`
	TransactionSignature string `json:"transactionSignature,omitempty"`

	Status       DeploymentStatus `json:"status"`
	ErrorMessage string           `json:"errorMessage,omitempty"`

	DeployerAddress string `json:"deployerAddress,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func IsValidNetwork(n Network) bool {
	switch n {
	case NetworkDevnet, NetworkTestnet, NetworkMainnet:
		return true
	default:
		return false
	}
}

func IsValidChain(c Chain) bool {
	switch c {
	case ChainEVM, ChainSolana:
		return true
	default:
		return false
	}
}

func IsValidStatus(s DeploymentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusFailed:
		return true
	default:
		return false
	}
}

func (t TokenDeployment) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalidName
	}
	if !symbolRe.MatchString(strings.TrimSpace(t.Symbol)) {
		return ErrInvalidSymbol
	}
	if t.Decimals > 18 {
		return ErrInvalidDecimals
	}
	if _, err := ParseTokenAmount(t.TotalSupply, int(t.Decimals)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSupply, err)
	}
	if !IsValidChain(t.Chain) {
		return ErrInvalidChain
	}
	if !IsValidNetwork(t.Network) {
		return ErrInvalidNetwork
	}
	if !IsValidStatus(t.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// ============================================================
// Constructors
// ============================================================

// NewDeployment builds a pending record. ID may be empty (repository assigns).
func NewDeployment(
	id string,
	chain Chain,
	name, symbol string,
	decimals uint8,
	totalSupply string,
	network Network,
	now time.Time,
) (TokenDeployment, error) {

	d := TokenDeployment{
		ID:          strings.TrimSpace(id),
		Chain:       chain,
		Name:        strings.TrimSpace(name),
		Symbol:      strings.TrimSpace(symbol),
		Decimals:    decimals,
		TotalSupply: strings.TrimSpace(totalSupply),
		Network:     network,
		Status:      StatusPending,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}

	if err := d.validate(); err != nil {
		return TokenDeployment{}, err
	}
	return d, nil
}

// ============================================================
// Mutators
// ============================================================

// MarkConfirmed records the on-chain result. Only pending → confirmed is
// allowed; repeating the same result is idempotent.
func (t *TokenDeployment) MarkConfirmed(mintAddress, signature string, now time.Time) error {
	if t == nil {
		return nil
	}
	mintAddress = strings.TrimSpace(mintAddress)
	signature = strings.TrimSpace(signature)
	if mintAddress == "" {
		return ErrInvalidMintAddress
	}
	if signature == "" {
		return ErrInvalidSignature
	}

	if t.Status == StatusConfirmed {
		if t.MintAddress == mintAddress && t.TransactionSignature == signature {
			return nil
		}
		return ErrStatusFinal
	}
	if t.Status == StatusFailed {
		return ErrStatusFinal
	}

	t.MintAddress = mintAddress
	t.TransactionSignature = signature
	t.Status = StatusConfirmed
	t.ErrorMessage = ""
	t.UpdatedAt = now.UTC()
	return nil
}

// MarkFailed records a terminal failure with a user-facing message.
func (t *TokenDeployment) MarkFailed(msg string, now time.Time) error {
	if t == nil {
		return nil
	}
	if t.Status == StatusConfirmed {
		return ErrStatusFinal
	}
	t.Status = StatusFailed
	t.ErrorMessage = strings.TrimSpace(msg)
	t.UpdatedAt = now.UTC()
	return nil
}

// SetMetadataURI stores the resolved off-chain metadata location ("" is
// valid: a token without logo has no metadata document).
func (t *TokenDeployment) SetMetadataURI(uri string) {
	if t == nil {
		return
	}
	t.MetadataURI = strings.TrimSpace(uri)
}
