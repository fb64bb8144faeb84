// internal/domain/token/features.go
package token

// Features is the fixed set of six independent EVM token capabilities that
// drive contract-source generation. Immutable input, no identity.
type Features struct {
	IsMintable   bool `json:"isMintable"`
	IsBurnable   bool `json:"isBurnable"`
	IsPausable   bool `json:"isPausable"`
	IsCapped     bool `json:"isCapped"`
	HasTax       bool `json:"hasTax"`
	HasBlacklist bool `json:"hasBlacklist"`
}

// ContractVariant selects which pre-compiled artifact set applies.
type ContractVariant string

const (
	VariantStandard ContractVariant = "standard"
	VariantAdvanced ContractVariant = "advanced"
)

// Any reports whether at least one capability is enabled.
func (f Features) Any() bool {
	return f.IsMintable || f.IsBurnable || f.IsPausable || f.IsCapped || f.HasTax || f.HasBlacklist
}

// Variant is "standard" iff all six flags are false.
func (f Features) Variant() ContractVariant {
	if f.Any() {
		return VariantAdvanced
	}
	return VariantStandard
}

// NeedsTransferHook reports whether the generated contract overrides the
// transfer hook (pause gate, blacklist check or tax split).
func (f Features) NeedsTransferHook() bool {
	return f.IsPausable || f.HasTax || f.HasBlacklist
}
