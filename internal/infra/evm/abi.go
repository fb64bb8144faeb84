// internal/infra/evm/abi.go
package evm

import (
	"encoding/json"

	tokdom "aiqx/internal/domain/token"
)

// ABIParam is one input/output of an ABI entry.
type ABIParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ABIEntry is one function/constructor/event in the contract ABI.
type ABIEntry struct {
	Name            string     `json:"name,omitempty"`
	Type            string     `json:"type"`
	Inputs          []ABIParam `json:"inputs"`
	Outputs         []ABIParam `json:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
}

// BuildABI derives the contract ABI from the same flag set that drives
// source generation, so the interface handed to callers always matches the
// deployed contract (the fixed-per-variant artifact lookup in artifacts.go
// does not give that guarantee).
func BuildABI(f tokdom.Features) []ABIEntry {
	entries := erc20BaseABI(f.Variant())

	if !f.Any() {
		return entries
	}

	// ownership surface is always present on the advanced variant
	entries = append(entries,
		ABIEntry{Name: "owner", Type: "function", Outputs: []ABIParam{{Type: "address"}}, StateMutability: "view"},
		ABIEntry{Name: "transferOwnership", Type: "function", Inputs: []ABIParam{{Name: "newOwner", Type: "address"}}, StateMutability: "nonpayable"},
		ABIEntry{Name: "renounceOwnership", Type: "function", StateMutability: "nonpayable"},
	)

	if f.IsMintable {
		entries = append(entries, ABIEntry{
			Name: "mint", Type: "function",
			Inputs:          []ABIParam{{Name: "to", Type: "address"}, {Name: "amount", Type: "uint256"}},
			StateMutability: "nonpayable",
		})
	}
	if f.IsBurnable {
		entries = append(entries, ABIEntry{
			Name: "burn", Type: "function",
			Inputs:          []ABIParam{{Name: "amount", Type: "uint256"}},
			StateMutability: "nonpayable",
		})
	}
	if f.IsPausable {
		entries = append(entries,
			ABIEntry{Name: "pause", Type: "function", StateMutability: "nonpayable"},
			ABIEntry{Name: "unpause", Type: "function", StateMutability: "nonpayable"},
			ABIEntry{Name: "paused", Type: "function", Outputs: []ABIParam{{Type: "bool"}}, StateMutability: "view"},
		)
	}
	if f.IsCapped {
		entries = append(entries, ABIEntry{
			Name: "cap", Type: "function",
			Outputs: []ABIParam{{Type: "uint256"}}, StateMutability: "view",
		})
	}
	if f.HasTax {
		entries = append(entries,
			ABIEntry{Name: "taxPercentage", Type: "function", Outputs: []ABIParam{{Type: "uint256"}}, StateMutability: "view"},
			ABIEntry{Name: "treasuryWallet", Type: "function", Outputs: []ABIParam{{Type: "address"}}, StateMutability: "view"},
		)
	}
	if f.HasBlacklist {
		entries = append(entries,
			ABIEntry{Name: "blacklist", Type: "function", Inputs: []ABIParam{{Name: "account", Type: "address"}}, StateMutability: "nonpayable"},
			ABIEntry{Name: "unblacklist", Type: "function", Inputs: []ABIParam{{Name: "account", Type: "address"}}, StateMutability: "nonpayable"},
			ABIEntry{Name: "isBlacklisted", Type: "function", Inputs: []ABIParam{{Name: "account", Type: "address"}}, Outputs: []ABIParam{{Type: "bool"}}, StateMutability: "view"},
		)
	}

	return entries
}

// BuildABIJSON marshals the derived ABI (convenience for the HTTP layer).
func BuildABIJSON(f tokdom.Features) ([]byte, error) {
	return json.Marshal(BuildABI(f))
}

func erc20BaseABI(variant tokdom.ContractVariant) []ABIEntry {
	ctor := ABIEntry{
		Type: "constructor",
		Inputs: []ABIParam{
			{Name: "name_", Type: "string"},
			{Name: "symbol_", Type: "string"},
			{Name: "decimals_", Type: "uint8"},
			{Name: "initialSupply_", Type: "uint256"},
		},
		StateMutability: "nonpayable",
	}
	if variant == tokdom.VariantAdvanced {
		ctor.Inputs = append(ctor.Inputs,
			ABIParam{Name: "maxSupply_", Type: "uint256"},
			ABIParam{Name: "taxRate_", Type: "uint256"},
			ABIParam{Name: "treasury_", Type: "address"},
			ABIParam{Name: "isMintable_", Type: "bool"},
			ABIParam{Name: "isBurnable_", Type: "bool"},
			ABIParam{Name: "isPausable_", Type: "bool"},
			ABIParam{Name: "isCapped_", Type: "bool"},
			ABIParam{Name: "hasTax_", Type: "bool"},
			ABIParam{Name: "hasBlacklist_", Type: "bool"},
		)
	}

	return []ABIEntry{
		ctor,
		{Name: "name", Type: "function", Outputs: []ABIParam{{Type: "string"}}, StateMutability: "view"},
		{Name: "symbol", Type: "function", Outputs: []ABIParam{{Type: "string"}}, StateMutability: "view"},
		{Name: "decimals", Type: "function", Outputs: []ABIParam{{Type: "uint8"}}, StateMutability: "view"},
		{Name: "totalSupply", Type: "function", Outputs: []ABIParam{{Type: "uint256"}}, StateMutability: "view"},
		{Name: "balanceOf", Type: "function", Inputs: []ABIParam{{Name: "account", Type: "address"}}, Outputs: []ABIParam{{Type: "uint256"}}, StateMutability: "view"},
		{Name: "allowance", Type: "function", Inputs: []ABIParam{{Name: "owner", Type: "address"}, {Name: "spender", Type: "address"}}, Outputs: []ABIParam{{Type: "uint256"}}, StateMutability: "view"},
		{Name: "transfer", Type: "function", Inputs: []ABIParam{{Name: "to", Type: "address"}, {Name: "value", Type: "uint256"}}, Outputs: []ABIParam{{Type: "bool"}}, StateMutability: "nonpayable"},
		{Name: "approve", Type: "function", Inputs: []ABIParam{{Name: "spender", Type: "address"}, {Name: "value", Type: "uint256"}}, Outputs: []ABIParam{{Type: "bool"}}, StateMutability: "nonpayable"},
		{Name: "transferFrom", Type: "function", Inputs: []ABIParam{{Name: "from", Type: "address"}, {Name: "to", Type: "address"}, {Name: "value", Type: "uint256"}}, Outputs: []ABIParam{{Type: "bool"}}, StateMutability: "nonpayable"},
	}
}
