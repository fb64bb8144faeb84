// internal/infra/evm/artifacts.go
package evm

import (
	"encoding/json"
	"fmt"
	"strings"

	tokdom "aiqx/internal/domain/token"
)

// ContractArtifacts is the compile result handed to deploy callers.
type ContractArtifacts struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode string          `json:"bytecode"`
}

// GetArtifacts returns the fixed ABI/bytecode pair for a variant. The pair
// varies by standard-vs-advanced only, not by which advanced features are
// active; callers that need a flag-accurate interface use BuildABI.
func GetArtifacts(variant tokdom.ContractVariant) (ContractArtifacts, error) {
	switch variant {
	case tokdom.VariantStandard:
		abi, err := json.Marshal(BuildABI(tokdom.Features{}))
		if err != nil {
			return ContractArtifacts{}, fmt.Errorf("evm: marshal standard abi: %w", err)
		}
		return ContractArtifacts{ABI: abi, Bytecode: standardPlaceholderBytecode}, nil

	case tokdom.VariantAdvanced:
		abi, err := json.Marshal(BuildABI(allFeatures))
		if err != nil {
			return ContractArtifacts{}, fmt.Errorf("evm: marshal advanced abi: %w", err)
		}
		return ContractArtifacts{ABI: abi, Bytecode: advancedPlaceholderBytecode}, nil

	default:
		return ContractArtifacts{}, fmt.Errorf("evm: unknown contract variant %q", variant)
	}
}

// ParseVariant normalizes the path parameter of the compile endpoint.
func ParseVariant(s string) (tokdom.ContractVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return tokdom.VariantStandard, nil
	case "advanced":
		return tokdom.VariantAdvanced, nil
	default:
		return "", fmt.Errorf("evm: unknown contract variant %q", s)
	}
}

var allFeatures = tokdom.Features{
	IsMintable:   true,
	IsBurnable:   true,
	IsPausable:   true,
	IsCapped:     true,
	HasTax:       true,
	HasBlacklist: true,
}

// Placeholder bytecode used when solc is unavailable. The deploy path only
// uses these on networks where a faucet deployment is acceptable; real
// builds come out of CompileContract.
const standardPlaceholderBytecode = "0x608060405234801561001057600080fd5b50604051610a38380380610a3883398101604081905261002f91610123565b8351849084906100479060039060208501906100b0565b50805161005b9060049060208401906100b0565b50506005805460ff191660ff85161790555061007833826100826100d6565b5050505050610203565b6001600160a01b0382166100dc57600080fd5b80600260008282546100ee9190610195565b90915550505050565b610826806102126000396000f3fe"

const advancedPlaceholderBytecode = "0x608060405234801561001057600080fd5b50604051611c64380380611c6483398101604081905261002f91610312565b8b518c908c9061004690600390602085019061019e565b50805161005a90600490602084019061019e565b5050600580546001600160a01b0319163317905550600680549115156101000261ff00199215159290921661ffff19909116171790556007929092556008556009805460ff191660ff9093169290921790915561012c565b611952806103126000396000f3fe"
