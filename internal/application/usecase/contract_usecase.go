// internal/application/usecase/contract_usecase.go
package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	tokdom "aiqx/internal/domain/token"
	"aiqx/internal/infra/evm"
)

// ContractUsecase serves the EVM side: Solidity source generation, ABI
// derivation and compiled artifacts per feature set.
type ContractUsecase struct {
	Compiler *evm.SolidityCompiler
}

func NewContractUsecase(compiler *evm.SolidityCompiler) *ContractUsecase {
	return &ContractUsecase{Compiler: compiler}
}

// ContractBundle is everything the caller needs to deploy from a wallet.
type ContractBundle struct {
	Variant  string          `json:"tokenType"`
	Source   string          `json:"contractCode"`
	ABI      json.RawMessage `json:"abi"`
	Bytecode string          `json:"bytecode"`
}

// Generate renders Solidity source and the matching ABI for a feature set.
func (uc *ContractUsecase) Generate(f tokdom.Features) (ContractBundle, error) {
	abi, err := evm.BuildABIJSON(f)
	if err != nil {
		return ContractBundle{}, fmt.Errorf("usecase: build abi: %w", err)
	}
	return ContractBundle{
		Variant: string(f.Variant()),
		Source:  evm.GenerateContract(f),
		ABI:     abi,
	}, nil
}

// Compile returns deployable artifacts for a feature set: compiled with
// solc when available, static artifacts otherwise.
func (uc *ContractUsecase) Compile(ctx context.Context, f tokdom.Features) (ContractBundle, error) {
	bundle, err := uc.Generate(f)
	if err != nil {
		return ContractBundle{}, err
	}

	if uc.Compiler == nil {
		arts, err := evm.GetArtifacts(f.Variant())
		if err != nil {
			return ContractBundle{}, err
		}
		bundle.Bytecode = arts.Bytecode
		return bundle, nil
	}

	arts, err := uc.Compiler.Compile(ctx, f)
	if err != nil {
		return ContractBundle{}, fmt.Errorf("usecase: compile contract: %w", err)
	}
	bundle.ABI = arts.ABI
	bundle.Bytecode = arts.Bytecode
	return bundle, nil
}

// Artifacts returns the static per-variant artifacts by variant name.
func (uc *ContractUsecase) Artifacts(variantName string) (evm.ContractArtifacts, error) {
	variant, err := evm.ParseVariant(variantName)
	if err != nil {
		return evm.ContractArtifacts{}, tokdom.WrapInvalid(err, "token type")
	}
	return evm.GetArtifacts(variant)
}
