// internal/infra/evm/compiler.go
package evm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tokdom "aiqx/internal/domain/token"
)

// SolidityCompiler compiles generated sources with a local solc binary and
// falls back to the static per-variant artifacts when solc is unavailable
// or the compile fails.
type SolidityCompiler struct {
	SolcPath string
	TempDir  string
}

// NewSolidityCompiler probes common solc locations. An empty SolcPath means
// fallback-only mode.
func NewSolidityCompiler() *SolidityCompiler {
	candidates := []string{
		"solc",
		"/usr/bin/solc",
		"/usr/local/bin/solc",
	}

	var solcPath string
	for _, p := range candidates {
		if found, err := exec.LookPath(p); err == nil {
			solcPath = found
			break
		}
	}

	if solcPath == "" {
		log.Printf("[evm_compiler] solc not found; serving static artifacts only")
	} else {
		log.Printf("[evm_compiler] using solc at %s", solcPath)
	}

	return &SolidityCompiler{
		SolcPath: solcPath,
		TempDir:  os.TempDir(),
	}
}

// Compile generates the source for the flag set and compiles it. On any
// compiler failure the static variant artifacts are returned instead, with
// the ABI derived from the flag set either way.
func (c *SolidityCompiler) Compile(ctx context.Context, f tokdom.Features) (ContractArtifacts, error) {
	abi, err := BuildABIJSON(f)
	if err != nil {
		return ContractArtifacts{}, fmt.Errorf("evm_compiler: build abi: %w", err)
	}

	if c == nil || c.SolcPath == "" {
		art, err := GetArtifacts(f.Variant())
		if err != nil {
			return ContractArtifacts{}, err
		}
		return ContractArtifacts{ABI: abi, Bytecode: art.Bytecode}, nil
	}

	bytecode, err := c.compileSource(ctx, GenerateContract(f))
	if err != nil {
		log.Printf("[evm_compiler] solc compile failed, falling back to static artifacts: %v", err)
		art, aerr := GetArtifacts(f.Variant())
		if aerr != nil {
			return ContractArtifacts{}, aerr
		}
		return ContractArtifacts{ABI: abi, Bytecode: art.Bytecode}, nil
	}

	return ContractArtifacts{ABI: abi, Bytecode: bytecode}, nil
}

type solcCombinedOutput struct {
	Contracts map[string]struct {
		Bin string `json:"bin"`
	} `json:"contracts"`
}

func (c *SolidityCompiler) compileSource(ctx context.Context, source string) (string, error) {
	dir, err := os.MkdirTemp(c.TempDir, "aiqx-solc-")
	if err != nil {
		return "", fmt.Errorf("evm_compiler: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	srcPath := filepath.Join(dir, "Token.sol")
	if err := os.WriteFile(srcPath, []byte(source), 0o600); err != nil {
		return "", fmt.Errorf("evm_compiler: write source: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.SolcPath,
		"--combined-json", "bin",
		"--optimize",
		srcPath,
	)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("evm_compiler: solc: %s", strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("evm_compiler: solc: %w", err)
	}

	var parsed solcCombinedOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return "", fmt.Errorf("evm_compiler: parse solc output: %w", err)
	}

	for _, contract := range parsed.Contracts {
		bin := strings.TrimSpace(contract.Bin)
		if bin != "" {
			if !strings.HasPrefix(bin, "0x") {
				bin = "0x" + bin
			}
			return bin, nil
		}
	}
	return "", fmt.Errorf("evm_compiler: solc output has no bytecode")
}
