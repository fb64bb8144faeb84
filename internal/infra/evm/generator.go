// internal/infra/evm/generator.go
package evm

import (
	"strings"

	tokdom "aiqx/internal/domain/token"
)

// GenerateContract maps a feature-flag set to Solidity source text. It is a
// total function over the 64-combination flag space: no combination fails.
//
// Fragment order inside the advanced contract is canonical and must not be
// reordered: pausable → capped → tax → blacklist → decimals accessor →
// transfer-hook override.
func GenerateContract(f tokdom.Features) string {
	if !f.Any() {
		return renderStandard()
	}
	return renderAdvanced(f)
}

// ============================================================
// Fragment builder
// ============================================================

// contractBuilder accumulates typed fragments and renders them
// deterministically. No conditional string concatenation at call sites:
// each feature appends whole fragments in one place.
type contractBuilder struct {
	name       string
	imports    []string
	inherits   []string
	stateVars  []string
	ctorParams []string
	ctorMods   []string
	ctorBody   []string
	functions  []string
}

func (b *contractBuilder) addImport(path string)  { b.imports = append(b.imports, path) }
func (b *contractBuilder) addInherit(name string) { b.inherits = append(b.inherits, name) }
func (b *contractBuilder) addState(line string)   { b.stateVars = append(b.stateVars, line) }
func (b *contractBuilder) addParam(p string)      { b.ctorParams = append(b.ctorParams, p) }
func (b *contractBuilder) addCtorMod(m string)    { b.ctorMods = append(b.ctorMods, m) }
func (b *contractBuilder) addCtor(line string)    { b.ctorBody = append(b.ctorBody, line) }
func (b *contractBuilder) addFunc(src string)     { b.functions = append(b.functions, src) }

func (b *contractBuilder) render() string {
	var sb strings.Builder

	sb.WriteString("// SPDX-License-Identifier: MIT\n")
	sb.WriteString("pragma solidity ^0.8.20;\n\n")
	for _, imp := range b.imports {
		sb.WriteString("import \"" + imp + "\";\n")
	}
	sb.WriteString("\n")

	sb.WriteString("contract " + b.name)
	if len(b.inherits) > 0 {
		sb.WriteString(" is " + strings.Join(b.inherits, ", "))
	}
	sb.WriteString(" {\n")

	for _, v := range b.stateVars {
		sb.WriteString("    " + v + "\n")
	}
	if len(b.stateVars) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString("    constructor(\n")
	for i, p := range b.ctorParams {
		sb.WriteString("        " + p)
		if i < len(b.ctorParams)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("    )")
	for _, m := range b.ctorMods {
		sb.WriteString(" " + m)
	}
	sb.WriteString(" {\n")
	for _, line := range b.ctorBody {
		sb.WriteString("        " + line + "\n")
	}
	sb.WriteString("    }\n")

	for _, fn := range b.functions {
		sb.WriteString("\n")
		for _, line := range strings.Split(strings.TrimRight(fn, "\n"), "\n") {
			if line == "" {
				sb.WriteString("\n")
				continue
			}
			sb.WriteString("    " + line + "\n")
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// ============================================================
// Standard variant
// ============================================================

func renderStandard() string {
	b := &contractBuilder{name: "AIQXToken"}

	b.addImport("@openzeppelin/contracts/token/ERC20/ERC20.sol")
	b.addInherit("ERC20")

	b.addState("uint8 private immutable _tokenDecimals;")

	b.addParam("string memory name_")
	b.addParam("string memory symbol_")
	b.addParam("uint8 decimals_")
	b.addParam("uint256 initialSupply_")
	b.addCtorMod("ERC20(name_, symbol_)")
	b.addCtor("_tokenDecimals = decimals_;")
	b.addCtor("_mint(msg.sender, initialSupply_ * 10 ** decimals_);")

	b.addFunc(fnDecimals)

	return b.render()
}

// ============================================================
// Advanced variant
// ============================================================

// renderAdvanced emits a contract inheriting ERC20 + Ownable (always) and
// Pausable iff requested. The constructor signature is uniform across all
// advanced flag combinations; only the body fragments vary.
func renderAdvanced(f tokdom.Features) string {
	b := &contractBuilder{name: "AIQXAdvancedToken"}

	b.addImport("@openzeppelin/contracts/token/ERC20/ERC20.sol")
	b.addImport("@openzeppelin/contracts/access/Ownable.sol")
	if f.IsPausable {
		b.addImport("@openzeppelin/contracts/utils/Pausable.sol")
	}

	b.addInherit("ERC20")
	b.addInherit("Ownable")
	if f.IsPausable {
		b.addInherit("Pausable")
	}

	// State fragments, canonical order: capped → tax → blacklist → decimals
	if f.IsCapped {
		b.addState("uint256 private immutable _cap;")
	}
	if f.HasTax {
		b.addState("uint256 public taxPercentage;")
		b.addState("address public treasuryWallet;")
	}
	if f.HasBlacklist {
		b.addState("mapping(address => bool) private _blacklisted;")
	}
	b.addState("uint8 private immutable _tokenDecimals;")

	// Uniform constructor ABI: every advanced contract accepts the full
	// parameter set; only the fragments whose flag is on act on them.
	b.addParam("string memory name_")
	b.addParam("string memory symbol_")
	b.addParam("uint8 decimals_")
	b.addParam("uint256 initialSupply_")
	b.addParam("uint256 maxSupply_")
	b.addParam("uint256 taxRate_")
	b.addParam("address treasury_")
	b.addParam("bool isMintable_")
	b.addParam("bool isBurnable_")
	b.addParam("bool isPausable_")
	b.addParam("bool isCapped_")
	b.addParam("bool hasTax_")
	b.addParam("bool hasBlacklist_")
	b.addCtorMod("ERC20(name_, symbol_)")
	b.addCtorMod("Ownable(msg.sender)")

	b.addCtor("_tokenDecimals = decimals_;")
	if f.IsCapped {
		b.addCtor(`require(maxSupply_ > 0, "Token: cap is 0");`)
		b.addCtor("_cap = maxSupply_ * 10 ** decimals_;")
	}
	if f.HasTax {
		b.addCtor(`require(taxRate_ <= 1000, "Token: tax above 10%");`)
		b.addCtor(`require(treasury_ != address(0), "Token: treasury is zero address");`)
		b.addCtor("taxPercentage = taxRate_;")
		b.addCtor("treasuryWallet = treasury_;")
	}
	b.addCtor("if (initialSupply_ > 0) {")
	if f.IsCapped {
		b.addCtor(`    require(initialSupply_ * 10 ** decimals_ <= _cap, "Token: initial supply exceeds cap");`)
	}
	b.addCtor("    _mint(msg.sender, initialSupply_ * 10 ** decimals_);")
	b.addCtor("}")

	// Function fragments
	if f.IsMintable {
		if f.IsCapped {
			b.addFunc(fnMintCapped)
		} else {
			b.addFunc(fnMint)
		}
	}
	if f.IsBurnable {
		b.addFunc(fnBurn)
	}
	if f.IsPausable {
		b.addFunc(fnPause)
		b.addFunc(fnUnpause)
	}
	if f.IsCapped {
		b.addFunc(fnCap)
	}
	if f.HasBlacklist {
		b.addFunc(fnBlacklist)
		b.addFunc(fnUnblacklist)
		b.addFunc(fnIsBlacklisted)
	}
	b.addFunc(fnDecimals)
	if f.NeedsTransferHook() {
		b.addFunc(renderTransferHook(f))
	}

	return b.render()
}

// renderTransferHook composes the _update override in fixed order:
// pause gate → blacklist checks → tax split → plain forward.
func renderTransferHook(f tokdom.Features) string {
	var sb strings.Builder

	sb.WriteString("function _update(address from, address to, uint256 value) internal override {\n")
	if f.IsPausable {
		sb.WriteString("    require(!paused(), \"Token: transfers paused\");\n")
	}
	if f.HasBlacklist {
		sb.WriteString("    require(!_blacklisted[from], \"Token: sender blacklisted\");\n")
		sb.WriteString("    require(!_blacklisted[to], \"Token: recipient blacklisted\");\n")
	}
	if f.HasTax {
		sb.WriteString("    if (taxPercentage > 0 && from != owner() && to != owner()) {\n")
		sb.WriteString("        uint256 taxAmount = (value * taxPercentage) / 10000;\n")
		sb.WriteString("        super._update(from, treasuryWallet, taxAmount);\n")
		sb.WriteString("        super._update(from, to, value - taxAmount);\n")
		sb.WriteString("        return;\n")
		sb.WriteString("    }\n")
	}
	sb.WriteString("    super._update(from, to, value);\n")
	sb.WriteString("}\n")

	return sb.String()
}

// ============================================================
// Function fragments
// ============================================================

const fnDecimals = `function decimals() public view override returns (uint8) {
    return _tokenDecimals;
}
`

const fnMint = `function mint(address to, uint256 amount) external onlyOwner {
    _mint(to, amount);
}
`

const fnMintCapped = `function mint(address to, uint256 amount) external onlyOwner {
    require(totalSupply() + amount <= _cap, "Token: cap exceeded");
    _mint(to, amount);
}
`

const fnBurn = `function burn(uint256 amount) external {
    _burn(msg.sender, amount);
}
`

const fnPause = `function pause() external onlyOwner {
    _pause();
}
`

const fnUnpause = `function unpause() external onlyOwner {
    _unpause();
}
`

const fnCap = `function cap() public view returns (uint256) {
    return _cap;
}
`

const fnBlacklist = `function blacklist(address account) external onlyOwner {
    _blacklisted[account] = true;
}
`

const fnUnblacklist = `function unblacklist(address account) external onlyOwner {
    _blacklisted[account] = false;
}
`

const fnIsBlacklisted = `function isBlacklisted(address account) public view returns (bool) {
    return _blacklisted[account];
}
`
