// internal/domain/token/amount.go
package token

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	ErrAmountEmpty     = errors.New("token: amount is empty")
	ErrAmountMalformed = errors.New("token: amount is not a decimal number")
	ErrAmountNegative  = errors.New("token: amount is negative")
)

// ParseTokenAmount converts a decimal-string amount into integer base units
// using exact string arithmetic. The fractional part is padded or truncated
// (never rounded) to `decimals` digits, concatenated with the integer part
// and parsed as a big integer.
//
//	ParseTokenAmount("123.45", 6) => 123450000
//	ParseTokenAmount("0", 9)      => 0
//	ParseTokenAmount("1", 0)      => 1
func ParseTokenAmount(amount string, decimals int) (*big.Int, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, ErrAmountEmpty
	}
	if strings.HasPrefix(s, "-") {
		return nil, ErrAmountNegative
	}
	if decimals < 0 {
		return nil, fmt.Errorf("token: negative decimals: %d", decimals)
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return nil, ErrAmountMalformed
		}
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (fracPart != "" && !isDigits(fracPart)) {
		return nil, ErrAmountMalformed
	}

	// pad or truncate the fractional part to exactly `decimals` digits
	if len(fracPart) > decimals {
		fracPart = fracPart[:decimals]
	} else {
		fracPart = fracPart + strings.Repeat("0", decimals-len(fracPart))
	}

	v, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return nil, ErrAmountMalformed
	}
	return v, nil
}

// BaseUnitsUint64 narrows a parsed amount to the u64 range SPL instructions
// require.
func BaseUnitsUint64(v *big.Int) (uint64, error) {
	if v == nil {
		return 0, ErrAmountEmpty
	}
	if v.Sign() < 0 {
		return 0, ErrAmountNegative
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("token: amount %s exceeds u64 range", v.String())
	}
	return v.Uint64(), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
