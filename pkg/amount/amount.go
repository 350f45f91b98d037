// Package amount converts between human decimal strings and base-unit
// integers. Every conversion that can end up in calldata is exact integer
// scaling; floats only appear in display formatting.
package amount

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseUnits converts a decimal string to base units (amount * 10^decimals),
// truncating any digits beyond the token's precision.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(value, "-") {
		return nil, fmt.Errorf("negative amount: %s", value)
	}

	whole := value
	frac := ""
	if i := strings.IndexByte(value, '.'); i >= 0 {
		whole, frac = value[:i], value[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return nil, fmt.Errorf("invalid amount: %s", value)
	}

	// Truncate, not round: the smallest unit is the precision floor.
	if len(frac) > int(decimals) {
		frac = frac[:decimals]
	}
	frac += strings.Repeat("0", int(decimals)-len(frac))

	raw, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", value)
	}
	return raw, nil
}

// FormatUnits converts base units back to a decimal string at full precision,
// with trailing fractional zeros stripped.
func FormatUnits(raw *big.Int, decimals uint8) string {
	if raw == nil || raw.Sign() == 0 {
		return "0"
	}
	if raw.Sign() < 0 {
		return "0"
	}

	scale := pow10(decimals)
	whole, frac := new(big.Int).QuoRem(raw, scale, new(big.Int))

	if frac.Sign() == 0 {
		return whole.String()
	}

	fracStr := frac.String()
	if pad := int(decimals) - len(fracStr); pad > 0 {
		fracStr = strings.Repeat("0", pad) + fracStr
	}
	fracStr = strings.TrimRight(fracStr, "0")
	return whole.String() + "." + fracStr
}

// Display applies the readability policy: tiny amounts keep up to
// min(decimals, 8) places, larger amounts progressively fewer. The underlying
// value is formatted from the exact integer first, then trimmed.
func Display(raw *big.Int, decimals uint8) string {
	exact := FormatUnits(raw, decimals)

	f, ok := new(big.Float).SetString(exact)
	if !ok {
		return exact
	}
	v, _ := f.Float64()

	var places int
	switch {
	case v < 0.0001:
		places = int(decimals)
		if places > 8 {
			places = 8
		}
	case v < 1:
		places = 6
	case v < 100:
		places = 4
	default:
		places = 2
	}
	return trimPlaces(exact, places)
}

// Cmp compares two decimal strings at the given precision. Unparsable inputs
// compare as zero.
func Cmp(a, b string, decimals uint8) int {
	ra, err := ParseUnits(a, decimals)
	if err != nil {
		ra = new(big.Int)
	}
	rb, err := ParseUnits(b, decimals)
	if err != nil {
		rb = new(big.Int)
	}
	return ra.Cmp(rb)
}

func trimPlaces(s string, places int) string {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return s
	}
	frac := s[i+1:]
	if len(frac) > places {
		frac = frac[:places]
	}
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return s[:i]
	}
	return s[:i] + "." + frac
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

func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
