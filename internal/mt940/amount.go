package mt940

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// numericPrefix matches the longest leading decimal number, exponent included.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// maxExponent bounds the decimal exponent kept verbatim. Wider exponents, and
// ones decimal cannot parse, are rebuilt from the float64 value.
const maxExponent = 400

// parseAmount reads the leading number of s, ignoring anything after it.
// Text without a leading number, or a number outside the float64 range,
// yields an invalid (NaN) amount.
func parseAmount(s string) decimal.NullDecimal {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	m := numericPrefix.FindString(s)
	if m == "" {
		return decimal.NullDecimal{}
	}
	// "12." and "12.e3" are numbers to a reader but not to decimal.
	m = strings.Replace(m, ".e", "e", 1)
	m = strings.Replace(m, ".E", "E", 1)
	m = strings.TrimSuffix(m, ".")
	m = strings.TrimPrefix(m, "+")
	// Overflow gives ±Inf with ErrRange.
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(m)
	if err != nil || d.Exponent() > maxExponent || d.Exponent() < -maxExponent {
		d = decimal.NewFromFloat(f)
	}
	return decimal.NewNullDecimal(d)
}

// substr returns up to n runes of s starting at rune offset start.
// n < 0 means "to the end". Out-of-range offsets give "".
func substr(s string, start, n int) string {
	r := []rune(s)
	if start >= len(r) {
		return ""
	}
	end := len(r)
	if n >= 0 && start+n < end {
		end = start + n
	}
	return string(r[start:end])
}
