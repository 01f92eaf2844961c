package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Millimes is a monetary amount in Tunisian millimes, the minor unit of the
// dinar (1 TND = 1000 millimes). All pricing arithmetic in this module happens
// on this integer representation; decimal dinar strings exist only at the
// display and input boundaries.
type Millimes int64

// MillimesPerDinar is the scaling factor between the major and minor unit.
const MillimesPerDinar = 1000

// ErrInvalidAmount signals a malformed or negative decimal amount string.
var ErrInvalidAmount = errors.New("money: invalid amount")

// ParseMillimes converts a decimal dinar string such as "150.000" or "5" into
// millimes. At most three fractional digits are accepted; fewer are padded.
func ParseMillimes(value string) (Millimes, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	if strings.HasPrefix(raw, "-") {
		return 0, fmt.Errorf("%w: negative amount %q", ErrInvalidAmount, value)
	}

	whole := raw
	frac := ""
	if idx := strings.IndexByte(raw, '.'); idx >= 0 {
		whole, frac = raw[:idx], raw[idx+1:]
		if !isDigits(frac) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
		}
	}
	if !isDigits(whole) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	if len(frac) > 3 {
		return 0, fmt.Errorf("%w: more than three fractional digits in %q", ErrInvalidAmount, value)
	}
	for len(frac) < 3 {
		frac += "0"
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	minor, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	return Millimes(major*MillimesPerDinar + minor), nil
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

// MustParseMillimes is ParseMillimes for static tables; it panics on bad input.
func MustParseMillimes(value string) Millimes {
	amount, err := ParseMillimes(value)
	if err != nil {
		panic(err)
	}
	return amount
}

// Dinars returns the whole-dinar part of the amount.
func (m Millimes) Dinars() int64 {
	return int64(m) / MillimesPerDinar
}

// String renders the amount as a canonical three-decimal dinar string.
func (m Millimes) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%03d", sign, v/MillimesPerDinar, v%MillimesPerDinar)
}

// ClampNonNegative floors the amount at zero.
func (m Millimes) ClampNonNegative() Millimes {
	if m < 0 {
		return 0
	}
	return m
}

// MulQuantity multiplies a unit amount by a line quantity.
func (m Millimes) MulQuantity(qty int) Millimes {
	return m * Millimes(qty)
}
