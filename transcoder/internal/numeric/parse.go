package numeric

import (
	"errors"
	"strconv"

	"github.com/holiman/uint256"
)

var (
	ErrSyntax = errors.New("invalid syntax")
	ErrRange  = errors.New("value out of range")
)

var (
	two128 = new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	two127 = new(uint256.Int).Lsh(uint256.NewInt(1), 127)
)

// ParseBool accepts exactly "true" or "false".
func ParseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, ErrSyntax
}

// ParseUint parses an unsigned integer that fits in bitSize bits.
func ParseUint(s string, bitSize int) (uint64, error) {
	digits, neg, err := splitSign(s)
	if err != nil {
		return 0, err
	}
	if neg {
		return 0, ErrSyntax
	}
	v, err := strconv.ParseUint(digits, 10, bitSize)
	if err != nil {
		return 0, mapNumError(err)
	}
	return v, nil
}

// ParseInt parses a signed integer that fits in bitSize bits.
func ParseInt(s string, bitSize int) (int64, error) {
	if _, _, err := splitSign(s); err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, bitSize)
	if err != nil {
		return 0, mapNumError(err)
	}
	return v, nil
}

// ParseU128 parses an unsigned 128-bit integer into its low and high words.
func ParseU128(s string) (lo, hi uint64, err error) {
	digits, neg, err := splitSign(s)
	if err != nil {
		return 0, 0, err
	}
	if neg {
		return 0, 0, ErrSyntax
	}
	v, err := parseMagnitude(digits)
	if err != nil {
		return 0, 0, err
	}
	if v.BitLen() > 128 {
		return 0, 0, ErrRange
	}
	return v[0], v[1], nil
}

// ParseBigUint parses an unsigned 128-bit integer.
func ParseBigUint(s string) (*uint256.Int, error) {
	lo, hi, err := ParseU128(s)
	if err != nil {
		return nil, err
	}
	return &uint256.Int{lo, hi, 0, 0}, nil
}

// ParseI128 parses a signed 128-bit integer into the low and high words of its
// two's complement form.
func ParseI128(s string) (lo, hi uint64, err error) {
	digits, neg, err := splitSign(s)
	if err != nil {
		return 0, 0, err
	}
	mag, err := parseMagnitude(digits)
	if err != nil {
		return 0, 0, err
	}

	if !neg {
		if !mag.Lt(two127) {
			return 0, 0, ErrRange
		}
		return mag[0], mag[1], nil
	}

	if mag.Gt(two127) {
		return 0, 0, ErrRange
	}
	if mag.IsZero() {
		return 0, 0, nil
	}
	v := new(uint256.Int).Sub(two128, mag)
	return v[0], v[1], nil
}

// splitSign strips one leading sign and checks that the rest is all decimal digits.
func splitSign(s string) (digits string, neg bool, err error) {
	if s == "" {
		return "", false, ErrSyntax
	}
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		s, neg = s[1:], true
	}
	if s == "" {
		return "", false, ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", false, ErrSyntax
		}
	}
	return s, neg, nil
}

func parseMagnitude(digits string) (*uint256.Int, error) {
	// strip leading zeros; FromDecimal does not accept them
	i := 0
	for i < len(digits)-1 && digits[i] == '0' {
		i++
	}
	digits = digits[i:]
	if len(digits) > 78 {
		return nil, ErrRange
	}
	v, err := uint256.FromDecimal(digits)
	if err != nil {
		return nil, ErrRange
	}
	return v, nil
}

func mapNumError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
		return ErrRange
	}
	return ErrSyntax
}
