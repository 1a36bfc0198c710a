package numeric

import "github.com/holiman/uint256"

// FormatU128 renders an unsigned 128-bit value given as low and high words.
func FormatU128(lo, hi uint64) string {
	v := uint256.Int{lo, hi, 0, 0}
	return v.Dec()
}

// FormatI128 renders the two's complement 128-bit value given as low and high words.
func FormatI128(lo, hi uint64) string {
	v := uint256.Int{lo, hi, 0, 0}
	if hi>>63 == 0 {
		return v.Dec()
	}
	mag := new(uint256.Int).Sub(two128, &v)
	return "-" + mag.Dec()
}

// ValidateChar rejects surrogates (0xD800-0xDFFF) and values >= 0x110000.
func ValidateChar(r rune) bool {
	if r >= 0xD800 && r <= 0xDFFF {
		return false
	}
	if r < 0 || r >= 0x110000 {
		return false
	}
	return true
}
