// Package amount renders raw integer token amounts as fixed-point decimal
// strings, for use in structured log fields and debug table output.
package amount

import "math/big"

// Scale returns 10^decimals, the divisor that converts a raw integer amount
// into its display-decimal form.
func Scale(decimals uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}

// Display formats a raw amount as a fixed-point decimal string with the
// given number of fractional digits.
func Display(raw uint64, decimals uint8, precision int) string {
	scale := Scale(decimals)
	rat := new(big.Rat).SetFrac(new(big.Int).SetUint64(raw), scale)
	return rat.FloatString(precision)
}
