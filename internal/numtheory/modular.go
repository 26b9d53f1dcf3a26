package numtheory

import "math/bits"

// GCD returns the greatest common divisor of a and b. GCD(0, b) is b.
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b. LCM(0, b) is 0.
func LCM(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a / GCD(a, b) * b
}

// MulMod returns a*b mod m without overflow, using the 128-bit product.
// m must be non-zero.
func MulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a%m, b%m)
	// hi < m holds because both operands were reduced.
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// PowMod returns base^exp mod m by square-and-multiply.
// m must be non-zero; PowMod(x, 0, 1) is 0.
func PowMod(base, exp, m uint64) uint64 {
	result := 1 % m
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = MulMod(result, base, m)
		}
		base = MulMod(base, base, m)
		exp >>= 1
	}
	return result
}
