package numtheory

import "math"

// IsPrime reports whether n is prime by trial division over
// [2, ceil(sqrt(n)+1)). 2 and 3 are special-cased because the divisor range
// would otherwise contain n itself. Values below 2 are not prime.
//
// The cost is O(sqrt(n)); it is meant for the small demonstration ranges
// shown on the slides, not for cryptographic sizes.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n == 2 || n == 3 {
		return true
	}
	limit := uint64(math.Ceil(math.Sqrt(float64(n)) + 1))
	for d := uint64(2); d < limit; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Primes returns the primes p with lo <= p < hi in ascending order.
func Primes(lo, hi uint64) []uint64 {
	var primes []uint64
	for n := lo; n < hi; n++ {
		if IsPrime(n) {
			primes = append(primes, n)
		}
	}
	return primes
}

// PrimePower is a prime factor together with its multiplicity.
type PrimePower struct {
	Prime    uint64
	Exponent uint
}

// Factorize returns the prime factorization of n in ascending prime order.
// Factorize(0) and Factorize(1) return nil.
func Factorize(n uint64) []PrimePower {
	if n < 2 {
		return nil
	}
	var factors []PrimePower
	take := func(p uint64) {
		var e uint
		for n%p == 0 {
			n /= p
			e++
		}
		if e > 0 {
			factors = append(factors, PrimePower{Prime: p, Exponent: e})
		}
	}
	take(2)
	for p := uint64(3); p <= n/p; p += 2 {
		take(p)
	}
	if n > 1 {
		factors = append(factors, PrimePower{Prime: n, Exponent: 1})
	}
	return factors
}

// Carmichael returns λ(n), the exponent of the multiplicative group modulo n.
// Every unit k satisfies k^λ(n) ≡ 1 (mod n), so the order of k divides λ(n).
func Carmichael(n uint64) uint64 {
	if n < 2 {
		return 1
	}
	lambda := uint64(1)
	for _, pp := range Factorize(n) {
		var l uint64
		switch {
		case pp.Prime == 2 && pp.Exponent <= 2:
			l = 1 << (pp.Exponent - 1)
		case pp.Prime == 2:
			l = 1 << (pp.Exponent - 2)
		default:
			l = pp.Prime - 1
			for i := uint(1); i < pp.Exponent; i++ {
				l *= pp.Prime
			}
		}
		lambda = LCM(lambda, l)
	}
	return lambda
}
