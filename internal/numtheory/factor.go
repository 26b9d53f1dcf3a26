package numtheory

import (
	"context"
	"fmt"
)

// OutcomeKind classifies the result of a factoring attempt.
type OutcomeKind int

const (
	// NoFactor means the chosen base does not lead to a factor; a new base
	// must be picked.
	NoFactor OutcomeKind = iota
	// SharedFactor means the base already shares a factor with the modulus.
	SharedFactor
	// FactorPair means order finding produced two factors of the modulus.
	FactorPair
)

func (k OutcomeKind) String() string {
	switch k {
	case SharedFactor:
		return "shared factor"
	case FactorPair:
		return "factor pair"
	default:
		return "no factor"
	}
}

// Reason explains a NoFactor outcome.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonBaseDividesModulus: n mod k == 0 with gcd(k, n) == 1, i.e. k == 1.
	ReasonBaseDividesModulus
	// ReasonOddOrder: the order r is odd, so k^(r/2) is undefined.
	ReasonOddOrder
	// ReasonTrivialRoot: k^(r/2) ≡ -1 (mod n).
	ReasonTrivialRoot
)

func (r Reason) String() string {
	switch r {
	case ReasonBaseDividesModulus:
		return "base divides modulus"
	case ReasonOddOrder:
		return "odd order"
	case ReasonTrivialRoot:
		return "k^(r/2) ≡ -1 (mod N)"
	default:
		return ""
	}
}

// Outcome is the result of one factoring attempt with base K on modulus N.
type Outcome struct {
	K, N   uint64
	Kind   OutcomeKind
	Reason Reason
	// Order is the multiplicative order of K; zero when it was not computed.
	Order uint64
	// Root is K^(Order/2) mod N; zero unless the order was even.
	Root uint64
	// Factors holds the shared factor (one element) or the factor pair.
	Factors []uint64
}

// Found reports whether the attempt produced a factor.
func (o Outcome) Found() bool {
	return o.Kind != NoFactor
}

func (o Outcome) String() string {
	switch o.Kind {
	case SharedFactor:
		return fmt.Sprintf("k=%d N=%d: gcd(k, N) = %d", o.K, o.N, o.Factors[0])
	case FactorPair:
		return fmt.Sprintf("k=%d N=%d: r=%d, factors (%d, %d)", o.K, o.N, o.Order, o.Factors[0], o.Factors[1])
	default:
		if o.Order != 0 {
			return fmt.Sprintf("k=%d N=%d: r=%d, no factor (%s)", o.K, o.N, o.Order, o.Reason)
		}
		return fmt.Sprintf("k=%d N=%d: no factor (%s)", o.K, o.N, o.Reason)
	}
}

// Factor runs the classical reduction from factoring to order finding with
// base k on modulus n:
//
//  1. gcd(k, n) ≠ 1 is itself a factor; order finding is skipped.
//  2. n mod k == 0 yields no factor.
//  3. r is the order of k modulo n, computed by finder.
//  4. An odd r yields no factor.
//  5. With a = k^(r/2) + 1, a ≡ 0 (mod n) yields no factor.
//  6. Otherwise gcd(n, a) and gcd(n, a-2) are returned.
//
// Only a mod n is needed for the gcds, so a is never materialized.
func Factor(ctx context.Context, finder OrderFinder, k, n uint64) (Outcome, error) {
	if n < 2 {
		return Outcome{K: k, N: n}, fmt.Errorf("%w: got %d", ErrInvalidModulus, n)
	}
	if out, decided := Precheck(k, n); decided {
		return out, nil
	}

	r, err := finder.FindOrder(ctx, nil, 0, k, n)
	if err != nil {
		return Outcome{K: k, N: n}, err
	}
	return FactorFromOrder(k, n, r), nil
}

// Precheck covers steps 1 and 2 of Factor. decided is true when the outcome
// is known without computing the order. n must be at least 2.
func Precheck(k, n uint64) (out Outcome, decided bool) {
	out = Outcome{K: k, N: n}
	if g := GCD(k, n); g != 1 {
		out.Kind = SharedFactor
		out.Factors = []uint64{g}
		return out, true
	}
	if n%k == 0 {
		out.Reason = ReasonBaseDividesModulus
		return out, true
	}
	return out, false
}

// FactorFromOrder covers steps 4 to 6 of Factor, given the order r of k
// modulo n.
func FactorFromOrder(k, n, r uint64) Outcome {
	out := Outcome{K: k, N: n, Order: r}
	if r%2 == 1 {
		out.Reason = ReasonOddOrder
		return out
	}

	x := PowMod(k, r/2, n)
	out.Root = x
	a := (x + 1) % n
	if a == 0 {
		out.Reason = ReasonTrivialRoot
		return out
	}

	// x is a unit, so x >= 1 and x-1 cannot wrap.
	out.Kind = FactorPair
	out.Factors = []uint64{GCD(n, a), GCD(n, x-1)}
	return out
}
