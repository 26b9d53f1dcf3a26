package numtheory

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// referencePrime is the definition IsPrime is checked against.
func referencePrime(n uint64) bool {
	return new(big.Int).SetUint64(n).ProbablyPrime(20)
}

func TestIsPrime_AgreesWithReferenceUpTo200(t *testing.T) {
	t.Parallel()
	for n := uint64(2); n <= 200; n++ {
		if got, want := IsPrime(n), referencePrime(n); got != want {
			t.Errorf("IsPrime(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestIsPrime_SmallValues(t *testing.T) {
	t.Parallel()
	cases := map[uint64]bool{0: false, 1: false, 2: true, 3: true, 4: false, 25: false, 59: true, 127: true, 7493: false}
	for n, want := range cases {
		if got := IsPrime(n); got != want {
			t.Errorf("IsPrime(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestIsPrime_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("IsPrime matches ProbablyPrime", prop.ForAll(
		func(n uint64) bool {
			return IsPrime(n) == referencePrime(n)
		},
		gen.UInt64Range(2, 1_000_000),
	))

	properties.Property("product of two primes is composite", prop.ForAll(
		func(a, b uint64) bool {
			for !IsPrime(a) {
				a++
			}
			for !IsPrime(b) {
				b++
			}
			return !IsPrime(a * b)
		},
		gen.UInt64Range(2, 5000),
		gen.UInt64Range(2, 5000),
	))

	properties.TestingRun(t)
}

func TestPrimes(t *testing.T) {
	t.Parallel()
	want := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	if diff := cmp.Diff(want, Primes(0, 30)); diff != "" {
		t.Errorf("Primes(0, 30) mismatch (-want +got):\n%s", diff)
	}
	if got := Primes(2, 128); len(got) != 31 || got[len(got)-1] != 127 {
		t.Errorf("Primes(2, 128) = %v, want 31 primes ending in 127", got)
	}
	if got := Primes(24, 29); got != nil {
		t.Errorf("Primes(24, 29) = %v, want nil", got)
	}
}

func TestFactorize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want []PrimePower
	}{
		{0, nil},
		{1, nil},
		{2, []PrimePower{{2, 1}}},
		{7493, []PrimePower{{59, 1}, {127, 1}}},
		{3654, []PrimePower{{2, 1}, {3, 2}, {7, 1}, {29, 1}}},
		{1 << 10, []PrimePower{{2, 10}}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Factorize(tt.n)); diff != "" {
			t.Errorf("Factorize(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestCarmichael(t *testing.T) {
	t.Parallel()
	cases := map[uint64]uint64{1: 1, 2: 1, 4: 2, 8: 2, 16: 4, 15: 4, 21: 6, 7493: 3654, 9: 6}
	for n, want := range cases {
		if got := Carmichael(n); got != want {
			t.Errorf("Carmichael(%d) = %d, want %d", n, got, want)
		}
	}
}
