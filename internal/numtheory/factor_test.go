package numtheory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/shorcalc/internal/progress"
)

// spyFinder records calls and delegates to RepeatedMultiplication.
type spyFinder struct {
	calls int
}

func (s *spyFinder) Name() string { return "spy" }

func (s *spyFinder) FindOrder(ctx context.Context, ch chan<- progress.ProgressUpdate, idx int, k, n uint64) (uint64, error) {
	s.calls++
	return RepeatedMultiplication{}.FindOrder(ctx, ch, idx, k, n)
}

// failingFinder always returns err.
type failingFinder struct{ err error }

func (f failingFinder) Name() string { return "failing" }

func (f failingFinder) FindOrder(context.Context, chan<- progress.ProgressUpdate, int, uint64, uint64) (uint64, error) {
	return 0, f.err
}

const demoModulus = 59 * 127

func TestFactor_DemoModulusBase11(t *testing.T) {
	t.Parallel()
	out, err := Factor(context.Background(), RepeatedMultiplication{}, 11, demoModulus)
	if err != nil {
		t.Fatalf("Factor error: %v", err)
	}
	if out.Kind != FactorPair {
		t.Fatalf("Kind = %v, want %v", out.Kind, FactorPair)
	}
	if out.Order != 3654 {
		t.Errorf("Order = %d, want 3654", out.Order)
	}
	if diff := cmp.Diff([]uint64{59, 127}, out.Factors); diff != "" {
		t.Errorf("Factors mismatch (-want +got):\n%s", diff)
	}
	if out.Factors[0]*out.Factors[1] != demoModulus {
		t.Errorf("factors %v do not multiply back to %d", out.Factors, demoModulus)
	}
}

func TestFactor_Outcomes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		k, n uint64
		want Outcome
	}{
		{
			name: "shared factor",
			k:    59, n: demoModulus,
			want: Outcome{K: 59, N: demoModulus, Kind: SharedFactor, Factors: []uint64{59}},
		},
		{
			name: "zero base shares the modulus",
			k:    0, n: 15,
			want: Outcome{K: 0, N: 15, Kind: SharedFactor, Factors: []uint64{15}},
		},
		{
			name: "base one divides modulus",
			k:    1, n: demoModulus,
			want: Outcome{K: 1, N: demoModulus, Reason: ReasonBaseDividesModulus},
		},
		{
			name: "odd order",
			k:    17, n: demoModulus,
			want: Outcome{K: 17, N: demoModulus, Reason: ReasonOddOrder, Order: 1827},
		},
		{
			name: "root is minus one",
			k:    23, n: demoModulus,
			want: Outcome{K: 23, N: demoModulus, Reason: ReasonTrivialRoot, Order: 3654, Root: demoModulus - 1},
		},
		{
			name: "root is minus one on small modulus",
			k:    3, n: 10,
			want: Outcome{K: 3, N: 10, Reason: ReasonTrivialRoot, Order: 4, Root: 9},
		},
		{
			name: "textbook fifteen",
			k:    2, n: 15,
			want: Outcome{K: 2, N: 15, Kind: FactorPair, Order: 4, Root: 4, Factors: []uint64{5, 3}},
		},
		{
			name: "twenty one",
			k:    2, n: 21,
			want: Outcome{K: 2, N: 21, Kind: FactorPair, Order: 6, Root: 8, Factors: []uint64{3, 7}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Factor(context.Background(), RepeatedMultiplication{}, tt.k, tt.n)
			if err != nil {
				t.Fatalf("Factor(%d, %d) error: %v", tt.k, tt.n, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Factor(%d, %d) mismatch (-want +got):\n%s", tt.k, tt.n, diff)
			}
		})
	}
}

func TestFactor_SharedFactorSkipsOrderFinding(t *testing.T) {
	t.Parallel()
	spy := &spyFinder{}
	for _, k := range []uint64{59, 127, 118, 0} {
		out, err := Factor(context.Background(), spy, k, demoModulus)
		if err != nil {
			t.Fatalf("Factor(%d) error: %v", k, err)
		}
		if out.Kind != SharedFactor {
			t.Errorf("Factor(%d).Kind = %v, want shared factor", k, out.Kind)
		}
	}
	if spy.calls != 0 {
		t.Errorf("order finder called %d times, want 0", spy.calls)
	}

	if _, err := Factor(context.Background(), spy, 11, demoModulus); err != nil {
		t.Fatalf("Factor(11) error: %v", err)
	}
	if spy.calls != 1 {
		t.Errorf("order finder called %d times, want 1", spy.calls)
	}
}

func TestFactor_Errors(t *testing.T) {
	t.Parallel()
	if _, err := Factor(context.Background(), RepeatedMultiplication{}, 3, 1); !errors.Is(err, ErrInvalidModulus) {
		t.Errorf("expected ErrInvalidModulus, got %v", err)
	}

	boom := errors.New("boom")
	if _, err := Factor(context.Background(), failingFinder{err: boom}, 11, demoModulus); !errors.Is(err, boom) {
		t.Errorf("expected finder error to propagate, got %v", err)
	}
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()
	tests := []struct {
		out  Outcome
		want string
	}{
		{Outcome{K: 59, N: 7493, Kind: SharedFactor, Factors: []uint64{59}}, "k=59 N=7493: gcd(k, N) = 59"},
		{Outcome{K: 11, N: 7493, Kind: FactorPair, Order: 3654, Factors: []uint64{59, 127}}, "k=11 N=7493: r=3654, factors (59, 127)"},
		{Outcome{K: 17, N: 7493, Order: 1827, Reason: ReasonOddOrder}, "k=17 N=7493: r=1827, no factor (odd order)"},
		{Outcome{K: 1, N: 7493, Reason: ReasonBaseDividesModulus}, "k=1 N=7493: no factor (base divides modulus)"},
	}
	for _, tt := range tests {
		if got := tt.out.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// TestFactor_PairRecombines checks on random semiprimes that every factor
// pair multiplies back to the modulus.
func TestFactor_PairRecombines(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("factor pairs recombine to N", prop.ForAll(
		func(p, q, k uint64) bool {
			for !IsPrime(p) {
				p++
			}
			for !IsPrime(q) || q == p {
				q++
			}
			n := p * q
			out, err := Factor(context.Background(), CarmichaelReduction{}, k%n, n)
			if err != nil {
				return false
			}
			switch out.Kind {
			case FactorPair:
				return out.Factors[0]*out.Factors[1] == n
			case SharedFactor:
				return n%out.Factors[0] == 0
			default:
				return out.Reason != ReasonNone
			}
		},
		gen.UInt64Range(3, 400),
		gen.UInt64Range(3, 400),
		gen.UInt64Range(2, 100000),
	))

	properties.TestingRun(t)
}

func TestPrecheck(t *testing.T) {
	t.Parallel()
	tests := []struct {
		k, n    uint64
		decided bool
		kind    OutcomeKind
		reason  Reason
	}{
		{59, demoModulus, true, SharedFactor, ReasonNone},
		{1, demoModulus, true, NoFactor, ReasonBaseDividesModulus},
		{11, demoModulus, false, NoFactor, ReasonNone},
	}
	for _, tt := range tests {
		out, decided := Precheck(tt.k, tt.n)
		if decided != tt.decided || out.Kind != tt.kind || out.Reason != tt.reason {
			t.Errorf("Precheck(%d, %d) = (%v, %v), want decided=%v kind=%v reason=%v",
				tt.k, tt.n, out, decided, tt.decided, tt.kind, tt.reason)
		}
	}
}

func TestFactorFromOrder(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		k, n uint64
		r    uint64
		want Outcome
	}{
		{"pair", 11, demoModulus, 3654, Outcome{K: 11, N: demoModulus, Kind: FactorPair, Order: 3654, Root: 3303, Factors: []uint64{59, 127}}},
		{"odd order", 17, demoModulus, 1827, Outcome{K: 17, N: demoModulus, Order: 1827, Reason: ReasonOddOrder}},
		{"trivial root", 3, 10, 4, Outcome{K: 3, N: 10, Order: 4, Root: 9, Reason: ReasonTrivialRoot}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, FactorFromOrder(tt.k, tt.n, tt.r)); diff != "" {
				t.Errorf("FactorFromOrder mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
