package deck

import (
	"context"
	"fmt"
	"math"

	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/orchestration"
)

const (
	// DefaultN is the modulus factored throughout the presentation.
	DefaultN = 127 * 59
	// DefaultBase is the base of the worked example.
	DefaultBase = 11
	// DefaultLimit bounds the bases shown on the primes grid.
	DefaultLimit = 128
	// DefaultRows is the number of rows of the primes grid.
	DefaultRows = 4
	// DefaultSamples is the number of points per complexity curve.
	DefaultSamples = 48
	// ComplexityXMax is the right end of the complexity plot.
	ComplexityXMax = 12.0
)

// Params selects the numbers shown on the slides. N, Base and Limit are
// used as given, zero included; start from DefaultParams to get the
// presentation's numbers. Zero Rows, Samples, Finder and Concurrency take
// their defaults.
type Params struct {
	N       uint64
	Base    uint64
	Limit   uint64
	Rows    int
	Samples int
	// Finder computes orders for the grid and the worked example.
	Finder numtheory.OrderFinder
	// Concurrency bounds the parallel factoring of grid bases.
	Concurrency int
}

// DefaultParams returns the parameters of the original presentation.
func DefaultParams() Params {
	return Params{
		N:           DefaultN,
		Base:        DefaultBase,
		Limit:       DefaultLimit,
		Rows:        DefaultRows,
		Samples:     DefaultSamples,
		Finder:      numtheory.RepeatedMultiplication{},
		Concurrency: 1,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Rows <= 0 {
		p.Rows = d.Rows
	}
	if p.Samples <= 0 {
		p.Samples = d.Samples
	}
	if p.Finder == nil {
		p.Finder = d.Finder
	}
	if p.Concurrency <= 0 {
		p.Concurrency = d.Concurrency
	}
	return p
}

// Build returns the slides in presentation order.
func Build(ctx context.Context, p Params) ([]Slide, error) {
	p = p.withDefaults()
	if p.N < 2 {
		return nil, fmt.Errorf("%w: got %d", numtheory.ErrInvalidModulus, p.N)
	}

	grid, err := BuildGrid(ctx, p)
	if err != nil {
		return nil, err
	}
	example, err := BuildExample(ctx, p)
	if err != nil {
		return nil, err
	}

	return []Slide{
		{
			Kind:  TitleSlide,
			Title: "Shor's Algorithm",
			Lines: []string{"Team Not Shor"},
		},
		{
			Kind:       TextSlide,
			Title:      "What does Shor's Algorithm do exactly?",
			Lines:      []string{"Shor's Algorithm is an algorithm for", "factoring integers"},
			Highlights: []string{"factoring integers"},
		},
		{
			Kind:  RSASlide,
			Title: "RSA",
			Keys: &KeyPair{
				Public:   "(N, e)",
				Private:  "(N, d)",
				Relation: "N = p * q",
			},
			Lines:      []string{"N is part of both the public and private key"},
			Highlights: []string{"N = p * q", "N is part of both the public and private key"},
		},
		{
			Kind:   ComplexitySlide,
			Title:  "Runtime Complexity",
			Curves: ComplexityCurves(p.Samples),
		},
		{
			Kind:  PrimesSlide,
			Title: fmt.Sprintf("Finding prime factors of N=%d", p.N),
			Grid:  grid,
		},
		{
			Kind:    ExplanationSlide,
			Title:   "The algorithm to factorize N",
			Lines:   AlgorithmSteps(),
			Example: example,
		},
	}, nil
}

// ComplexityCurves samples the classical cost 1.25^x + 0.1 and the quantum
// cost ln(x+1) + 0.3 at samples evenly spaced points of (0, 12].
func ComplexityCurves(samples int) []Curve {
	classical := Curve{Label: "Classical Computer", Points: make([]Point, samples)}
	quantum := Curve{Label: "Quantum Computer", Points: make([]Point, samples)}
	for i := range samples {
		x := ComplexityXMax * float64(i+1) / float64(samples)
		classical.Points[i] = Point{X: x, Y: math.Pow(1.25, x) + 0.1}
		quantum.Points[i] = Point{X: x, Y: math.Log(x+1) + 0.3}
	}
	return []Curve{classical, quantum}
}

// BuildGrid factors every prime base below p.Limit and lays the bases out
// row by row.
func BuildGrid(ctx context.Context, p Params) (*Grid, error) {
	p = p.withDefaults()
	bases := orchestration.PrimeBases(p.Limit)
	results, err := orchestration.Scan(ctx, p.Finder, p.N, bases, orchestration.ScanOptions{Concurrency: p.Concurrency})
	if err != nil {
		return nil, err
	}

	cols := (len(bases) + p.Rows - 1) / p.Rows
	grid := &Grid{N: p.N, Rows: p.Rows, Columns: cols, Cells: make([]Cell, len(bases))}
	for i, r := range results {
		grid.Cells[i] = Cell{
			Value:       r.Base,
			Row:         i / max(cols, 1),
			Col:         i % max(cols, 1),
			PrimeFactor: p.N%r.Base == 0,
			Eligible:    r.Err == nil && r.Outcome.Found(),
		}
	}
	return grid, nil
}

// BuildExample runs the factoring step for p.Base.
func BuildExample(ctx context.Context, p Params) (*WorkedExample, error) {
	p = p.withDefaults()
	out, err := numtheory.Factor(ctx, p.Finder, p.Base, p.N)
	if err != nil {
		return nil, err
	}
	ex := &WorkedExample{
		Base:    p.Base,
		N:       p.N,
		GCD:     numtheory.GCD(p.Base, p.N),
		Outcome: out,
		Order:   out.Order,
		Factors: out.Factors,
	}
	switch out.Kind {
	case numtheory.FactorPair:
		ex.Equation = fmt.Sprintf("%d · %d = %d", out.Factors[0], out.Factors[1], p.N)
	case numtheory.SharedFactor:
		ex.Equation = fmt.Sprintf("%d · %d = %d", out.Factors[0], p.N/out.Factors[0], p.N)
	}
	return ex, nil
}

// AlgorithmSteps lists the steps of the classical reduction as presented.
func AlgorithmSteps() []string {
	return []string{
		"1. Pick a random number a < N",
		"2. Calculate K = gcd(a, N)",
		"3. If K ≠ 1 we find a factor, algorithm finishes (whilst possible this is extremely unlikely)",
		"4. Use quantum period finding on a to get r: a^r ≡ 1 (mod N)",
		"5. If r is odd or if a^(r/2) ≡ -1 (mod N), go back to step 1",
		"6. Otherwise both gcd(a^(r/2) + 1, N) and gcd(a^(r/2) - 1, N) are factors of N",
	}
}
