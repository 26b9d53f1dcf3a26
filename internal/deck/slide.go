package deck

import (
	"github.com/agbru/shorcalc/internal/numtheory"
)

// Kind identifies the layout of a slide.
type Kind int

const (
	TitleSlide Kind = iota
	TextSlide
	RSASlide
	ComplexitySlide
	PrimesSlide
	ExplanationSlide
)

func (k Kind) String() string {
	switch k {
	case TitleSlide:
		return "title"
	case TextSlide:
		return "text"
	case RSASlide:
		return "rsa"
	case ComplexitySlide:
		return "complexity"
	case PrimesSlide:
		return "primes"
	case ExplanationSlide:
		return "explanation"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Slide is the content of one slide. Only the fields relevant to its Kind
// are set.
type Slide struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
	// Lines are the text lines in reading order. Lines of a highlighted
	// phrase are listed in Highlights.
	Lines      []string `json:"lines,omitempty"`
	Highlights []string `json:"highlights,omitempty"`

	Keys    *KeyPair       `json:"keys,omitempty"`
	Curves  []Curve        `json:"curves,omitempty"`
	Grid    *Grid          `json:"grid,omitempty"`
	Example *WorkedExample `json:"example,omitempty"`
}

// KeyPair is the RSA key material shown on the RSA slide, in symbolic form.
type KeyPair struct {
	Public   string `json:"public"`
	Private  string `json:"private"`
	Relation string `json:"relation"`
}

// Point is one sample of a curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve is a labelled sampled function.
type Curve struct {
	Label  string  `json:"label"`
	Points []Point `json:"points"`
}

// Cell is one candidate base on the primes grid.
type Cell struct {
	Value uint64 `json:"value"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	// PrimeFactor marks a prime factor of N.
	PrimeFactor bool `json:"prime_factor"`
	// Eligible marks a base for which the factoring step finds a factor.
	Eligible bool `json:"eligible"`
}

// Grid lays out the prime bases below a limit in Rows rows.
type Grid struct {
	N       uint64 `json:"n"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Cells   []Cell `json:"cells"`
}

// PrimeFactors returns the values of the cells marked as prime factors.
func (g *Grid) PrimeFactors() []uint64 {
	var out []uint64
	for _, c := range g.Cells {
		if c.PrimeFactor {
			out = append(out, c.Value)
		}
	}
	return out
}

// Eligible returns the values of the cells marked as eligible.
func (g *Grid) Eligible() []uint64 {
	var out []uint64
	for _, c := range g.Cells {
		if c.Eligible {
			out = append(out, c.Value)
		}
	}
	return out
}

// WorkedExample is the factoring step carried out for one base.
type WorkedExample struct {
	Base    uint64            `json:"base"`
	N       uint64            `json:"n"`
	GCD     uint64            `json:"gcd"`
	Outcome numtheory.Outcome `json:"-"`
	// Order is zero when the order was not needed.
	Order uint64 `json:"order"`
	// Factors is empty when the base finds no factor.
	Factors []uint64 `json:"factors,omitempty"`
	// Equation shows the factorization, e.g. "59 · 127 = 7493".
	Equation string `json:"equation,omitempty"`
}
