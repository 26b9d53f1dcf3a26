package deck

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agbru/shorcalc/internal/numtheory"
)

// demoParams returns DefaultParams after applying edit.
func demoParams(edit func(*Params)) Params {
	p := DefaultParams()
	if edit != nil {
		edit(&p)
	}
	return p
}

func TestBuild_DefaultDeck(t *testing.T) {
	t.Parallel()
	slides, err := Build(context.Background(), DefaultParams())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	var kinds []Kind
	for _, s := range slides {
		kinds = append(kinds, s.Kind)
	}
	want := []Kind{TitleSlide, TextSlide, RSASlide, ComplexitySlide, PrimesSlide, ExplanationSlide}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("slide order mismatch (-want +got):\n%s", diff)
	}

	if slides[0].Title != "Shor's Algorithm" || slides[0].Lines[0] != "Team Not Shor" {
		t.Errorf("title slide = %+v", slides[0])
	}
	if slides[1].Highlights[0] != "factoring integers" {
		t.Errorf("text slide highlight = %v", slides[1].Highlights)
	}
	if k := slides[2].Keys; k == nil || k.Public != "(N, e)" || k.Private != "(N, d)" {
		t.Errorf("rsa keys = %+v", k)
	}
	if slides[4].Title != "Finding prime factors of N=7493" {
		t.Errorf("primes title = %q", slides[4].Title)
	}
	if len(slides[5].Lines) != 6 {
		t.Errorf("explanation has %d steps, want 6", len(slides[5].Lines))
	}
}

func TestBuildGrid_DefaultParams(t *testing.T) {
	t.Parallel()
	grid, err := BuildGrid(context.Background(), DefaultParams())
	if err != nil {
		t.Fatalf("BuildGrid error: %v", err)
	}
	if len(grid.Cells) != 31 || grid.Rows != 4 || grid.Columns != 8 {
		t.Fatalf("grid = %d cells, %dx%d; want 31 cells 4x8", len(grid.Cells), grid.Rows, grid.Columns)
	}

	last := grid.Cells[30]
	if last.Value != 127 || last.Row != 3 || last.Col != 6 {
		t.Errorf("last cell = %+v, want 127 at row 3 col 6", last)
	}

	if diff := cmp.Diff([]uint64{59, 127}, grid.PrimeFactors()); diff != "" {
		t.Errorf("prime factors mismatch (-want +got):\n%s", diff)
	}
	wantEligible := []uint64{2, 3, 5, 7, 11, 13, 29, 31, 37, 47, 53, 59, 61, 73, 103, 113, 127}
	if diff := cmp.Diff(wantEligible, grid.Eligible()); diff != "" {
		t.Errorf("eligible mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildExample(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		params   Params
		order    uint64
		factors  []uint64
		equation string
	}{
		{"worked example", DefaultParams(), 3654, []uint64{59, 127}, "59 · 127 = 7493"},
		{"shared factor", demoParams(func(p *Params) { p.Base = 59 }), 0, []uint64{59}, "59 · 127 = 7493"},
		{"base zero shares N", demoParams(func(p *Params) { p.Base = 0 }), 0, []uint64{7493}, "7493 · 1 = 7493"},
		{"odd order", demoParams(func(p *Params) { p.Base = 17 }), 1827, nil, ""},
		{"small modulus", Params{N: 15, Base: 2, Finder: numtheory.CarmichaelReduction{}}, 4, []uint64{5, 3}, "5 · 3 = 15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ex, err := BuildExample(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("BuildExample error: %v", err)
			}
			if ex.Order != tt.order || ex.Equation != tt.equation {
				t.Errorf("example = %+v, want order %d equation %q", ex, tt.order, tt.equation)
			}
			if diff := cmp.Diff(tt.factors, ex.Factors); diff != "" {
				t.Errorf("factors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComplexityCurves(t *testing.T) {
	t.Parallel()
	curves := ComplexityCurves(12)
	if len(curves) != 2 {
		t.Fatalf("got %d curves, want 2", len(curves))
	}
	classical, quantum := curves[0], curves[1]
	if classical.Label != "Classical Computer" || quantum.Label != "Quantum Computer" {
		t.Errorf("labels = %q, %q", classical.Label, quantum.Label)
	}

	end := classical.Points[11]
	if end.X != 12 || math.Abs(end.Y-(math.Pow(1.25, 12)+0.1)) > 1e-9 {
		t.Errorf("classical end point = %+v", end)
	}
	if first := quantum.Points[0]; first.X != 1 || math.Abs(first.Y-(math.Log(2)+0.3)) > 1e-9 {
		t.Errorf("quantum first point = %+v", first)
	}
	for i := range classical.Points {
		if classical.Points[i].X <= 0 || classical.Points[i].X > ComplexityXMax {
			t.Errorf("sample %d outside (0, 12]: %v", i, classical.Points[i].X)
		}
	}
	// The classical cost overtakes the quantum cost and stays above it.
	if classical.Points[11].Y <= quantum.Points[11].Y {
		t.Error("classical cost should exceed quantum cost at x = 12")
	}
}

func TestBuild_InvalidModulus(t *testing.T) {
	t.Parallel()
	for _, n := range []uint64{0, 1} {
		if _, err := Build(context.Background(), demoParams(func(p *Params) { p.N = n })); err == nil {
			t.Errorf("expected an error for N = %d", n)
		}
	}
}

func TestBuildGrid_ZeroLimitIsEmpty(t *testing.T) {
	t.Parallel()
	grid, err := BuildGrid(context.Background(), demoParams(func(p *Params) { p.Limit = 0 }))
	if err != nil {
		t.Fatalf("BuildGrid error: %v", err)
	}
	if len(grid.Cells) != 0 || grid.Columns != 0 {
		t.Errorf("grid = %d cells, %d columns; want an empty grid", len(grid.Cells), grid.Columns)
	}
}
