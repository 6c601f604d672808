package pm

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// countScale is the fixed-point scale used to turn probabilities into
// integer counts.
const countScale = 100

// FrequencyToWeight divides every row of a frequency matrix by its
// sum.
func FrequencyToWeight(pfm *Matrix) (*Matrix, error) {
	return normalize(pfm, Weight)
}

// FrequencyToProbability is FrequencyToWeight producing a probability
// matrix.
func FrequencyToProbability(pfm *Matrix) (*Matrix, error) {
	return normalize(pfm, Probability)
}

// normalize divides rows of a frequency matrix by their sums.
func normalize(pfm *Matrix, kind Kind) (*Matrix, error) {
	if pfm.kind != Frequency {
		return nil, fmt.Errorf("%w: expected pfm, got %s", ErrWrongKind, pfm.kind)
	}
	r, c := pfm.Dims()
	out := mat64.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		row := pfm.rawRow(i)
		sum := floats.Sum(row)
		if sum == 0 {
			return nil, fmt.Errorf("%w: position %d", ErrDegenerateRow, i+1)
		}
		dst := out.RawRowView(i)
		for j, v := range row {
			dst[j] = v / sum
		}
	}
	return build(out, kind, pfm.id)
}

// WithPseudocount adds c pseudocounts to every position of a
// frequency matrix, split evenly between the symbols.
func WithPseudocount(pfm *Matrix, c float64) (*Matrix, error) {
	if pfm.kind != Frequency {
		return nil, fmt.Errorf("%w: expected pfm, got %s", ErrWrongKind, pfm.kind)
	}
	if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return nil, fmt.Errorf("%w: pseudocount %v", ErrInvalidValue, c)
	}
	out := pfm.Dense()
	r, n := out.Dims()
	for i := 0; i < r; i++ {
		floats.AddConst(c/float64(n), out.RawRowView(i))
	}
	return build(out, Frequency, pfm.id)
}

// Convert returns the matrix expressed as another kind. Frequencies
// are normalized by row. Probabilities and weights are the same values
// with a different label. Probabilities and weights are turned into
// frequencies by the fixed-point approximation round(p*100).
func Convert(m *Matrix, kind Kind) (*Matrix, error) {
	switch kind {
	case Frequency:
		switch m.kind {
		case Frequency:
			return m, nil
		case Probability, Weight:
			return fixedPoint(m)
		}
	case Probability, Weight:
		switch m.kind {
		case Frequency:
			return normalize(m, kind)
		case Probability, Weight:
			if m.kind == kind {
				return m, nil
			}
			return m.relabel(kind), nil
		}
	}
	return nil, fmt.Errorf("%w: cannot convert %s to %s", ErrWrongKind, m.kind, kind)
}

// fixedPoint approximates a probability matrix with integer counts,
// rounding half to even.
func fixedPoint(m *Matrix) (*Matrix, error) {
	out := m.Dense()
	r, _ := out.Dims()
	for i := 0; i < r; i++ {
		row := out.RawRowView(i)
		for j, v := range row {
			row[j] = floats.RoundEven(v*countScale, 0)
		}
	}
	return build(out, Frequency, m.id)
}

// Collapsed is a matrix collapsed to a canonical alphabet.
type Collapsed struct {
	// Matrix is the collapsed matrix.
	Matrix *Matrix
	// Weights is the fraction of the mass at every position which
	// was already assigned to canonical symbols.
	Weights []float64
}

// Collapse redistributes the mass of wildcard, gap and ambiguous
// symbols over the canonical symbols they represent and drops their
// columns. The value of an ambiguous symbol is split evenly between
// its canonical symbols. The result uses the canonical alphabet and is
// converted to the requested kind. A matrix over a canonical alphabet
// is returned as is, with weights of one.
func Collapse(m *Matrix, kind Kind) (*Collapsed, error) {
	id := m.id
	can := id.Canonical()
	r, c := m.Dims()
	out := mat64.NewDense(r, can.Len(), nil)
	weights := make([]float64, r)
	for i := 0; i < r; i++ {
		row := m.rawRow(i)
		total := floats.Sum(row)
		if total == 0 {
			return nil, fmt.Errorf("%w: position %d", ErrDegenerateRow, i+1)
		}
		dst := out.RawRowView(i)
		canonical := 0.0
		for j := 0; j < c; j++ {
			v := row[j]
			if id.IsCanonical(j) {
				canonical += v
			}
			if v == 0 {
				continue
			}
			cols := id.Expand(j)
			share := v / float64(len(cols))
			for _, k := range cols {
				dst[k] += share
			}
		}
		weights[i] = canonical / total
	}
	if can != id {
		log.Debugf("collapsed %s matrix to %s", id, can)
	}
	collapsed, err := build(out, m.kind, can)
	if err != nil {
		return nil, err
	}
	converted, err := Convert(collapsed, kind)
	if err != nil {
		return nil, err
	}
	return &Collapsed{Matrix: converted, Weights: weights}, nil
}

// LogOdds returns log2(p/b) scores of a probability or weight matrix
// against a background distribution. A nil background is uniform.
// Zero probabilities give -Inf.
func LogOdds(m *Matrix, background []float64) (*mat64.Dense, error) {
	if !m.kind.Normalized() {
		return nil, fmt.Errorf("%w: expected ppm or pwm, got %s", ErrWrongKind, m.kind)
	}
	r, c := m.Dims()
	if background == nil {
		background = make([]float64, c)
		for j := range background {
			background[j] = 1 / float64(c)
		}
	}
	if len(background) != c {
		return nil, fmt.Errorf("%w: background has %d values, alphabet %d",
			ErrShapeMismatch, len(background), c)
	}
	for _, b := range background {
		if !(b > 0) || math.IsInf(b, 0) {
			return nil, fmt.Errorf("%w: background value %v", ErrInvalidValue, b)
		}
	}
	if s := floats.Sum(background); math.Abs(s-1) > Tolerance {
		return nil, fmt.Errorf("%w: background sums to %v", ErrNotNormalized, s)
	}
	out := mat64.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		row := m.rawRow(i)
		dst := out.RawRowView(i)
		for j, p := range row {
			dst[j] = math.Log2(p / background[j])
		}
	}
	return out, nil
}
