// Package pwm implements the motif model: a position weight matrix
// together with the statistics derived from it.
package pwm

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/gonum/floats"
	"github.com/op/go-logging"

	"bitbucket.org/Davydov/seqlogo/alphabet"
	"bitbucket.org/Davydov/seqlogo/pm"
)

// log is the global logging variable.
var log = logging.MustGetLogger("pwm")

// Pwm is a motif model. It holds a weight matrix, the frequency
// matrix it came from (or its fixed-point approximation), the
// consensus sequence, the information content and a per-position
// weight multiplier. All the derived values are computed at creation,
// a Pwm is never modified afterwards.
type Pwm struct {
	matrix    *pm.Matrix
	counts    *pm.Matrix
	consensus string
	ic        []float64
	weight    []float64
}

// New creates a model from a position matrix. Probability matrices
// are used as weights. Frequency matrices are normalized and kept as
// counts.
func New(m *pm.Matrix) (*Pwm, error) {
	switch m.Kind() {
	case pm.Frequency:
		return FromFrequency(m)
	case pm.Probability, pm.Weight:
		w, err := pm.Convert(m, pm.Weight)
		if err != nil {
			return nil, err
		}
		return build(w, nil, nil)
	}
	return nil, fmt.Errorf("%w: %s", pm.ErrWrongKind, m.Kind())
}

// FromFrequency creates a model from a frequency matrix.
func FromFrequency(pfm *pm.Matrix) (*Pwm, error) {
	w, err := pm.FrequencyToWeight(pfm)
	if err != nil {
		return nil, err
	}
	return build(w, pfm, nil)
}

// NewWithCounts creates a model from a weight (or probability) matrix
// and the frequency matrix of the same shape it was derived from.
func NewWithCounts(w, counts *pm.Matrix) (*Pwm, error) {
	if !w.Kind().Normalized() {
		return nil, fmt.Errorf("%w: expected ppm or pwm, got %s", pm.ErrWrongKind, w.Kind())
	}
	if counts.Kind() != pm.Frequency {
		return nil, fmt.Errorf("%w: counts should be pfm, got %s", pm.ErrWrongKind, counts.Kind())
	}
	if w.Alphabet() != counts.Alphabet() || w.Width() != counts.Width() {
		return nil, fmt.Errorf("%w: %d positions of %s, counts %d positions of %s",
			pm.ErrShapeMismatch, w.Width(), w.Alphabet(), counts.Width(), counts.Alphabet())
	}
	w, err := pm.Convert(w, pm.Weight)
	if err != nil {
		return nil, err
	}
	return build(w, counts, nil)
}

// From creates a model from any supported source: a *Pwm (returned
// as is), a *pm.Matrix, a table of weights or the name of a weight
// matrix file. id is ignored for the first two.
func From(src interface{}, id alphabet.ID) (*Pwm, error) {
	switch s := src.(type) {
	case *Pwm:
		return s, nil
	case *pm.Matrix:
		return New(s)
	case [][]float64:
		m, err := pm.New(s, pm.Weight, id)
		if err != nil {
			return nil, err
		}
		return New(m)
	case string:
		m, err := pm.Load(s, pm.Weight, id)
		if err != nil {
			return nil, err
		}
		return New(m)
	}
	return nil, fmt.Errorf("cannot create a motif from %T", src)
}

// FromCollapsed creates a model from a collapsed matrix. The collapse
// weights become the position multipliers.
func FromCollapsed(res *pm.Collapsed) (*Pwm, error) {
	p, err := New(res.Matrix)
	if err != nil {
		return nil, err
	}
	return p.WithWeight(res.Weights)
}

// build computes the derived values. counts and weight may be nil.
func build(w, counts *pm.Matrix, weight []float64) (*Pwm, error) {
	if counts == nil {
		var err error
		counts, err = pm.Convert(w, pm.Frequency)
		if err != nil {
			return nil, err
		}
	}
	r, _ := w.Dims()
	if weight == nil {
		weight = make([]float64, r)
		for i := range weight {
			weight[i] = 1
		}
	}
	syms := w.Symbols()
	cons := make([]byte, r)
	for i := range cons {
		cons[i] = syms[floats.MaxIdx(w.Row(i))]
	}
	p := &Pwm{
		matrix:    w,
		counts:    counts,
		consensus: string(cons),
		ic:        ICs(w),
		weight:    weight,
	}
	log.Debugf("%s motif, %d positions, consensus %s", w.Alphabet(), r, p.consensus)
	return p, nil
}

// WithMatrix returns a new model for another matrix. The weight
// multipliers are reset to ones.
func (p *Pwm) WithMatrix(m *pm.Matrix) (*Pwm, error) {
	return New(m)
}

// WithWeight returns a copy of the model with the per-position
// weight multipliers replaced.
func (p *Pwm) WithWeight(weight []float64) (*Pwm, error) {
	if len(weight) != p.Width() {
		return nil, fmt.Errorf("%w: %d weights for %d positions",
			pm.ErrShapeMismatch, len(weight), p.Width())
	}
	for i, v := range weight {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("%w: weight %v at position %d", pm.ErrInvalidValue, v, i+1)
		}
	}
	q := *p
	q.weight = append([]float64(nil), weight...)
	return &q, nil
}

// Matrix returns the weight matrix.
func (p *Pwm) Matrix() *pm.Matrix { return p.matrix }

// Counts returns the frequency matrix.
func (p *Pwm) Counts() *pm.Matrix { return p.counts }

// Consensus returns the most probable symbol of every position. Ties
// are resolved in favour of the first symbol in the alphabet order.
func (p *Pwm) Consensus() string { return p.consensus }

// IC returns the information content of every position in bits.
func (p *Pwm) IC() []float64 {
	return append([]float64(nil), p.ic...)
}

// TotalIC returns the information content of the whole motif.
func (p *Pwm) TotalIC() float64 {
	return floats.Sum(p.ic)
}

// Weight returns the per-position weight multipliers.
func (p *Pwm) Weight() []float64 {
	return append([]float64(nil), p.weight...)
}

// Width returns the number of positions.
func (p *Pwm) Width() int { return p.matrix.Width() }

// Alphabet returns the alphabet of the model.
func (p *Pwm) Alphabet() alphabet.ID { return p.matrix.Alphabet() }

// Symbols returns the alphabet symbols.
func (p *Pwm) Symbols() string { return p.matrix.Symbols() }

// Entropy returns the Shannon entropy of every position in bits.
func (p *Pwm) Entropy() []float64 {
	r, _ := p.matrix.Dims()
	h := make([]float64, r)
	for i := range h {
		h[i] = entropy(p.matrix.Row(i))
	}
	return h
}

// Equal returns true if both models have the same alphabet and
// weights.
func (p *Pwm) Equal(o *Pwm) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.matrix.Equal(o.matrix)
}

// String returns the weights together with the consensus symbol and
// the information content of every position.
func (p *Pwm) String() string {
	var buffer bytes.Buffer
	if p == nil || p.matrix == nil {
		return "<Uninitialized pwm>"
	}
	r, c := p.matrix.Dims()
	syms := p.Symbols()
	buffer.WriteString("<pwm " + p.Alphabet().String() + "\n  ")
	for j := 0; j < c; j++ {
		buffer.WriteString("\t" + string(syms[j]))
	}
	buffer.WriteString("\tIC\n")
	for i := 0; i < r; i++ {
		buffer.WriteString("  " + strconv.Itoa(i+1) + string(p.consensus[i]))
		for j := 0; j < c; j++ {
			buffer.WriteByte('\t')
			buffer.WriteString(strconv.FormatFloat(p.matrix.At(i, j), 'f', 3, 64))
		}
		buffer.WriteByte('\t')
		buffer.WriteString(strconv.FormatFloat(p.ic[i], 'f', 3, 64))
		buffer.WriteByte('\n')
	}
	buffer.WriteByte('>')
	return buffer.String()
}
