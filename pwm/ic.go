package pwm

import (
	"math"

	"bitbucket.org/Davydov/seqlogo/pm"
)

// IC returns the information content of a probability row in bits,
// log2(nsym) + sum(p*log2(p)). Zero probabilities contribute
// nothing. The result is clamped to [0, log2(nsym)].
func IC(row []float64, nsym int) float64 {
	max := math.Log2(float64(nsym))
	ic := max - entropy(row)
	switch {
	case ic < 0:
		return 0
	case ic > max:
		return max
	}
	return ic
}

// ICs returns the information content of every position of a
// probability or weight matrix.
func ICs(m *pm.Matrix) []float64 {
	r, n := m.Dims()
	ics := make([]float64, r)
	for i := range ics {
		ics[i] = IC(m.Row(i), n)
	}
	return ics
}

// entropy returns the Shannon entropy of a row in bits.
func entropy(row []float64) (h float64) {
	for _, p := range row {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return
}
