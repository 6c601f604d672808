package pwm

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/mathext"

	"bitbucket.org/Davydov/seqlogo/pm"
)

// Interval returns equal-tailed credible intervals for the symbol
// probabilities. The posterior is the Dirichlet distribution given
// the counts and prior pseudocounts for every symbol, so the
// probability of a symbol is beta distributed. level is the interval
// probability mass, e.g. 0.95.
func (p *Pwm) Interval(level, prior float64) (lo, hi [][]float64, err error) {
	if !(level > 0 && level < 1) {
		return nil, nil, fmt.Errorf("%w: interval level %v", pm.ErrInvalidValue, level)
	}
	if !(prior > 0) || math.IsInf(prior, 0) {
		return nil, nil, fmt.Errorf("%w: prior %v", pm.ErrInvalidValue, prior)
	}
	tail := (1 - level) / 2
	counts := p.counts.Rows()
	lo = make([][]float64, len(counts))
	hi = make([][]float64, len(counts))
	for i, row := range counts {
		n := float64(len(row))
		total := floats.Sum(row) + prior*n
		lo[i] = make([]float64, len(row))
		hi[i] = make([]float64, len(row))
		for j, c := range row {
			a := c + prior
			b := total - a
			lo[i][j] = mathext.InvRegIncBeta(a, b, tail)
			hi[i][j] = mathext.InvRegIncBeta(a, b, 1-tail)
		}
	}
	return lo, hi, nil
}
