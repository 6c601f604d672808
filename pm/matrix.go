// Package pm implements position matrices: loading and validation of
// frequency, probability and weight matrices against an alphabet, and
// the conversions between them.
package pm

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
	"github.com/op/go-logging"

	"bitbucket.org/Davydov/seqlogo/alphabet"
)

// log is the global logging variable.
var log = logging.MustGetLogger("pm")

// maxStringRows is the number of rows printed by String.
const maxStringRows = 25

// Matrix is a position matrix. Rows are positions, columns are the
// alphabet symbols in the registry order. A Matrix is never modified
// after it has been created.
type Matrix struct {
	kind Kind
	id   alphabet.ID
	data *mat64.Dense
}

// New creates a matrix from a table. If the number of columns doesn't
// match the alphabet size, but the number of rows does, the table is
// transposed. The table is copied.
func New(table [][]float64, kind Kind, id alphabet.ID) (*Matrix, error) {
	if len(table) == 0 || len(table[0]) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrShapeMismatch)
	}
	nc := len(table[0])
	data := make([]float64, 0, len(table)*nc)
	for i, row := range table {
		if len(row) != nc {
			return nil, fmt.Errorf("%w: row %d has %d values, expected %d", ErrShapeMismatch, i+1, len(row), nc)
		}
		data = append(data, row...)
	}
	return build(mat64.NewDense(len(table), nc, data), kind, id)
}

// FromDense creates a matrix from a dense matrix, transposing it if
// necessary. The dense matrix is copied.
func FromDense(d *mat64.Dense, kind Kind, id alphabet.ID) (*Matrix, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: empty table", ErrShapeMismatch)
	}
	if r, c := d.Dims(); r == 0 || c == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrShapeMismatch)
	}
	return build(mat64.DenseCopyOf(d), kind, id)
}

// build validates data and wraps it into a Matrix. data must not be
// referenced by the caller afterwards.
func build(data *mat64.Dense, kind Kind, id alphabet.ID) (*Matrix, error) {
	if err := id.Check(); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrWrongKind, kind)
	}
	data, err := orient(data, id)
	if err != nil {
		return nil, err
	}
	m := &Matrix{kind: kind, id: id, data: data}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// orient makes sure the columns correspond to the alphabet symbols.
func orient(data *mat64.Dense, id alphabet.ID) (*mat64.Dense, error) {
	r, c := data.Dims()
	n := id.Len()
	switch {
	case c == n:
		return data, nil
	case r == n:
		log.Debugf("%s alphabet with %d symbols, transposing %dx%d table", id, n, r, c)
		return mat64.DenseCopyOf(data.T()), nil
	}
	return nil, fmt.Errorf("%w: %s alphabet has %d symbols, table is %dx%d",
		ErrShapeMismatch, id, n, r, c)
}

// validate checks the values and, for probabilities and weights, the
// row sums.
func (m *Matrix) validate() error {
	r, _ := m.data.Dims()
	for i := 0; i < r; i++ {
		row := m.data.RawRowView(i)
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%w: %v at position %d, symbol %c", ErrInvalidValue, v, i+1, m.id.Symbols()[j])
			}
		}
		if m.kind.Normalized() {
			if s := floats.Sum(row); math.Abs(s-1) > Tolerance {
				return fmt.Errorf("%w: row %d sums to %v", ErrNotNormalized, i+1, s)
			}
		}
	}
	return nil
}

// relabel returns the same values with a different kind. Both kinds
// should be normalized or both not.
func (m *Matrix) relabel(kind Kind) *Matrix {
	return &Matrix{kind: kind, id: m.id, data: m.data}
}

// Kind returns the matrix kind.
func (m *Matrix) Kind() Kind { return m.kind }

// Alphabet returns the matrix alphabet.
func (m *Matrix) Alphabet() alphabet.ID { return m.id }

// Symbols returns the column symbols.
func (m *Matrix) Symbols() string { return m.id.Symbols() }

// Width returns the number of positions.
func (m *Matrix) Width() int {
	r, _ := m.data.Dims()
	return r
}

// Dims returns the number of positions and symbols.
func (m *Matrix) Dims() (positions, symbols int) {
	return m.data.Dims()
}

// At returns the value for a position and a symbol column.
func (m *Matrix) At(i, j int) float64 {
	return m.data.At(i, j)
}

// Row returns a copy of the position i.
func (m *Matrix) Row(i int) []float64 {
	return mat64.Row(nil, i, m.data)
}

// Rows returns a copy of the matrix as a table.
func (m *Matrix) Rows() [][]float64 {
	r, _ := m.data.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = m.Row(i)
	}
	return rows
}

// Dense returns a copy of the matrix values.
func (m *Matrix) Dense() *mat64.Dense {
	return mat64.DenseCopyOf(m.data)
}

// rawRow returns the row without copying. It must not be modified.
func (m *Matrix) rawRow(i int) []float64 {
	return m.data.RawRowView(i)
}

// Equal returns true if the kind, the alphabet and all the values are
// the same.
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.kind == o.kind && m.id == o.id && mat64.Equal(m.data, o.data)
}

// EqualApprox is like Equal, but values may differ by epsilon.
func (m *Matrix) EqualApprox(o *Matrix, epsilon float64) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.kind == o.kind && m.id == o.id && mat64.EqualApprox(m.data, o.data, epsilon)
}

// String returns the matrix in a tabular form with a symbol header.
func (m *Matrix) String() string {
	var buffer bytes.Buffer
	if m == nil || m.data == nil {
		return "<Uninitialized matrix>"
	}
	r, c := m.data.Dims()
	syms := m.id.Symbols()
	buffer.WriteString("<" + m.kind.String() + " " + m.id.String() + "\n")
	buffer.WriteString("  ")
	for j := 0; j < c; j++ {
		buffer.WriteString("\t" + string(syms[j]))
	}
	buffer.WriteByte('\n')
	for i := 0; i < r; i++ {
		if i == maxStringRows {
			buffer.WriteString("  ...\n")
			break
		}
		buffer.WriteString("  " + strconv.Itoa(i+1))
		for j := 0; j < c; j++ {
			buffer.WriteByte('\t')
			buffer.WriteString(strconv.FormatFloat(m.data.At(i, j), 'g', 4, 64))
		}
		buffer.WriteByte('\n')
	}
	buffer.WriteByte('>')
	return buffer.String()
}
