package pm

import (
	"math"
	"strings"
	"testing"

	"github.com/gonum/matrix/mat64"
	"github.com/stretchr/testify/require"

	"bitbucket.org/Davydov/seqlogo/alphabet"
)

func TestNew(tst *testing.T) {
	table := [][]float64{{1, 2, 3, 4}, {0, 0, 0, 1}}
	m, err := New(table, Frequency, alphabet.DNA)
	require.NoError(tst, err)
	require.Equal(tst, Frequency, m.Kind())
	require.Equal(tst, alphabet.DNA, m.Alphabet())
	require.Equal(tst, "ACGT", m.Symbols())
	require.Equal(tst, 2, m.Width())
	require.Equal(tst, 3.0, m.At(0, 2))

	// caller data is copied
	table[0][0] = 100
	require.Equal(tst, 1.0, m.At(0, 0))

	// accessors copy
	row := m.Row(0)
	row[0] = 100
	require.Equal(tst, 1.0, m.At(0, 0))
	rows := m.Rows()
	rows[1][3] = 100
	require.Equal(tst, 1.0, m.At(1, 3))
	d := m.Dense()
	d.Set(0, 0, 100)
	require.Equal(tst, 1.0, m.At(0, 0))
}

func TestTranspose(tst *testing.T) {
	// 4 symbols as rows, 2 positions as columns
	m, err := New([][]float64{{10, 0}, {0, 10}, {0, 0}, {0, 0}}, Frequency, alphabet.DNA)
	require.NoError(tst, err)
	require.Equal(tst, [][]float64{{10, 0, 0, 0}, {0, 10, 0, 0}}, m.Rows())

	// square tables are kept as is
	sq := [][]float64{{1, 2, 3, 4}, {1, 2, 3, 4}, {1, 2, 3, 4}, {1, 2, 3, 4}}
	m, err = New(sq, Frequency, alphabet.DNA)
	require.NoError(tst, err)
	require.Equal(tst, sq, m.Rows())

	_, err = New([][]float64{{1, 2, 3}, {1, 2, 3}}, Frequency, alphabet.DNA)
	require.ErrorIs(tst, err, ErrShapeMismatch)
}

func TestNewErrors(tst *testing.T) {
	_, err := New(nil, Frequency, alphabet.DNA)
	require.ErrorIs(tst, err, ErrShapeMismatch)

	_, err = New([][]float64{{}}, Frequency, alphabet.DNA)
	require.ErrorIs(tst, err, ErrShapeMismatch)

	_, err = New([][]float64{{1, 2, 3, 4}, {1, 2}}, Frequency, alphabet.DNA)
	require.ErrorIs(tst, err, ErrShapeMismatch)

	_, err = New([][]float64{{1, 2, 3, -4}}, Frequency, alphabet.DNA)
	require.ErrorIs(tst, err, ErrInvalidValue)

	_, err = New([][]float64{{1, 2, math.NaN(), 4}}, Frequency, alphabet.DNA)
	require.ErrorIs(tst, err, ErrInvalidValue)

	_, err = New([][]float64{{1, 2, math.Inf(1), 4}}, Frequency, alphabet.DNA)
	require.ErrorIs(tst, err, ErrInvalidValue)

	_, err = New([][]float64{{0.5, 0.5, 0.5, 0}}, Probability, alphabet.DNA)
	require.ErrorIs(tst, err, ErrNotNormalized)

	_, err = New([][]float64{{0.25, 0.25, 0.25, 0.2}}, Weight, alphabet.DNA)
	require.ErrorIs(tst, err, ErrNotNormalized)

	_, err = New([][]float64{{1, 2, 3, 4}}, Frequency, alphabet.ID(42))
	require.ErrorIs(tst, err, alphabet.ErrUnsupportedAlphabet)

	_, err = New([][]float64{{1, 2, 3, 4}}, Kind(7), alphabet.DNA)
	require.ErrorIs(tst, err, ErrWrongKind)
}

func TestTolerance(tst *testing.T) {
	_, err := New([][]float64{{0.25, 0.25, 0.25, 0.25 + 5e-8}}, Probability, alphabet.DNA)
	require.NoError(tst, err)
	_, err = New([][]float64{{0.25, 0.25, 0.25, 0.25 - 5e-8}}, Probability, alphabet.DNA)
	require.NoError(tst, err)
	_, err = New([][]float64{{0.25, 0.25, 0.25, 0.25 + 1e-6}}, Probability, alphabet.DNA)
	require.ErrorIs(tst, err, ErrNotNormalized)
}

func TestFromDense(tst *testing.T) {
	d := mat64.NewDense(2, 4, []float64{1, 0, 0, 0, 0, 1, 0, 0})
	m, err := FromDense(d, Weight, alphabet.DNA)
	require.NoError(tst, err)
	d.Set(0, 0, 5)
	require.Equal(tst, 1.0, m.At(0, 0))

	// transposed view
	m2, err := FromDense(mat64.DenseCopyOf(d.T()), Frequency, alphabet.DNA)
	require.NoError(tst, err)
	require.Equal(tst, []float64{5, 0, 0, 0}, m2.Row(0))

	_, err = FromDense(nil, Frequency, alphabet.DNA)
	require.ErrorIs(tst, err, ErrShapeMismatch)
}

func TestEqual(tst *testing.T) {
	a, err := New([][]float64{{1, 2, 3, 4}}, Frequency, alphabet.DNA)
	require.NoError(tst, err)
	b, err := New([][]float64{{1, 2, 3, 4}}, Frequency, alphabet.DNA)
	require.NoError(tst, err)
	c, err := New([][]float64{{1, 2, 3, 4}}, Frequency, alphabet.RNA)
	require.NoError(tst, err)
	d, err := New([][]float64{{1, 2, 3, 4 + 1e-10}}, Frequency, alphabet.DNA)
	require.NoError(tst, err)

	require.True(tst, a.Equal(b))
	require.False(tst, a.Equal(c))
	require.False(tst, a.Equal(d))
	require.True(tst, a.EqualApprox(d, 1e-9))
	require.False(tst, a.Equal(nil))
}

func TestMatrixString(tst *testing.T) {
	m, err := New([][]float64{{1, 2, 3, 4}}, Frequency, alphabet.DNA)
	require.NoError(tst, err)
	require.Equal(tst, "<pfm DNA\n  \tA\tC\tG\tT\n  1\t1\t2\t3\t4\n>", m.String())

	rows := make([][]float64, 30)
	for i := range rows {
		rows[i] = []float64{1, 1, 1, 1}
	}
	m, err = New(rows, Frequency, alphabet.DNA)
	require.NoError(tst, err)
	s := m.String()
	require.Contains(tst, s, "  25\t")
	require.NotContains(tst, s, "  26\t")
	require.True(tst, strings.HasSuffix(s, "  ...\n>"))
}

func TestKind(tst *testing.T) {
	for _, k := range []Kind{Frequency, Probability, Weight} {
		p, err := ParseKind(k.String())
		require.NoError(tst, err)
		require.Equal(tst, k, p)
	}
	k, err := ParseKind(" Probability ")
	require.NoError(tst, err)
	require.Equal(tst, Probability, k)

	_, err = ParseKind("pssm")
	require.ErrorIs(tst, err, ErrWrongKind)

	require.False(tst, Frequency.Normalized())
	require.True(tst, Weight.Normalized())
	require.False(tst, Kind(5).Valid())
}
