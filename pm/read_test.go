package pm

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"bitbucket.org/Davydov/seqlogo/alphabet"
)

func TestReadTable(tst *testing.T) {
	table, err := ReadTable(strings.NewReader("# comment\n1 2\t3\n\n  4 5 6  \n"))
	require.NoError(tst, err)
	require.Equal(tst, [][]float64{{1, 2, 3}, {4, 5, 6}}, table)

	_, err = ReadTable(strings.NewReader("1 2 3\n4 5\n"))
	require.ErrorIs(tst, err, ErrShapeMismatch)

	_, err = ReadTable(strings.NewReader("1 2 x\n"))
	require.Error(tst, err)
	require.Contains(tst, err.Error(), "line 1")
}

func TestLoad(tst *testing.T) {
	m, err := Load(filepath.Join("testdata", "ctcf.pfm"), Frequency, alphabet.DNA)
	require.NoError(tst, err)
	require.Equal(tst, 4, m.Width())
	require.Equal(tst, []float64{9, 617, 5, 4}, m.Row(3))

	m, err = Load(filepath.Join("testdata", "transposed.pfm"), Frequency, alphabet.DNA)
	require.NoError(tst, err)
	require.Equal(tst, [][]float64{{10, 0, 0, 0}, {0, 10, 0, 0}, {5, 5, 0, 0}}, m.Rows())
}

func TestLoadErrors(tst *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.pfm"), Frequency, alphabet.DNA)
	require.ErrorIs(tst, err, ErrNotFound)

	_, err = Load("testdata", Frequency, alphabet.DNA)
	require.ErrorIs(tst, err, ErrNotFound)

	// missing file is reported before the alphabet
	_, err = Load(filepath.Join("testdata", "missing.pfm"), Frequency, alphabet.ID(-1))
	require.ErrorIs(tst, err, ErrNotFound)

	_, err = Load(filepath.Join("testdata", "ctcf.pfm"), Frequency, alphabet.ID(-1))
	require.ErrorIs(tst, err, alphabet.ErrUnsupportedAlphabet)

	_, err = Load(filepath.Join("testdata", "ragged.pfm"), Frequency, alphabet.DNA)
	require.ErrorIs(tst, err, ErrShapeMismatch)

	_, err = Load(filepath.Join("testdata", "ctcf.pfm"), Frequency, alphabet.AA)
	require.ErrorIs(tst, err, ErrShapeMismatch)

	_, err = Load(filepath.Join("testdata", "unnormalized.ppm"), Probability, alphabet.DNA)
	require.ErrorIs(tst, err, ErrNotNormalized)

	empty := filepath.Join(tst.TempDir(), "empty.pfm")
	require.NoError(tst, os.WriteFile(empty, nil, 0644))
	_, err = Load(empty, Frequency, alphabet.DNA)
	require.ErrorIs(tst, err, ErrShapeMismatch)
}

func TestWriteLoad(tst *testing.T) {
	m := mustNew(tst, [][]float64{{0.1, 0.2, 0.3, 0.4}, {0, 0, 0, 1}}, Probability, alphabet.DNA)

	var buf bytes.Buffer
	require.NoError(tst, Write(&buf, m))
	require.True(tst, strings.HasPrefix(buf.String(), "# ppm DNA\n# A\tC\tG\tT\n0.1\t0.2\t0.3\t0.4\n"))

	fname := filepath.Join(tst.TempDir(), "m.ppm")
	require.NoError(tst, os.WriteFile(fname, buf.Bytes(), 0644))
	back, err := Load(fname, Probability, alphabet.DNA)
	require.NoError(tst, err)
	require.True(tst, back.Equal(m))
}
