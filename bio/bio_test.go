package bio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"bitbucket.org/Davydov/seqlogo/alphabet"
)

const fasta1 = `>s1
ACGT
>s2 second
AC
GA
> s3
-CGT
`

func TestParseFasta(tst *testing.T) {
	seqs, err := ParseFasta(strings.NewReader(fasta1))
	require.NoError(tst, err)
	require.Len(tst, seqs, 3)
	require.Equal(tst, "s2 second", seqs[1].Name)
	require.Equal(tst, "ACGA", seqs[1].Sequence)
	require.Equal(tst, "s3", seqs[2].Name)

	_, err = ParseFasta(strings.NewReader("ACGT\n>s1\nAC\n"))
	require.Error(tst, err)
}

func TestCount(tst *testing.T) {
	seqs, err := ParseFasta(strings.NewReader(fasta1))
	require.NoError(tst, err)

	counts, err := Count(seqs, alphabet.DNA)
	require.NoError(tst, err)
	require.Equal(tst, [][]float64{
		{2, 0, 0, 0},
		{0, 3, 0, 0},
		{0, 0, 3, 0},
		{1, 0, 0, 2},
	}, counts)

	// gap is a symbol of the reduced alphabet
	counts, err = Count(seqs, alphabet.ReducedDNA)
	require.NoError(tst, err)
	require.Equal(tst, []float64{2, 0, 0, 0, 0, 1}, counts[0])
}

func TestCountErrors(tst *testing.T) {
	seqs := Sequences{{"a", "ACGT"}, {"b", "ACG"}}
	_, err := Count(seqs, alphabet.DNA)
	require.Error(tst, err)

	seqs = Sequences{{"a", "ACGU"}}
	_, err = Count(seqs, alphabet.DNA)
	require.Error(tst, err)

	_, err = Count(Sequences{}, alphabet.DNA)
	require.Error(tst, err)

	_, err = Count(seqs, alphabet.ID(100))
	require.ErrorIs(tst, err, alphabet.ErrUnsupportedAlphabet)
}

func TestWrite(tst *testing.T) {
	var buf bytes.Buffer
	seqs := Sequences{{"a", "ACGTA"}, {"b", "GT"}, {"c", ""}}
	require.NoError(tst, seqs.Write(&buf, 2))
	require.Equal(tst, ">a\nAC\nGT\nA\n>b\nGT\n>c\n\n", buf.String())

	buf.Reset()
	require.NoError(tst, seqs[:1].Write(&buf, 0))
	require.Equal(tst, ">a\nACGTA\n", buf.String())

	buf.Reset()
	require.NoError(tst, Sequences{}.Write(&buf, 60))
	require.Empty(tst, buf.String())

	back, err := ParseFasta(strings.NewReader(">a\nAC\nGT\nA\n>b\nGT\n"))
	require.NoError(tst, err)
	require.Equal(tst, seqs[:2], back)
}
