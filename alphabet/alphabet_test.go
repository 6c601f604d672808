package alphabet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableComplete(tst *testing.T) {
	for _, id := range IDs() {
		require.NotEmpty(tst, id.Symbols(), "alphabet %d has no symbols", id)
		require.Equal(tst, id.Canonical().Canonical(), id.Canonical())
		require.Equal(tst, Canonical, id.Canonical().Class())
		require.Equal(tst, id.Molecule(), id.Canonical().Molecule())
		if id.Class() == Canonical {
			require.Equal(tst, id, id.Canonical())
		}
	}
	require.Len(tst, IDs(), int(nID))
}

func TestCardinality(tst *testing.T) {
	require.Equal(tst, 4, DNA.Len())
	require.Equal(tst, 4, RNA.Len())
	require.Equal(tst, 20, AA.Len())
	require.Equal(tst, 6, ReducedDNA.Len())
	require.Equal(tst, 23, ReducedAA.Len())
	require.Equal(tst, 16, AmbigDNA.Len())
	require.Equal(tst, 28, AmbigAA.Len())
}

func TestParse(tst *testing.T) {
	cases := map[string]ID{
		"DNA":           DNA,
		"dna":           DNA,
		" RNA ":         RNA,
		"DNA with N":    ReducedDNA,
		"reduced DNA":   ReducedDNA,
		"ambiguous DNA": AmbigDNA,
		"ambig RNA":     AmbigRNA,
		"extended AA":   ExtendedAA,
		"protein":       AA,
	}
	for name, want := range cases {
		id, err := Parse(name)
		require.NoError(tst, err, name)
		require.Equal(tst, want, id, name)
	}

	_, err := Parse("klingon")
	require.True(tst, errors.Is(err, ErrUnsupportedAlphabet))
	require.Error(tst, ID(-1).Check())
	require.Error(tst, nID.Check())
	require.NoError(tst, AmbigAA.Check())
}

func TestNamesParse(tst *testing.T) {
	for _, name := range Names() {
		id, err := Parse(name)
		require.NoError(tst, err)
		require.Equal(tst, name, id.String())
	}
}

// every symbol must map to a non-empty subset of the canonical
// alphabet of the same molecule
func TestExpand(tst *testing.T) {
	for _, id := range IDs() {
		can := id.Canonical()
		for i := 0; i < id.Len(); i++ {
			cols := id.Expand(i)
			require.NotEmpty(tst, cols)
			seen := make(map[int]bool)
			for _, c := range cols {
				require.True(tst, c >= 0 && c < can.Len())
				require.False(tst, seen[c], "duplicate column in %s/%c", id, id.Symbols()[i])
				seen[c] = true
			}
			if id.IsCanonical(i) {
				require.Len(tst, cols, 1)
				require.Equal(tst, id.Symbols()[i], can.Symbols()[cols[0]])
			}
		}
	}
}

func TestExpandSymbols(tst *testing.T) {
	letters := func(id ID, sym byte) string {
		i, ok := id.Index(sym)
		require.True(tst, ok)
		can := id.Canonical().Symbols()
		s := ""
		for _, c := range id.Expand(i) {
			s += string(can[c])
		}
		return s
	}
	require.Equal(tst, "ACGT", letters(AmbigDNA, 'N'))
	require.Equal(tst, "AG", letters(AmbigDNA, 'R'))
	require.Equal(tst, "CU", letters(AmbigRNA, 'Y'))
	require.Equal(tst, "ACGU", letters(ReducedRNA, '-'))
	require.Equal(tst, "CGT", letters(ExtendedDNA, 'B'))
	require.Equal(tst, "DN", letters(AmbigAA, 'B'))
	require.Equal(tst, "C", letters(AmbigAA, 'U'))
	require.Equal(tst, aaLetters, letters(ReducedAA, '*'))
	require.Equal(tst, aaLetters, letters(AmbigAA, 'X'))
}

func TestResidueClasses(tst *testing.T) {
	require.Equal(tst, Hydrophilic, Hydrophobicity('K'))
	require.Equal(tst, Hydrophobic, Hydrophobicity('W'))
	require.Equal(tst, Neutral, Hydrophobicity('G'))
	require.Equal(tst, Acidic, Chemistry('D'))
	require.Equal(tst, Polar, Chemistry('C'))
	require.Equal(tst, Positive, Charge('R'))
	require.Equal(tst, Negative, Charge('E'))
	require.Equal(tst, Neutral, Charge('A'))
	require.Equal(tst, "", Charge('X'))
}
