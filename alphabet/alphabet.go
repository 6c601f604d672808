// Package alphabet provides the symbol tables of the nucleotide and
// amino acid alphabets used by position matrices, together with the
// ambiguity maps which resolve wildcard symbols to canonical ones.
package alphabet

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedAlphabet is returned for an unknown alphabet name or
// identifier.
var ErrUnsupportedAlphabet = errors.New("unsupported alphabet")

// ID identifies one of the registered alphabets.
type ID int

// Registered alphabets. The order of the symbols of every alphabet
// defines the column order of matrices using it.
const (
	DNA ID = iota
	ReducedDNA
	ExtendedDNA
	AmbigDNA
	RNA
	ReducedRNA
	ExtendedRNA
	AmbigRNA
	AA
	ReducedAA
	ExtendedAA
	AmbigAA
	nID
)

// Molecule is a molecule type.
type Molecule int

const (
	// NucleicAcid is DNA or RNA.
	NucleicAcid Molecule = iota
	// AminoAcid is protein.
	AminoAcid
)

// String returns a molecule type name.
func (m Molecule) String() string {
	if m == AminoAcid {
		return "amino acid"
	}
	return "nucleic acid"
}

// Class tells how an alphabet relates to its canonical alphabet.
type Class int

const (
	// Canonical alphabets contain only canonical symbols.
	Canonical Class = iota
	// Reduced alphabets append a wildcard and a gap.
	Reduced
	// Ambiguous alphabets append several multi-symbol wildcards.
	Ambiguous
)

// info is the data associated with every alphabet ID.
type info struct {
	name      string
	symbols   string
	class     Class
	molecule  Molecule
	canonical ID
}

const aaLetters = "ACDEFGHIKLMNPQRSTVWY"

var (
	table = [nID]info{
		DNA:         {"DNA", "ACGT", Canonical, NucleicAcid, DNA},
		ReducedDNA:  {"reduced DNA", "ACGTN-", Reduced, NucleicAcid, DNA},
		ExtendedDNA: {"extended DNA", "GATCBDSW", Ambiguous, NucleicAcid, DNA},
		AmbigDNA:    {"ambig DNA", "ACGTRYSWKMBDHVN-", Ambiguous, NucleicAcid, DNA},
		RNA:         {"RNA", "ACGU", Canonical, NucleicAcid, RNA},
		ReducedRNA:  {"reduced RNA", "ACGUN-", Reduced, NucleicAcid, RNA},
		ExtendedRNA: {"extended RNA", "GAUCBDSW", Ambiguous, NucleicAcid, RNA},
		AmbigRNA:    {"ambig RNA", "ACGURYSWKMBDHVN-", Ambiguous, NucleicAcid, RNA},
		AA:          {"AA", aaLetters, Canonical, AminoAcid, AA},
		ReducedAA:   {"reduced AA", aaLetters + "X*-", Reduced, AminoAcid, AA},
		ExtendedAA:  {"extended AA", aaLetters + "BXZJUO", Ambiguous, AminoAcid, AA},
		AmbigAA:     {"ambig AA", "ACDEFGHIKLMNOPQRSTUVWYBJZX*-", Ambiguous, AminoAcid, AA},
	}

	// aliases are the additional accepted names (lower case).
	aliases = map[string]ID{
		"dna with n":    ReducedDNA,
		"ambiguous dna": AmbigDNA,
		"rna with n":    ReducedRNA,
		"ambiguous rna": AmbigRNA,
		"protein":       AA,
		"ambiguous aa":  AmbigAA,
	}

	// nucleotideCodes is the IUPAC nucleotide ambiguity map written
	// for DNA. For RNA T is replaced with U.
	nucleotideCodes = map[byte]string{
		'R': "AG", 'Y': "CT", 'S': "CG", 'W': "AT", 'K': "GT", 'M': "AC",
		'B': "CGT", 'D': "AGT", 'H': "ACT", 'V': "ACG",
		'N': "ACGT", '-': "ACGT",
	}

	// aminoCodes is the amino acid ambiguity map.
	aminoCodes = map[byte]string{
		'B': "DN", 'Z': "EQ", 'J': "IL", 'U': "C", 'O': "K",
		'X': aaLetters, '*': aaLetters, '-': aaLetters,
	}

	// byName maps lower case names to IDs.
	byName map[string]ID
	// index maps a symbol to its column for every alphabet.
	index [nID]map[byte]int
	// expand maps every column of an alphabet to the columns of its
	// canonical alphabet it stands for.
	expand [nID][][]int
)

func init() {
	byName = make(map[string]ID, len(table)+len(aliases))
	for id := DNA; id < nID; id++ {
		byName[strings.ToLower(table[id].name)] = id
	}
	for name, id := range aliases {
		byName[name] = id
	}

	for id := DNA; id < nID; id++ {
		syms := table[id].symbols
		index[id] = make(map[byte]int, len(syms))
		for i := 0; i < len(syms); i++ {
			index[id][syms[i]] = i
		}
	}

	for id := DNA; id < nID; id++ {
		can := table[id].canonical
		syms := table[id].symbols
		expand[id] = make([][]int, len(syms))
		for i := 0; i < len(syms); i++ {
			members := resolve(id, syms[i])
			if members == "" {
				panic(fmt.Sprintf("alphabet %s: no ambiguity entry for %q", table[id].name, syms[i]))
			}
			cols := make([]int, len(members))
			for j := 0; j < len(members); j++ {
				cols[j] = index[can][members[j]]
			}
			expand[id][i] = cols
		}
	}
}

// resolve returns the canonical symbols represented by sym.
func resolve(id ID, sym byte) string {
	can := table[id].canonical
	if _, ok := index[can][sym]; ok {
		return string(sym)
	}
	if table[id].molecule == AminoAcid {
		return aminoCodes[sym]
	}
	members := nucleotideCodes[sym]
	if can == RNA {
		members = strings.Replace(members, "T", "U", -1)
	}
	return members
}

// Parse returns the alphabet ID for a name, e.g. "DNA", "reduced AA"
// or "ambiguous DNA". Matching is case-insensitive.
func Parse(name string) (ID, error) {
	id, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return DNA, fmt.Errorf("%w: %q", ErrUnsupportedAlphabet, name)
	}
	return id, nil
}

// Names returns the primary names of all the registered alphabets.
func Names() []string {
	names := make([]string, 0, len(table))
	for _, inf := range table {
		names = append(names, inf.name)
	}
	sort.Strings(names)
	return names
}

// IDs returns all the registered alphabets in registry order.
func IDs() []ID {
	ids := make([]ID, 0, nID)
	for id := DNA; id < nID; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Valid returns true if id is a registered alphabet.
func (id ID) Valid() bool {
	return id >= DNA && id < nID
}

// Check returns ErrUnsupportedAlphabet for an unregistered id.
func (id ID) Check() error {
	if !id.Valid() {
		return fmt.Errorf("%w: id=%d", ErrUnsupportedAlphabet, int(id))
	}
	return nil
}

// String returns the alphabet name.
func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("alphabet(%d)", int(id))
	}
	return table[id].name
}

// Symbols returns the ordered symbols of the alphabet.
func (id ID) Symbols() string {
	return table[id].symbols
}

// Len returns the number of symbols.
func (id ID) Len() int {
	return len(table[id].symbols)
}

// Class returns the alphabet class.
func (id ID) Class() Class {
	return table[id].class
}

// Molecule returns the molecule type.
func (id ID) Molecule() Molecule {
	return table[id].molecule
}

// Canonical returns the canonical alphabet of the same molecule.
func (id ID) Canonical() ID {
	return table[id].canonical
}

// Index returns the column of a symbol.
func (id ID) Index(sym byte) (int, bool) {
	i, ok := index[id][sym]
	return i, ok
}

// IsCanonical tells if the column i holds a canonical symbol.
func (id ID) IsCanonical(i int) bool {
	_, ok := index[id.Canonical()][table[id].symbols[i]]
	return ok
}

// Expand returns the columns of the canonical alphabet represented by
// the column i of this alphabet. A canonical column is represented by
// itself. The returned slice must not be modified.
func (id ID) Expand(i int) []int {
	return expand[id][i]
}
