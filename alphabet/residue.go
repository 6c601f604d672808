package alphabet

// Residue class names used to colour amino acids.
const (
	Hydrophilic = "hydrophilic"
	Neutral     = "neutral"
	Hydrophobic = "hydrophobic"
	Polar       = "polar"
	Basic       = "basic"
	Acidic      = "acidic"
	Positive    = "positive"
	Negative    = "negative"
)

var (
	hydrophobicity = classMap(map[string]string{
		"RKDENQ":   Hydrophilic,
		"SGHTAP":   Neutral,
		"YVMCLFIW": Hydrophobic,
	})
	chemistry = classMap(map[string]string{
		"GSTYC":    Polar,
		"QN":       Neutral,
		"KRH":      Basic,
		"DE":       Acidic,
		"AVLIPWFM": Hydrophobic,
	})
	charge = classMap(map[string]string{
		"KRH":             Positive,
		"DE":              Negative,
		"ACFGILMNPQSTVWY": Neutral,
	})
)

// classMap expands groups of letters into a letter to class map and
// checks it covers exactly the canonical amino acids.
func classMap(groups map[string]string) map[byte]string {
	m := make(map[byte]string, len(aaLetters))
	for letters, class := range groups {
		for i := 0; i < len(letters); i++ {
			m[letters[i]] = class
		}
	}
	for i := 0; i < len(aaLetters); i++ {
		if m[aaLetters[i]] == "" {
			panic(string(aaLetters[i]) + " is not classified")
		}
	}
	if len(m) != len(aaLetters) {
		panic("classification has non-canonical amino acids")
	}
	return m
}

// Hydrophobicity returns the hydrophobicity class of a canonical amino
// acid or an empty string.
func Hydrophobicity(aa byte) string {
	return hydrophobicity[aa]
}

// Chemistry returns the chemical class of a canonical amino acid or an
// empty string.
func Chemistry(aa byte) string {
	return chemistry[aa]
}

// Charge returns the charge class of a canonical amino acid or an
// empty string.
func Charge(aa byte) string {
	return charge[aa]
}
