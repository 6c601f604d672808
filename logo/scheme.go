package logo

import (
	"fmt"
	"image/color"
	"strings"

	"bitbucket.org/Davydov/seqlogo/alphabet"
)

// Scheme is a logo colour scheme.
type Scheme string

// Colour schemes. Nucleic acid logos use Monochrome, BasePairing or
// Classic, amino acid logos use Monochrome, Hydrophobicity,
// Chemistry or Charge.
const (
	Monochrome     Scheme = "monochrome"
	BasePairing    Scheme = "base pairing"
	Classic        Scheme = "classic"
	Hydrophobicity Scheme = "hydrophobicity"
	Chemistry      Scheme = "chemistry"
	Charge         Scheme = "charge"
)

var (
	black  = color.RGBA{0x00, 0x00, 0x00, 0xff}
	orange = color.RGBA{0xff, 0xb4, 0x00, 0xff}
	red    = color.RGBA{0xff, 0x00, 0x63, 0xff}
	blue   = color.RGBA{0x00, 0x00, 0xff, 0xff}
	green  = color.RGBA{0x00, 0x80, 0x00, 0xff}
	purple = color.RGBA{0xab, 0x00, 0x80, 0xff}
)

var (
	classicColors = map[byte]color.Color{
		'G': orange,
		'T': red,
		'U': red,
		'C': blue,
		'A': green,
	}
	pairingColors = map[byte]color.Color{
		'A': orange,
		'T': orange,
		'U': orange,
		'G': blue,
		'C': blue,
	}
	hydrophobicityColors = map[string]color.Color{
		alphabet.Hydrophilic: blue,
		alphabet.Neutral:     green,
		alphabet.Hydrophobic: black,
	}
	chemistryColors = map[string]color.Color{
		alphabet.Polar:       green,
		alphabet.Neutral:     purple,
		alphabet.Basic:       blue,
		alphabet.Acidic:      red,
		alphabet.Hydrophobic: black,
	}
	chargeColors = map[string]color.Color{
		alphabet.Positive: blue,
		alphabet.Negative: red,
		alphabet.Neutral:  black,
	}
)

// schemes lists the colour schemes allowed for every molecule type.
var schemes = map[alphabet.Molecule][]Scheme{
	alphabet.NucleicAcid: {Monochrome, BasePairing, Classic},
	alphabet.AminoAcid:   {Monochrome, Hydrophobicity, Chemistry, Charge},
}

// ParseScheme returns a colour scheme by name. An empty name is
// returned as is and stands for the default scheme.
func ParseScheme(name string) (Scheme, error) {
	s := Scheme(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case "", Monochrome, BasePairing, Classic, Hydrophobicity, Chemistry, Charge:
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown colour scheme %q", ErrColorSchemeMismatch, name)
}

// Schemes returns the colour schemes allowed for a molecule type.
func Schemes(m alphabet.Molecule) []Scheme {
	return append([]Scheme(nil), schemes[m]...)
}

// DefaultScheme returns the scheme used when none is requested:
// Classic for nucleic acids and Hydrophobicity for amino acids.
func DefaultScheme(m alphabet.Molecule) Scheme {
	if m == alphabet.AminoAcid {
		return Hydrophobicity
	}
	return Classic
}

// resolve returns the scheme to use for an alphabet, or
// ErrColorSchemeMismatch if the scheme does not apply to it.
func (s Scheme) resolve(id alphabet.ID) (Scheme, error) {
	m := id.Molecule()
	if s == "" {
		return DefaultScheme(m), nil
	}
	for _, allowed := range schemes[m] {
		if s == allowed {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a colour scheme for %s (%s alphabet)",
		ErrColorSchemeMismatch, string(s), m, id)
}

// palette returns the colour of every alphabet symbol. Symbols
// without a colour in the scheme are black.
func (s Scheme) palette(id alphabet.ID) []color.Color {
	syms := id.Symbols()
	pal := make([]color.Color, len(syms))
	for i := range pal {
		sym := syms[i]
		var col color.Color
		switch s {
		case Classic:
			col = classicColors[sym]
		case BasePairing:
			col = pairingColors[sym]
		case Hydrophobicity:
			col = hydrophobicityColors[alphabet.Hydrophobicity(sym)]
		case Chemistry:
			col = chemistryColors[alphabet.Chemistry(sym)]
		case Charge:
			col = chargeColors[alphabet.Charge(sym)]
		}
		if col == nil {
			col = black
		}
		pal[i] = col
	}
	return pal
}
