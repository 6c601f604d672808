package pm

import (
	"fmt"
	"strings"
)

// Kind tells what the values of a position matrix represent.
type Kind int

const (
	// Frequency matrices hold non-negative counts.
	Frequency Kind = iota
	// Probability matrices hold probabilities, every row sums to 1.
	Probability
	// Weight matrices are probability-normalized matrices used as
	// the canonical input of the motif model.
	Weight
)

// String returns the short kind name.
func (k Kind) String() string {
	switch k {
	case Frequency:
		return "pfm"
	case Probability:
		return "ppm"
	case Weight:
		return "pwm"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Normalized returns true if rows of the kind must sum to 1.
func (k Kind) Normalized() bool {
	switch k {
	case Frequency:
		return false
	case Probability, Weight:
		return true
	}
	return false
}

// Valid returns true for a known kind.
func (k Kind) Valid() bool {
	switch k {
	case Frequency, Probability, Weight:
		return true
	}
	return false
}

// ParseKind returns a kind given its name ("pfm", "ppm", "pwm" or
// "frequency", "probability", "weight").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pfm", "frequency":
		return Frequency, nil
	case "ppm", "probability":
		return Probability, nil
	case "pwm", "weight":
		return Weight, nil
	}
	return Frequency, fmt.Errorf("%w: unknown kind %q", ErrWrongKind, s)
}
