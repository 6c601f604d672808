// Package bio reads sequence alignments and counts symbol occurrences
// per alignment column.
package bio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"bitbucket.org/Davydov/seqlogo/alphabet"
)

// Sequence is a type which is intended for storing nucleotide or
// protein sequence with it's name.
type Sequence struct {
	Name     string
	Sequence string
}

// Sequences stores multiple sequences. E.g. a sequence alignment.
type Sequences []Sequence

// ParseFasta parses FASTA sequences from a reader.
func ParseFasta(rd io.Reader) (seqs Sequences, err error) {
	seqs = make(Sequences, 0, 10)
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			seq := Sequence{Name: strings.TrimSpace(line[1:])}
			seqs = append(seqs, seq)
		} else {
			if len(seqs) == 0 {
				return nil, errors.New("sequence w/o prefix")
			}
			line = strings.ToUpper(strings.Replace(line, " ", "", -1))
			seqs[len(seqs)-1].Sequence += line
		}
	}
	return seqs, scanner.Err()
}

// Length returns the alignment length. All the sequences should have
// the same length.
func (seqs Sequences) Length() (int, error) {
	if len(seqs) == 0 {
		return 0, errors.New("empty alignment")
	}
	l := len(seqs[0].Sequence)
	for _, seq := range seqs[1:] {
		if len(seq.Sequence) != l {
			return 0, fmt.Errorf("sequence %q has length %d, expected %d", seq.Name, len(seq.Sequence), l)
		}
	}
	return l, nil
}

// isGap returns true for alignment gap characters.
func isGap(c byte) bool {
	return c == '-' || c == '.'
}

// Count returns the number of occurrences of every alphabet symbol at
// every alignment position (rows are positions, columns are alphabet
// symbols). Gaps are counted only if the alphabet has a gap symbol,
// otherwise they are skipped.
func Count(seqs Sequences, id alphabet.ID) ([][]float64, error) {
	if err := id.Check(); err != nil {
		return nil, err
	}
	l, err := seqs.Length()
	if err != nil {
		return nil, err
	}
	_, gapIsSymbol := id.Index('-')
	counts := make([][]float64, l)
	for i := range counts {
		counts[i] = make([]float64, id.Len())
	}
	for _, seq := range seqs {
		for pos := 0; pos < l; pos++ {
			c := seq.Sequence[pos]
			if isGap(c) {
				if !gapIsSymbol {
					continue
				}
				c = '-'
			}
			col, ok := id.Index(c)
			if !ok {
				return nil, fmt.Errorf("sequence %q, position %d: symbol %q is not in the %s alphabet",
					seq.Name, pos+1, c, id)
			}
			counts[pos][col]++
		}
	}
	return counts, nil
}

// Write writes the sequences in FASTA format. Sequence lines are at
// most width symbols long, a width of 0 or less disables wrapping.
func (seqs Sequences) Write(w io.Writer, width int) error {
	bw := bufio.NewWriter(w)
	for _, seq := range seqs {
		fmt.Fprintf(bw, ">%s\n", seq.Name)
		for _, line := range lines(seq.Sequence, width) {
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// lines splits a sequence into lines of width symbols.
func lines(seq string, width int) []string {
	if width <= 0 || len(seq) <= width {
		return []string{seq}
	}
	res := make([]string, 0, (len(seq)+width-1)/width)
	for i := 0; i < len(seq); i += width {
		res = append(res, seq[i:min(i+width, len(seq))])
	}
	return res
}
