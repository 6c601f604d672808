package pm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"

	"bitbucket.org/Davydov/seqlogo/alphabet"
)

// maxLine is the longest line accepted in a matrix file.
const maxLine = 1 << 20

// ReadTable reads a whitespace-delimited numeric table. Empty lines
// and lines starting with # are skipped. All the rows should have the
// same number of values.
func ReadTable(rd io.Reader) ([][]float64, error) {
	var table [][]float64
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, f := range fields {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			row[i] = x
		}
		if len(table) > 0 && len(row) != len(table[0]) {
			return nil, fmt.Errorf("%w: line %d has %d values, expected %d",
				ErrShapeMismatch, lineNo, len(row), len(table[0]))
		}
		table = append(table, row)
	}
	return table, scanner.Err()
}

// readFile maps a matrix file into memory and parses it.
func readFile(fname string) ([][]float64, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	// zero length files cannot be mapped
	if fi.Size() == 0 {
		return nil, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer mm.Unmap()
	return ReadTable(bytes.NewReader(mm))
}

// Load reads a matrix of the given kind from a file. The file should
// contain a whitespace-delimited table with positions as rows or as
// columns.
func Load(fname string, kind Kind, id alphabet.ID) (*Matrix, error) {
	fi, err := os.Stat(fname)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && fi.IsDir()) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, fname)
	}
	if err != nil {
		return nil, err
	}
	if err := id.Check(); err != nil {
		return nil, err
	}
	table, err := readFile(fname)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	log.Debugf("read %d lines from %s", len(table), fname)
	m, err := New(table, kind, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return m, nil
}

// Write writes the matrix in the format accepted by Load. The first
// two comment lines contain the kind, the alphabet and the symbols.
func Write(w io.Writer, m *Matrix) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s %s\n", m.kind, m.id)
	fmt.Fprintf(bw, "# %s\n", strings.Join(strings.Split(m.id.Symbols(), ""), "\t"))
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j > 0 {
				bw.WriteByte('\t')
			}
			bw.WriteString(strconv.FormatFloat(m.At(i, j), 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
