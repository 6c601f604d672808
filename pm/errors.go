package pm

import "errors"

// Tolerance is the maximum deviation of a probability or weight
// matrix row sum from 1.
const Tolerance = 1e-7

var (
	// ErrNotFound is returned when a matrix file does not exist.
	ErrNotFound = errors.New("matrix file not found")
	// ErrShapeMismatch is returned when a table matches the alphabet
	// size in neither orientation.
	ErrShapeMismatch = errors.New("matrix shape does not match the alphabet")
	// ErrNotNormalized is returned when a probability or weight
	// matrix row does not sum to 1.
	ErrNotNormalized = errors.New("matrix rows do not sum to 1")
	// ErrDegenerateRow is returned when a row with zero sum has to
	// be normalized.
	ErrDegenerateRow = errors.New("matrix row sums to 0")
	// ErrInvalidValue is returned for negative, NaN or infinite
	// values.
	ErrInvalidValue = errors.New("invalid matrix value")
	// ErrWrongKind is returned when an operation gets a matrix of
	// an unexpected kind.
	ErrWrongKind = errors.New("wrong matrix kind")
)
