package hll

import "errors"

// Sentinel error kinds, per the error taxonomy. Construction and
// deserialization wrap one of these with context via fmt.Errorf's %w so
// callers can match with errors.Is.
var (
	// ErrParameterOutOfRange is returned when p is not in [MinPrecision,
	// MaxPrecision] or b is not one of the supported register widths.
	ErrParameterOutOfRange = errors.New("hll: parameter out of range")

	// ErrFormat is returned when deserializing bytes whose magic, version,
	// or parameter bounds do not match a supported sketch.
	ErrFormat = errors.New("hll: malformed sketch bytes")

	// ErrIncompatibleMerge is returned when merging two sketches that do
	// not share (p, b) or were built with different hash functions.
	ErrIncompatibleMerge = errors.New("hll: incompatible merge")
)

// Numerical and PreconditionViolation are not returned to callers (per the
// error taxonomy, they are recovered in place and only logged as
// diagnostics); these are the "kind" attribute values that
// diagnostics.numerical and diagnostics.preconditionViolation attach to
// their log records.
const (
	diagKindNumerical             = "numerical"
	diagKindPreconditionViolation = "precondition_violation"
)
