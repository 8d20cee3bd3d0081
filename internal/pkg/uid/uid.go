// Package uid generates identifiers.
package uid

// NumberID produces unique 64-bit identifiers for primary keys.
type NumberID interface {
	Generate() int64
}

// StringID produces unique string identifiers.
type StringID interface {
	Generate() string
}
