// Package facematch compares a live face capture against a reference photo.
package facematch

import (
	"context"
	"errors"
)

// ErrEmptyImage is returned when either image has no bytes.
var ErrEmptyImage = errors.New("facematch: empty image")

// Comparator reports whether two face images belong to the same person.
type Comparator interface {
	Compare(ctx context.Context, reference, live []byte) (bool, error)
}

// Presence is the default Comparator. It performs no biometric comparison:
// any pair of non-empty images matches, and an empty image is rejected with
// ErrEmptyImage. Deployments that need real verification supply their own
// Comparator through the document module dependency.
type Presence struct{}

// NewPresence returns the presence-only Comparator.
func NewPresence() Presence { return Presence{} }

func (Presence) Compare(ctx context.Context, reference, live []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if len(reference) == 0 || len(live) == 0 {
		return false, ErrEmptyImage
	}
	return true, nil
}
