// Package documents compares submitted proof documents against the reference
// blobs held in the verification registry. The check is exact byte equality;
// fuzzy matching is deliberately not offered.
package documents

import "bytes"

// Kind names a proof document slot.
type Kind string

const (
	KindIdentity Kind = "identity"
	KindTax      Kind = "tax"
	KindIncome   Kind = "income"
)

// ValidKind reports whether k names one of the three document slots.
func ValidKind(k Kind) bool {
	return k == KindIdentity || k == KindTax || k == KindIncome
}

// Set carries the three proof documents of one submission.
type Set struct {
	Identity []byte
	Tax      []byte
	Income   []byte
}

// Complete reports whether all three documents are present.
func (s Set) Complete() bool {
	return len(s.Identity) > 0 && len(s.Tax) > 0 && len(s.Income) > 0
}

// Get returns the blob for a kind, nil for an unknown kind.
func (s Set) Get(k Kind) []byte {
	switch k {
	case KindIdentity:
		return s.Identity
	case KindTax:
		return s.Tax
	case KindIncome:
		return s.Income
	}
	return nil
}

// Matches reports whether every submitted document is byte-identical to its
// reference counterpart. A missing reference blob fails the comparison; the
// caller is expected to skip the check entirely when no registry record
// exists.
func Matches(submitted, reference Set) bool {
	if len(reference.Identity) == 0 || len(reference.Tax) == 0 || len(reference.Income) == 0 {
		return false
	}
	return bytes.Equal(submitted.Identity, reference.Identity) &&
		bytes.Equal(submitted.Tax, reference.Tax) &&
		bytes.Equal(submitted.Income, reference.Income)
}
