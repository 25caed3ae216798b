package wavelettrie

import (
	"github.com/pkg/errors"

	"github.com/AlexWan0/go-wavelettrie/bitvector"
)

var (
	// ErrOutOfRange is returned when a position lies outside the sequence.
	ErrOutOfRange = bitvector.ErrOutOfRange
	// ErrNotFound is returned when a select asks for more occurrences than exist.
	ErrNotFound = bitvector.ErrNotFound
	// ErrNotPrefixFree is returned when an inserted string equals, extends or
	// is a prefix of a string already in the trie.
	ErrNotPrefixFree = errors.New("not prefix free")
)

// invariant panics on errors that well-formed traversals never produce.
func invariant(err error) {
	if err != nil {
		panic(errors.Wrap(err, "wavelettrie: invariant violated"))
	}
}
