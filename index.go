package wavelettrie

import "iter"

// Index is the query surface shared by a live Trie, a SyncTrie and a
// frozen Static snapshot.
type Index interface {
	// Len returns the number of strings.
	Len() uint64

	// Get returns the string at pos.
	Get(pos uint64) (BitString, error)

	// Count returns the number of strings having prefix.
	Count(prefix BitString) uint64

	// Rank returns the number of strings having prefix in [0, pos).
	Rank(prefix BitString, pos uint64) (uint64, error)

	// Select returns the position of the (k+1)-th string having prefix.
	Select(prefix BitString, k uint64) (uint64, error)

	// Search yields the ascending positions of strings having prefix.
	Search(prefix BitString) iter.Seq[uint64]
}

var (
	_ Index = (*Trie)(nil)
	_ Index = (*SyncTrie)(nil)
	_ Index = (*Static)(nil)
)
