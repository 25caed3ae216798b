package wavelettrie

import (
	"iter"
	"slices"
	"sync"
)

// SyncTrie guards a Trie with a read-write lock held for the duration of
// each call: one writer or many readers at a time.
type SyncTrie struct {
	mu   sync.RWMutex
	trie *Trie
}

// NewSyncTrie wraps t. The caller must not use t directly afterwards.
func NewSyncTrie(t *Trie) *SyncTrie {
	return &SyncTrie{trie: t}
}

// Len returns the number of strings.
func (s *SyncTrie) Len() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trie.Len()
}

// Insert places str before pos under the write lock.
func (s *SyncTrie) Insert(pos uint64, str BitString) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trie.Insert(pos, str)
}

// Append adds str at the end under the write lock.
func (s *SyncTrie) Append(str BitString) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trie.Append(str)
}

// Delete removes and returns the string at pos under the write lock.
func (s *SyncTrie) Delete(pos uint64) (BitString, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trie.Delete(pos)
}

// Get returns the string at pos.
func (s *SyncTrie) Get(pos uint64) (BitString, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trie.Get(pos)
}

// Count returns the number of strings having prefix.
func (s *SyncTrie) Count(prefix BitString) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trie.Count(prefix)
}

// Rank returns the number of strings having prefix among positions [0, pos).
func (s *SyncTrie) Rank(prefix BitString, pos uint64) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trie.Rank(prefix, pos)
}

// Select returns the position of the (k+1)-th string having prefix.
func (s *SyncTrie) Select(prefix BitString, k uint64) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trie.Select(prefix, k)
}

// Search collects the matching positions under the read lock, so the
// returned sequence never observes a concurrent writer.
func (s *SyncTrie) Search(prefix BitString) iter.Seq[uint64] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Values(slices.Collect(s.trie.Search(prefix)))
}

// Freeze returns a snapshot taken under the read lock.
func (s *SyncTrie) Freeze() *Static {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trie.Freeze()
}
