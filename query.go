package wavelettrie

import (
	"iter"

	"github.com/pkg/errors"
)

// pathStep records the branch taken at an internal node.
type pathStep struct {
	id  nodeID
	bit bool
}

func (a *arena[B]) get(pos uint64) (BitString, error) {
	if pos >= a.size {
		return BitString{}, errors.Wrapf(ErrOutOfRange, "get %d, size %d", pos, a.size)
	}
	var out BitString
	id, r := a.root, pos
	for {
		n := &a.nodes[id]
		out.pushRange(n.prefix, 0, n.prefix.Len())
		if n.isLeaf() {
			return out, nil
		}
		bit, err := n.bits.Access(r)
		if err != nil {
			return BitString{}, err
		}
		out.push(bit)
		r = n.bits.Rank(r, bit)
		id = n.child(bit)
	}
}

// rank counts the strings in [0, pos) having prefix.
func (a *arena[B]) rank(prefix BitString, pos uint64) (uint64, error) {
	if pos > a.size {
		return 0, errors.Wrapf(ErrOutOfRange, "rank at %d, size %d", pos, a.size)
	}
	if a.root == nilNode {
		return 0, nil
	}
	id, r, c := a.root, pos, uint64(0)
	for {
		n := &a.nodes[id]
		d := commonPrefixLen(n.prefix, 0, prefix, c)
		if d == prefix.Len()-c {
			return r, nil
		}
		if d < n.prefix.Len() || n.isLeaf() {
			return 0, nil
		}
		bit := prefix.Bit(c + d)
		r = n.bits.Rank(r, bit)
		id = n.child(bit)
		c += d + 1
	}
}

// locate finds the subtree whose strings are exactly those having prefix.
// It returns the branches taken to reach it and the number of matches.
func (a *arena[B]) locate(prefix BitString) ([]pathStep, uint64) {
	if a.root == nilNode {
		return nil, 0
	}
	var path []pathStep
	id, c := a.root, uint64(0)
	for {
		n := &a.nodes[id]
		d := commonPrefixLen(n.prefix, 0, prefix, c)
		if d == prefix.Len()-c {
			return path, a.subtreeSize(id)
		}
		if d < n.prefix.Len() || n.isLeaf() {
			return nil, 0
		}
		bit := prefix.Bit(c + d)
		path = append(path, pathStep{id: id, bit: bit})
		id = n.child(bit)
		c += d + 1
	}
}

// lift translates a local rank at the end of path into a sequence position.
func (a *arena[B]) lift(path []pathStep, r uint64) (uint64, error) {
	for i := len(path) - 1; i >= 0; i-- {
		var err error
		if r, err = a.nodes[path[i].id].bits.Select(r, path[i].bit); err != nil {
			return 0, err
		}
	}
	return r, nil
}

// selectPrefix returns the position of the (k+1)-th string having prefix.
func (a *arena[B]) selectPrefix(prefix BitString, k uint64) (uint64, error) {
	path, n := a.locate(prefix)
	if k >= n {
		return 0, errors.Wrapf(ErrNotFound, "select %d with prefix %v, %d matches", k, prefix, n)
	}
	return a.lift(path, k)
}

// search yields the ascending positions of strings having prefix.
// The matching subtree is located each time the sequence is iterated; the
// trie must not be mutated during a single iteration.
func (a *arena[B]) search(prefix BitString) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		path, n := a.locate(prefix)
		for k := uint64(0); k < n; k++ {
			pos, err := a.lift(path, k)
			invariant(err)
			if !yield(pos) {
				return
			}
		}
	}
}

func (a *arena[B]) all() iter.Seq2[uint64, BitString] {
	return func(yield func(uint64, BitString) bool) {
		for pos := uint64(0); pos < a.size; pos++ {
			s, err := a.get(pos)
			invariant(err)
			if !yield(pos, s) {
				return
			}
		}
	}
}
