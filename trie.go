// Package wavelettrie provides a dynamic wavelet trie: an indexed sequence of
// prefix-free bit strings supporting insertion and deletion at any position,
// prefix count, prefix rank/select and prefix search.
//
// Strings are stored in a binary Patricia trie whose nodes keep the prefix
// shared by every string below them once. Each internal node also keeps a
// dynamic bit vector recording, in sequence order, which child every string
// of its subtree continues into; rank and select on these vectors translate
// sequence positions between a node and its children.
//
// Strings must be mutually prefix-free; callers usually guarantee this by
// appending a terminator to every string.
package wavelettrie

import (
	"iter"

	"github.com/pkg/errors"
	"github.com/uber-go/tally"
	"go.uber.org/zap"

	"github.com/AlexWan0/go-wavelettrie/bitvector"
)

// Trie is a dynamic wavelet trie.
//
// A Trie is not safe for concurrent mutation. Read-only methods may run
// concurrently with each other; see SyncTrie for a locked wrapper.
type Trie struct {
	tree      arena[*bitvector.Vector]
	blockBits int
	logger    *zap.Logger
	metrics   trieMetrics
}

// New returns an empty trie with default options.
func New() *Trie {
	t, err := NewWithOptions(NewOptions())
	invariant(err)
	return t
}

// NewWithOptions returns an empty trie.
func NewWithOptions(opts Options) (*Trie, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid wavelet trie options")
	}
	return &Trie{
		tree:      newArena[*bitvector.Vector](),
		blockBits: opts.BlockBits(),
		logger:    opts.Logger(),
		metrics:   newTrieMetrics(opts.MetricsScope()),
	}, nil
}

// Len returns the number of strings.
func (t *Trie) Len() uint64 {
	return t.tree.size
}

// insertStep is a branch bit to be inserted at rank into node id.
type insertStep struct {
	id   nodeID
	rank uint64
	bit  bool
}

// Insert places s before pos; strings at pos and after shift right.
// pos == Len() appends. The trie is unchanged when an error is returned.
func (t *Trie) Insert(pos uint64, s BitString) error {
	if pos > t.tree.size {
		t.metrics.insertOutOfRange.Inc(1)
		return errors.Wrapf(ErrOutOfRange, "insert at %d, size %d", pos, t.tree.size)
	}
	if t.tree.root == nilNode {
		t.tree.root = t.tree.alloc(trieNode[*bitvector.Vector]{prefix: s, left: nilNode, right: nilNode})
		t.tree.size = 1
		t.logger.Debug("created root", zap.Stringer("prefix", s))
		t.mutated(t.metrics.inserts)
		return nil
	}

	// Validate the whole path before touching any branch bits.
	var path []insertStep
	id, r, c := t.tree.root, pos, uint64(0)
	var d uint64
	for {
		n := &t.tree.nodes[id]
		d = commonPrefixLen(n.prefix, 0, s, c)
		if d == s.Len()-c {
			return t.notPrefixFree(s, "is a prefix of an indexed string")
		}
		if d < n.prefix.Len() {
			break
		}
		if n.isLeaf() {
			return t.notPrefixFree(s, "has an indexed string as prefix")
		}
		bit := s.Bit(c + d)
		path = append(path, insertStep{id: id, rank: r, bit: bit})
		r = n.bits.Rank(r, bit)
		id = n.child(bit)
		c += d + 1
	}

	for _, step := range path {
		invariant(t.tree.nodes[step.id].bits.Insert(step.rank, step.bit))
	}
	t.split(id, d, r, s, c+d)
	t.tree.size++
	t.mutated(t.metrics.inserts)
	return nil
}

// Append adds s at the end of the sequence.
func (t *Trie) Append(s BitString) error {
	return t.Insert(t.tree.size, s)
}

// split breaks the prefix of node id at offset d, where s[at] diverges from it.
// The node keeps the common part and becomes the parent of the displaced node
// and of a new leaf holding the rest of s, which gets local rank r.
func (t *Trie) split(id nodeID, d, r uint64, s BitString, at uint64) {
	old := t.tree.nodes[id]
	oldBit := old.prefix.Bit(d)
	common := old.prefix.Slice(0, d)
	sub := t.tree.subtreeSize(id)
	old.prefix = old.prefix.Slice(d+1, old.prefix.Len())

	bits := bitvector.NewFilled(sub, oldBit, t.blockBits)
	invariant(bits.Insert(r, !oldBit))

	oldID := t.tree.alloc(old)
	leafID := t.tree.alloc(trieNode[*bitvector.Vector]{
		prefix: s.Slice(at+1, s.Len()),
		left:   nilNode,
		right:  nilNode,
	})
	n := trieNode[*bitvector.Vector]{prefix: common, bits: bits, left: oldID, right: leafID}
	if oldBit {
		n.left, n.right = leafID, oldID
	}
	t.tree.nodes[id] = n

	t.metrics.splits.Inc(1)
	t.logger.Debug("split node",
		zap.Uint64("offset", d),
		zap.Uint64("displaced", sub),
		zap.Bool("displacedBit", oldBit))
}

// Delete removes and returns the string at pos.
func (t *Trie) Delete(pos uint64) (BitString, error) {
	if pos >= t.tree.size {
		t.metrics.deleteOutOfRange.Inc(1)
		return BitString{}, errors.Wrapf(ErrOutOfRange, "delete %d, size %d", pos, t.tree.size)
	}

	var (
		out  BitString
		path []insertStep
	)
	id, r := t.tree.root, pos
	for {
		n := &t.tree.nodes[id]
		out.pushRange(n.prefix, 0, n.prefix.Len())
		if n.isLeaf() {
			break
		}
		bit, err := n.bits.Access(r)
		invariant(err)
		out.push(bit)
		path = append(path, insertStep{id: id, rank: r, bit: bit})
		r = n.bits.Rank(r, bit)
		id = n.child(bit)
	}

	if len(path) == 0 {
		t.tree.release(id)
		t.tree.root = nilNode
		t.logger.Debug("discarded root")
	} else {
		// The parent of the removed leaf is folded into its other child; it
		// needs no bit removed. Every node above keeps both sides populated.
		for _, step := range path[:len(path)-1] {
			_, err := t.tree.nodes[step.id].bits.Delete(step.rank)
			invariant(err)
		}
		t.merge(path[len(path)-1].id, path[len(path)-1].bit)
	}
	t.tree.size--
	t.mutated(t.metrics.deletes)
	return out, nil
}

// merge removes the leaf on side gone of node id and folds the remaining
// child into id: prefixes are joined by the remaining branch bit and the
// child's branch bits and children are inherited.
func (t *Trie) merge(id nodeID, gone bool) {
	n := t.tree.nodes[id]
	leafID, keepID := n.child(gone), n.child(!gone)
	keep := t.tree.nodes[keepID]
	t.tree.nodes[id] = trieNode[*bitvector.Vector]{
		prefix: n.prefix.Append(!gone).Concat(keep.prefix),
		bits:   keep.bits,
		left:   keep.left,
		right:  keep.right,
	}
	t.tree.release(leafID)
	t.tree.release(keepID)

	t.metrics.merges.Inc(1)
	t.logger.Debug("merged node", zap.Uint64("prefixLen", t.tree.nodes[id].prefix.Len()))
}

func (t *Trie) notPrefixFree(s BitString, why string) error {
	t.metrics.insertNotPrefixFree.Inc(1)
	return errors.Wrapf(ErrNotPrefixFree, "%v %s", s, why)
}

func (t *Trie) mutated(c tally.Counter) {
	c.Inc(1)
	t.metrics.size.Update(float64(t.tree.size))
}

// Get returns the string at pos.
func (t *Trie) Get(pos uint64) (BitString, error) {
	return t.tree.get(pos)
}

// Count returns the number of strings having prefix.
func (t *Trie) Count(prefix BitString) uint64 {
	n, err := t.tree.rank(prefix, t.tree.size)
	invariant(err)
	return n
}

// Rank returns the number of strings having prefix among positions [0, pos).
func (t *Trie) Rank(prefix BitString, pos uint64) (uint64, error) {
	return t.tree.rank(prefix, pos)
}

// Select returns the position of the (k+1)-th string having prefix.
func (t *Trie) Select(prefix BitString, k uint64) (uint64, error) {
	return t.tree.selectPrefix(prefix, k)
}

// Search yields, in ascending order, the positions of strings having prefix.
// Every iteration reflects the trie as it is when the iteration starts; the
// trie must not be mutated while an iteration is in progress.
func (t *Trie) Search(prefix BitString) iter.Seq[uint64] {
	return t.tree.search(prefix)
}

// All yields every position with its string, in sequence order.
func (t *Trie) All() iter.Seq2[uint64, BitString] {
	return t.tree.all()
}
