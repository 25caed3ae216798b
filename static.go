package wavelettrie

import (
	"iter"

	"github.com/hillbig/rsdic"
	"github.com/pkg/errors"

	"github.com/AlexWan0/go-wavelettrie/bitvector"
)

// frozenBits serves branch bits from a succinct rank/select dictionary.
type frozenBits struct {
	rs *rsdic.RSDic
}

func freeze(v *bitvector.Vector) frozenBits {
	rs := rsdic.New()
	for bit := range v.Bits() {
		rs.PushBack(bit)
	}
	return frozenBits{rs: rs}
}

func (f frozenBits) Len() uint64 {
	return f.rs.Num()
}

func (f frozenBits) Access(pos uint64) (bool, error) {
	if pos >= f.rs.Num() {
		return false, errors.Wrapf(ErrOutOfRange, "access %d, length %d", pos, f.rs.Num())
	}
	return f.rs.Bit(pos), nil
}

func (f frozenBits) Rank(pos uint64, bit bool) uint64 {
	return f.rs.Rank(min(pos, f.rs.Num()), bit)
}

func (f frozenBits) Select(rank uint64, bit bool) (uint64, error) {
	total := f.rs.ZeroNum()
	if bit {
		total = f.rs.OneNum()
	}
	if rank >= total {
		return 0, errors.Wrapf(ErrNotFound, "select %d of %v, only %d present", rank, bit, total)
	}
	return f.rs.Select(rank, bit), nil
}

// Static is an immutable snapshot of a Trie whose branch bits are frozen
// into rank/select dictionaries. It is safe for concurrent use.
type Static struct {
	tree arena[frozenBits]
}

// Freeze returns a snapshot of t. Later changes to t do not affect it.
func (t *Trie) Freeze() *Static {
	s := &Static{tree: newArena[frozenBits]()}
	s.tree.size = t.tree.size
	if t.tree.root == nilNode {
		return s
	}

	type pending struct{ src, dst nodeID }
	s.tree.root = s.tree.alloc(trieNode[frozenBits]{})
	stack := []pending{{src: t.tree.root, dst: s.tree.root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		src := &t.tree.nodes[p.src]
		dst := trieNode[frozenBits]{prefix: src.prefix, left: nilNode, right: nilNode}
		if !src.isLeaf() {
			dst.bits = freeze(src.bits)
			dst.left = s.tree.alloc(trieNode[frozenBits]{})
			dst.right = s.tree.alloc(trieNode[frozenBits]{})
			stack = append(stack,
				pending{src: src.left, dst: dst.left},
				pending{src: src.right, dst: dst.right})
		}
		s.tree.nodes[p.dst] = dst
	}
	return s
}

// Len returns the number of strings.
func (s *Static) Len() uint64 {
	return s.tree.size
}

// Get returns the string at pos.
func (s *Static) Get(pos uint64) (BitString, error) {
	return s.tree.get(pos)
}

// Count returns the number of strings having prefix.
func (s *Static) Count(prefix BitString) uint64 {
	n, err := s.tree.rank(prefix, s.tree.size)
	invariant(err)
	return n
}

// Rank returns the number of strings having prefix among positions [0, pos).
func (s *Static) Rank(prefix BitString, pos uint64) (uint64, error) {
	return s.tree.rank(prefix, pos)
}

// Select returns the position of the (k+1)-th string having prefix.
func (s *Static) Select(prefix BitString, k uint64) (uint64, error) {
	return s.tree.selectPrefix(prefix, k)
}

// Search yields, in ascending order, the positions of strings having prefix.
func (s *Static) Search(prefix BitString) iter.Seq[uint64] {
	return s.tree.search(prefix)
}

// All yields every position with its string, in sequence order.
func (s *Static) All() iter.Seq2[uint64, BitString] {
	return s.tree.all()
}
