// Package bitvector provides a dynamic bit vector supporting
// access, rank, select, insertion and deletion in logarithmic time.
//
// Bits are kept in small blocks that hang off an implicit treap; every treap
// node caches the bit and one counts of its subtree so rank and select are
// answered by partial sums along a single root-to-block path.
package bitvector

import (
	"iter"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultBlockBits is the target number of bits per block.
	DefaultBlockBits = 256
	// MinBlockBits is the smallest accepted target block size.
	MinBlockBits = 64
)

var (
	// ErrOutOfRange is returned when a position lies outside the vector.
	ErrOutOfRange = errors.New("position out of range")
	// ErrNotFound is returned by Select when too few matching bits exist.
	ErrNotFound = errors.New("not found")
)

// Vector is a mutable sequence of bits.
// A block splits when it grows past twice the target size and is merged
// with a neighbour when it shrinks below half of it.
type Vector struct {
	root      *node
	blockBits uint64
	seed      uint64
}

// New returns an empty vector with DefaultBlockBits sized blocks.
func New() *Vector {
	return NewWithBlockBits(DefaultBlockBits)
}

// NewWithBlockBits returns an empty vector whose blocks target blockBits bits.
// blockBits is raised to MinBlockBits and rounded up to a multiple of 64.
func NewWithBlockBits(blockBits int) *Vector {
	if blockBits < MinBlockBits {
		blockBits = MinBlockBits
	}
	return &Vector{blockBits: (uint64(blockBits) + 63) &^ 63}
}

// NewFilled returns a vector holding n copies of bit.
func NewFilled(n uint64, bit bool, blockBits int) *Vector {
	v := NewWithBlockBits(blockBits)
	for n > 0 {
		c := min(n, v.blockBits)
		v.root = merge(v.root, v.newNode(newFilledBlock(c, bit, 2*v.blockBits)))
		n -= c
	}
	return v
}

func (v *Vector) newNode(blk block) *node {
	t := &node{prio: v.nextPrio(), blk: blk}
	t.update()
	return t
}

// nextPrio is splitmix64 over a per-vector counter.
func (v *Vector) nextPrio() uint64 {
	v.seed += 0x9e3779b97f4a7c15
	z := v.seed
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Len returns the number of bits.
func (v *Vector) Len() uint64 {
	return v.root.bitCount()
}

// OneNum returns the number of ones.
func (v *Vector) OneNum() uint64 {
	return v.root.oneCount()
}

// ZeroNum returns the number of zeros.
func (v *Vector) ZeroNum() uint64 {
	return v.Len() - v.OneNum()
}

// Access returns the bit at pos.
func (v *Vector) Access(pos uint64) (bool, error) {
	if pos >= v.Len() {
		return false, errors.Wrapf(ErrOutOfRange, "access %d, length %d", pos, v.Len())
	}
	t := v.root
	for {
		ls := t.left.bitCount()
		if pos < ls {
			t = t.left
			continue
		}
		pos -= ls
		if pos < t.blk.n {
			return t.blk.get(pos), nil
		}
		pos -= t.blk.n
		t = t.right
	}
}

// Rank returns the number of bit in [0, pos).
// A pos past the end is treated as Len().
func (v *Vector) Rank(pos uint64, bit bool) uint64 {
	pos = min(pos, v.Len())
	ones := uint64(0)
	rest := pos
	t := v.root
	for t != nil {
		ls := t.left.bitCount()
		if rest < ls {
			t = t.left
			continue
		}
		ones += t.left.oneCount()
		rest -= ls
		if rest <= t.blk.n {
			ones += t.blk.rank1(rest)
			break
		}
		ones += t.blk.ones
		rest -= t.blk.n
		t = t.right
	}
	if bit {
		return ones
	}
	return pos - ones
}

// Select returns the position of the (rank+1)-th bit.
func (v *Vector) Select(rank uint64, bit bool) (uint64, error) {
	if total := v.root.count(bit); rank >= total {
		return 0, errors.Wrapf(ErrNotFound, "select %d of %v, only %d present", rank, bit, total)
	}
	pos := uint64(0)
	t := v.root
	for {
		lc := t.left.count(bit)
		if rank < lc {
			t = t.left
			continue
		}
		rank -= lc
		pos += t.left.bitCount()
		bc := t.blk.count(bit)
		if rank < bc {
			return pos + t.blk.selectBit(rank, bit), nil
		}
		rank -= bc
		pos += t.blk.n
		t = t.right
	}
}

// Insert places bit before pos; pos == Len() appends.
func (v *Vector) Insert(pos uint64, bit bool) error {
	if pos > v.Len() {
		return errors.Wrapf(ErrOutOfRange, "insert at %d, length %d", pos, v.Len())
	}
	if v.root == nil {
		v.root = v.newNode(newBlock(2 * v.blockBits))
	}
	idx := uint64(0)
	t := v.root
	for {
		t.size++
		if bit {
			t.ones++
		}
		ls := t.left.bitCount()
		if pos < ls {
			t = t.left
			continue
		}
		idx += t.left.blockCount()
		pos -= ls
		if pos <= t.blk.n {
			t.blk.insert(pos, bit)
			break
		}
		pos -= t.blk.n
		idx++
		t = t.right
	}
	if t.blk.n > 2*v.blockBits {
		v.splitBlock(idx)
	}
	return nil
}

// PushBack appends bit.
func (v *Vector) PushBack(bit bool) {
	// Insert at Len() cannot fail.
	_ = v.Insert(v.Len(), bit)
}

// Delete removes and returns the bit at pos.
func (v *Vector) Delete(pos uint64) (bool, error) {
	if pos >= v.Len() {
		return false, errors.Wrapf(ErrOutOfRange, "delete %d, length %d", pos, v.Len())
	}
	// Read first so the aggregates can be adjusted on the way down.
	bit, _ := v.Access(pos)
	idx := uint64(0)
	t := v.root
	for {
		t.size--
		if bit {
			t.ones--
		}
		ls := t.left.bitCount()
		if pos < ls {
			t = t.left
			continue
		}
		idx += t.left.blockCount()
		pos -= ls
		if pos < t.blk.n {
			t.blk.remove(pos)
			break
		}
		pos -= t.blk.n
		idx++
		t = t.right
	}
	if t.blk.n < v.blockBits/2 {
		v.mergeBlock(idx)
	}
	return bit, nil
}

// splitBlock halves the overflowing block at block index idx.
func (v *Vector) splitBlock(idx uint64) {
	before, rest := split(v.root, idx)
	mid, after := split(rest, 1)
	tail := mid.blk.splitAt(mid.blk.n / 2)
	mid.update()
	v.root = merge(merge(before, mid), merge(v.newNode(tail), after))
}

// mergeBlock joins the underflowing block at idx with a neighbour,
// splitting the result again if it is too large.
func (v *Vector) mergeBlock(idx uint64) {
	nb := v.root.blockCount()
	if nb == 1 {
		if v.root.size == 0 {
			v.root = nil
		}
		return
	}
	if idx+1 == nb {
		idx--
	}
	before, rest := split(v.root, idx)
	pair, after := split(rest, 2)
	first, second := pair, pair.right
	if pair.left != nil {
		first, second = pair.left, pair
	}
	first.blk.appendBlock(&second.blk)
	first.left, first.right = nil, nil
	first.update()
	mid := first
	if first.blk.n > 2*v.blockBits {
		tail := first.blk.splitAt(first.blk.n / 2)
		first.update()
		mid = merge(first, v.newNode(tail))
	}
	v.root = merge(merge(before, mid), after)
}

// Bits yields every bit in order.
func (v *Vector) Bits() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		v.root.walk(yield)
	}
}

// String renders the vector as '0' and '1' characters.
func (v *Vector) String() string {
	var sb strings.Builder
	sb.Grow(int(v.Len()))
	for bit := range v.Bits() {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
