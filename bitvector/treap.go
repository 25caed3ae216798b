package bitvector

// node is one block of an implicit treap ordered by block position.
// size, ones and blocks aggregate the whole subtree.
type node struct {
	left, right *node
	prio        uint64
	blk         block
	size        uint64
	ones        uint64
	blocks      uint64
}

func (t *node) bitCount() uint64 {
	if t == nil {
		return 0
	}
	return t.size
}

func (t *node) oneCount() uint64 {
	if t == nil {
		return 0
	}
	return t.ones
}

func (t *node) count(bit bool) uint64 {
	if bit {
		return t.oneCount()
	}
	return t.bitCount() - t.oneCount()
}

func (t *node) blockCount() uint64 {
	if t == nil {
		return 0
	}
	return t.blocks
}

func (t *node) update() {
	t.size = t.blk.n + t.left.bitCount() + t.right.bitCount()
	t.ones = t.blk.ones + t.left.oneCount() + t.right.oneCount()
	t.blocks = 1 + t.left.blockCount() + t.right.blockCount()
}

// split cuts t into its first k blocks and the rest.
func split(t *node, k uint64) (*node, *node) {
	if t == nil {
		return nil, nil
	}
	ls := t.left.blockCount()
	if k <= ls {
		l, r := split(t.left, k)
		t.left = r
		t.update()
		return l, t
	}
	l, r := split(t.right, k-ls-1)
	t.right = l
	t.update()
	return t, r
}

// merge concatenates a and b, every block of a preceding every block of b.
func merge(a, b *node) *node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.prio > b.prio {
		a.right = merge(a.right, b)
		a.update()
		return a
	}
	b.left = merge(a, b.left)
	b.update()
	return b
}

func (t *node) walk(yield func(bool) bool) bool {
	if t == nil {
		return true
	}
	if !t.left.walk(yield) {
		return false
	}
	for i := uint64(0); i < t.blk.n; i++ {
		if !yield(t.blk.get(i)) {
			return false
		}
	}
	return t.right.walk(yield)
}
