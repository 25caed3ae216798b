package wavelettrie

// nodeID addresses a node inside an arena.
type nodeID int32

const nilNode nodeID = -1

// branchBits is the read side of a node's branch bit vector.
type branchBits interface {
	Access(pos uint64) (bool, error)
	Rank(pos uint64, bit bool) uint64
	Select(rank uint64, bit bool) (uint64, error)
	Len() uint64
}

// trieNode is a branching point. Leaves hold exactly one string and have no
// children and no branch bits; internal nodes always have both children.
type trieNode[B branchBits] struct {
	prefix      BitString
	bits        B
	left, right nodeID
}

func (n *trieNode[B]) isLeaf() bool {
	return n.left == nilNode
}

func (n *trieNode[B]) child(bit bool) nodeID {
	if bit {
		return n.right
	}
	return n.left
}

// arena owns every node of one trie. Released slots are reused.
type arena[B branchBits] struct {
	nodes []trieNode[B]
	free  []nodeID
	root  nodeID
	size  uint64
}

func newArena[B branchBits]() arena[B] {
	return arena[B]{root: nilNode}
}

func (a *arena[B]) alloc(n trieNode[B]) nodeID {
	if k := len(a.free); k > 0 {
		id := a.free[k-1]
		a.free = a.free[:k-1]
		a.nodes[id] = n
		return id
	}
	a.nodes = append(a.nodes, n)
	return nodeID(len(a.nodes) - 1)
}

func (a *arena[B]) release(id nodeID) {
	a.nodes[id] = trieNode[B]{}
	a.free = append(a.free, id)
}

func (a *arena[B]) liveNodes() int {
	return len(a.nodes) - len(a.free)
}

func (a *arena[B]) subtreeSize(id nodeID) uint64 {
	n := &a.nodes[id]
	if n.isLeaf() {
		return 1
	}
	return n.bits.Len()
}
