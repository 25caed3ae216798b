package wavelettrie

import (
	"fmt"
	"math/rand"
)

// encode makes data prefix-free: every data bit is written as "1b" and the
// string ends with a single "0".
func encode(data uint64, n int) BitString {
	var b BitString
	for i := 0; i < n; i++ {
		b.push(true)
		b.push((data>>i)&1 == 1)
	}
	b.push(false)
	return b
}

func randomCode(rng *rand.Rand) BitString {
	return encode(rng.Uint64(), rng.Intn(10))
}

func bs(s string) BitString {
	return MustParseBitString(s)
}

func contents(t *Trie) []string {
	out := make([]string, 0, t.Len())
	for _, s := range t.All() {
		out = append(out, s.String())
	}
	return out
}

func modelCount(model []BitString, prefix BitString, upto int) uint64 {
	n := uint64(0)
	for _, s := range model[:upto] {
		if s.HasPrefix(prefix) {
			n++
		}
	}
	return n
}

func modelSearch(model []BitString, prefix BitString) []uint64 {
	out := []uint64{}
	for i, s := range model {
		if s.HasPrefix(prefix) {
			out = append(out, uint64(i))
		}
	}
	return out
}

// checkStructure verifies that every internal node has two populated
// children whose sizes match its branch bits, and that no node is kept
// without branching.
func checkStructure(tr *Trie) error {
	a := &tr.tree
	if a.root == nilNode {
		if a.size != 0 || a.liveNodes() != 0 {
			return fmt.Errorf("empty root with size %d and %d live nodes", a.size, a.liveNodes())
		}
		return nil
	}
	if got, want := a.liveNodes(), int(2*a.size-1); got != want {
		return fmt.Errorf("live nodes %d, want %d for %d strings", got, want, a.size)
	}
	if got := a.subtreeSize(a.root); got != a.size {
		return fmt.Errorf("root subtree size %d, want %d", got, a.size)
	}
	stack := []nodeID{a.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &a.nodes[id]
		if n.isLeaf() {
			if n.right != nilNode || n.bits != nil {
				return fmt.Errorf("malformed leaf %d", id)
			}
			continue
		}
		if n.left == nilNode || n.right == nilNode {
			return fmt.Errorf("internal node %d lacks a child", id)
		}
		if got, want := n.bits.ZeroNum(), a.subtreeSize(n.left); got != want {
			return fmt.Errorf("node %d has %d zeros, left subtree holds %d", id, got, want)
		}
		if got, want := n.bits.OneNum(), a.subtreeSize(n.right); got != want {
			return fmt.Errorf("node %d has %d ones, right subtree holds %d", id, got, want)
		}
		stack = append(stack, n.left, n.right)
	}
	return nil
}
