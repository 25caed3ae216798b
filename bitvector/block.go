package bitvector

import "math/bits"

// block is a short run of bits packed LSB-first into words.
// Bits at positions >= n are always zero.
type block struct {
	words []uint64
	n     uint64
	ones  uint64
}

func newBlock(capBits uint64) block {
	return block{words: make([]uint64, 0, capBits/64+1)}
}

// newFilledBlock returns a block of n copies of bit with room for capBits.
func newFilledBlock(n uint64, bit bool, capBits uint64) block {
	b := newBlock(max(n, capBits))
	b.words = b.words[:(n+63)>>6]
	if bit {
		for i := range b.words {
			b.words[i] = ^uint64(0)
		}
		if off := n & 63; off != 0 {
			b.words[len(b.words)-1] = uint64(1)<<off - 1
		}
		b.ones = n
	}
	b.n = n
	return b
}

func (b *block) count(bit bool) uint64 {
	if bit {
		return b.ones
	}
	return b.n - b.ones
}

func (b *block) get(i uint64) bool {
	return (b.words[i>>6]>>(i&63))&1 == 1
}

// rank1 returns the number of ones in [0, i), i <= n.
func (b *block) rank1(i uint64) uint64 {
	w := i >> 6
	r := 0
	for j := uint64(0); j < w; j++ {
		r += bits.OnesCount64(b.words[j])
	}
	if off := i & 63; off != 0 {
		r += bits.OnesCount64(b.words[w] & (uint64(1)<<off - 1))
	}
	return uint64(r)
}

// selectBit returns the offset of the (k+1)-th bit equal to bit.
// The caller guarantees k < b.count(bit).
func (b *block) selectBit(k uint64, bit bool) uint64 {
	nw := (b.n + 63) >> 6
	for j := uint64(0); j < nw; j++ {
		w := b.words[j]
		if !bit {
			w = ^w
			if j == nw-1 && b.n&63 != 0 {
				w &= uint64(1)<<(b.n&63) - 1
			}
		}
		c := uint64(bits.OnesCount64(w))
		if k < c {
			return j<<6 + selectInWord(w, k)
		}
		k -= c
	}
	panic("bitvector: select past end of block")
}

func selectInWord(w, k uint64) uint64 {
	for ; k > 0; k-- {
		w &= w - 1
	}
	return uint64(bits.TrailingZeros64(w))
}

func (b *block) pushBack(bit bool) {
	if b.n>>6 >= uint64(len(b.words)) {
		b.words = append(b.words, 0)
	}
	if bit {
		b.words[b.n>>6] |= 1 << (b.n & 63)
		b.ones++
	}
	b.n++
}

// insert places bit before offset i, i <= n.
func (b *block) insert(i uint64, bit bool) {
	last := b.n >> 6
	for uint64(len(b.words)) <= last {
		b.words = append(b.words, 0)
	}
	w := i >> 6
	for j := last; j > w; j-- {
		b.words[j] = b.words[j]<<1 | b.words[j-1]>>63
	}
	off := i & 63
	mask := uint64(1)<<off - 1
	old := b.words[w]
	b.words[w] = old&mask | (old&^mask)<<1
	if bit {
		b.words[w] |= 1 << off
		b.ones++
	}
	b.n++
}

// remove deletes and returns the bit at offset i, i < n.
func (b *block) remove(i uint64) bool {
	w := i >> 6
	off := i & 63
	old := b.words[w]
	bit := (old>>off)&1 == 1
	mask := uint64(1)<<off - 1
	b.words[w] = old&mask | (old>>1)&^mask
	last := (b.n - 1) >> 6
	for j := w + 1; j <= last; j++ {
		b.words[j-1] |= b.words[j] << 63
		b.words[j] >>= 1
	}
	if bit {
		b.ones--
	}
	b.n--
	return bit
}

// splitAt truncates b to [0, k) and returns a block holding [k, n).
func (b *block) splitAt(k uint64) block {
	tail := newBlock(b.n - k)
	tail.appendRange(b, k, b.n)
	w := k >> 6
	if off := k & 63; off != 0 {
		b.words[w] &= uint64(1)<<off - 1
		w++
	}
	for ; w < uint64(len(b.words)); w++ {
		b.words[w] = 0
	}
	b.words = b.words[:(k+63)>>6]
	b.n = k
	b.ones -= tail.ones
	return tail
}

func (b *block) appendBlock(o *block) {
	b.appendRange(o, 0, o.n)
}

// appendRange appends bits [from, to) of o a word at a time.
func (b *block) appendRange(o *block, from, to uint64) {
	for from < to {
		c := min(64, to-from)
		b.pushWord(o.chunk(from), c)
		from += c
	}
}

// chunk returns the 64 bits starting at off, zero padded past the end.
func (b *block) chunk(off uint64) uint64 {
	w := off >> 6
	if w >= uint64(len(b.words)) {
		return 0
	}
	s := off & 63
	x := b.words[w] >> s
	if s != 0 && w+1 < uint64(len(b.words)) {
		x |= b.words[w+1] << (64 - s)
	}
	return x
}

// pushWord appends the low c bits of x, c <= 64.
func (b *block) pushWord(x, c uint64) {
	if c < 64 {
		x &= uint64(1)<<c - 1
	}
	for need := (b.n + c + 63) >> 6; uint64(len(b.words)) < need; {
		b.words = append(b.words, 0)
	}
	w, off := b.n>>6, b.n&63
	b.words[w] |= x << off
	if off != 0 && off+c > 64 {
		b.words[w+1] |= x >> (64 - off)
	}
	b.ones += uint64(bits.OnesCount64(x))
	b.n += c
}
