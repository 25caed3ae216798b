package wavelettrie

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidBitString is returned when parsing text that is not made of '0' and '1'.
var ErrInvalidBitString = errors.New("invalid bit string")

// BitString is an immutable sequence of bits.
// The zero value is the empty string.
type BitString struct {
	words []uint64
	n     uint64
}

// NewBitString returns a bit string holding bits in order.
func NewBitString(bits ...bool) BitString {
	var b BitString
	for _, bit := range bits {
		b.push(bit)
	}
	return b
}

// ParseBitString parses a literal such as "0110".
func ParseBitString(s string) (BitString, error) {
	var b BitString
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			b.push(false)
		case '1':
			b.push(true)
		default:
			return BitString{}, errors.Wrapf(ErrInvalidBitString, "character %q at %d", s[i], i)
		}
	}
	return b, nil
}

// MustParseBitString is like ParseBitString but panics on malformed input.
func MustParseBitString(s string) BitString {
	b, err := ParseBitString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of bits.
func (b BitString) Len() uint64 {
	return b.n
}

// Bit returns the bit at pos. It panics if pos >= Len().
func (b BitString) Bit(pos uint64) bool {
	if pos >= b.n {
		panic(errors.Errorf("bit string index %d out of range [0, %d)", pos, b.n))
	}
	return (b.words[pos>>6]>>(pos&63))&1 == 1
}

// Slice returns the bits in [from, to).
func (b BitString) Slice(from, to uint64) BitString {
	if from > to || to > b.n {
		panic(errors.Errorf("bit string slice [%d, %d) out of range [0, %d)", from, to, b.n))
	}
	var out BitString
	out.pushRange(b, from, to)
	return out
}

// Append returns b followed by bits.
func (b BitString) Append(bits ...bool) BitString {
	out := b.clone(uint64(len(bits)))
	for _, bit := range bits {
		out.push(bit)
	}
	return out
}

// Concat returns b followed by o.
func (b BitString) Concat(o BitString) BitString {
	out := b.clone(o.n)
	out.pushRange(o, 0, o.n)
	return out
}

// HasPrefix reports whether p is a prefix of b.
func (b BitString) HasPrefix(p BitString) bool {
	return p.n <= b.n && commonPrefixLen(b, 0, p, 0) == p.n
}

// Equal reports whether b and o hold the same bits.
func (b BitString) Equal(o BitString) bool {
	return b.n == o.n && commonPrefixLen(b, 0, o, 0) == b.n
}

// String renders b as '0' and '1' characters.
func (b BitString) String() string {
	var sb strings.Builder
	sb.Grow(int(b.n))
	for i := uint64(0); i < b.n; i++ {
		if b.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (b BitString) clone(extra uint64) BitString {
	words := make([]uint64, (b.n+63)>>6, (b.n+extra+63)>>6)
	copy(words, b.words)
	return BitString{words: words, n: b.n}
}

// chunk returns the 64 bits starting at off, zero padded past the end.
func (b BitString) chunk(off uint64) uint64 {
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

func (b *BitString) push(bit bool) {
	if b.n>>6 >= uint64(len(b.words)) {
		b.words = append(b.words, 0)
	}
	if bit {
		b.words[b.n>>6] |= 1 << (b.n & 63)
	}
	b.n++
}

// pushBits appends the low c bits of x, c <= 64.
func (b *BitString) pushBits(x, c uint64) {
	if c == 0 {
		return
	}
	if c < 64 {
		x &= uint64(1)<<c - 1
	}
	off := b.n & 63
	if off == 0 {
		b.words = append(b.words[:b.n>>6], x)
	} else {
		b.words[b.n>>6] |= x << off
		if off+c > 64 {
			b.words = append(b.words, x>>(64-off))
		}
	}
	b.n += c
}

// pushRange appends src[from:to].
func (b *BitString) pushRange(src BitString, from, to uint64) {
	for from < to {
		c := min(64, to-from)
		b.pushBits(src.chunk(from), c)
		from += c
	}
}

// commonPrefixLen returns the length of the longest common prefix of
// a[aOff:] and b[bOff:].
func commonPrefixLen(a BitString, aOff uint64, b BitString, bOff uint64) uint64 {
	limit := min(a.n-aOff, b.n-bOff)
	for d := uint64(0); d < limit; d += 64 {
		if x := a.chunk(aOff+d) ^ b.chunk(bOff+d); x != 0 {
			return min(d+uint64(bits.TrailingZeros64(x)), limit)
		}
	}
	return limit
}
