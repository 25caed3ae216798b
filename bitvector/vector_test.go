package bitvector

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func naiveRank(orig []bool, pos int, bit bool) uint64 {
	r := uint64(0)
	for i := 0; i < pos; i++ {
		if orig[i] == bit {
			r++
		}
	}
	return r
}

func naiveSelect(orig []bool, rank int, bit bool) (uint64, bool) {
	for i, b := range orig {
		if b == bit {
			if rank == 0 {
				return uint64(i), true
			}
			rank--
		}
	}
	return 0, false
}

func checkAgainst(v *Vector, orig []bool, probes int) {
	So(v.Len(), ShouldEqual, len(orig))
	ones := naiveRank(orig, len(orig), true)
	So(v.OneNum(), ShouldEqual, ones)
	So(v.ZeroNum(), ShouldEqual, uint64(len(orig))-ones)
	for i := 0; i < probes && len(orig) > 0; i++ {
		ind := rand.Intn(len(orig))
		bit, err := v.Access(uint64(ind))
		So(err, ShouldBeNil)
		So(bit, ShouldEqual, orig[ind])
		So(v.Rank(uint64(ind), true), ShouldEqual, naiveRank(orig, ind, true))
		So(v.Rank(uint64(ind), false), ShouldEqual, naiveRank(orig, ind, false))
		for _, b := range []bool{false, true} {
			want, ok := naiveSelect(orig, ind, b)
			got, err := v.Select(uint64(ind), b)
			if ok {
				So(err, ShouldBeNil)
				So(got, ShouldEqual, want)
			} else {
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			}
		}
	}
}

func TestBlock(t *testing.T) {
	Convey("Given an empty block", t, func() {
		b := newBlock(128)
		Convey("Insertions shift later bits across word boundaries", func() {
			for i := 0; i < 70; i++ {
				b.pushBack(i%3 == 0)
			}
			b.insert(0, true)
			b.insert(64, true)
			So(b.n, ShouldEqual, 72)
			So(b.get(0), ShouldBeTrue)
			So(b.get(1), ShouldBeTrue)
			So(b.get(2), ShouldBeFalse)
			So(b.get(64), ShouldBeTrue)
			So(b.ones, ShouldEqual, b.rank1(b.n))

			So(b.remove(64), ShouldBeTrue)
			So(b.remove(0), ShouldBeTrue)
			So(b.n, ShouldEqual, 70)
			for i := uint64(0); i < 70; i++ {
				So(b.get(i), ShouldEqual, i%3 == 0)
			}
		})
		Convey("Split and append are inverse", func() {
			for i := 0; i < 100; i++ {
				b.pushBack(i%5 == 1)
			}
			tail := b.splitAt(37)
			So(b.n, ShouldEqual, 37)
			So(tail.n, ShouldEqual, 63)
			So(b.ones+tail.ones, ShouldEqual, 20)
			b.appendBlock(&tail)
			So(b.n, ShouldEqual, 100)
			So(b.ones, ShouldEqual, 20)
			for i := uint64(0); i < 100; i++ {
				So(b.get(i), ShouldEqual, i%5 == 1)
			}
		})
		Convey("Select counts zeros only inside the block", func() {
			for i := 0; i < 65; i++ {
				b.pushBack(true)
			}
			b.pushBack(false)
			So(b.selectBit(0, false), ShouldEqual, 65)
			So(b.selectBit(64, true), ShouldEqual, 64)
		})
		Convey("Filled blocks mask the tail word", func() {
			for _, n := range []uint64{0, 1, 63, 64, 65, 130} {
				ones := newFilledBlock(n, true, 128)
				So(ones.n, ShouldEqual, n)
				So(ones.ones, ShouldEqual, n)
				So(ones.rank1(n), ShouldEqual, n)
				So(ones.chunk(n), ShouldEqual, 0)
				zeros := newFilledBlock(n, false, 128)
				So(zeros.ones, ShouldEqual, 0)
				So(zeros.count(false), ShouldEqual, n)
				zeros.insert(n, true)
				So(zeros.get(n), ShouldBeTrue)
			}
		})
		Convey("Word shifted split and append work at every offset", func() {
			rng := rand.New(rand.NewSource(5))
			want := make([]bool, 200)
			for i := range want {
				want[i] = rng.Intn(2) == 1
				b.pushBack(want[i])
			}
			for k := uint64(0); k <= 200; k++ {
				head := newBlock(256)
				head.appendBlock(&b)
				tail := head.splitAt(k)
				So(head.n, ShouldEqual, k)
				So(tail.n, ShouldEqual, 200-k)
				So(head.ones, ShouldEqual, head.rank1(k))
				So(tail.ones, ShouldEqual, tail.rank1(tail.n))
				So(head.chunk(k), ShouldEqual, 0)
				head.appendBlock(&tail)
				So(head.ones, ShouldEqual, b.ones)
				for i := uint64(0); i < 200; i++ {
					if head.get(i) != want[i] {
						So(head.get(i), ShouldEqual, want[i])
					}
				}
			}
		})
	})
}

func TestVector(t *testing.T) {
	Convey("When a vector is empty", t, func() {
		v := New()
		So(v.Len(), ShouldEqual, 0)
		So(v.Rank(0, true), ShouldEqual, 0)
		So(v.Rank(10, false), ShouldEqual, 0)
		_, err := v.Access(0)
		So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
		_, err = v.Select(0, true)
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		_, err = v.Delete(0)
		So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
		So(errors.Is(v.Insert(1, true), ErrOutOfRange), ShouldBeTrue)
		So(v.String(), ShouldEqual, "")
	})
	Convey("When bits are inserted and deleted at random positions", t, func() {
		v := NewWithBlockBits(MinBlockBits)
		orig := make([]bool, 0)
		for i := 0; i < 5000; i++ {
			bit := rand.Intn(3) == 0
			pos := rand.Intn(len(orig) + 1)
			So(v.Insert(uint64(pos), bit), ShouldBeNil)
			orig = append(orig[:pos], append([]bool{bit}, orig[pos:]...)...)
		}
		checkAgainst(v, orig, 200)
		So(v.root.blockCount(), ShouldBeGreaterThan, 1)

		for len(orig) > 100 {
			pos := rand.Intn(len(orig))
			bit, err := v.Delete(uint64(pos))
			So(err, ShouldBeNil)
			So(bit, ShouldEqual, orig[pos])
			orig = append(orig[:pos], orig[pos+1:]...)
		}
		checkAgainst(v, orig, 100)

		for len(orig) > 0 {
			_, err := v.Delete(0)
			So(err, ShouldBeNil)
			orig = orig[1:]
		}
		So(v.Len(), ShouldEqual, 0)
		So(v.root, ShouldBeNil)
	})
	Convey("When a vector is filled", t, func() {
		v := NewFilled(1000, true, 128)
		So(v.Len(), ShouldEqual, 1000)
		So(v.OneNum(), ShouldEqual, 1000)
		So(v.Rank(500, true), ShouldEqual, 500)
		pos, err := v.Select(999, true)
		So(err, ShouldBeNil)
		So(pos, ShouldEqual, 999)
		So(v.Insert(400, false), ShouldBeNil)
		pos, err = v.Select(0, false)
		So(err, ShouldBeNil)
		So(pos, ShouldEqual, 400)
	})
	Convey("When bits are pushed back", t, func() {
		v := New()
		for _, c := range "0110100" {
			v.PushBack(c == '1')
		}
		So(v.String(), ShouldEqual, "0110100")
		n := 0
		for range v.Bits() {
			n++
			if n == 3 {
				break
			}
		}
		So(n, ShouldEqual, 3)
	})
	Convey("Block sizes are normalized", t, func() {
		So(NewWithBlockBits(1).blockBits, ShouldEqual, MinBlockBits)
		So(NewWithBlockBits(100).blockBits, ShouldEqual, 128)
	})
}

// -----------------------------------------------------------------------------
// Benchmarks
//

const benchN = 1 << 20

func benchVector(b *testing.B) *Vector {
	v := New()
	for i := 0; i < benchN; i++ {
		v.PushBack(rand.Intn(2) == 1)
	}
	b.ResetTimer()
	return v
}

func BenchmarkVector_Insert(b *testing.B) {
	v := benchVector(b)
	for i := 0; i < b.N; i++ {
		_ = v.Insert(uint64(rand.Int63n(int64(v.Len()))), i&1 == 1)
	}
}

func BenchmarkVector_Rank(b *testing.B) {
	v := benchVector(b)
	for i := 0; i < b.N; i++ {
		v.Rank(uint64(rand.Int63n(benchN)), true)
	}
}

func BenchmarkVector_Select(b *testing.B) {
	v := benchVector(b)
	ones := v.OneNum()
	for i := 0; i < b.N; i++ {
		_, _ = v.Select(uint64(rand.Int63n(int64(ones))), true)
	}
}
