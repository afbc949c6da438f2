package arrayref

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireAlias(t *testing.T, fn func()) {
	t.Helper()
	r := recovered(fn)
	require.NotNil(t, r, "expected a panic")
	require.True(t, IsAliasViolation(r), "unexpected panic: %v", r)
}

func TestRegionSharedBorrows(t *testing.T) {
	r := NewRegion([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	a, la := Borrow[[4]byte](r, 0)
	b, lb := Borrow[[4]byte](r, 2)
	require.Equal(t, [4]byte{0, 1, 2, 3}, a.Array())
	require.Equal(t, [4]byte{2, 3, 4, 5}, b.Array())
	require.Equal(t, byte(3), r.Get(3))
	require.Equal(t, 2, r.Leases())

	requireAlias(t, func() { BorrowMut[[1]byte](r, 3) })
	requireAlias(t, func() { r.Set(5, 0) })

	// outside both shared spans
	p, lp := BorrowMut[[2]byte](r, 6)
	p[0] = 60
	lp.Release()
	require.Equal(t, byte(60), r.Get(6))

	la.Release()
	lb.Release()
	require.Equal(t, 0, r.Leases())
	r.Set(5, 50)
	require.Equal(t, byte(50), r.Get(5))
}

func TestRegionExclusiveBorrow(t *testing.T) {
	buf := make([]byte, 8)
	r := NewRegion(buf)
	p, l := BorrowMut[[3]byte](r, 2)

	requireAlias(t, func() { Borrow[[3]byte](r, 0) })
	requireAlias(t, func() { BorrowMut[[1]byte](r, 4) })
	requireAlias(t, func() { r.Get(2) })
	requireAlias(t, func() { BorrowRefs2[[4]byte, [4]byte](r) })

	// adjacent spans are fine
	q, lq := BorrowMut[[2]byte](r, 0)
	q[1] = 1
	p[0] = 2
	p[2] = 4
	lq.Release()

	l.Release()
	l.Release()
	require.Equal(t, []byte{0, 1, 2, 0, 4, 0, 0, 0}, buf)
	require.Equal(t, byte(4), r.Get(4))
}

func TestRegionMutRefs(t *testing.T) {
	r := NewRegion(make([]int, 6))
	a, b, c, l := BorrowMutRefs3[[1]int, [2]int, [3]int](r)
	a[0] = 1
	b[0], b[1] = 2, 2
	c[0], c[1], c[2] = 3, 3, 3
	requireAlias(t, func() { r.Get(0) })
	l.Release()

	x, y, z, ls := BorrowRefs3[[3]int, [2]int, [1]int](r)
	require.Equal(t, [3]int{1, 2, 2}, x.Array())
	require.Equal(t, [2]int{3, 3}, y.Array())
	require.Equal(t, 3, z.At(0))
	requireAlias(t, func() { BorrowMutRefs2[[3]int, [3]int](r) })
	ls.Release()

	m, n, lm := BorrowMutRefs2[[4]int, [2]int](r)
	m[3], n[0] = 0, 0
	lm.Release()
	v, w, lv := BorrowRefs2[[4]int, [2]int](r)
	require.Equal(t, [4]int{1, 2, 2, 0}, v.Array())
	require.Equal(t, [2]int{0, 3}, w.Array())
	lv.Release()
}

func TestRegionBounds(t *testing.T) {
	r := NewRegion(make([]byte, 4))
	requireBoundary(t, func() { Borrow[[5]byte](r, 0) })
	requireBoundary(t, func() { BorrowMut[[2]byte](r, 3) })
	requireBoundary(t, func() { r.Get(4) })
	requireBoundary(t, func() { r.Set(-1, 0) })
	require.Equal(t, 0, r.Leases())
	require.Equal(t, 4, r.Len())
}

func TestRegionZeroLengthBorrows(t *testing.T) {
	r := NewRegion([]byte{1, 2, 3, 4})
	_, l := BorrowMut[[4]byte](r, 0)
	defer l.Release()

	for off := 0; off <= r.Len(); off++ {
		require.NotPanics(t, func() {
			z, zl := BorrowMut[[0]byte](r, off)
			require.NotNil(t, z)
			v, vl := Borrow[[0]byte](r, off)
			require.Equal(t, 0, v.Len())
			require.Equal(t, 3, r.Leases())
			vl.Release()
			zl.Release()
		}, "offset %d", off)
	}
	require.Equal(t, 1, r.Leases())

	requireAlias(t, func() { BorrowMut[[1]byte](r, 2) })
	requireBoundary(t, func() { BorrowMut[[0]byte](r, 5) })
}

func TestRegionConcurrentDisjointBorrows(t *testing.T) {
	r := NewRegion(make([]uint64, 64))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, l := BorrowMut[[4]uint64](r, i*4)
			for j := range p {
				p[j] = uint64(i)
			}
			l.Release()
		}(i)
	}
	wg.Wait()
	require.Equal(t, 0, r.Leases())
	for i := 0; i < 64; i++ {
		require.Equal(t, uint64(i/4), r.Get(i))
	}
}
