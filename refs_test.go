package arrayref

import (
	"sync"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestRefs5(t *testing.T) {
	var data [128]int
	for i := range data {
		data[i] = i
	}
	a, b, c, d, e := Refs5[[1]int, [14]int, [3]int, [100]int, [10]int](data[:])
	require.Equal(t, 1, a.Len())
	require.Equal(t, 14, b.Len())
	require.Equal(t, 3, c.Len())
	require.Equal(t, 100, d.Len())
	require.Equal(t, 10, e.Len())
	require.Equal(t, Ref[[1]int](data[:], 0).Array(), a.Array())
	require.Equal(t, Ref[[14]int](data[:], 1).Array(), b.Array())
	require.Equal(t, Ref[[3]int](data[:], 15).Array(), c.Array())
	require.Equal(t, Ref[[100]int](data[:], 18).Array(), d.Array())
	require.Equal(t, Ref[[10]int](data[:], 118).Array(), e.Array())
}

func TestMutRefs5(t *testing.T) {
	var data [128]int
	a, b, c, d, e := MutRefs5[[1]int, [14]int, [3]int, [100]int, [10]int](data[:])
	*a = [1]int{1}
	for i := range b {
		b[i] = 14
	}
	*c = [3]int{3, 3, 3}
	for i := range d {
		d[i] = 100
	}
	for i := range e {
		e[i] = 10
	}
	for i, v := range data {
		switch {
		case i < 1:
			require.Equal(t, 1, v)
		case i < 15:
			require.Equal(t, 14, v)
		case i < 18:
			require.Equal(t, 3, v)
		case i < 118:
			require.Equal(t, 100, v)
		default:
			require.Equal(t, 10, v)
		}
	}
}

func TestRefsConcatenation(t *testing.T) {
	condition := func(data [21]byte) bool {
		a, b, c := Refs3[[4]byte, [9]byte, [8]byte](data[:])
		buf := make([]byte, 21)
		n := a.CopyTo(buf)
		n += b.CopyTo(buf[n:])
		n += c.CopyTo(buf[n:])
		return n == 21 && string(buf) == string(data[:])
	}
	err := quick.Check(condition, &quick.Config{})
	if err != nil {
		t.Errorf("Error: %v", err)
	}
}

func TestRefsSumMismatch(t *testing.T) {
	r := make([]byte, 8)
	err := requireBoundary(t, func() { Refs2[[3]byte, [4]byte](r) })
	sum, _ := err.Property(PropertySize)
	require.Equal(t, 7, sum)
	requireBoundary(t, func() { Refs2[[3]byte, [6]byte](r) })
	requireBoundary(t, func() { MutRefs3[[1]byte, [1]byte, [1]byte](r) })
	requireBoundary(t, func() { Refs6[[1]byte, [1]byte, [1]byte, [1]byte, [1]byte, [1]byte](r) })
}

func TestMutRefsNoPartialWrites(t *testing.T) {
	r := []byte{9, 9, 9, 9}
	var a *[2]byte
	requireBoundary(t, func() { a, _ = MutRefs2[[2]byte, [1]byte](r) })
	require.Nil(t, a)
}

func TestMutRefsDisjoint(t *testing.T) {
	r := make([]uint16, 12)
	a, b, c, d := MutRefs4[[2]uint16, [3]uint16, [4]uint16, [3]uint16](r)
	for i := range a {
		a[i] = 1
	}
	for i := range d {
		d[i] = 4
	}
	for i := range b {
		b[i] = 2
	}
	for i := range c {
		c[i] = 3
	}
	require.Equal(t, []uint16{1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4}, r)
}

func TestMutRefsConcurrentWriters(t *testing.T) {
	r := make([]uint16, 12)
	a, b, c, d := MutRefs4[[2]uint16, [3]uint16, [4]uint16, [3]uint16](r)
	fill := func(wg *sync.WaitGroup, part []uint16, v uint16) {
		defer wg.Done()
		for round := 0; round < 1000; round++ {
			for i := range part {
				part[i] = v
			}
		}
	}
	var wg sync.WaitGroup
	wg.Add(4)
	go fill(&wg, a[:], 1)
	go fill(&wg, b[:], 2)
	go fill(&wg, c[:], 3)
	go fill(&wg, d[:], 4)
	wg.Wait()
	require.Equal(t, []uint16{1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4}, r)
}

func TestRefs6HeaderLayout(t *testing.T) {
	buf := make([]byte, 52)
	for i := range buf {
		buf[i] = byte(i)
	}
	magic, meta, schema, length, nonce, sum := Refs6[[4]byte, [4]byte, [8]byte, [4]byte, [24]byte, [8]byte](buf)
	require.Equal(t, [4]byte{0, 1, 2, 3}, magic.Array())
	require.Equal(t, byte(4), meta.At(0))
	require.Equal(t, byte(8), schema.At(0))
	require.Equal(t, byte(16), length.At(0))
	require.Equal(t, byte(20), nonce.At(0))
	require.Equal(t, byte(51), sum.At(7))

	m1, m2, m3, m4, m5, m6 := MutRefs6[[4]byte, [4]byte, [8]byte, [4]byte, [24]byte, [8]byte](buf)
	m1[0], m2[0], m3[0], m4[0], m5[0], m6[0] = 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6
	require.Equal(t, byte(0xa1), buf[0])
	require.Equal(t, byte(0xa2), buf[4])
	require.Equal(t, byte(0xa3), buf[8])
	require.Equal(t, byte(0xa4), buf[16])
	require.Equal(t, byte(0xa5), buf[20])
	require.Equal(t, byte(0xa6), buf[44])
}

func TestRefs4(t *testing.T) {
	r := []byte("abcdefgh")
	a, b, c, d := Refs4[[1]byte, [2]byte, [0]byte, [5]byte](r)
	require.Equal(t, [1]byte{'a'}, a.Array())
	require.Equal(t, [2]byte{'b', 'c'}, b.Array())
	require.Equal(t, 0, c.Len())
	require.Equal(t, [5]byte{'d', 'e', 'f', 'g', 'h'}, d.Array())
}

func TestPartitionOffsets(t *testing.T) {
	offs := partition("test", 10, 3, 0, 5, 2)
	require.Equal(t, [maxParts]int{0, 3, 3, 8, 0, 0}, offs)
}
