package arrayref

import (
	"github.com/joomcode/errorx"

	"github.com/rawbytedev/arrayref/internal/borrow"
)

// Region wraps a buffer and checks at run time that mutable views of it are
// exclusive: a BorrowMut span may not overlap any other live lease, and a
// Borrow span may not overlap a live BorrowMut span. Conflicts panic with
// AliasViolation.
//
// Borrowing is safe from several goroutines. The views themselves are plain
// memory and are not synchronised.
type Region[T any] struct {
	buf    []T
	leases borrow.Tracker
}

func NewRegion[T any](buf []T) *Region[T] {
	return &Region[T]{buf: buf}
}

func (r *Region[T]) Len() int {
	return len(r.buf)
}

// Get reads element i. It panics if i is covered by a live mutable lease.
func (r *Region[T]) Get(i int) T {
	r.check("Get", i, borrow.Shared)
	return r.buf[i]
}

// Set writes element i. It panics if i is covered by any live lease.
func (r *Region[T]) Set(i int, v T) {
	r.check("Set", i, borrow.Exclusive)
	r.buf[i] = v
}

// Leases returns the number of live leases.
func (r *Region[T]) Leases() int {
	return r.leases.Live()
}

func (r *Region[T]) check(op string, i int, mode borrow.Mode) {
	if i < 0 || i >= len(r.buf) {
		boundaryPanic(op, i, 1, len(r.buf))
	}
	if err := r.leases.Check(borrow.Span{Lo: i, Hi: i + 1, Mode: mode}); err != nil {
		errorx.Panic(AliasViolation.Wrap(err, "%s", op))
	}
}

func (r *Region[T]) acquire(op string, lo, hi int, mode borrow.Mode) *Lease {
	id, err := r.leases.Acquire(borrow.Span{Lo: lo, Hi: hi, Mode: mode})
	if err != nil {
		errorx.Panic(AliasViolation.Wrap(err, "%s", op))
	}
	return &Lease{leases: &r.leases, id: id}
}

// Lease keeps a borrowed span of a Region alive until Release.
type Lease struct {
	leases *borrow.Tracker
	id     uint64
}

// Release ends the lease. Views obtained with it must not be used afterwards.
// Calling Release more than once is a no-op.
func (l *Lease) Release() {
	l.leases.Release(l.id)
}

// Borrow is Ref on a Region under a shared lease.
func Borrow[A, T any](r *Region[T], off int) (View[A, T], *Lease) {
	const op = "Borrow"
	v := view[A](op, r.buf, off)
	return v, r.acquire(op, off, off+v.Len(), borrow.Shared)
}

// BorrowMut is MutRef on a Region under an exclusive lease.
func BorrowMut[A, T any](r *Region[T], off int) (*A, *Lease) {
	const op = "BorrowMut"
	arr, n := asArray[A](op, r.buf, off)
	return arr, r.acquire(op, off, off+n, borrow.Exclusive)
}

// BorrowRefs2 is Refs2 over the whole Region under one shared lease.
func BorrowRefs2[A, B, T any](r *Region[T]) (View[A, T], View[B, T], *Lease) {
	a, b := Refs2[A, B](r.buf)
	return a, b, r.acquire("BorrowRefs2", 0, len(r.buf), borrow.Shared)
}

func BorrowRefs3[A, B, C, T any](r *Region[T]) (View[A, T], View[B, T], View[C, T], *Lease) {
	a, b, c := Refs3[A, B, C](r.buf)
	return a, b, c, r.acquire("BorrowRefs3", 0, len(r.buf), borrow.Shared)
}

// BorrowMutRefs2 is MutRefs2 over the whole Region under one exclusive
// lease. The returned arrays are disjoint and may be mutated together.
func BorrowMutRefs2[A, B, T any](r *Region[T]) (*A, *B, *Lease) {
	a, b := MutRefs2[A, B](r.buf)
	return a, b, r.acquire("BorrowMutRefs2", 0, len(r.buf), borrow.Exclusive)
}

func BorrowMutRefs3[A, B, C, T any](r *Region[T]) (*A, *B, *C, *Lease) {
	a, b, c := MutRefs3[A, B, C](r.buf)
	return a, b, c, r.acquire("BorrowMutRefs3", 0, len(r.buf), borrow.Exclusive)
}
