// Package arrayref turns bounds-checked regions of a slice into references to
// fixed-size arrays without copying.
//
// The array type is the type parameter, so the size is carried by the type
// system and the element type is inferred from the region:
//
//	key := arrayref.MutRef[[32]byte](buf, 16)
//	hdr, body := arrayref.Refs2[[8]byte, [56]byte](frame)
//
// A view that does not fit its region panics with a BoundaryViolation. That
// is a programming error, not a condition to branch on; use Fits to validate
// untrusted lengths first.
package arrayref

import (
	"iter"
	"unsafe"

	"github.com/joomcode/errorx"

	"github.com/rawbytedev/arrayref/internal/layout"
)

// arrayLen resolves N for A = [N]T.
func arrayLen[A, T any]() int {
	a, err := layout.Of[A, T]()
	if err != nil {
		errorx.Panic(LayoutMismatch.Wrap(err, "array type"))
	}
	return a.Len
}

// asArray reinterprets s[off:off+N] as *[N]T. It is the only unsafe
// conversion in the package; every view is derived from it.
func asArray[A, T any](op string, s []T, off int) (*A, int) {
	n := arrayLen[A, T]()
	if off < 0 || off > len(s)-n {
		boundaryPanic(op, off, n, len(s))
	}
	if n == 0 {
		return new(A), 0
	}
	return (*A)(unsafe.Pointer(&s[off])), n
}

// View is a read-only fixed-size window onto a region. The zero View is not
// usable.
type View[A, T any] struct {
	arr   *A
	elems []T
}

func view[A, T any](op string, s []T, off int) View[A, T] {
	arr, n := asArray[A](op, s, off)
	return View[A, T]{arr: arr, elems: s[off : off+n : off+n]}
}

// Len returns N.
func (v View[A, T]) Len() int {
	return len(v.elems)
}

// At returns element i of the view, which is element off+i of the region.
func (v View[A, T]) At(i int) T {
	return v.elems[i]
}

// Array returns a copy of the viewed array.
func (v View[A, T]) Array() A {
	return *v.arr
}

// CopyTo copies the view into dst and returns the number of elements copied.
func (v View[A, T]) CopyTo(dst []T) int {
	return copy(dst, v.elems)
}

// All iterates over the elements of the view.
func (v View[A, T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range v.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Ref returns a read-only view of the N elements of s starting at off.
// It panics with BoundaryViolation unless off+N <= len(s).
func Ref[A, T any](s []T, off int) View[A, T] {
	return view[A]("Ref", s, off)
}

// MutRef returns a pointer to the N elements of s starting at off. Writes
// through the pointer are writes to s. The caller must not hold any other
// view of the same elements while mutating; see Region for a checked form.
// It panics with BoundaryViolation unless off+N <= len(s).
func MutRef[A, T any](s []T, off int) *A {
	arr, _ := asArray[A]("MutRef", s, off)
	return arr
}

// Fits reports whether an array of type A fits in s at off.
func Fits[A, T any](s []T, off int) bool {
	n := arrayLen[A, T]()
	return off >= 0 && off <= len(s)-n
}
