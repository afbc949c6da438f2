package arrayref

// Reserve splits the first n elements off *heap and advances *heap past them.
// The returned slice has capacity n, so appending to it never writes into
// the remainder. It panics with BoundaryViolation if n > len(*heap), leaving
// *heap unchanged.
func Reserve[T any](heap *[]T, n int) []T {
	return reserve("Reserve", heap, n)
}

// ReserveTail splits the last n elements off *heap and shrinks *heap to the
// elements before them.
func ReserveTail[T any](heap *[]T, n int) []T {
	return reserveTail("ReserveTail", heap, n)
}

// ReserveFixed is Reserve for a fixed-size array.
//
//	nonce := arrayref.ReserveFixed[[24]byte](&rest)
func ReserveFixed[A, T any](heap *[]T) View[A, T] {
	const op = "ReserveFixed"
	return view[A](op, reserve(op, heap, arrayLen[A, T]()), 0)
}

func ReserveFixedMut[A, T any](heap *[]T) *A {
	const op = "ReserveFixedMut"
	arr, _ := asArray[A](op, reserve(op, heap, arrayLen[A, T]()), 0)
	return arr
}

func ReserveTailFixed[A, T any](heap *[]T) View[A, T] {
	const op = "ReserveTailFixed"
	return view[A](op, reserveTail(op, heap, arrayLen[A, T]()), 0)
}

func ReserveTailFixedMut[A, T any](heap *[]T) *A {
	const op = "ReserveTailFixedMut"
	arr, _ := asArray[A](op, reserveTail(op, heap, arrayLen[A, T]()), 0)
	return arr
}

func reserve[T any](op string, heap *[]T, n int) []T {
	h := *heap
	if n < 0 || n > len(h) {
		boundaryPanic(op, 0, n, len(h))
	}
	*heap = h[n:]
	return h[:n:n]
}

func reserveTail[T any](op string, heap *[]T, n int) []T {
	h := *heap
	if n < 0 || n > len(h) {
		boundaryPanic(op, len(h)-n, n, len(h))
	}
	l := len(h) - n
	*heap = h[:l:l]
	return h[l:]
}
