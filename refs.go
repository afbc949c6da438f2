package arrayref

const maxParts = 6

// partition returns the offsets of consecutive arrays of the given sizes.
// The offsets are running sums, so the parts are adjacent and disjoint; the
// sizes must cover a region of length total exactly.
func partition(op string, total int, sizes ...int) (offs [maxParts]int) {
	sum := 0
	for i, n := range sizes {
		offs[i] = sum
		sum += n
	}
	if sum != total {
		partitionPanic(op, sum, total)
	}
	return offs
}

// Refs2 splits s into two adjacent read-only views. len(s) must equal the
// combined size of A and B.
func Refs2[A, B, T any](s []T) (View[A, T], View[B, T]) {
	const op = "Refs2"
	o := partition(op, len(s), arrayLen[A, T](), arrayLen[B, T]())
	return view[A](op, s, o[0]), view[B](op, s, o[1])
}

func Refs3[A, B, C, T any](s []T) (View[A, T], View[B, T], View[C, T]) {
	const op = "Refs3"
	o := partition(op, len(s), arrayLen[A, T](), arrayLen[B, T](), arrayLen[C, T]())
	return view[A](op, s, o[0]), view[B](op, s, o[1]), view[C](op, s, o[2])
}

func Refs4[A, B, C, D, T any](s []T) (View[A, T], View[B, T], View[C, T], View[D, T]) {
	const op = "Refs4"
	o := partition(op, len(s), arrayLen[A, T](), arrayLen[B, T](), arrayLen[C, T](), arrayLen[D, T]())
	return view[A](op, s, o[0]), view[B](op, s, o[1]), view[C](op, s, o[2]), view[D](op, s, o[3])
}

func Refs5[A, B, C, D, E, T any](s []T) (View[A, T], View[B, T], View[C, T], View[D, T], View[E, T]) {
	const op = "Refs5"
	o := partition(op, len(s), arrayLen[A, T](), arrayLen[B, T](), arrayLen[C, T](), arrayLen[D, T](), arrayLen[E, T]())
	return view[A](op, s, o[0]), view[B](op, s, o[1]), view[C](op, s, o[2]), view[D](op, s, o[3]), view[E](op, s, o[4])
}

func Refs6[A, B, C, D, E, F, T any](s []T) (View[A, T], View[B, T], View[C, T], View[D, T], View[E, T], View[F, T]) {
	const op = "Refs6"
	o := partition(op, len(s), arrayLen[A, T](), arrayLen[B, T](), arrayLen[C, T](), arrayLen[D, T](), arrayLen[E, T](), arrayLen[F, T]())
	return view[A](op, s, o[0]), view[B](op, s, o[1]), view[C](op, s, o[2]), view[D](op, s, o[3]), view[E](op, s, o[4]), view[F](op, s, o[5])
}

// MutRefs2 splits s into two adjacent mutable arrays. Both pointers may be
// used at the same time: the parts never overlap.
func MutRefs2[A, B, T any](s []T) (*A, *B) {
	const op = "MutRefs2"
	o := partition(op, len(s), arrayLen[A, T](), arrayLen[B, T]())
	a, _ := asArray[A](op, s, o[0])
	b, _ := asArray[B](op, s, o[1])
	return a, b
}

func MutRefs3[A, B, C, T any](s []T) (*A, *B, *C) {
	const op = "MutRefs3"
	o := partition(op, len(s), arrayLen[A, T](), arrayLen[B, T](), arrayLen[C, T]())
	a, _ := asArray[A](op, s, o[0])
	b, _ := asArray[B](op, s, o[1])
	c, _ := asArray[C](op, s, o[2])
	return a, b, c
}

func MutRefs4[A, B, C, D, T any](s []T) (*A, *B, *C, *D) {
	const op = "MutRefs4"
	o := partition(op, len(s), arrayLen[A, T](), arrayLen[B, T](), arrayLen[C, T](), arrayLen[D, T]())
	a, _ := asArray[A](op, s, o[0])
	b, _ := asArray[B](op, s, o[1])
	c, _ := asArray[C](op, s, o[2])
	d, _ := asArray[D](op, s, o[3])
	return a, b, c, d
}

func MutRefs5[A, B, C, D, E, T any](s []T) (*A, *B, *C, *D, *E) {
	const op = "MutRefs5"
	o := partition(op, len(s), arrayLen[A, T](), arrayLen[B, T](), arrayLen[C, T](), arrayLen[D, T](), arrayLen[E, T]())
	a, _ := asArray[A](op, s, o[0])
	b, _ := asArray[B](op, s, o[1])
	c, _ := asArray[C](op, s, o[2])
	d, _ := asArray[D](op, s, o[3])
	e, _ := asArray[E](op, s, o[4])
	return a, b, c, d, e
}

func MutRefs6[A, B, C, D, E, F, T any](s []T) (*A, *B, *C, *D, *E, *F) {
	const op = "MutRefs6"
	o := partition(op, len(s), arrayLen[A, T](), arrayLen[B, T](), arrayLen[C, T](), arrayLen[D, T](), arrayLen[E, T](), arrayLen[F, T]())
	a, _ := asArray[A](op, s, o[0])
	b, _ := asArray[B](op, s, o[1])
	c, _ := asArray[C](op, s, o[2])
	d, _ := asArray[D](op, s, o[3])
	e, _ := asArray[E](op, s, o[4])
	f, _ := asArray[F](op, s, o[5])
	return a, b, c, d, e, f
}
