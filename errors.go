package arrayref

import (
	"github.com/joomcode/errorx"
)

var (
	Errors = errorx.NewNamespace("arrayref")

	// BoundaryViolation is raised when a view does not fit its region, or
	// when destructuring sizes do not add up to the region length.
	BoundaryViolation = Errors.NewType("boundary_violation")

	// AliasViolation is raised when a tracked borrow overlaps a live one.
	AliasViolation = Errors.NewType("alias_violation")

	// LayoutMismatch is raised when the array type parameter is not an
	// array of the region's element type.
	LayoutMismatch = Errors.NewType("layout_mismatch")
)

var (
	PropertyOffset = errorx.RegisterProperty("offset")
	PropertySize   = errorx.RegisterProperty("size")
	PropertyLength = errorx.RegisterProperty("length")
)

func boundaryPanic(op string, off, size, length int) {
	errorx.Panic(BoundaryViolation.New("%s: [%d, %d+%d) out of range for length %d", op, off, off, size, length).
		WithProperty(PropertyOffset, off).
		WithProperty(PropertySize, size).
		WithProperty(PropertyLength, length))
}

func partitionPanic(op string, sum, length int) {
	errorx.Panic(BoundaryViolation.New("%s: sizes sum to %d, region length is %d", op, sum, length).
		WithProperty(PropertySize, sum).
		WithProperty(PropertyLength, length))
}

func classify(recovered any, t *errorx.Type) bool {
	err, ok := errorx.ErrorFromPanic(recovered)
	return ok && errorx.IsOfType(err, t)
}

// IsBoundaryViolation reports whether a value obtained from recover() is a
// BoundaryViolation.
func IsBoundaryViolation(recovered any) bool {
	return classify(recovered, BoundaryViolation)
}

// IsAliasViolation reports whether a value obtained from recover() is an
// AliasViolation.
func IsAliasViolation(recovered any) bool {
	return classify(recovered, AliasViolation)
}
