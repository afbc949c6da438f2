package layout

import (
	"errors"
	"fmt"
	"reflect"
)

var ErrNotArray = errors.New("not an array type")

// Array describes the layout of a fixed-size array type [N]T.
type Array struct {
	Type reflect.Type
	Elem reflect.Type
	Len  int
}

// Of resolves the layout of A and checks that it is an array of T.
func Of[A, T any]() (Array, error) {
	at := reflect.TypeFor[A]()
	et := reflect.TypeFor[T]()
	if at.Kind() != reflect.Array {
		return Array{}, fmt.Errorf("%w: %s", ErrNotArray, at)
	}
	if at.Elem() != et {
		return Array{}, fmt.Errorf("%w: %s has element type %s, want %s", ErrNotArray, at, at.Elem(), et)
	}
	return Array{Type: at, Elem: et, Len: at.Len()}, nil
}

func (a Array) String() string {
	return a.Type.String()
}
