package analyze

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType matches every UnsupportedTypeError via errors.Is.
var ErrUnsupportedType = errors.New("unsupported type")

// UnsupportedTypeError is returned when a type name is neither primitive,
// nor a class or interface known to the source, nor an accepted opaque kind.
type UnsupportedTypeError struct {
	Name string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("type information for %s cannot be retrieved (unsupported type)", e.Name)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}
