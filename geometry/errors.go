package geometry

import (
	"errors"
	"fmt"
)

// ErrFormat is wrapped by errors caused by a malformed encoding of geometric
// attributes or packed integer sequences.
var ErrFormat = errors.New("vtgeom: format error")

// ErrGeometry is wrapped by errors caused by a geometry command stream that
// violates the vector tile grammar.
var ErrGeometry = errors.New("vtgeom: geometry error")

func formatError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

func geometryError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGeometry, fmt.Sprintf(format, args...))
}
