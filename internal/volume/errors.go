package volume

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a load or assembly is attempted with no
// slices at all.
var ErrEmptyInput = errors.New("volume: no slices")

// InconsistentGeometryError reports a slice whose in-plane dimensions
// disagree with the first slice of the stack.
type InconsistentGeometryError struct {
	Index      int
	Width      int
	Height     int
	WantWidth  int
	WantHeight int
}

func (e *InconsistentGeometryError) Error() string {
	return fmt.Sprintf("volume: slice %d is %dx%d, stack is %dx%d",
		e.Index, e.Width, e.Height, e.WantWidth, e.WantHeight)
}

// DimensionMismatchError reports a slice whose pixel buffer length does
// not match its declared width*height.
type DimensionMismatchError struct {
	Index int
	Got   int
	Want  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("volume: slice %d has %d samples, want %d",
		e.Index, e.Got, e.Want)
}
