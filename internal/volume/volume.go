package volume

import "math"

// Volume is the assembled 3D scalar field: an ordered slice stack
// flattened into one sample array. Immutable after Assemble.
type Volume struct {
	// Width, Height, Depth in voxels; Depth equals the slice count.
	Width  int
	Height int
	Depth  int

	// Spacing is the physical voxel size (x, y, z) in millimeters.
	// Z comes from the gap between the first two slice positions.
	Spacing [3]float64

	// Samples holds Width*Height*Depth intensities, row-major within
	// each slice, slices concatenated in acquisition order.
	Samples []uint16

	// MinValue and MaxValue are the observed extrema, used for atlas
	// normalization and default windowing.
	MinValue uint16
	MaxValue uint16
}

// Assemble flattens an ordered slice stack into a Volume, tracking the
// running min/max. It fails with ErrEmptyInput for an empty stack and
// with DimensionMismatchError when a slice's buffer length does not
// match its width*height. Output depends only on input order and
// values.
func Assemble(slices []Slice) (*Volume, error) {
	if len(slices) == 0 {
		return nil, ErrEmptyInput
	}

	width := slices[0].Width
	height := slices[0].Height
	depth := len(slices)
	perSlice := width * height

	v := &Volume{
		Width:   width,
		Height:  height,
		Depth:   depth,
		Spacing: [3]float64{slices[0].ColumnSpacing, slices[0].RowSpacing, zSpacing(slices)},
		Samples: make([]uint16, perSlice*depth),
	}

	v.MinValue = math.MaxUint16
	for i, s := range slices {
		if len(s.Pixels) != perSlice {
			return nil, &DimensionMismatchError{Index: i, Got: len(s.Pixels), Want: perSlice}
		}
		copy(v.Samples[i*perSlice:], s.Pixels)
		for _, sample := range s.Pixels {
			if sample < v.MinValue {
				v.MinValue = sample
			}
			if sample > v.MaxValue {
				v.MaxValue = sample
			}
		}
	}

	return v, nil
}

// zSpacing derives the inter-slice spacing from the first two slice
// positions. Falls back to 1.0 for a single slice, missing positions,
// or coincident positions.
func zSpacing(slices []Slice) float64 {
	if len(slices) < 2 {
		return 1.0
	}
	a, b := slices[0], slices[1]
	if !a.HasPosition || !b.HasPosition {
		return 1.0
	}
	dz := math.Abs(b.Position - a.Position)
	if dz == 0 {
		return 1.0
	}
	return dz
}

// At returns the sample at voxel (x, y, z). Callers are expected to
// stay in bounds; this is an indexing helper, not a sampler.
func (v *Volume) At(x, y, z int) uint16 {
	return v.Samples[z*v.Width*v.Height+y*v.Width+x]
}
