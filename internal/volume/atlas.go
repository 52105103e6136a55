package volume

// Atlas is a packed 2D representation of a Volume for GPU sampling.
// Depth-slice z occupies the horizontal band [z*sliceWidth,
// (z+1)*sliceWidth), so Width = volume width * depth and
// Height = volume height. Samples are normalized to 8 bits.
type Atlas struct {
	Width  int
	Height int

	// Depth is the number of slice bands packed along X.
	Depth int

	// Pixels holds Width*Height bytes, row-major.
	Pixels []uint8
}

// BuildAtlas packs a Volume into an Atlas, normalizing each sample via
// (v - min) / (max - min) * 255. When the volume is flat
// (max == min) every texel is zero.
func BuildAtlas(v *Volume) *Atlas {
	a := &Atlas{
		Width:  v.Width * v.Depth,
		Height: v.Height,
		Depth:  v.Depth,
		Pixels: make([]uint8, v.Width*v.Depth*v.Height),
	}

	span := float64(v.MaxValue) - float64(v.MinValue)
	if span == 0 {
		return a
	}

	for z := 0; z < v.Depth; z++ {
		for y := 0; y < v.Height; y++ {
			row := y*a.Width + z*v.Width
			src := z*v.Width*v.Height + y*v.Width
			for x := 0; x < v.Width; x++ {
				sample := float64(v.Samples[src+x]) - float64(v.MinValue)
				a.Pixels[row+x] = uint8(sample / span * 255)
			}
		}
	}

	return a
}

// TexelIndex maps a voxel coordinate to its offset in Pixels. Used by
// the CPU sampling path and by tests; the shader performs the same
// mapping in normalized coordinates.
func (a *Atlas) TexelIndex(x, y, z int) int {
	sliceWidth := a.Width / a.Depth
	return y*a.Width + z*sliceWidth + x
}

// At returns the normalized 8-bit texel for voxel (x, y, z).
func (a *Atlas) At(x, y, z int) uint8 {
	return a.Pixels[a.TexelIndex(x, y, z)]
}
