// Package volume assembles stacks of decoded cross-sectional images into
// a 3D scalar field and packs it into a 2D atlas for GPU sampling.
package volume

// Slice is one decoded cross-sectional image plus its acquisition
// geometry. Pixel decoding is the image service's job; by the time a
// Slice reaches this package it is a plain uint16 buffer.
type Slice struct {
	// Pixels holds width*height samples, row-major.
	Pixels []uint16

	Width  int
	Height int

	// RowSpacing and ColumnSpacing are the physical in-plane sample
	// spacings, in millimeters.
	RowSpacing    float64
	ColumnSpacing float64

	// Position is the slice location along the scan axis. Only
	// meaningful when HasPosition is set; some sources omit it.
	Position    float64
	HasPosition bool
}
