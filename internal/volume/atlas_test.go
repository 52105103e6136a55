package volume

import "testing"

func TestBuildAtlasLayout(t *testing.T) {
	slices := make([]Slice, 10)
	for i := range slices {
		slices[i] = uniformSlice(4, 4, 100)
	}
	slices[3].Pixels[7] = 200 // voxel (3, 1) in slice 3

	v, err := Assemble(slices)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	a := BuildAtlas(v)

	if a.Width != v.Width*v.Depth {
		t.Errorf("atlas width: got %d, want %d", a.Width, v.Width*v.Depth)
	}
	if a.Height != v.Height {
		t.Errorf("atlas height: got %d, want %d", a.Height, v.Height)
	}

	// The lone 200 sample normalizes to 255, everything else to 0.
	hot := a.TexelIndex(3, 1, 3)
	for i, px := range a.Pixels {
		if i == hot {
			if px != 255 {
				t.Errorf("max texel: got %d, want 255", px)
			}
		} else if px != 0 {
			t.Errorf("texel %d: got %d, want 0", i, px)
		}
	}
}

func TestBuildAtlasFlatVolume(t *testing.T) {
	slices := []Slice{uniformSlice(4, 4, 500), uniformSlice(4, 4, 500)}
	v, err := Assemble(slices)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	a := BuildAtlas(v)
	for i, px := range a.Pixels {
		if px != 0 {
			t.Fatalf("flat volume texel %d: got %d, want 0", i, px)
		}
	}
}

func TestBuildAtlasNormalizationEndpoints(t *testing.T) {
	s := uniformSlice(2, 2, 0)
	s.Pixels = []uint16{10, 1010, 510, 10}
	v, err := Assemble([]Slice{s})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	a := BuildAtlas(v)
	if a.At(0, 0, 0) != 0 {
		t.Errorf("min sample: got %d, want 0", a.At(0, 0, 0))
	}
	if a.At(1, 0, 0) != 255 {
		t.Errorf("max sample: got %d, want 255", a.At(1, 0, 0))
	}
	if mid := a.At(0, 1, 0); mid != 127 {
		t.Errorf("mid sample: got %d, want 127", mid)
	}
}

func TestTexelIndexInBounds(t *testing.T) {
	slices := make([]Slice, 5)
	for i := range slices {
		slices[i] = uniformSlice(3, 7, 1)
	}
	v, err := Assemble(slices)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	a := BuildAtlas(v)

	// Every voxel coordinate must land inside the atlas, and distinct
	// voxels must land on distinct texels.
	seen := make(map[int]bool)
	for z := 0; z < v.Depth; z++ {
		for y := 0; y < v.Height; y++ {
			for x := 0; x < v.Width; x++ {
				idx := a.TexelIndex(x, y, z)
				if idx < 0 || idx >= len(a.Pixels) {
					t.Fatalf("texel index for (%d,%d,%d) out of bounds: %d", x, y, z, idx)
				}
				if seen[idx] {
					t.Fatalf("texel index collision at (%d,%d,%d)", x, y, z)
				}
				seen[idx] = true
			}
		}
	}
}
