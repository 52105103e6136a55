package render

import (
	"testing"

	"github.com/carelight/volview/internal/volume"
	"github.com/carelight/volview/pkg/math"
)

// testVolume builds a depth-slice stack with the given per-slice fill
// values.
func testVolume(t *testing.T, w, h int, sliceValues ...uint16) *volume.Volume {
	t.Helper()
	slices := make([]volume.Slice, len(sliceValues))
	for i, val := range sliceValues {
		px := make([]uint16, w*h)
		for j := range px {
			px[j] = val
		}
		slices[i] = volume.Slice{Pixels: px, Width: w, Height: h}
	}
	v, err := volume.Assemble(slices)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return v
}

func TestWindowedIntensity(t *testing.T) {
	tests := []struct {
		name          string
		v, center, wd float32
		want          float32
	}{
		{"center maps to half", 0.5, 0.5, 1.0, 0.5},
		{"below window clamps to 0", 0.0, 0.75, 0.5, 0.0},
		{"above window clamps to 1", 1.0, 0.25, 0.5, 1.0},
		{"lower edge", 0.25, 0.5, 0.5, 0.0},
		{"upper edge", 0.75, 0.5, 0.5, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := windowedIntensity(tt.v, tt.center, tt.wd)
			if diff := got - tt.want; diff > 0.0001 || diff < -0.0001 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestColorize(t *testing.T) {
	tests := []struct {
		m    ColorMap
		t    float32
		want [3]float32
	}{
		{MapGrayscale, 0.5, [3]float32{0.5, 0.5, 0.5}},
		{MapHot, 1.0, [3]float32{1.0, 0.5, 0.0}},
		{MapCool, 1.0, [3]float32{0.0, 0.5, 1.0}},
		{MapBone, 1.0, [3]float32{0.8, 0.9, 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.m.String(), func(t *testing.T) {
			if got := colorize(tt.m, tt.t); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccumAlphaMonotoneAndBounded(t *testing.T) {
	// Any sequence of per-sample alphas in [0,1] must keep accumulated
	// alpha non-decreasing and never above 1.
	sequences := [][]float32{
		{0.5, 0.5, 0.5, 0.5},
		{1.0, 1.0},
		{0, 0, 0},
		{0.1, 0.9, 0.3, 1.0, 0.0, 0.7},
	}
	for _, seq := range sequences {
		var acc accum
		prev := float32(0)
		for _, a := range seq {
			acc.add([3]float32{1, 1, 1}, a)
			if acc.A < prev {
				t.Fatalf("alpha decreased: %f -> %f", prev, acc.A)
			}
			if acc.A > 1.0 {
				t.Fatalf("alpha exceeded 1: %f", acc.A)
			}
			prev = acc.A
		}
	}
}

func TestAtlasSamplerBounds(t *testing.T) {
	v := testVolume(t, 4, 4, 0, 1000)
	sample := atlasSampler(volume.BuildAtlas(v))

	outside := []math.Vec3{
		{X: 1.5}, {X: -1.5}, {Y: 2}, {Z: -2}, {X: 0, Y: 0, Z: 1.01},
	}
	for _, p := range outside {
		if got := sample(p); got != 0 {
			t.Errorf("sample at %v: got %f, want 0", p, got)
		}
	}

	// In-bounds samples stay in [0,1]
	if got := sample(math.Vec3{Z: 0.9}); got < 0 || got > 1 {
		t.Errorf("in-bounds sample out of range: %f", got)
	}
}

func TestMarchMIPFindsMaximum(t *testing.T) {
	// Slice 0 dim, slice 1 bright: any ray crossing both must report
	// the bright slice's windowed intensity.
	v := testVolume(t, 4, 4, 100, 200)
	a := volume.BuildAtlas(v)
	sample := atlasSampler(a)

	s := DefaultSettings()
	s.Mode = ModeMIP
	s.WindowCenter = 0.5
	s.WindowWidth = 1.0

	// Enter at the front face (z = -1) marching inward along +z... the
	// ray direction is the normalized entry point, so enter on the
	// +z face center to march through the stack.
	entry := math.Vec3{X: 0.01, Y: 0.01, Z: 1}
	got := marchMIP(sample, entry, 0.005, s)

	// Brightest atlas texel is 255 -> normalized 1.0 -> windowed 1.0.
	want := colorize(s.ColorMap, 1.0)
	if got != want {
		t.Errorf("MIP color: got %v, want %v", got, want)
	}

	// Idempotent under re-evaluation.
	if again := marchMIP(sample, entry, 0.005, s); again != got {
		t.Errorf("MIP not idempotent: %v then %v", got, again)
	}
}

func TestMarchCompositeZeroOpacity(t *testing.T) {
	// opacity 0, threshold 0.5: alpha must be 0 everywhere regardless
	// of intensities.
	v := testVolume(t, 4, 4, 0, 65535)
	sample := atlasSampler(volume.BuildAtlas(v))

	s := DefaultSettings()
	s.Opacity = 0
	s.Threshold = 0.5

	entries := []math.Vec3{
		{X: 0.01, Y: 0.01, Z: 1},
		{X: 1, Y: 0.2, Z: 0.2},
		{X: -0.3, Y: -1, Z: 0.5},
	}
	for _, entry := range entries {
		acc := marchComposite(sample, entry, 0.005, s)
		if acc.A != 0 || acc.R != 0 || acc.G != 0 || acc.B != 0 {
			t.Errorf("entry %v: got %+v, want all zero", entry, acc)
		}
	}
}

func TestMarchCompositeEarlyTermination(t *testing.T) {
	// A fully bright, fully opaque volume saturates immediately.
	v := testVolume(t, 4, 4, 1000, 2000)
	sample := atlasSampler(volume.BuildAtlas(v))

	s := DefaultSettings()
	s.Opacity = 1
	s.Threshold = 0

	acc := marchComposite(sample, math.Vec3{X: 0.01, Y: 0.01, Z: 1}, 0.005, s)
	if acc.A < alphaCutoff {
		t.Errorf("expected saturated alpha, got %f", acc.A)
	}
	if acc.A > 1 {
		t.Errorf("alpha exceeded 1: %f", acc.A)
	}
}

func TestMarchSingleSliceVolume(t *testing.T) {
	// depth=1: both modes degrade to evaluating that one slice.
	v := testVolume(t, 4, 4, 300)
	if v.Spacing[2] != 1.0 {
		t.Fatalf("single-slice z spacing: got %f, want 1.0", v.Spacing[2])
	}
	sample := atlasSampler(volume.BuildAtlas(v))

	s := DefaultSettings()
	s.Mode = ModeMIP

	// Flat volume normalizes to zero intensity everywhere.
	got := marchMIP(sample, math.Vec3{X: 0.01, Y: 0.01, Z: 1}, 0.005, s)
	want := colorize(s.ColorMap, windowedIntensity(0, s.WindowCenter, s.WindowWidth))
	if got != want {
		t.Errorf("single-slice MIP: got %v, want %v", got, want)
	}
}
