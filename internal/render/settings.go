// Package render implements the volumetric ray-marching pipeline:
// viewport state, the GPU program and its bounding-cube geometry, the
// compositing algorithm, and the interaction-aware frame scheduler.
package render

import "fmt"

// Mode selects the compositing algorithm.
type Mode int

const (
	// ModeVolume is front-to-back volumetric compositing.
	ModeVolume Mode = iota
	// ModeMIP is maximum-intensity projection.
	ModeMIP
	// ModeSurface renders through the volumetric compositing path.
	// It is a naming distinction carried for the UI, not a separate
	// isosurface technique.
	ModeSurface
	// ModeRaycast is a UI alias for the volumetric path.
	ModeRaycast
)

func (m Mode) String() string {
	switch m {
	case ModeVolume:
		return "volume"
	case ModeMIP:
		return "mip"
	case ModeSurface:
		return "surface"
	case ModeRaycast:
		return "raycast"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts a mode name from config or UI.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "volume", "":
		return ModeVolume, nil
	case "mip":
		return ModeMIP, nil
	case "surface":
		return ModeSurface, nil
	case "raycast":
		return ModeRaycast, nil
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

// ColorMap selects the intensity-to-RGB mapping.
type ColorMap int

const (
	MapGrayscale ColorMap = iota
	MapHot
	MapCool
	MapBone
)

func (c ColorMap) String() string {
	switch c {
	case MapGrayscale:
		return "grayscale"
	case MapHot:
		return "hot"
	case MapCool:
		return "cool"
	case MapBone:
		return "bone"
	}
	return fmt.Sprintf("colormap(%d)", int(c))
}

// ParseColorMap converts a color map name from config or UI.
func ParseColorMap(s string) (ColorMap, error) {
	switch s {
	case "grayscale", "":
		return MapGrayscale, nil
	case "hot":
		return MapHot, nil
	case "cool":
		return MapCool, nil
	case "bone":
		return MapBone, nil
	}
	return 0, fmt.Errorf("unknown color map %q", s)
}

// minWindowWidth keeps the windowing divisor strictly positive.
// Window units are normalized intensities (post atlas fetch), so a
// width of 1 spans the full sample range.
const minWindowWidth = 0.001

// Settings holds the user-controlled compositing parameters. The
// surrounding UI may replace them at any time; they take effect on the
// next frame.
type Settings struct {
	Mode         Mode
	Opacity      float32
	Threshold    float32
	WindowCenter float32
	WindowWidth  float32
	ColorMap     ColorMap
}

// DefaultSettings shows the full intensity range with moderate opacity.
func DefaultSettings() Settings {
	return Settings{
		Mode:         ModeVolume,
		Opacity:      0.5,
		Threshold:    0.1,
		WindowCenter: 0.5,
		WindowWidth:  1.0,
		ColorMap:     MapGrayscale,
	}
}

// Clamped returns a copy with every parameter forced into its valid
// range: opacity and threshold in [0,1], window width positive.
func (s Settings) Clamped() Settings {
	s.Opacity = clamp01(s.Opacity)
	s.Threshold = clamp01(s.Threshold)
	if s.WindowWidth < minWindowWidth {
		s.WindowWidth = minWindowWidth
	}
	return s
}

// compositesVolumetrically reports whether the mode runs the
// front-to-back path (everything except MIP).
func (s Settings) compositesVolumetrically() bool {
	return s.Mode != ModeMIP
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
