package render

import (
	gomath "math"

	"github.com/carelight/volview/pkg/math"
)

// Camera tuning. Sensitivities are in screen-space units; the zoom
// bounds keep the cube from degenerating or clipping through the near
// plane.
const (
	dragDegreesPerPixel = 0.5
	panUnitsPerPixel    = 0.01

	minZoom = 0.1
	maxZoom = 10.0

	fovY = 45.0 * gomath.Pi / 180.0
	near = 0.1
	far  = 100.0

	// cameraDistance is divided by zoom to place the camera: larger
	// zoom moves it closer.
	cameraDistance = 5.0
)

// Viewport holds the interactive camera parameters and builds the
// matrices the compositor consumes each frame.
type Viewport struct {
	// RotationX, RotationY, RotationZ are Euler angles in degrees,
	// accumulated from drag deltas.
	RotationX float32
	RotationY float32
	RotationZ float32

	// Zoom is a multiplicative scale in [minZoom, maxZoom].
	Zoom float32

	// PanX, PanY are offsets in normalized device units.
	PanX float32
	PanY float32
}

// NewViewport returns the identity view: no rotation, unit zoom,
// centered.
func NewViewport() *Viewport {
	return &Viewport{Zoom: 1}
}

// Reset restores the identity view.
func (v *Viewport) Reset() {
	*v = Viewport{Zoom: 1}
}

// Rotate accumulates a pointer drag delta, in pixels.
func (v *Viewport) Rotate(dx, dy float32) {
	v.RotationY += dx * dragDegreesPerPixel
	v.RotationX += dy * dragDegreesPerPixel
}

// Pan accumulates a modified pointer drag delta, in pixels. Screen Y
// grows downward, so the vertical offset is negated.
func (v *Viewport) Pan(dx, dy float32) {
	v.PanX += dx * panUnitsPerPixel
	v.PanY -= dy * panUnitsPerPixel
}

// ZoomBy multiplies the zoom and clamps it to [0.1, 10].
func (v *Viewport) ZoomBy(factor float32) {
	v.Zoom *= factor
	if v.Zoom < minZoom {
		v.Zoom = minZoom
	}
	if v.Zoom > maxZoom {
		v.Zoom = maxZoom
	}
}

// ModelView builds the model-view matrix: pan and zoom as translation
// (zoom as the depth offset -cameraDistance/zoom), then the Y rotation,
// then X, then Z.
func (v *Viewport) ModelView() math.Mat4 {
	mv := math.Translate(v.PanX, v.PanY, -cameraDistance/v.Zoom)
	mv = mv.Mul(math.RotateX(radians(v.RotationX)))
	mv = mv.Mul(math.RotateY(radians(v.RotationY)))
	if v.RotationZ != 0 {
		mv = mv.Mul(math.RotateZ(radians(v.RotationZ)))
	}
	return mv
}

// Projection builds the perspective projection for the given canvas
// aspect ratio (width/height).
func (v *Viewport) Projection(aspect float32) math.Mat4 {
	return math.Perspective(fovY, aspect, near, far)
}

func radians(deg float32) float32 {
	return deg * gomath.Pi / 180.0
}
