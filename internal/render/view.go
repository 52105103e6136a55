package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/carelight/volview/internal/engine/framebuffer"
	"github.com/carelight/volview/internal/volume"
)

// View is the volumetric view instance handed to the surrounding UI:
// it owns the active Volume, the GPU resources rendering it, the
// camera, and the frame scheduler. One View per rendering surface.
type View struct {
	log *zap.Logger

	renderer *Renderer
	viewport *Viewport
	sched    *Scheduler
	driver   *Driver

	settings Settings
	vol      *volume.Volume

	width  int
	height int

	guard loadGuard
}

// loadGuard issues generation tokens for study loads so a slow load
// that finishes after a newer one began is recognized and dropped
// instead of uploaded.
type loadGuard struct {
	generation uint64
}

// Begin starts a new load and returns its token, superseding all
// earlier loads.
func (g *loadGuard) Begin() uint64 {
	g.generation++
	return g.generation
}

// Stale reports whether the token belongs to a superseded load.
func (g *loadGuard) Stale(gen uint64) bool {
	return gen != g.generation
}

// NewView creates the view and its GPU resources. Requires a current
// GL context. On ProgramBuildError the volumetric view is unavailable
// and the caller falls back to a 2D-only presentation.
func NewView(width, height int, settings Settings, log *zap.Logger) (*View, error) {
	if log == nil {
		log = zap.NewNop()
	}

	renderer, err := NewRenderer(log)
	if err != nil {
		return nil, err
	}

	viewport := NewViewport()
	sched := NewScheduler()

	return &View{
		log:      log,
		renderer: renderer,
		viewport: viewport,
		sched:    sched,
		driver:   NewDriver(viewport, sched),
		settings: settings.Clamped(),
		width:    width,
		height:   height,
	}, nil
}

// BeginLoad marks the start of a study load and returns its
// generation token.
func (v *View) BeginLoad() uint64 {
	return v.guard.Begin()
}

// CompleteLoad applies an assembled volume if it still belongs to the
// newest load; older results are dropped. Returns whether the volume
// was applied.
func (v *View) CompleteLoad(gen uint64, vol *volume.Volume) (bool, error) {
	if v.guard.Stale(gen) {
		v.log.Info("discarding stale volume load",
			zap.Uint64("generation", gen),
			zap.Uint64("current", v.guard.generation),
		)
		return false, nil
	}

	atlas := volume.BuildAtlas(vol)
	if err := v.renderer.UploadAtlas(atlas); err != nil {
		return false, err
	}

	v.vol = vol
	v.sched.Invalidate()
	v.log.Info("volume ready",
		zap.Int("width", vol.Width),
		zap.Int("height", vol.Height),
		zap.Int("depth", vol.Depth),
		zap.Uint16("min", vol.MinValue),
		zap.Uint16("max", vol.MaxValue),
	)
	return true, nil
}

// Volume returns the active volume, or nil before the first load.
func (v *View) Volume() *volume.Volume {
	return v.vol
}

// Driver returns the interaction driver for the windowing layer.
func (v *View) Driver() *Driver {
	return v.driver
}

// Viewport returns the camera state.
func (v *View) Viewport() *Viewport {
	return v.viewport
}

// Scheduler returns the frame scheduler.
func (v *View) Scheduler() *Scheduler {
	return v.sched
}

// Settings returns the current render settings.
func (v *View) Settings() Settings {
	return v.settings
}

// SetSettings replaces the render settings, clamped into range. Takes
// effect on the next rendered frame.
func (v *View) SetSettings(s Settings) {
	v.settings = s.Clamped()
	v.sched.Invalidate()
}

// Reset restores the default viewport state.
func (v *View) Reset() {
	v.viewport.Reset()
	v.sched.Invalidate()
}

// Resize tracks the drawable size for the projection aspect ratio.
func (v *View) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	v.sched.Invalidate()
}

// RenderFrame draws one frame into the current render target.
func (v *View) RenderFrame() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	aspect := float32(v.width) / float32(v.height)
	v.renderer.Draw(
		v.viewport.ModelView(),
		v.viewport.Projection(aspect),
		v.settings,
		v.sched.StepSize(),
	)
}

// Screenshot renders the current state into an offscreen framebuffer
// and returns it PNG-encoded. The pixel rows are flipped because the
// GL origin is bottom-left.
func (v *View) Screenshot() ([]byte, error) {
	fb, err := framebuffer.New(int32(v.width), int32(v.height))
	if err != nil {
		return nil, fmt.Errorf("screenshot framebuffer: %w", err)
	}
	defer fb.Destroy()

	restore := fb.Bind()
	fb.Clear(0, 0, 0, 1)
	aspect := float32(v.width) / float32(v.height)
	v.renderer.Draw(
		v.viewport.ModelView(),
		v.viewport.Projection(aspect),
		v.settings,
		stepSizeIdle,
	)
	pixels := fb.ReadPixels()
	restore()

	img := image.NewRGBA(image.Rect(0, 0, v.width, v.height))
	rowSize := v.width * 4
	for y := 0; y < v.height; y++ {
		srcY := v.height - 1 - y
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[srcY*rowSize:srcY*rowSize+rowSize])
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Release frees the GPU resources. Must be called on teardown; GL
// objects do not go away with the Go values that name them.
func (v *View) Release() {
	v.renderer.Release()
	v.vol = nil
}
