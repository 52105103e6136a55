// Package viewer wires the window, input handling, and the volumetric
// view into the interactive main loop.
package viewer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/carelight/volview/internal/config"
	"github.com/carelight/volview/internal/engine/input"
	"github.com/carelight/volview/internal/engine/window"
	"github.com/carelight/volview/internal/render"
	"github.com/carelight/volview/internal/volume"
)

// Keyboard step for the opacity/threshold affordances.
const settingsNudge = 0.05

// Viewer owns the window, the volumetric view, and the event loop.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window *window.Window
	input  *input.Input
	view   *render.View

	running bool
}

// New creates the window, GL context, and volumetric view. A
// ProgramBuildError here means volumetric rendering is unavailable on
// this device; the caller reports it and exits rather than looping.
func New(cfg *config.Config, log *zap.Logger) (*Viewer, error) {
	v := &Viewer{cfg: cfg, log: log}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "volview",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	// GL function pointers need the context the window just created.
	if err := gl.Init(); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	settings, err := settingsFromConfig(cfg.Render)
	if err != nil {
		v.window.Close()
		return nil, err
	}

	v.view, err = render.NewView(cfg.Graphics.Width, cfg.Graphics.Height, settings, log)
	if err != nil {
		v.window.Close()
		return nil, err
	}

	v.input = input.New()
	return v, nil
}

func settingsFromConfig(rc config.RenderConfig) (render.Settings, error) {
	mode, err := render.ParseMode(rc.Mode)
	if err != nil {
		return render.Settings{}, err
	}
	cmap, err := render.ParseColorMap(rc.ColorMap)
	if err != nil {
		return render.Settings{}, err
	}
	return render.Settings{
		Mode:         mode,
		ColorMap:     cmap,
		Opacity:      rc.Opacity,
		Threshold:    rc.Threshold,
		WindowCenter: rc.WindowCenter,
		WindowWidth:  rc.WindowWidth,
	}.Clamped(), nil
}

// LoadStudy loads, assembles, and uploads the slice stack described by
// a manifest. A load that finishes after a newer one began is
// discarded by the view's generation guard.
func (v *Viewer) LoadStudy(ctx context.Context, manifestPath string) error {
	gen := v.view.BeginLoad()

	m, err := volume.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	loader := volume.NewLoader(volume.NewFileProvider(manifestPath, m), v.log)
	slices, err := loader.Load(ctx, m.SliceIDs())
	if err != nil {
		return fmt.Errorf("loading slices: %w", err)
	}

	vol, err := volume.Assemble(slices)
	if err != nil {
		return fmt.Errorf("assembling volume: %w", err)
	}

	applied, err := v.view.CompleteLoad(gen, vol)
	if err != nil {
		return fmt.Errorf("uploading volume: %w", err)
	}
	if !applied {
		v.log.Debug("study superseded before upload", zap.String("manifest", manifestPath))
	}
	return nil
}

// Run drives the event/render loop until quit.
func (v *Viewer) Run() error {
	v.running = true

	driver := v.view.Driver()
	sched := v.view.Scheduler()

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}

		for _, e := range v.input.Events() {
			switch e.Type {
			case input.EventWindowResize:
				v.view.Resize(e.Width, e.Height)

			case input.EventPointerDown:
				driver.PointerDown()

			case input.EventPointerMove:
				driver.PointerMove(float32(e.DeltaX), float32(e.DeltaY), e.Shift)

			case input.EventPointerUp:
				driver.PointerUp()

			case input.EventWheel:
				driver.Wheel(float32(e.WheelY))

			case input.EventKeyDown:
				v.handleKey(e.Key)
			}
		}

		if sched.ShouldRender() {
			v.view.RenderFrame()
			v.window.SwapBuffers()
			frameCount++
		} else {
			// Interacting with nothing new to draw; don't spin.
			time.Sleep(2 * time.Millisecond)
		}

		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("render loop",
				zap.Int("fps", frameCount),
				zap.String("state", sched.State().String()),
				zap.Float32("step", sched.StepSize()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleKey applies the keyboard affordances: reset, screenshot, mode
// and settings nudges.
func (v *Viewer) handleKey(key sdl.Scancode) {
	s := v.view.Settings()

	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false

	case sdl.SCANCODE_R:
		v.view.Reset()

	case sdl.SCANCODE_S:
		v.saveScreenshot()

	case sdl.SCANCODE_1:
		s.Mode = render.ModeVolume
		v.view.SetSettings(s)
	case sdl.SCANCODE_2:
		s.Mode = render.ModeMIP
		v.view.SetSettings(s)
	case sdl.SCANCODE_3:
		s.Mode = render.ModeSurface
		v.view.SetSettings(s)
	case sdl.SCANCODE_4:
		s.Mode = render.ModeRaycast
		v.view.SetSettings(s)

	case sdl.SCANCODE_LEFTBRACKET:
		s.Threshold -= settingsNudge
		v.view.SetSettings(s)
	case sdl.SCANCODE_RIGHTBRACKET:
		s.Threshold += settingsNudge
		v.view.SetSettings(s)

	case sdl.SCANCODE_MINUS:
		s.Opacity -= settingsNudge
		v.view.SetSettings(s)
	case sdl.SCANCODE_EQUALS:
		s.Opacity += settingsNudge
		v.view.SetSettings(s)
	}
}

func (v *Viewer) saveScreenshot() {
	data, err := v.view.Screenshot()
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}

	filename := fmt.Sprintf("volview_%s.png", time.Now().Format("2006-01-02_15-04-05"))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		v.log.Error("writing screenshot", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", filename))
}

// View exposes the volumetric view (for settings changes from
// surrounding UI).
func (v *Viewer) View() *render.View {
	return v.view
}

// Close releases GPU resources and the window, in that order: the GL
// context must still exist while the view tears down.
func (v *Viewer) Close() {
	if v.view != nil {
		v.view.Release()
	}
	if v.window != nil {
		v.window.Close()
	}
}
