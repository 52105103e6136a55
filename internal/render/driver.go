package render

// Wheel zoom factors per notch.
const (
	wheelZoomIn  = 1.1
	wheelZoomOut = 0.9
)

// Driver translates pointer gestures into viewport mutations and
// scheduler transitions. It is deliberately free of any event-system
// types; the windowing layer feeds it plain deltas.
type Driver struct {
	viewport *Viewport
	sched    *Scheduler

	dragging bool
}

// NewDriver wires a driver to the given viewport and scheduler.
func NewDriver(viewport *Viewport, sched *Scheduler) *Driver {
	return &Driver{viewport: viewport, sched: sched}
}

// PointerDown starts a drag and suspends the continuous render loop.
func (d *Driver) PointerDown() {
	d.dragging = true
	d.sched.BeginInteraction()
}

// PointerMove applies a drag delta in pixels: rotation normally, pan
// when the modifier is held. Ignored when no drag is active.
func (d *Driver) PointerMove(dx, dy float32, pan bool) {
	if !d.dragging {
		return
	}
	if pan {
		d.viewport.Pan(dx, dy)
	} else {
		d.viewport.Rotate(dx, dy)
	}
	d.sched.Invalidate()
}

// PointerUp ends the drag and resumes the continuous loop.
func (d *Driver) PointerUp() {
	if !d.dragging {
		return
	}
	d.dragging = false
	d.sched.EndInteraction()
}

// Wheel applies a zoom notch; positive is toward the viewer. Works in
// either state.
func (d *Driver) Wheel(notches float32) {
	if notches > 0 {
		d.viewport.ZoomBy(wheelZoomIn)
	} else if notches < 0 {
		d.viewport.ZoomBy(wheelZoomOut)
	} else {
		return
	}
	d.sched.Invalidate()
}

// Dragging reports whether a pointer drag is in progress.
func (d *Driver) Dragging() bool {
	return d.dragging
}
