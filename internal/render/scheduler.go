package render

// Ray step sizes. Interaction trades march resolution for frame rate;
// the idle loop runs the fine step continuously.
const (
	stepSizeInteracting = 0.01
	stepSizeIdle        = 0.005
)

// State is the scheduler's interaction state.
type State int

const (
	// StateIdle renders continuously at the fine step size.
	StateIdle State = iota
	// StateInteracting pauses the continuous loop and renders exactly
	// once per camera or settings change, at the coarse step size.
	StateInteracting
)

func (s State) String() string {
	if s == StateInteracting {
		return "interacting"
	}
	return "idle"
}

// Scheduler decides, each tick, whether a frame should be drawn. It
// exists so expensive high-quality frames are not wasted on states that
// the next drag delta immediately supersedes.
type Scheduler struct {
	state       State
	frameWanted bool
}

// NewScheduler starts idle with one frame requested, so the first tick
// draws even before any event arrives.
func NewScheduler() *Scheduler {
	return &Scheduler{frameWanted: true}
}

// State returns the current interaction state.
func (s *Scheduler) State() State {
	return s.state
}

// BeginInteraction enters the interacting state (pointer down).
func (s *Scheduler) BeginInteraction() {
	s.state = StateInteracting
	s.frameWanted = true
}

// EndInteraction returns to idle (pointer up), resuming the continuous
// loop.
func (s *Scheduler) EndInteraction() {
	s.state = StateIdle
	s.frameWanted = true
}

// Invalidate requests a single redraw for a state change. Redundant
// while idle, where every tick renders anyway.
func (s *Scheduler) Invalidate() {
	s.frameWanted = true
}

// ShouldRender reports whether this tick should draw a frame, consuming
// any pending single-frame request.
func (s *Scheduler) ShouldRender() bool {
	if s.state == StateIdle {
		s.frameWanted = false
		return true
	}
	if s.frameWanted {
		s.frameWanted = false
		return true
	}
	return false
}

// StepSize returns the march step for the current state: coarse while
// interacting, fine at rest.
func (s *Scheduler) StepSize() float32 {
	if s.state == StateInteracting {
		return stepSizeInteracting
	}
	return stepSizeIdle
}
