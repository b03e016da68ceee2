package core

import "time"

// DefaultMaxStep bounds the simulated time a single tick may cover, so a
// stalled host does not trigger a burst of catch-up work.
const DefaultMaxStep = 0.1

// Clock turns the host's monotonic timestamps into clamped per-tick deltas.
type Clock struct {
	maxStep float64
	last    float64
}

// NewClock constructs a Clock with the given step cap in seconds.
func NewClock(maxStep float64) *Clock {
	if maxStep <= 0 {
		maxStep = DefaultMaxStep
	}
	return &Clock{maxStep: maxStep}
}

// Advance records now and returns min(now-last, maxStep). The result is
// negative or zero when the host repeats or rewinds a timestamp.
func (c *Clock) Advance(now float64) float64 {
	delta := now - c.last
	if delta > c.maxStep {
		delta = c.maxStep
	}
	c.last = now
	return delta
}

// Last returns the most recent timestamp passed to Advance.
func (c *Clock) Last() float64 { return c.last }

// MaxStep returns the configured step cap.
func (c *Clock) MaxStep() float64 { return c.maxStep }

// Seconds converts a wall-clock instant into float seconds for Effect.Tick.
func Seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// FixedStep paces a host loop at a steady frames-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given FPS.
func NewFixedStep(fps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetFPS(fps)
	fs.accumulator = fs.step
	return fs
}

// SetFPS changes the frame rate.
func (f *FixedStep) SetFPS(fps int) {
	if fps <= 0 {
		fps = 60
	}
	f.step = time.Second / time.Duration(fps)
}

// Step returns the frame duration.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether a frame is due at now. At most one frame is
// reported per call; leftover time carries over to the next call.
func (f *FixedStep) ShouldStep(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}

// Timeline maps host wall time to effect time, hiding the time spent paused
// so an effect resumes where it stopped.
type Timeline struct {
	offset   float64
	last     float64
	started  bool
	paused   bool
	stepOnce bool
}

// Paused reports whether the timeline is paused.
func (t *Timeline) Paused() bool { return t.paused }

// TogglePause pauses or resumes the timeline.
func (t *Timeline) TogglePause() {
	t.paused = !t.paused
	t.stepOnce = false
}

// StepOnce lets exactly one frame through while paused.
func (t *Timeline) StepOnce() {
	if t.paused {
		t.stepOnce = true
	}
}

// Advance records the wall time now and reports the effect time to tick
// to. ok is false while paused.
func (t *Timeline) Advance(now float64) (effectNow float64, ok bool) {
	if !t.started {
		t.last, t.started = now, true
	}
	if t.paused && !t.stepOnce {
		t.offset += now - t.last
		t.last = now
		return now - t.offset, false
	}
	t.stepOnce = false
	t.last = now
	return now - t.offset, true
}
