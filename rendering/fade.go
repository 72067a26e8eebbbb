package rendering

// Fade drives the cross-fade between the outgoing and incoming scene on a
// rebuild. It is pure timing state; the host advances it from its frame
// callback and applies the two alphas when compositing.
type Fade struct {
	durationSec float64
	elapsedSec  float64
	active      bool
}

// Start begins a fade of the given duration. A non-positive duration
// completes instantly (animation disabled).
func (f *Fade) Start(durationMs int) {
	if durationMs <= 0 {
		f.active = false
		return
	}
	f.durationSec = float64(durationMs) / 1000
	f.elapsedSec = 0
	f.active = true
}

// Cancel stops the fade immediately. A new render cancels any tween
// targeting the incoming or outgoing layer to prevent flicker.
func (f *Fade) Cancel() {
	f.active = false
}

// Active reports whether a fade is in progress.
func (f *Fade) Active() bool { return f.active }

// Update advances the fade by dt seconds and reports whether it completed on
// this tick.
func (f *Fade) Update(dt float64) bool {
	if !f.active {
		return false
	}
	f.elapsedSec += dt
	if f.elapsedSec >= f.durationSec {
		f.active = false
		return true
	}
	return false
}

// Alphas returns the (incoming, outgoing) opacities. Outside of a fade the
// incoming scene is fully opaque.
func (f *Fade) Alphas() (in, out float64) {
	if !f.active || f.durationSec <= 0 {
		return 1, 0
	}
	t := f.elapsedSec / f.durationSec
	if t > 1 {
		t = 1
	}
	return t, 1 - t
}
