package canvas

const (
	MinFPS     = 1
	MaxFPS     = 60
	DefaultFPS = 12
)

// Playback advances the selected frame at a fixed rate. Partial periods are
// carried between calls so jittery tick lengths do not drift the rate.
type Playback struct {
	FPS     float64
	Loop    bool
	Playing bool

	accum float64
}

// NewPlayback returns a stopped, looping playback at DefaultFPS.
func NewPlayback() Playback {
	return Playback{FPS: DefaultFPS, Loop: true}
}

// SetFPS clamps fps to [MinFPS, MaxFPS].
func (p *Playback) SetFPS(fps float64) {
	p.FPS = clampFPS(fps)
}

func clampFPS(fps float64) float64 {
	if fps < MinFPS {
		return MinFPS
	}
	if fps > MaxFPS {
		return MaxFPS
	}
	return fps
}

// Start begins playback from the current accumulator state.
func (p *Playback) Start() { p.Playing = true }

// Stop halts playback and drops any partial period.
func (p *Playback) Stop() {
	p.Playing = false
	p.accum = 0
}

// Toggle flips between playing and stopped.
func (p *Playback) Toggle() {
	if p.Playing {
		p.Stop()
		return
	}
	p.Start()
}

// Advance adds elapsed seconds and returns the frame index that follows
// current after every full period. Without Loop playback stops on the last
// frame.
func (p *Playback) Advance(elapsed float64, current, count int) int {
	if !p.Playing || count <= 1 || elapsed <= 0 {
		return current
	}
	period := 1 / clampFPS(p.FPS)
	p.accum += elapsed
	for p.accum >= period {
		p.accum -= period
		if current+1 < count {
			current++
			continue
		}
		if !p.Loop {
			p.Stop()
			return count - 1
		}
		current = 0
	}
	return current
}
