// Package audio plays the short pop that accompanies each new firework.
package audio

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	popDuration = 180 * time.Millisecond
	popAttack   = 4 * time.Millisecond
	popRelease  = 150 * time.Millisecond
	thumpFreq   = 70.0
)

// noise is a finite white-noise source. A nil rng gives a silent stream of
// the same length.
type noise struct {
	rng      *rand.Rand
	position int
	total    int
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if n.position >= n.total {
			return i, i > 0
		}
		var v float64
		if n.rng != nil {
			v = n.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v
		n.position++
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// sine is a finite sine oscillator.
type sine struct {
	freq     float64
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0], samples[i][1] = v, v
		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// envelope ramps a stream up over the attack and down over the release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.position >= start && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func shaped(s beep.Streamer, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(popAttack),
		release:  rate.N(popRelease),
		total:    rate.N(popDuration),
	}
}

// volume wraps s in a linear gain; zero or less is silent.
func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// PopSound builds one pop: a noise crack over a low thump.
func PopSound(rate beep.SampleRate, gain float64, rng *rand.Rand) beep.Streamer {
	total := rate.N(popDuration)
	crack := shaped(&noise{rng: rng, total: total}, rate)
	thump := shaped(&sine{freq: thumpFreq, total: total, rate: rate}, rate)
	return volume(beep.Mix(volume(crack, 0.6), volume(thump, 0.4)), gain)
}

// Popper owns the speaker mixer. A nil or uninitialised Popper is silent, so
// hosts can call Pop unconditionally.
type Popper struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	gain        float64
	rng         *rand.Rand
	initialized bool
}

// NewPopper creates a popper with the given linear gain in [0, 1].
func NewPopper(gain float64, seed int64) *Popper {
	return &Popper{
		mixer: &beep.Mixer{},
		gain:  math.Min(math.Max(gain, 0), 1),
		rng:   rand.New(rand.NewPCG(uint64(seed), 0xb00b5)),
	}
}

// Init opens the audio device. Callers treat a failure as "run muted".
func (p *Popper) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Pop queues one pop sound.
func (p *Popper) Pop() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	s := PopSound(sampleRate, p.gain, p.rng)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences anything still playing.
func (p *Popper) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
