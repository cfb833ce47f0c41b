package metrics

import "github.com/san-kum/physplay/internal/sim"

// Momentum reports the magnitude of the total linear momentum.
type Momentum struct {
	current float64
}

func NewMomentum() *Momentum { return &Momentum{} }

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Observe(tpl sim.Template, t float64) {
	if s, ok := Measure(tpl); ok {
		m.current = s.Momentum.Len()
	}
}

func (m *Momentum) Value() float64 { return m.current }

func (m *Momentum) Reset() { m.current = 0 }

// MaxSpeed is the highest speed seen since the last reset.
type MaxSpeed struct {
	peak float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(tpl sim.Template, t float64) {
	if s, ok := Measure(tpl); ok && s.MaxSpeed > m.peak {
		m.peak = s.MaxSpeed
	}
}

func (m *MaxSpeed) Value() float64 { return m.peak }

func (m *MaxSpeed) Reset() { m.peak = 0 }

// Stability is the fraction of observations in which every body or particle
// moved slower than threshold.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(tpl sim.Template, t float64) {
	sample, ok := Measure(tpl)
	if !ok {
		return
	}
	s.samples++
	if sample.MaxSpeed > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
