package metrics

import "github.com/san-kum/physplay/internal/sim"

// MeanDensity averages the per-step mean particle density over all
// observations.
type MeanDensity struct {
	total   float64
	samples int
}

func NewMeanDensity() *MeanDensity { return &MeanDensity{} }

func (d *MeanDensity) Name() string { return "mean_density" }

func (d *MeanDensity) Observe(tpl sim.Template, t float64) {
	if _, ok := tpl.(FluidSource); !ok {
		return
	}
	if s, ok := Measure(tpl); ok {
		d.total += s.MeanDensity
		d.samples++
	}
}

func (d *MeanDensity) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.total / float64(d.samples)
}

func (d *MeanDensity) Reset() {
	d.total = 0
	d.samples = 0
}

// Contacts reports the number of colliding pairs in the last rigid substep.
type Contacts struct {
	current int
}

func NewContacts() *Contacts { return &Contacts{} }

func (c *Contacts) Name() string { return "contacts" }

func (c *Contacts) Observe(tpl sim.Template, t float64) {
	if _, ok := tpl.(RigidSource); !ok {
		return
	}
	if s, ok := Measure(tpl); ok {
		c.current = s.Contacts
	}
}

func (c *Contacts) Value() float64 { return float64(c.current) }

func (c *Contacts) Reset() { c.current = 0 }

// Default returns a fresh instance of every metric.
func Default() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewMomentum(),
		NewMaxSpeed(),
		NewStability(500),
		NewMeanDensity(),
		NewContacts(),
	}
}
