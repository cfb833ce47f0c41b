package metrics

import (
	"math"

	"github.com/san-kum/physplay/internal/sim"
)

// KineticEnergy reports the most recent total kinetic energy.
type KineticEnergy struct {
	current float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(tpl sim.Template, t float64) {
	if s, ok := Measure(tpl); ok {
		k.current = s.KineticEnergy
	}
}

func (k *KineticEnergy) Value() float64 { return k.current }

func (k *KineticEnergy) Reset() { k.current = 0 }

// EnergyDrift tracks the largest relative change in kinetic energy since the
// first observation.
type EnergyDrift struct {
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(tpl sim.Template, t float64) {
	s, ok := Measure(tpl)
	if !ok {
		return
	}
	if e.samples == 0 {
		e.initialEnergy = s.KineticEnergy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(s.KineticEnergy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
