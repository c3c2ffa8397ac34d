package metrics

import (
	"github.com/san-kum/rigidsim/internal/particle"
)

// PotentialEnergy reports the mean total potential energy over a run.
type PotentialEnergy struct {
	name    string
	sum     float64
	samples int
}

func NewPotentialEnergy() *PotentialEnergy {
	return &PotentialEnergy{name: "potential_energy"}
}

func (e *PotentialEnergy) Name() string { return e.name }

func (e *PotentialEnergy) Observe(snap *particle.Snapshot, buf *particle.ForceBuffer, t float64) {
	total := 0.0
	for i := 0; i < snap.N; i++ {
		total += buf.Energy[i]
	}
	e.sum += total
	e.samples++
}

func (e *PotentialEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *PotentialEnergy) Reset() {
	e.sum = 0
	e.samples = 0
}

// MaxCentralForce reports the largest folded force magnitude seen on
// any central particle, a cheap stability indicator.
type MaxCentralForce struct {
	name string
	max  float64
}

func NewMaxCentralForce() *MaxCentralForce {
	return &MaxCentralForce{name: "max_central_force"}
}

func (f *MaxCentralForce) Name() string { return f.name }

func (f *MaxCentralForce) Observe(snap *particle.Snapshot, buf *particle.ForceBuffer, t float64) {
	for i := 0; i < snap.N; i++ {
		bt := snap.Body[i]
		if bt == particle.NoBody || snap.Tag[i] != bt {
			continue
		}
		if n := buf.Force[i].Norm(); n > f.max {
			f.max = n
		}
	}
}

func (f *MaxCentralForce) Value() float64 { return f.max }

func (f *MaxCentralForce) Reset() { f.max = 0 }
