package metrics

import (
	"github.com/san-kum/rigidsim/internal/particle"
)

// MomentumDrift tracks the worst deviation of total linear momentum
// from its initial value. Only centrals and free particles contribute;
// constituents carry no independent momentum.
type MomentumDrift struct {
	name     string
	initial  particle.Vec3
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(snap *particle.Snapshot, buf *particle.ForceBuffer, t float64) {
	p := totalMomentum(snap)

	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	drift := p.Sub(m.initial).Norm()
	if drift > m.maxDrift {
		m.maxDrift = drift
	}
}

func (m *MomentumDrift) Value() float64 {
	return m.maxDrift
}

func (m *MomentumDrift) Reset() {
	m.initial = particle.Vec3{}
	m.maxDrift = 0
	m.samples = 0
}

func totalMomentum(snap *particle.Snapshot) particle.Vec3 {
	var p particle.Vec3
	for i := 0; i < snap.N; i++ {
		t := snap.Body[i]
		if t != particle.NoBody && snap.Tag[i] != t {
			continue
		}
		p = p.Add(snap.Vel[i].Scale(snap.Mass[i]))
	}
	return p
}
