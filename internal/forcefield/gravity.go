package forcefield

import (
	"github.com/san-kum/rigidsim/internal/particle"
)

// Gravity applies a uniform acceleration g along -z.
type Gravity struct {
	G float64
}

func NewGravity(g float64) *Gravity {
	return &Gravity{G: g}
}

func (gr *Gravity) Name() string { return "gravity" }

func (gr *Gravity) Apply(snap *particle.Snapshot, buf *particle.ForceBuffer) {
	for i := 0; i < snap.N; i++ {
		if central(snap, i) {
			continue
		}
		f := particle.Vec3{0, 0, -gr.G * snap.Mass[i]}
		buf.Force[i] = buf.Force[i].Add(f)
		buf.Energy[i] += gr.G * snap.Mass[i] * snap.Pos[i][2]
		addVirial(buf, i, f, snap.Pos[i])
	}
}
