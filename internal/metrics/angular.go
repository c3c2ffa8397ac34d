package metrics

import (
	"github.com/san-kum/rigidsim/internal/particle"
)

// AngularMomentum reports the magnitude of the total angular momentum
// about the origin at the last observation. The orbital part sums
// m (r × v) over centrals and free particles; the spin part adds m ω
// for centrals, matching the integrator's mass-as-inertia convention.
type AngularMomentum struct {
	name string
	last float64
}

func NewAngularMomentum() *AngularMomentum {
	return &AngularMomentum{name: "angular_momentum"}
}

func (a *AngularMomentum) Name() string { return a.name }

func (a *AngularMomentum) Observe(snap *particle.Snapshot, buf *particle.ForceBuffer, t float64) {
	var l particle.Vec3
	for i := 0; i < snap.N; i++ {
		bt := snap.Body[i]
		if bt != particle.NoBody && snap.Tag[i] != bt {
			continue
		}
		m := snap.Mass[i]
		l = l.Add(snap.Pos[i].Cross(snap.Vel[i]).Scale(m))
		if bt != particle.NoBody {
			l = l.Add(snap.AngVel[i].Scale(m))
		}
	}
	a.last = l.Norm()
}

func (a *AngularMomentum) Value() float64 { return a.last }

func (a *AngularMomentum) Reset() { a.last = 0 }
