package sim

import (
	"github.com/san-kum/rigidsim/internal/box"
	"github.com/san-kum/rigidsim/internal/particle"
)

// Integrator advances central and free-particle state from the folded
// accumulators. Constituents are never integrated; the spreader slaves
// them to their central afterwards.
type Integrator interface {
	Advance(snap *particle.Snapshot, buf *particle.ForceBuffer, bx box.Box, dt float64)
}

// Leapfrog is a kick-drift update with a first-order quaternion
// rotation step. Rotational inertia is the particle mass (demo-grade;
// a production integrator owns the real inertia tensor).
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog { return &Leapfrog{} }

func (lf *Leapfrog) Advance(snap *particle.Snapshot, buf *particle.ForceBuffer, bx box.Box, dt float64) {
	for i := 0; i < snap.N; i++ {
		t := snap.Body[i]
		if t != particle.NoBody && snap.Tag[i] != t {
			continue
		}

		m := snap.Mass[i]
		snap.Vel[i] = snap.Vel[i].Add(buf.Force[i].Scale(dt / m))
		snap.Pos[i] = snap.Pos[i].Add(snap.Vel[i].Scale(dt))
		snap.Pos[i], snap.Image[i] = bx.Wrap(snap.Pos[i], snap.Image[i])

		if t == particle.NoBody {
			continue
		}

		snap.AngVel[i] = snap.AngVel[i].Add(buf.Torque[i].Scale(dt / m))
		w := snap.AngVel[i]
		wq := particle.Quat{0, w[0], w[1], w[2]}
		q := snap.Orient[i]
		dq := wq.Mul(q)
		for c := 0; c < 4; c++ {
			q[c] += 0.5 * dt * dq[c]
		}
		snap.Orient[i] = q.Normalize()
	}
}
