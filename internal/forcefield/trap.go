package forcefield

import (
	"github.com/san-kum/rigidsim/internal/particle"
)

// Trap is an isotropic harmonic well centered on the origin:
// f = -k r, u = k r² / 2. Centrals are skipped; they receive their
// body's aggregate from the reducer.
type Trap struct {
	K float64
}

func NewTrap(k float64) *Trap {
	return &Trap{K: k}
}

func (tr *Trap) Name() string { return "trap" }

func (tr *Trap) Apply(snap *particle.Snapshot, buf *particle.ForceBuffer) {
	for i := 0; i < snap.N; i++ {
		if central(snap, i) {
			continue
		}
		r := snap.Pos[i]
		f := r.Scale(-tr.K)
		buf.Force[i] = buf.Force[i].Add(f)
		buf.Energy[i] += 0.5 * tr.K * r.Dot(r)
		addVirial(buf, i, f, r)
	}
}
