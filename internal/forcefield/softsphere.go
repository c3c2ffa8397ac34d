package forcefield

import (
	"github.com/san-kum/rigidsim/internal/box"
	"github.com/san-kum/rigidsim/internal/particle"
)

// SoftSphere is a repulsive harmonic contact force between all particle
// pairs closer than the cutoff, with minimum-image separations and
// intra-body pairs excluded (body members are rigid relative to each
// other). The O(N²) pair loop is fine at demo scale; production engines
// bring their own neighbor lists.
type SoftSphere struct {
	K      float64
	Cutoff float64
	box    box.Box
}

func NewSoftSphere(k, cutoff float64, bx box.Box) *SoftSphere {
	return &SoftSphere{K: k, Cutoff: cutoff, box: bx}
}

func (ss *SoftSphere) Name() string { return "softsphere" }

func (ss *SoftSphere) Apply(snap *particle.Snapshot, buf *particle.ForceBuffer) {
	n := snap.N
	rc := ss.Cutoff

	for i := 0; i < n; i++ {
		if central(snap, i) {
			continue
		}
		for j := i + 1; j < n; j++ {
			if central(snap, j) {
				continue
			}
			if snap.Body[i] != particle.NoBody && snap.Body[i] == snap.Body[j] {
				continue
			}

			dr := ss.box.MinImage(snap.Pos[i].Sub(snap.Pos[j]))
			d := dr.Norm()
			if d >= rc || d == 0 {
				continue
			}

			// f = k (rc - d) along dr, on i; equal and opposite on j.
			mag := ss.K * (rc - d) / d
			f := dr.Scale(mag)
			buf.Force[i] = buf.Force[i].Add(f)
			buf.Force[j] = buf.Force[j].Sub(f)

			u := 0.5 * ss.K * (rc - d) * (rc - d)
			buf.Energy[i] += 0.5 * u
			buf.Energy[j] += 0.5 * u

			// Half the pair virial to each side.
			half := f.Scale(0.5)
			addVirial(buf, i, half, dr)
			addVirial(buf, j, half, dr)
		}
	}
}
