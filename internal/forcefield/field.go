package forcefield

import (
	"fmt"

	"github.com/san-kum/rigidsim/internal/box"
	"github.com/san-kum/rigidsim/internal/particle"
)

// Field writes per-particle force, energy, and virial contributions
// into the force buffer. Fields act on constituents and free particles;
// the reducer folds constituent contributions onto centrals afterwards.
type Field interface {
	Name() string
	Apply(snap *particle.Snapshot, buf *particle.ForceBuffer)
}

// New resolves a field by name.
func New(name string, k float64, bx box.Box) (Field, error) {
	switch name {
	case "trap":
		return NewTrap(k), nil
	case "gravity":
		return NewGravity(k), nil
	case "softsphere":
		return NewSoftSphere(k, 1.0, bx), nil
	default:
		return nil, fmt.Errorf("forcefield: unknown field %q (available: trap, gravity, softsphere)", name)
	}
}

// central reports whether index i is a body's central particle.
func central(snap *particle.Snapshot, i int) bool {
	t := snap.Body[i]
	return t != particle.NoBody && snap.Tag[i] == t
}

// addVirial accumulates the per-particle virial f⊗r.
func addVirial(buf *particle.ForceBuffer, i int, f, r particle.Vec3) {
	buf.AddVirial(particle.VirialXX, i, f[0]*r[0])
	buf.AddVirial(particle.VirialXY, i, f[0]*r[1])
	buf.AddVirial(particle.VirialXZ, i, f[0]*r[2])
	buf.AddVirial(particle.VirialYY, i, f[1]*r[1])
	buf.AddVirial(particle.VirialYZ, i, f[1]*r[2])
	buf.AddVirial(particle.VirialZZ, i, f[2]*r[2])
}
