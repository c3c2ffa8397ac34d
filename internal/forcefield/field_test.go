package forcefield

import (
	"math"
	"testing"

	"github.com/san-kum/rigidsim/internal/box"
	"github.com/san-kum/rigidsim/internal/particle"
)

func TestTrapForce(t *testing.T) {
	snap := particle.NewSnapshot(1, 0, 1)
	snap.Pos[0] = particle.Vec3{2, 0, 0}
	buf := particle.NewForceBuffer(1)

	NewTrap(3).Apply(snap, buf)

	want := particle.Vec3{-6, 0, 0}
	if buf.Force[0] != want {
		t.Errorf("force %v, want %v", buf.Force[0], want)
	}
	if buf.Energy[0] != 6 {
		t.Errorf("energy %v, want 6", buf.Energy[0])
	}
	if got := buf.VirialAt(particle.VirialXX, 0); got != -12 {
		t.Errorf("virial xx %v, want -12", got)
	}
}

func TestFieldsSkipCentrals(t *testing.T) {
	snap := particle.NewSnapshot(2, 0, 2)
	snap.Body[0] = 0
	snap.Body[1] = 0
	snap.Pos[0] = particle.Vec3{1, 1, 1}
	snap.Pos[1] = particle.Vec3{2, 2, 2}

	bx := box.New(10, 10, 10)
	fields := []Field{
		NewTrap(1),
		NewGravity(9.8),
		NewSoftSphere(1, 1, bx),
	}

	for _, f := range fields {
		buf := particle.NewForceBuffer(2)
		f.Apply(snap, buf)
		if buf.Force[0] != (particle.Vec3{}) {
			t.Errorf("%s: central received a direct force %v", f.Name(), buf.Force[0])
		}
	}
}

func TestSoftSpherePairSymmetry(t *testing.T) {
	snap := particle.NewSnapshot(2, 0, 2)
	snap.Pos[0] = particle.Vec3{0, 0, 0}
	snap.Pos[1] = particle.Vec3{0.5, 0, 0}
	buf := particle.NewForceBuffer(2)

	NewSoftSphere(10, 1, box.New(10, 10, 10)).Apply(snap, buf)

	if buf.Force[0].Add(buf.Force[1]) != (particle.Vec3{}) {
		t.Errorf("pair forces not equal and opposite: %v vs %v", buf.Force[0], buf.Force[1])
	}
	// f = k (rc - d) = 10 * 0.5 on the separation axis.
	if math.Abs(buf.Force[0][0]+5) > 1e-12 {
		t.Errorf("force magnitude %v, want -5 on x", buf.Force[0][0])
	}
}

func TestSoftSphereExcludesSameBody(t *testing.T) {
	snap := particle.NewSnapshot(3, 0, 3)
	// One body: central 0, constituents 1 and 2, overlapping.
	snap.Body[0], snap.Body[1], snap.Body[2] = 0, 0, 0
	snap.Pos[1] = particle.Vec3{0.1, 0, 0}
	snap.Pos[2] = particle.Vec3{0.2, 0, 0}
	buf := particle.NewForceBuffer(3)

	NewSoftSphere(10, 1, box.New(10, 10, 10)).Apply(snap, buf)

	for i := 0; i < 3; i++ {
		if buf.Force[i] != (particle.Vec3{}) {
			t.Errorf("intra-body pair produced force on %d: %v", i, buf.Force[i])
		}
	}
}

func TestSoftSphereMinimumImage(t *testing.T) {
	snap := particle.NewSnapshot(2, 0, 2)
	snap.Pos[0] = particle.Vec3{-4.9, 0, 0}
	snap.Pos[1] = particle.Vec3{4.9, 0, 0} // 0.2 apart through the boundary
	buf := particle.NewForceBuffer(2)

	NewSoftSphere(10, 1, box.New(10, 10, 10)).Apply(snap, buf)

	if buf.Force[0].Norm() == 0 {
		t.Error("periodic neighbors did not interact")
	}
}

func TestNewUnknownField(t *testing.T) {
	if _, err := New("plasma", 1, box.New(1, 1, 1)); err == nil {
		t.Error("expected error for unknown field")
	}
}
