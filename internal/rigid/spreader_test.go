package rigid

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/box"
	"github.com/san-kum/rigidsim/internal/particle"
)

func dimerSetup(t *testing.T, offset particle.Vec3) (*particle.Snapshot, *Spreader) {
	t.Helper()

	snap := particle.NewSnapshot(2, 0, 2)
	snap.Body[0] = 0
	snap.Body[1] = 0

	templates := body.NewTemplateStore()
	templates.SetType(0, []body.Site{{Offset: offset, Orient: particle.IdentityQuat()}})
	templates.Freeze()

	return snap, NewSpreader(templates, box.New(10, 10, 10))
}

func TestSpreadIdentityOrientation(t *testing.T) {
	offset := particle.Vec3{0.5, 0.25, -0.125}
	snap, sp := dimerSetup(t, offset)
	snap.Pos[0] = particle.Vec3{1, 2, 3}

	if err := sp.Spread(snap, false); err != nil {
		t.Fatalf("spread: %v", err)
	}

	want := snap.Pos[0].Add(offset)
	if snap.Pos[1] != want {
		t.Errorf("constituent at %v, want central + offset = %v", snap.Pos[1], want)
	}
	if snap.Orient[1] != particle.IdentityQuat() {
		t.Errorf("constituent orientation %v, want identity", snap.Orient[1])
	}
}

func TestSpreadRotatedCentral(t *testing.T) {
	snap, sp := dimerSetup(t, particle.Vec3{1, 0, 0})
	snap.Orient[0] = particle.FromAxisAngle(particle.Vec3{0, 0, 1}, math.Pi/2)

	if err := sp.Spread(snap, false); err != nil {
		t.Fatalf("spread: %v", err)
	}

	// 90 degrees about z carries (1,0,0) to (0,1,0).
	want := particle.Vec3{0, 1, 0}
	if snap.Pos[1].Sub(want).Norm() > 1e-12 {
		t.Errorf("constituent at %v, want %v", snap.Pos[1], want)
	}
}

func TestSpreadWrapIncrementsImage(t *testing.T) {
	snap, sp := dimerSetup(t, particle.Vec3{0.5, 0, 0})
	snap.Pos[0] = particle.Vec3{4.8, 0, 0}
	snap.Image[0] = [3]int{2, 0, 0}

	if err := sp.Spread(snap, false); err != nil {
		t.Fatalf("spread: %v", err)
	}

	// 4.8 + 0.5 = 5.3 leaves the primary image of a 10-box; one wrap.
	if math.Abs(snap.Pos[1][0]-(-4.7)) > 1e-12 {
		t.Errorf("constituent x %v, want -4.7", snap.Pos[1][0])
	}
	if snap.Image[1] != [3]int{3, 0, 0} {
		t.Errorf("constituent image %v, want central image +1 in x", snap.Image[1])
	}
}

func TestSpreadOrientationComposition(t *testing.T) {
	snap := particle.NewSnapshot(2, 0, 2)
	snap.Body[0] = 0
	snap.Body[1] = 0

	siteOrient := particle.FromAxisAngle(particle.Vec3{1, 0, 0}, math.Pi/4)
	templates := body.NewTemplateStore()
	templates.SetType(0, []body.Site{{Offset: particle.Vec3{1, 0, 0}, Orient: siteOrient}})
	templates.Freeze()

	sp := NewSpreader(templates, box.New(10, 10, 10))
	central := particle.FromAxisAngle(particle.Vec3{0, 0, 1}, math.Pi/3)
	snap.Orient[0] = central

	if err := sp.Spread(snap, false); err != nil {
		t.Fatalf("spread: %v", err)
	}

	want := central.Mul(siteOrient)
	for c := 0; c < 4; c++ {
		if math.Abs(snap.Orient[1][c]-want[c]) > 1e-12 {
			t.Fatalf("constituent orientation %v, want central*site = %v", snap.Orient[1], want)
		}
	}
}

func TestSpreadSkipsFreeAndCentral(t *testing.T) {
	snap := particle.NewSnapshot(3, 0, 3)
	snap.Body[0] = 0
	snap.Body[1] = 0
	// Index 2 stays a free particle, deliberately outside the box.
	snap.Pos[0] = particle.Vec3{1, 1, 1}
	snap.Pos[2] = particle.Vec3{7, 7, 7}

	templates := body.NewTemplateStore()
	templates.SetType(0, []body.Site{{Offset: particle.Vec3{1, 0, 0}, Orient: particle.IdentityQuat()}})
	templates.Freeze()
	sp := NewSpreader(templates, box.New(10, 10, 10))

	centralPos := snap.Pos[0]
	centralOrient := snap.Orient[0]
	freePos := snap.Pos[2]

	if err := sp.Spread(snap, false); err != nil {
		t.Fatalf("spread: %v", err)
	}

	if snap.Pos[0] != centralPos || snap.Orient[0] != centralOrient {
		t.Error("central particle was modified by propagation")
	}
	if snap.Pos[2] != freePos {
		t.Error("free particle was modified by propagation")
	}
}

func TestSpreadUnresolvableCentralIsNoop(t *testing.T) {
	// Constituent whose central is absent from local and ghost storage:
	// a documented skip, not a fault.
	snap := particle.NewSnapshot(1, 0, 5)
	snap.Tag[0] = 4
	snap.RTag[4] = 0
	snap.Body[0] = 3 // tag 3 resolves to NotLocal

	templates := body.NewTemplateStore()
	templates.SetType(0, []body.Site{{Offset: particle.Vec3{1, 0, 0}, Orient: particle.IdentityQuat()}})
	templates.Freeze()

	sp := NewSpreader(templates, box.New(10, 10, 10))
	before := snap.Pos[0]
	if err := sp.Spread(snap, false); err != nil {
		t.Fatalf("spread: %v", err)
	}
	if snap.Pos[0] != before {
		t.Error("particle with unresolvable central was modified")
	}
}

func TestSpreadRemoteFlag(t *testing.T) {
	// Central mirrored in the ghost region: processed only with remote.
	snap := particle.NewSnapshot(1, 1, 2)
	snap.Tag[0], snap.Tag[1] = 1, 0
	snap.RTag[0], snap.RTag[1] = 1, 0
	snap.Body[0], snap.Body[1] = 0, 0
	snap.Pos[1] = particle.Vec3{2, 2, 2}

	templates := body.NewTemplateStore()
	templates.SetType(0, []body.Site{{Offset: particle.Vec3{1, 0, 0}, Orient: particle.IdentityQuat()}})
	templates.Freeze()
	sp := NewSpreader(templates, box.New(10, 10, 10))

	before := snap.Pos[0]
	if err := sp.Spread(snap, false); err != nil {
		t.Fatalf("local-only spread: %v", err)
	}
	if snap.Pos[0] != before {
		t.Error("local-only pass used a ghost central")
	}

	if err := sp.Spread(snap, true); err != nil {
		t.Fatalf("remote spread: %v", err)
	}
	want := particle.Vec3{3, 2, 2}
	if snap.Pos[0] != want {
		t.Errorf("constituent at %v, want %v", snap.Pos[0], want)
	}
}

func TestSpreadMissingTemplateFails(t *testing.T) {
	snap := particle.NewSnapshot(2, 0, 2)
	snap.Body[0] = 0
	snap.Body[1] = 0

	templates := body.NewTemplateStore()
	templates.Freeze()
	sp := NewSpreader(templates, box.New(10, 10, 10))

	err := sp.Spread(snap, false)
	if !errors.Is(err, body.ErrNoTemplate) {
		t.Errorf("expected ErrNoTemplate, got %v", err)
	}
}
