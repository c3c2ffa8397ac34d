package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/box"
	"github.com/san-kum/rigidsim/internal/compute"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/forcefield"
	"github.com/san-kum/rigidsim/internal/particle"
	"github.com/san-kum/rigidsim/internal/rigid"
)

// System bundles everything one simulation needs: the particle state,
// the body bookkeeping, the two rigid passes, a force field, and an
// integrator.
type System struct {
	Box        box.Box
	Snap       *particle.Snapshot
	Buf        *particle.ForceBuffer
	Templates  *body.TemplateStore
	Mol        *body.MoleculeIndex
	Field      forcefield.Field
	Reducer    *rigid.Reducer
	Spreader   *rigid.Spreader
	Integrator Integrator
}

// Build assembles a System from configuration: linear-chain bodies on a
// cubic lattice, seeded random velocities, resolved sizing, and the
// selected compute backend.
func Build(cfg *config.Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bx := box.New(cfg.Box.Lx, cfg.Box.Ly, cfg.Box.Lz)
	if err := bx.Validate(); err != nil {
		return nil, err
	}

	templates := body.NewTemplateStore()
	templates.SetType(0, chainSites(cfg.Bodies.Sites, cfg.Bodies.Spacing))
	templates.Freeze()

	snap, err := buildSnapshot(cfg, bx)
	if err != nil {
		return nil, err
	}

	mol, err := body.Build(snap)
	if err != nil {
		return nil, err
	}

	backend, err := compute.Select(cfg.Backend)
	if err != nil {
		return nil, err
	}

	sizing, err := rigid.ResolveSizing(rigid.SizingConfig{
		PreferredWidth: cfg.Sizing.PreferredWidth,
		MaxWidth:       cfg.Sizing.MaxWidth,
		BodiesPerGroup: cfg.Sizing.BodiesPerGroup,
		ScratchBudget:  cfg.Sizing.ScratchBudget,
		ScratchPerLane: rigid.ReducerScratchPerLane(),
	})
	if err != nil {
		return nil, err
	}

	field, err := forcefield.New(cfg.ForceField.Name, cfg.ForceField.K, bx)
	if err != nil {
		return nil, err
	}

	sys := &System{
		Box:        bx,
		Snap:       snap,
		Buf:        particle.NewForceBuffer(snap.Total()),
		Templates:  templates,
		Mol:        mol,
		Field:      field,
		Reducer:    rigid.NewReducer(mol, templates, sizing, backend),
		Spreader:   rigid.NewSpreader(templates, bx),
		Integrator: NewLeapfrog(),
	}

	// Initial propagation places every constituent at its template site.
	if err := sys.Spreader.Spread(snap, false); err != nil {
		return nil, err
	}
	return sys, nil
}

// chainSites lays sites on the x axis on both sides of the central.
func chainSites(n int, spacing float64) []body.Site {
	sites := make([]body.Site, n)
	for j := range sites {
		side := float64(j/2 + 1)
		if j%2 == 1 {
			side = -side
		}
		sites[j] = body.Site{
			Offset: particle.Vec3{side * spacing, 0, 0},
			Orient: particle.IdentityQuat(),
		}
	}
	return sites
}

func buildSnapshot(cfg *config.Config, bx box.Box) (*particle.Snapshot, error) {
	molSize := cfg.Bodies.Sites + 1
	n := cfg.Bodies.Count*molSize + cfg.Bodies.Free
	if n == 0 {
		return nil, fmt.Errorf("sim: empty system")
	}

	snap := particle.NewSnapshot(n, 0, n)
	rng := rand.New(rand.NewSource(cfg.Seed))

	// Centrals and free particles on a cubic lattice inside the box.
	nSlots := cfg.Bodies.Count + cfg.Bodies.Free
	side := int(math.Ceil(math.Cbrt(float64(nSlots))))
	cell := particle.Vec3{
		cfg.Box.Lx / float64(side),
		cfg.Box.Ly / float64(side),
		cfg.Box.Lz / float64(side),
	}

	place := func(slot int) particle.Vec3 {
		x := slot % side
		y := (slot / side) % side
		z := slot / (side * side)
		return particle.Vec3{
			(float64(x)+0.5)*cell[0] - cfg.Box.Lx/2,
			(float64(y)+0.5)*cell[1] - cfg.Box.Ly/2,
			(float64(z)+0.5)*cell[2] - cfg.Box.Lz/2,
		}
	}

	idx := 0
	for b := 0; b < cfg.Bodies.Count; b++ {
		centralTag := b * molSize
		snap.Pos[idx] = place(b)
		snap.Body[idx] = centralTag
		snap.Vel[idx] = randomVel(rng, 0.1)
		snap.AngVel[idx] = randomVel(rng, 0.1)
		idx++

		for s := 0; s < cfg.Bodies.Sites; s++ {
			// Positions are filled by the first spread pass.
			snap.Body[idx] = centralTag
			idx++
		}
	}
	for f := 0; f < cfg.Bodies.Free; f++ {
		snap.Pos[idx] = place(cfg.Bodies.Count + f)
		snap.Vel[idx] = randomVel(rng, 0.1)
		idx++
	}

	return snap, nil
}

func randomVel(rng *rand.Rand, scale float64) particle.Vec3 {
	return particle.Vec3{
		rng.NormFloat64() * scale,
		rng.NormFloat64() * scale,
		rng.NormFloat64() * scale,
	}
}
