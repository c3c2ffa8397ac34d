package rigid

import (
	"errors"
	"fmt"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/compute"
	"github.com/san-kum/rigidsim/internal/particle"
)

// Reducer errors.
var (
	// ErrCentralNotLocal indicates a central outside the locally owned
	// range in a pass that required full locality.
	ErrCentralNotLocal = errors.New("rigid: central particle not locally owned")

	// ErrLocalIndex indicates a member whose tag-derived local index has
	// no template entry.
	ErrLocalIndex = errors.New("rigid: member local index outside template")
)

// scratchBytesPerLane is what one lane of the reducer needs: force (3),
// torque (3), virial (6), and energy (1) as float64.
const scratchBytesPerLane = 8 * 13

// ReduceOptions selects what a reduction pass consumes and zeroes.
type ReduceOptions struct {
	// ZeroForce zeroes each folded constituent's net force and potential
	// energy after folding, so the integrator cannot apply it twice.
	// Constituent torque is always zeroed regardless.
	ZeroForce bool

	// Virial also folds virial_corrected = virial − f⊗r onto the
	// central and zeroes the constituent's virial and force afterwards.
	Virial bool

	// RequireLocal makes a central resolving outside the locally owned
	// range a hard error instead of a skipped body. Set it for
	// single-domain runs, where an unresolvable central can only be a
	// bookkeeping bug.
	RequireLocal bool
}

// ReducerScratchPerLane reports the per-lane scratch requirement for
// sizing resolution.
func ReducerScratchPerLane() int { return scratchBytesPerLane }

// Reducer folds constituent force, torque, and virial onto each body's
// central particle. Bodies are processed in groups of
// sizing.BodiesPerGroup; within a group, each body owns a window of
// sizing.Window lanes that stride over its members, then combine their
// partial sums by a binary tree confined to the window.
type Reducer struct {
	mol       *body.MoleculeIndex
	templates *body.TemplateStore
	sizing    Sizing
	backend   compute.Backend
}

func NewReducer(mol *body.MoleculeIndex, templates *body.TemplateStore, sizing Sizing, backend compute.Backend) *Reducer {
	return &Reducer{mol: mol, templates: templates, sizing: sizing, backend: backend}
}

// bodyInfo is the per-body state resolved before the kernel runs, so
// the kernel phases have no error paths.
type bodyInfo struct {
	central  int
	tag      int
	orient   particle.Quat
	bodyType int
	skip     bool
}

// Reduce assigns to each central particle the exact sum of its
// constituents' net force and torque:
//
//	force  = Σ f_i
//	torque = Σ τ_i + Σ (r_i × f_i)
//
// where r_i is the constituent's template offset rotated by the
// central's current orientation. The central is excluded from its own
// sum and its previous accumulator values are overwritten, so repeated
// passes never double count. Bodies whose central is not locally owned
// this step are skipped (or rejected, see ReduceOptions.RequireLocal).
func (r *Reducer) Reduce(snap *particle.Snapshot, buf *particle.ForceBuffer, opts ReduceOptions) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	if err := buf.Validate(snap.Total()); err != nil {
		return err
	}

	nMol := r.mol.NMol()
	if nMol == 0 {
		return nil
	}

	info, err := r.resolveBodies(snap, opts)
	if err != nil {
		return err
	}

	width := r.sizing.GroupWidth
	window := r.sizing.Window
	bpg := r.sizing.BodiesPerGroup
	groups := (nMol + bpg - 1) / bpg

	// Group-private scratch, one slot per lane.
	scratchF := make([]particle.Vec3, groups*width)
	scratchT := make([]particle.Vec3, groups*width)
	scratchE := make([]float64, groups*width)
	var scratchV []float64
	if opts.Virial {
		scratchV = make([]float64, groups*width*particle.VirialComponents)
	}

	gather := func(g, lane int) {
		win := lane / window
		laneInWin := lane % window
		b := g*bpg + win
		slot := g*width + lane
		if b >= nMol || info[b].skip {
			return
		}
		bi := &info[b]

		var accF, accT particle.Vec3
		var accE float64
		var accV [particle.VirialComponents]float64

		molLen := r.mol.Len(b)
		passes := (molLen + window - 1) / window
		for p := 0; p < passes; p++ {
			m := p*window + laneInWin
			if m >= molLen {
				continue
			}
			idx := r.mol.Member(b, m)
			if idx == bi.central {
				continue
			}

			f := buf.Force[idx]
			li := snap.Tag[idx] - bi.tag - 1
			site, _ := r.templates.Site(bi.bodyType, li)
			rel := bi.orient.Rotate(site.Offset)

			accF = accF.Add(f)
			accT = accT.Add(buf.Torque[idx]).Add(rel.Cross(f))
			accE += buf.Energy[idx]

			if opts.Virial {
				accV[particle.VirialXX] += buf.VirialAt(particle.VirialXX, idx) - f[0]*rel[0]
				accV[particle.VirialXY] += buf.VirialAt(particle.VirialXY, idx) - f[0]*rel[1]
				accV[particle.VirialXZ] += buf.VirialAt(particle.VirialXZ, idx) - f[0]*rel[2]
				accV[particle.VirialYY] += buf.VirialAt(particle.VirialYY, idx) - f[1]*rel[1]
				accV[particle.VirialYZ] += buf.VirialAt(particle.VirialYZ, idx) - f[1]*rel[2]
				accV[particle.VirialZZ] += buf.VirialAt(particle.VirialZZ, idx) - f[2]*rel[2]
				for c := 0; c < particle.VirialComponents; c++ {
					buf.SetVirial(c, idx, 0)
				}
			}

			// Constituents carry no independent rotational degree of
			// freedom; their torque is consumed here, exactly once.
			buf.Torque[idx] = particle.Vec3{}
			if opts.ZeroForce || opts.Virial {
				buf.Force[idx] = particle.Vec3{}
			}
			if opts.ZeroForce {
				buf.Energy[idx] = 0
			}
		}

		scratchF[slot] = accF
		scratchT[slot] = accT
		scratchE[slot] = accE
		if opts.Virial {
			copy(scratchV[slot*particle.VirialComponents:], accV[:])
		}
	}

	phases := []compute.Phase{gather}

	// Tree combine: log2(window) halving rounds, each a phase so the
	// backend barriers between them.
	for span := window / 2; span >= 1; span /= 2 {
		span := span
		phases = append(phases, func(g, lane int) {
			if lane%window >= span {
				return
			}
			dst := g*width + lane
			src := dst + span
			scratchF[dst] = scratchF[dst].Add(scratchF[src])
			scratchT[dst] = scratchT[dst].Add(scratchT[src])
			scratchE[dst] += scratchE[src]
			if opts.Virial {
				for c := 0; c < particle.VirialComponents; c++ {
					scratchV[dst*particle.VirialComponents+c] += scratchV[src*particle.VirialComponents+c]
				}
			}
		})
	}

	publish := func(g, lane int) {
		if lane%window != 0 {
			return
		}
		b := g*bpg + lane/window
		if b >= nMol || info[b].skip {
			return
		}
		slot := g*width + lane
		central := info[b].central
		buf.Force[central] = scratchF[slot]
		buf.Torque[central] = scratchT[slot]
		buf.Energy[central] = scratchE[slot]
		if opts.Virial {
			for c := 0; c < particle.VirialComponents; c++ {
				buf.SetVirial(c, central, scratchV[slot*particle.VirialComponents+c])
			}
		}
	}
	phases = append(phases, publish)

	r.backend.Run(groups, width, phases)
	return nil
}

// resolveBodies locates each body's central and validates every member
// against the template table, so the kernel itself cannot fault.
func (r *Reducer) resolveBodies(snap *particle.Snapshot, opts ReduceOptions) ([]bodyInfo, error) {
	nMol := r.mol.NMol()
	info := make([]bodyInfo, nMol)

	for b := 0; b < nMol; b++ {
		central := r.mol.Member(b, 0)
		tag := snap.Tag[central]

		if central < 0 || central >= snap.N {
			if opts.RequireLocal {
				return nil, fmt.Errorf("%w: body %d central index %d, local range [0, %d)",
					ErrCentralNotLocal, tag, central, snap.N)
			}
			info[b].skip = true
			continue
		}

		bodyType := snap.Type[central]
		if !r.templates.HasType(bodyType) {
			return nil, fmt.Errorf("%w: type %d (body %d)", body.ErrNoTemplate, bodyType, tag)
		}

		molLen := r.mol.Len(b)
		for m := 1; m < molLen; m++ {
			idx := r.mol.Member(b, m)
			li := snap.Tag[idx] - tag - 1
			if li < 0 || li >= r.templates.Len(bodyType) {
				return nil, fmt.Errorf("%w: body %d member tag %d local index %d (template has %d sites)",
					ErrLocalIndex, tag, snap.Tag[idx], li, r.templates.Len(bodyType))
			}
		}

		info[b] = bodyInfo{
			central:  central,
			tag:      tag,
			orient:   snap.Orient[central],
			bodyType: bodyType,
		}
	}
	return info, nil
}
