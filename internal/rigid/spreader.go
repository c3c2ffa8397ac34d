package rigid

import (
	"fmt"
	"sync"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/box"
	"github.com/san-kum/rigidsim/internal/compute"
	"github.com/san-kum/rigidsim/internal/particle"
)

// spreadMinChunk keeps tiny particle counts on the calling goroutine.
const spreadMinChunk = 256

// Spreader recomputes every constituent's position, orientation, and
// image flags from its central particle's current state. Each
// constituent is written by exactly one update and centrals are never
// written, so the per-particle loop runs without locks.
type Spreader struct {
	templates *body.TemplateStore
	box       box.Box
}

func NewSpreader(templates *body.TemplateStore, bx box.Box) *Spreader {
	return &Spreader{templates: templates, box: bx}
}

// Spread propagates central state to constituents. With remote set,
// ghost constituents are updated too and a ghost-resident central is an
// acceptable source; without it, only locally owned particles with
// locally owned centrals are touched. A constituent whose central
// cannot be resolved at all is left untouched this step: the owning
// domain will deliver a consistent central on the next exchange.
func (sp *Spreader) Spread(snap *particle.Snapshot, remote bool) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	n := snap.N
	if remote {
		n = snap.Total()
	}

	var mu sync.Mutex
	var firstErr error

	compute.ParallelFor(n, spreadMinChunk, func(start, end int) {
		for i := start; i < end; i++ {
			if err := sp.spreadOne(snap, i, remote); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
		}
	})

	return firstErr
}

func (sp *Spreader) spreadOne(snap *particle.Snapshot, i int, remote bool) error {
	t := snap.Body[i]
	if t == particle.NoBody {
		return nil
	}

	c := snap.Resolve(t)
	if c == particle.NotLocal {
		// Central absent from local and ghost storage: transient in a
		// distributed run, corrected on the next exchange.
		return nil
	}
	if !remote && c >= snap.N {
		return nil
	}
	if i == c {
		// The central carries the body state; propagation never
		// overwrites it.
		return nil
	}

	li := snap.Tag[i] - t - 1
	if li < 0 {
		return fmt.Errorf("%w: body %d member tag %d", body.ErrBadMolecule, t, snap.Tag[i])
	}

	bodyType := snap.Type[c]
	site, err := sp.templates.Site(bodyType, li)
	if err != nil {
		return fmt.Errorf("particle tag %d: %w", snap.Tag[i], err)
	}

	// Offsets rotate by the central's current orientation, never by the
	// constituent's stored one.
	orient := snap.Orient[c]
	pos := snap.Pos[c].Add(orient.Rotate(site.Offset))
	pos, img := sp.box.Wrap(pos, snap.Image[c])

	snap.Pos[i] = pos
	snap.Image[i] = img
	snap.Orient[i] = orient.Mul(site.Orient)
	return nil
}
