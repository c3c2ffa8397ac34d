package body

import (
	"errors"
	"fmt"

	"github.com/san-kum/rigidsim/internal/particle"
)

// Domain errors for body bookkeeping.
var (
	// ErrNoTemplate indicates a body type with no registered template.
	ErrNoTemplate = errors.New("body: no template for body type")

	// ErrNoSite indicates a local index beyond a template's site table.
	ErrNoSite = errors.New("body: local index outside template")

	// ErrBadMolecule indicates a molecule list violating the
	// tag-contiguity invariant.
	ErrBadMolecule = errors.New("body: molecule violates tag contiguity")

	// ErrCentralMissing indicates a body tag with no matching central
	// particle in storage.
	ErrCentralMissing = errors.New("body: central particle missing")
)

// Site is one constituent's geometry in the body frame. The central
// particle has no site; local index 0 is the first constituent.
type Site struct {
	Offset particle.Vec3
	Orient particle.Quat
}

// TemplateStore maps a body type to the ordered site table of its
// constituents. Stores are frozen after construction; the per-step
// passes read them concurrently without locking.
type TemplateStore struct {
	sites  map[int][]Site
	frozen bool
}

func NewTemplateStore() *TemplateStore {
	return &TemplateStore{sites: make(map[int][]Site)}
}

// SetType registers the constituent sites of a body type. Panics if the
// store is frozen: templates change only when body definitions change,
// never during a step.
func (ts *TemplateStore) SetType(bodyType int, sites []Site) {
	if ts.frozen {
		panic("body: template store modified after freeze")
	}
	cp := make([]Site, len(sites))
	copy(cp, sites)
	ts.sites[bodyType] = cp
}

// Freeze makes the store immutable.
func (ts *TemplateStore) Freeze() { ts.frozen = true }

// Site returns the geometry of constituent local index li of bodyType.
func (ts *TemplateStore) Site(bodyType, li int) (Site, error) {
	sites, ok := ts.sites[bodyType]
	if !ok {
		return Site{}, fmt.Errorf("%w: type %d", ErrNoTemplate, bodyType)
	}
	if li < 0 || li >= len(sites) {
		return Site{}, fmt.Errorf("%w: type %d local index %d (have %d sites)",
			ErrNoSite, bodyType, li, len(sites))
	}
	return sites[li], nil
}

// Len returns the constituent count of bodyType, zero if unregistered.
func (ts *TemplateStore) Len(bodyType int) int {
	return len(ts.sites[bodyType])
}

// HasType reports whether bodyType is registered.
func (ts *TemplateStore) HasType(bodyType int) bool {
	_, ok := ts.sites[bodyType]
	return ok
}
