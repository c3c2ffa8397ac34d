package body

import (
	"fmt"
	"sort"

	"github.com/san-kum/rigidsim/internal/particle"
)

// MoleculeIndex is the per-body ordered member table consumed by the
// reducer: for each body, the storage indices of its members with the
// central particle at slot 0 and constituents following in tag order.
// It is rebuilt only when connectivity changes, never during a step.
type MoleculeIndex struct {
	members []int
	offsets []int
	maxLen  int
}

// NMol returns the body count.
func (mi *MoleculeIndex) NMol() int { return len(mi.offsets) - 1 }

// Len returns the member count of body m, central included.
func (mi *MoleculeIndex) Len(m int) int {
	return mi.offsets[m+1] - mi.offsets[m]
}

// Member returns the storage index at slot of body m.
func (mi *MoleculeIndex) Member(m, slot int) int {
	return mi.members[mi.offsets[m]+slot]
}

// MaxLen returns the largest member count over all bodies.
func (mi *MoleculeIndex) MaxLen() int { return mi.maxLen }

// Build scans local and ghost storage and groups particles by body tag.
// Within a body, members are ordered by tag, which places the central
// (whose tag equals the body tag) at slot 0. Build validates the
// contiguity invariant: every constituent tag must exceed the body tag,
// so local_index = tag − body_tag − 1 is well defined.
func Build(snap *particle.Snapshot) (*MoleculeIndex, error) {
	groups := make(map[int][]int)
	for i := 0; i < snap.Total(); i++ {
		t := snap.Body[i]
		if t == particle.NoBody {
			continue
		}
		groups[t] = append(groups[t], i)
	}

	bodyTags := make([]int, 0, len(groups))
	for t := range groups {
		bodyTags = append(bodyTags, t)
	}
	sort.Ints(bodyTags)

	mi := &MoleculeIndex{offsets: []int{0}}
	for _, t := range bodyTags {
		members := groups[t]
		sort.Slice(members, func(a, b int) bool {
			return snap.Tag[members[a]] < snap.Tag[members[b]]
		})

		if snap.Tag[members[0]] != t {
			return nil, fmt.Errorf("%w: body %d", ErrCentralMissing, t)
		}
		for _, idx := range members[1:] {
			if snap.Tag[idx] <= t {
				return nil, fmt.Errorf("%w: body %d has member tag %d",
					ErrBadMolecule, t, snap.Tag[idx])
			}
		}

		mi.members = append(mi.members, members...)
		mi.offsets = append(mi.offsets, len(mi.members))
		if len(members) > mi.maxLen {
			mi.maxLen = len(members)
		}
	}
	return mi, nil
}
