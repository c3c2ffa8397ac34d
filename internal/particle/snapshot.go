package particle

import "fmt"

const (
	// NoBody marks a particle that is not part of any rigid body.
	NoBody = -1

	// NotLocal marks a tag whose particle is not present in local or
	// ghost storage this step.
	NotLocal = -1
)

// Snapshot is structure-of-arrays particle storage for one step. Indices
// [0, N) are locally owned; [N, N+NGhost) are read-only mirrors of
// remotely owned particles. Storage indices are transient; tags are the
// stable identity and RTag maps a tag back to its current index.
type Snapshot struct {
	N      int
	NGhost int

	Pos    []Vec3
	Type   []int
	Orient []Quat
	Image  [][3]int
	Vel    []Vec3
	AngVel []Vec3
	Mass   []float64

	Tag  []int
	RTag []int

	// Body holds the owning body's tag (the central particle's tag),
	// or NoBody.
	Body []int
}

// NewSnapshot allocates storage for nLocal+nGhost particles and a
// reverse-tag table covering nTags tags. Tags default to the identity
// mapping; orientations default to identity; everything else is zero.
func NewSnapshot(nLocal, nGhost, nTags int) *Snapshot {
	n := nLocal + nGhost
	s := &Snapshot{
		N:      nLocal,
		NGhost: nGhost,
		Pos:    make([]Vec3, n),
		Type:   make([]int, n),
		Orient: make([]Quat, n),
		Image:  make([][3]int, n),
		Vel:    make([]Vec3, n),
		AngVel: make([]Vec3, n),
		Mass:   make([]float64, n),
		Tag:    make([]int, n),
		RTag:   make([]int, nTags),
		Body:   make([]int, n),
	}
	for i := range s.RTag {
		s.RTag[i] = NotLocal
	}
	for i := 0; i < n; i++ {
		s.Orient[i] = IdentityQuat()
		s.Body[i] = NoBody
		s.Mass[i] = 1.0
		if i < nTags {
			s.Tag[i] = i
			s.RTag[i] = i
		}
	}
	return s
}

// Total returns the local+ghost particle count.
func (s *Snapshot) Total() int { return s.N + s.NGhost }

// Resolve maps a tag to its current storage index, or NotLocal when the
// particle is absent from local and ghost storage.
func (s *Snapshot) Resolve(tag int) int {
	if tag < 0 || tag >= len(s.RTag) {
		return NotLocal
	}
	return s.RTag[tag]
}

// Validate checks that all per-particle arrays cover local+ghost storage.
func (s *Snapshot) Validate() error {
	n := s.Total()
	lens := map[string]int{
		"pos":    len(s.Pos),
		"type":   len(s.Type),
		"orient": len(s.Orient),
		"image":  len(s.Image),
		"vel":    len(s.Vel),
		"angvel": len(s.AngVel),
		"mass":   len(s.Mass),
		"tag":    len(s.Tag),
		"body":   len(s.Body),
	}
	for name, l := range lens {
		if l < n {
			return fmt.Errorf("%w: %s has %d entries, need %d", ErrSizeMismatch, name, l, n)
		}
	}
	return nil
}
