package box

import (
	"fmt"
	"math"

	"github.com/san-kum/rigidsim/internal/particle"
)

// Box is an orthorhombic periodic simulation box centered on the origin.
// Coordinates in the primary image lie in [-L/2, L/2) per axis.
type Box struct {
	L        particle.Vec3
	Periodic [3]bool
}

// New returns a fully periodic box with edge lengths lx, ly, lz.
func New(lx, ly, lz float64) Box {
	return Box{
		L:        particle.Vec3{lx, ly, lz},
		Periodic: [3]bool{true, true, true},
	}
}

// Validate rejects non-positive edge lengths.
func (b Box) Validate() error {
	for a := 0; a < 3; a++ {
		if b.L[a] <= 0 {
			return fmt.Errorf("box: edge %d must be positive, got %f", a, b.L[a])
		}
	}
	return nil
}

// Wrap folds p into the primary image and updates the per-axis image
// flags by the number of box lengths removed. Non-periodic axes pass
// through untouched.
func (b Box) Wrap(p particle.Vec3, img [3]int) (particle.Vec3, [3]int) {
	for a := 0; a < 3; a++ {
		if !b.Periodic[a] {
			continue
		}
		shift := math.Floor(p[a]/b.L[a] + 0.5)
		p[a] -= shift * b.L[a]
		img[a] += int(shift)
	}
	return p, img
}

// MinImage returns the minimum-image separation vector.
func (b Box) MinImage(dr particle.Vec3) particle.Vec3 {
	for a := 0; a < 3; a++ {
		if !b.Periodic[a] {
			continue
		}
		dr[a] -= b.L[a] * math.Floor(dr[a]/b.L[a]+0.5)
	}
	return dr
}

// Unwrap reconstructs the unwrapped coordinate from a primary-image
// position and its image flags.
func (b Box) Unwrap(p particle.Vec3, img [3]int) particle.Vec3 {
	for a := 0; a < 3; a++ {
		p[a] += float64(img[a]) * b.L[a]
	}
	return p
}

// Volume returns the box volume.
func (b Box) Volume() float64 {
	return b.L[0] * b.L[1] * b.L[2]
}
