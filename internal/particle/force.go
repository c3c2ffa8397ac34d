package particle

import "fmt"

// Virial component order within a buffer: the six independent components
// of the symmetric tensor, row-major upper triangle.
const (
	VirialXX = iota
	VirialXY
	VirialXZ
	VirialYY
	VirialYZ
	VirialZZ
	VirialComponents
)

// ForceBuffer holds the per-particle accumulators written by force-field
// collaborators and consumed by the reducer. Virial is component-major
// with a configurable pitch: component c of particle i lives at
// Virial[c*Pitch+i], so buffers with padded rows interoperate.
type ForceBuffer struct {
	Force  []Vec3
	Energy []float64
	Torque []Vec3
	Virial []float64
	Pitch  int
}

// NewForceBuffer allocates accumulators for n particles with the minimal
// virial pitch.
func NewForceBuffer(n int) *ForceBuffer {
	return NewForceBufferPitched(n, n)
}

// NewForceBufferPitched allocates accumulators for n particles with an
// explicit virial pitch >= n.
func NewForceBufferPitched(n, pitch int) *ForceBuffer {
	if pitch < n {
		panic(fmt.Sprintf("particle: virial pitch %d < particle count %d", pitch, n))
	}
	return &ForceBuffer{
		Force:  make([]Vec3, n),
		Energy: make([]float64, n),
		Torque: make([]Vec3, n),
		Virial: make([]float64, VirialComponents*pitch),
		Pitch:  pitch,
	}
}

// Len returns the particle count covered by the buffer.
func (b *ForceBuffer) Len() int { return len(b.Force) }

// VirialAt reads component c of particle i.
func (b *ForceBuffer) VirialAt(c, i int) float64 {
	return b.Virial[c*b.Pitch+i]
}

// SetVirial writes component c of particle i.
func (b *ForceBuffer) SetVirial(c, i int, v float64) {
	b.Virial[c*b.Pitch+i] = v
}

// AddVirial accumulates into component c of particle i.
func (b *ForceBuffer) AddVirial(c, i int, v float64) {
	b.Virial[c*b.Pitch+i] += v
}

// Clear zeroes every accumulator.
func (b *ForceBuffer) Clear() {
	for i := range b.Force {
		b.Force[i] = Vec3{}
		b.Torque[i] = Vec3{}
		b.Energy[i] = 0
	}
	for i := range b.Virial {
		b.Virial[i] = 0
	}
}

// Validate checks the buffer covers n particles.
func (b *ForceBuffer) Validate(n int) error {
	if b.Len() < n || len(b.Energy) < n || len(b.Torque) < n {
		return fmt.Errorf("%w: force buffer covers %d particles, need %d", ErrSizeMismatch, b.Len(), n)
	}
	if b.Pitch < n {
		return fmt.Errorf("%w: pitch %d, need %d", ErrVirialPitch, b.Pitch, n)
	}
	return nil
}
