package metrics

import (
	"github.com/san-kum/rigidsim/internal/particle"
)

// Metric observes the particle state once per step and reduces it to a
// single reported value at the end of a run.
type Metric interface {
	Name() string
	Observe(snap *particle.Snapshot, buf *particle.ForceBuffer, t float64)
	Value() float64
	Reset()
}
