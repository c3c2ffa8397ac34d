package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/particle"
	"github.com/san-kum/rigidsim/internal/rigid"
)

// StepError carries the failing step for diagnosis.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }

// Result summarizes a run.
type Result struct {
	Times      []float64
	Drift      []float64
	Metrics    map[string]float64
	StepsTaken int
}

// Stepper drives the aggregate-integrate-spread cycle.
type Stepper struct {
	sys     *System
	metrics []metrics.Metric
	t       float64
	step    int
	initMom particle.Vec3
	hasInit bool
}

func NewStepper(sys *System) *Stepper {
	return &Stepper{sys: sys}
}

func (st *Stepper) AddMetric(m metrics.Metric) { st.metrics = append(st.metrics, m) }

func (st *Stepper) System() *System { return st.sys }

func (st *Stepper) Time() float64 { return st.t }

// Step runs one full cycle: accumulate forces, fold onto centrals,
// advance centrals and free particles, propagate to constituents.
func (st *Stepper) Step(dt float64) error {
	sys := st.sys

	sys.Buf.Clear()
	sys.Field.Apply(sys.Snap, sys.Buf)

	err := sys.Reducer.Reduce(sys.Snap, sys.Buf, rigid.ReduceOptions{
		ZeroForce:    true,
		Virial:       true,
		RequireLocal: true,
	})
	if err != nil {
		return &StepError{Step: st.step, Time: st.t, Wrapped: err}
	}

	sys.Integrator.Advance(sys.Snap, sys.Buf, sys.Box, dt)

	for i := 0; i < sys.Snap.N; i++ {
		if !sys.Snap.Pos[i].IsValid() {
			return &StepError{Step: st.step, Time: st.t,
				Wrapped: fmt.Errorf("sim: non-finite position for particle tag %d", sys.Snap.Tag[i])}
		}
	}

	if err := sys.Spreader.Spread(sys.Snap, false); err != nil {
		return &StepError{Step: st.step, Time: st.t, Wrapped: err}
	}

	st.t += dt
	st.step++

	for _, m := range st.metrics {
		m.Observe(sys.Snap, sys.Buf, st.t)
	}
	return nil
}

// Run steps the system `steps` times, recording the per-step momentum
// drift history for plotting.
func (st *Stepper) Run(ctx context.Context, dt float64, steps int) (*Result, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("sim: dt must be positive, got %f", dt)
	}
	if steps <= 0 {
		return nil, fmt.Errorf("sim: steps must be positive, got %d", steps)
	}

	for _, m := range st.metrics {
		m.Reset()
	}

	result := &Result{
		Times:   make([]float64, 0, steps),
		Drift:   make([]float64, 0, steps),
		Metrics: make(map[string]float64),
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := st.Step(dt); err != nil {
			return result, err
		}
		result.StepsTaken++
		result.Times = append(result.Times, st.t)
		result.Drift = append(result.Drift, st.momentumDrift())
	}

	for _, m := range st.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (st *Stepper) momentumDrift() float64 {
	snap := st.sys.Snap
	var p particle.Vec3
	for i := 0; i < snap.N; i++ {
		t := snap.Body[i]
		if t != particle.NoBody && snap.Tag[i] != t {
			continue
		}
		p = p.Add(snap.Vel[i].Scale(snap.Mass[i]))
	}
	if !st.hasInit {
		st.initMom = p
		st.hasInit = true
	}
	return p.Sub(st.initMom).Norm()
}
