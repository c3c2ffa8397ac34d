package compute

import "fmt"

// Phase is one step of a group-parallel kernel, invoked once per lane.
type Phase func(group, lane int)

// Backend executes group-parallel kernels. A kernel is a sequence of
// phases over `groups` groups of `width` lanes each. The contract every
// backend must honor: all lanes of a group finish a phase before any
// lane of that group starts the next phase, and distinct groups never
// share output slots. Backends may order groups and lanes freely, so
// floating-point reductions can differ between backends up to
// associativity.
type Backend interface {
	Name() string
	Available() bool
	Run(groups, width int, phases []Phase)
	Cleanup()
}

// Select resolves a backend by name. The empty string selects the best
// available backend. Selection happens once at startup; the result is
// passed explicitly to whatever needs it.
func Select(name string) (Backend, error) {
	switch name {
	case "":
		return AutoSelect(), nil
	case "serial":
		return NewSerial(), nil
	case "pool":
		return NewPool(0), nil
	default:
		return nil, fmt.Errorf("compute: unknown backend %q", name)
	}
}

// AutoSelect returns the worker-pool backend, falling back to serial on
// single-CPU machines.
func AutoSelect() Backend {
	p := NewPool(0)
	if p.Available() {
		return p
	}
	return NewSerial()
}
