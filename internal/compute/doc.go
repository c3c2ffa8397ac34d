// Package compute provides execution backends for group-parallel
// kernels.
//
// A kernel is a sequence of phases run over fixed-width groups of
// lanes; backends guarantee a barrier between phases within each group
// and nothing across groups. Two backends exist:
//
//   - serial: reference semantics, single goroutine
//   - pool: worker pool, one worker per group at a time
//
// Backends are functionally equivalent; only the floating-point
// summation order may differ. Pick one at startup with [Select] and
// thread it through explicitly:
//
//	backend, err := compute.Select(cfg.Backend)
//
// [ParallelFor] covers the simpler embarrassingly parallel loops that
// need no phase structure.
package compute
