// Package rigid implements the two per-step passes that make composite
// particles work:
//
//   - [Reducer]: folds constituent force/torque/virial onto each body's
//     central particle so the integrator advances one rigid-body state
//   - [Spreader]: propagates an updated central state back out to every
//     constituent's position, orientation, and image flags
//
// Both passes are embarrassingly parallel with disjoint output slots.
// The reducer's only synchronization is the per-group phase barrier
// provided by its compute backend: one after the gather phase, one per
// tree-halving round.
//
// # Sizing
//
// [ResolveSizing] turns explicit resource limits into a group width and
// window partition once at startup:
//
//	sz, err := rigid.ResolveSizing(rigid.SizingConfig{
//		BodiesPerGroup: 4,
//		ScratchPerLane: rigid.ReducerScratchPerLane(),
//	})
//
// # Conservation
//
// A central's folded force and torque equal the exact sum over its
// constituents at the moment of aggregation, and every consumed
// constituent accumulator is zeroed exactly once per pass. Callers must
// not run another writer over the force arrays while a pass is active.
package rigid
