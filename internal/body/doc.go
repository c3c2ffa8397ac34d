// Package body holds the rigid-body bookkeeping consumed by the
// aggregation and propagation passes:
//
//   - [TemplateStore]: immutable per-body-type constituent geometry
//   - [MoleculeIndex]: per-body ordered member table, central at slot 0
//
// Both are rebuilt off the per-step critical path, only when body
// definitions or connectivity change.
package body
