// Package particle provides the particle data model shared by the
// rigid-body engine and its collaborators:
//
//   - [Vec3], [Quat]: space-frame vector and rotation algebra
//   - [Snapshot]: structure-of-arrays particle storage with stable tags,
//     a reverse-tag table, image flags, and ghost mirrors
//   - [ForceBuffer]: net force/torque/virial accumulators with a
//     configurable virial pitch
//
// # Identity
//
// A particle's tag never changes; its storage index may change whenever
// storage is reordered or ownership migrates. Always go through
// [Snapshot.Resolve] when holding a tag across a reorder boundary.
package particle
