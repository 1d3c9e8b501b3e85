// Package engine adapts heterogeneous text-replication backends to one
// benchmarking surface.
//
// Each backend keeps its own native document representation; adapters
// translate at the boundary and never share a base representation. Two
// narrow capability interfaces split what a backend can do:
//
//   - Engine/Doc: local (upstream) editing
//   - DownstreamEngine/Replica: update capture and merge for replicated
//     backends
//
// # Offset units
//
// Every engine declares its offset unit once via ByteOffsets: positions and
// lengths are UTF-8 byte offsets when true, Unicode codepoint offsets when
// false, for the whole lifetime of the adapter. Callers hand a unit-matched
// trace to an adapter; nothing inside an adapter converts units.
//
// # Capability gaps
//
// A backend without update capture simply does not implement
// DownstreamEngine. Requesting downstream replay for it fails with
// ErrNotDownstream at the registry, never silently inside replay logic.
package engine
