// Package morph holds the in-memory description of a neuronal cell: its
// sections, segments, named groups, channel mechanism placements and
// parameterised (position-dependent) property distributions.
//
// The model is an arena of indexed, append-only records. Segments reference
// their parents by index, never by pointer, so the structure is trivially
// copyable and cannot form ownership cycles. Once a cell has been built and
// validated it is treated as immutable; the hoc generator only reads it.
package morph
