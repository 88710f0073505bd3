// Package hoc compiles a validated morph.Cell into a NEURON hoc cell
// template. The generated file replicates the structure produced by
// NEURON's Cell Builder: a begintemplate/endtemplate block whose init()
// wires topology, subsets, geometry, biophysics and segment sizing in a
// fixed order, with oversized statement sequences split into chained
// sub-procedures to stay under the hoc interpreter's per-procedure limits.
//
// Generation is a single-threaded, purely functional pass over an immutable
// cell snapshot. Each stage produces a self-contained script fragment; the
// assembler concatenates them and writes the result in one step, so a
// failing pass never leaves a half-written artifact behind.
package hoc
