// Package app wires the application together: it owns the configured
// logger, drives the cell loader and hands each loaded cell to the hoc
// generator.
package app
